package presentation

import "github.com/matst80/slask-filters/pkg/types"

// MaxMobileScreenWidth is the first width that gets the desktop layout.
const MaxMobileScreenWidth = 768

type Layout int

const (
	Desktop Layout = iota
	Mobile
)

func (l Layout) String() string {
	switch l {
	case Desktop:
		return "desktop"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// SelectLayout picks the layout from the viewport width alone.
func SelectLayout(viewport types.Viewport) Layout {
	if viewport.Width < MaxMobileScreenWidth {
		return Mobile
	}
	return Desktop
}
