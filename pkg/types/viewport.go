package types

type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
