package messaging

import "fmt"

type ChangeTopic string

const (
	TrackingTopic   ChangeTopic = "tracking"
	SettingsChanged ChangeTopic = "settings_change"
)

func getName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}
