package okverify

import (
	"math"

	"github.com/okhi/okverify/pkg/platform"
)

// Notification configures the notification posted by the foreground service
// that uploads verification signals as soon as they occur.
type Notification struct {
	// Title is the notification title.
	Title string `yaml:"title"`
	// Text is the notification body.
	Text string `yaml:"text"`
	// ChannelID is the Android notification channel id.
	ChannelID string `yaml:"channelId"`
	// ChannelName is the Android notification channel name.
	ChannelName string `yaml:"channelName"`
	// ChannelDescription is the Android notification channel description.
	ChannelDescription string `yaml:"channelDescription"`

	// Importance is the channel importance. Nil uses the native default.
	Importance *int `yaml:"importance,omitempty"`
	// Icon is the drawable resource id. Nil uses the app icon.
	Icon *int `yaml:"icon,omitempty"`
	// NotificationID identifies the notification for updates.
	NotificationID *int `yaml:"notificationId,omitempty"`
	// NotificationRequestCode is the pending intent request code.
	NotificationRequestCode *int `yaml:"notificationRequestCode,omitempty"`
}

// ValidateNotification reports whether every required field of n is set.
// Optional fields are not inspected.
func ValidateNotification(n Notification) bool {
	return n.ChannelDescription != "" &&
		n.ChannelID != "" &&
		n.ChannelName != "" &&
		n.Text != "" &&
		n.Title != ""
}

var requiredNotificationKeys = []string{"channelDescription", "channelId", "channelName", "text", "title"}

// DecodeNotification builds a Notification from an untyped payload such as a
// decoded JSON object. It reports false unless every required key is present
// and holds a string. Optional keys are kept only when they hold whole numbers
// in int32 range; any other value is dropped rather than rejected.
func DecodeNotification(raw any) (*Notification, bool) {
	m := platform.ParseMap(raw)
	if m == nil {
		return nil, false
	}
	for _, key := range requiredNotificationKeys {
		if _, ok := platform.StringField(m, key); !ok {
			return nil, false
		}
	}
	n := &Notification{
		Title:                   m["title"].(string),
		Text:                    m["text"].(string),
		ChannelID:               m["channelId"].(string),
		ChannelName:             m["channelName"].(string),
		ChannelDescription:      m["channelDescription"].(string),
		Importance:              optionalInt(m, "importance"),
		Icon:                    optionalInt(m, "icon"),
		NotificationID:          optionalInt(m, "notificationId"),
		NotificationRequestCode: optionalInt(m, "notificationRequestCode"),
	}
	return n, true
}

// optionalInt reads key as a native int. Values that are not whole numbers
// within int32 range are dropped, since the native side reads a Java int.
func optionalInt(m map[string]any, key string) *int {
	f, ok := platform.NumberField(m, key)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	v := int(f)
	return &v
}

func (n *Notification) toArgs() map[string]any {
	args := map[string]any{
		"title":              n.Title,
		"text":               n.Text,
		"channelId":          n.ChannelID,
		"channelName":        n.ChannelName,
		"channelDescription": n.ChannelDescription,
	}
	if n.Importance != nil {
		args["importance"] = *n.Importance
	}
	if n.Icon != nil {
		args["icon"] = *n.Icon
	}
	if n.NotificationID != nil {
		args["notificationId"] = *n.NotificationID
	}
	if n.NotificationRequestCode != nil {
		args["notificationRequestCode"] = *n.NotificationRequestCode
	}
	return args
}
