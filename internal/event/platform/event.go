package platform

const EventName = "platform_events"

// Event 宿主应用发出的业务事件
type Event struct {
	EventType string         `json:"eventType"`
	Context   map[string]any `json:"context"`
}
