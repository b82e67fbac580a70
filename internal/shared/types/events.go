package types

import "time"

// EventType identifies a shell notification.
type EventType string

const (
	EventWindowCreated     EventType = "window_created"
	EventWindowMinimized   EventType = "window_minimized"
	EventWindowRestored    EventType = "window_restored"
	EventWindowMaximized   EventType = "window_maximized"
	EventWindowUnmaximized EventType = "window_unmaximized"
	EventWindowMoved       EventType = "window_moved"
	EventWindowResized     EventType = "window_resized"
	EventWindowFocused     EventType = "window_focused"
	EventWindowClosed      EventType = "window_closed"
	EventAppOpened         EventType = "app_opened"
	EventAppFocused        EventType = "app_focused"
)

// Event is a notification pushed to connected shells over the stream.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	WindowID  string                 `json:"window_id,omitempty"`
	AppID     string                 `json:"app_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
