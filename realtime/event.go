// Package realtime is the notification bus: sessions subscribe to rooms and
// receive events pushed by request and chat operations.
package realtime

// server to client
const (
	EventRequestAdded          = "requestAdded"
	EventRequestUpdated        = "requestUpdated"
	EventRequestDeleted        = "requestDeleted"
	EventHelperRequestReceived = "helperRequestReceived"
	EventHelperConfirmed       = "helperConfirmed"
	EventNewMessage            = "new_message"
	EventMessageNotification   = "message_notification"
	EventMessagesRead          = "messages_read"
	EventUserTyping            = "user_typing"
	EventError                 = "error"
)

// client to server
const (
	CommandJoinConversation  = "join_conversation"
	CommandLeaveConversation = "leave_conversation"
	CommandSendMessage       = "send_message"
	CommandMarkAsRead        = "mark_as_read"
	CommandTyping            = "typing"
)

// Event is what operations emit. Notice, when set, is localized per receiving session.
type Event struct {
	Name   string      `json:"event"`
	Data   interface{} `json:"data"`
	Notice *Notice     `json:"-"`
}

// Notice refers to the "notice.<MessageID>.title" and "notice.<MessageID>.body" messages
type Notice struct {
	MessageID string
	Data      map[string]interface{}
}

// Frame is the wire form of an event as delivered to one session
type Frame struct {
	Event  string           `json:"event"`
	Data   interface{}      `json:"data"`
	Notice *LocalizedNotice `json:"notice,omitempty"`
}

type LocalizedNotice struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PublicRequestsTopic carries request additions, updates and deletions for map views
const PublicRequestsTopic = "public:requests"

func UserRoom(userID string) string {
	return "user:" + userID
}

func ConversationRoom(conversationID string) string {
	return "conversation:" + conversationID
}
