package realtime

import (
	"time"

	"github.com/bitmark-inc/roadside-api/schema"
)

// RequestSummary is the public shape of a request on the bus. It never carries
// the pending helper list, the payment method or the version.
type RequestSummary struct {
	ID                 string               `json:"id"`
	Requester          string               `json:"requester"`
	Helper             string               `json:"helper,omitempty"`
	Status             schema.RequestStatus `json:"status"`
	Location           schema.Location      `json:"location"`
	ProblemType        schema.ProblemType   `json:"problemType"`
	Description        string               `json:"description"`
	Photos             []schema.Photo       `json:"photos"`
	OfferedAmount      float64              `json:"offeredAmount"`
	Currency           string               `json:"currency"`
	PendingHelperCount int                  `json:"pendingHelperCount"`
	CreatedAt          time.Time            `json:"createdAt"`
	AssignedAt         *time.Time           `json:"assignedAt,omitempty"`
	CompletedAt        *time.Time           `json:"completedAt,omitempty"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	EstimatedArrival   *time.Time           `json:"estimatedArrival,omitempty"`
}

func NewRequestSummary(r *schema.Request) RequestSummary {
	photos := r.Photos
	if photos == nil {
		photos = []schema.Photo{}
	}

	return RequestSummary{
		ID:                 r.ID.Hex(),
		Requester:          r.Requester,
		Helper:             r.Helper,
		Status:             r.Status,
		Location:           r.Location,
		ProblemType:        r.ProblemType,
		Description:        r.Description,
		Photos:             photos,
		OfferedAmount:      r.Payment.OfferedAmount,
		Currency:           r.Payment.Currency,
		PendingHelperCount: len(r.PendingHelpers),
		CreatedAt:          r.CreatedAt,
		AssignedAt:         r.AssignedAt,
		CompletedAt:        r.CompletedAt,
		CancelledAt:        r.CancelledAt,
		EstimatedArrival:   r.EstimatedArrival,
	}
}

type RequestDeletedPayload struct {
	RequestID string `json:"requestId"`
}

type HelperRequestPayload struct {
	RequestID     string               `json:"requestId"`
	PendingHelper schema.PendingHelper `json:"pendingHelper"`
	Request       RequestSummary       `json:"request"`
}

type HelperConfirmedPayload struct {
	RequestID      string         `json:"requestId"`
	ConversationID string         `json:"conversationId,omitempty"`
	Request        RequestSummary `json:"request"`
}

type MessagePayload struct {
	ConversationID string         `json:"conversationId"`
	RequestID      string         `json:"requestId"`
	Message        schema.Message `json:"message"`
}

// MessageNotificationPayload carries a preview for a participant who may not have the conversation open
type MessageNotificationPayload struct {
	ConversationID string    `json:"conversationId"`
	RequestID      string    `json:"requestId"`
	Sender         string    `json:"sender"`
	Preview        string    `json:"preview"`
	Timestamp      time.Time `json:"timestamp"`
}

type MessagesReadPayload struct {
	ConversationID string `json:"conversationId"`
	ReaderID       string `json:"readerId"`
	Count          int64  `json:"count"`
}

type TypingPayload struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	IsTyping       bool   `json:"isTyping"`
}

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Event   string `json:"event,omitempty"`
}

const previewLength = 80

// Preview cuts message content down to a notification sized text
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "…"
}
