package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestCollection = "requests"
)

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestAssigned   RequestStatus = "assigned"
	RequestInProgress RequestStatus = "in_progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

var RequestStatuses = []RequestStatus{
	RequestPending,
	RequestAssigned,
	RequestInProgress,
	RequestCompleted,
	RequestCancelled,
}

// Valid reports whether the status is one of the known request statuses
func (s RequestStatus) Valid() bool {
	for _, status := range RequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible
func (s RequestStatus) Terminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

// HasHelper reports whether a request in this status must carry a helper
func (s RequestStatus) HasHelper() bool {
	return s == RequestAssigned || s == RequestInProgress || s == RequestCompleted
}

type ProblemType string

const (
	ProblemFlatTire      ProblemType = "flat_tire"
	ProblemDeadBattery   ProblemType = "dead_battery"
	ProblemOutOfFuel     ProblemType = "out_of_fuel"
	ProblemLockedOut     ProblemType = "locked_out"
	ProblemTowing        ProblemType = "towing"
	ProblemEngineTrouble ProblemType = "engine_trouble"
	ProblemAccident      ProblemType = "accident"
	ProblemOther         ProblemType = "other"
)

var ProblemTypes = map[ProblemType]bool{
	ProblemFlatTire:      true,
	ProblemDeadBattery:   true,
	ProblemOutOfFuel:     true,
	ProblemLockedOut:     true,
	ProblemTowing:        true,
	ProblemEngineTrouble: true,
	ProblemAccident:      true,
	ProblemOther:         true,
}

type Photo struct {
	URL        string    `json:"url" bson:"url"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploaded_at"`
}

// PendingHelper is a helper who offered to help and waits for the requester's decision
type PendingHelper struct {
	Helper      string    `json:"helper" bson:"helper"`
	RequestedAt time.Time `json:"requestedAt" bson:"requested_at"`
	Message     string    `json:"message,omitempty" bson:"message,omitempty"`
	Location    *Location `json:"location,omitempty" bson:"location,omitempty"`
}

type Payment struct {
	OfferedAmount float64    `json:"offeredAmount" bson:"offered_amount"`
	Currency      string     `json:"currency" bson:"currency"`
	IsPaid        bool       `json:"isPaid" bson:"is_paid"`
	PaidAt        *time.Time `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty" bson:"payment_method,omitempty"`
}

// Request - a roadside help request. Helper is empty when nobody is assigned.
// Version is bumped by every committed write and used for compare-and-set.
type Request struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Requester      string             `json:"requester" bson:"requester"`
	Helper         string             `json:"helper,omitempty" bson:"helper"`
	Status         RequestStatus      `json:"status" bson:"status"`
	Location       Location           `json:"location" bson:"location"`
	Geo            *GeoJSON           `json:"-" bson:"geo,omitempty"`
	ProblemType    ProblemType        `json:"problemType" bson:"problem_type"`
	Description    string             `json:"description" bson:"description"`
	Photos         []Photo            `json:"photos" bson:"photos"`
	PendingHelpers []PendingHelper    `json:"pendingHelpers" bson:"pending_helpers"`
	Payment        Payment            `json:"payment" bson:"payment"`

	CreatedAt            time.Time  `json:"createdAt" bson:"created_at"`
	AssignedAt           *time.Time `json:"assignedAt,omitempty" bson:"assigned_at,omitempty"`
	HelperCompletedAt    *time.Time `json:"helperCompletedAt,omitempty" bson:"helper_completed_at,omitempty"`
	RequesterConfirmedAt *time.Time `json:"requesterConfirmedAt,omitempty" bson:"requester_confirmed_at,omitempty"`
	CompletedAt          *time.Time `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	CancelledAt          *time.Time `json:"cancelledAt,omitempty" bson:"cancelled_at,omitempty"`
	EstimatedArrival     *time.Time `json:"estimatedArrival,omitempty" bson:"estimated_arrival,omitempty"`

	Version int64 `json:"-" bson:"version"`
}

// PendingHelper returns the pending entry of a helper, or nil
func (r *Request) PendingHelper(helperID string) *PendingHelper {
	for i := range r.PendingHelpers {
		if r.PendingHelpers[i].Helper == helperID {
			return &r.PendingHelpers[i]
		}
	}
	return nil
}

// IsParticipant reports whether the account is the requester or the assigned helper
func (r *Request) IsParticipant(accountID string) bool {
	if accountID == "" {
		return false
	}
	return r.Requester == accountID || r.Helper == accountID
}
