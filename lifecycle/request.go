// Package lifecycle holds the roadside request state machine and the chat
// access rules. Every function validates before it mutates, so a returned
// error always leaves the request untouched.
package lifecycle

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bitmark-inc/roadside-api/schema"
)

const (
	MaxDescriptionLength = 1000
	MaxProposalLength    = 500
	MaxPhotos            = 5
)

// NewRequest is the input of Create
type NewRequest struct {
	Location      *schema.Location
	ProblemType   schema.ProblemType
	Description   string
	Photos        []string
	OfferedAmount *float64
	Currency      string
}

// Create builds a pending request
func Create(requester string, in NewRequest, now time.Time) (*schema.Request, error) {
	if in.Location == nil {
		return nil, ErrMissingLocation
	}
	if !in.Location.Valid() {
		return nil, ErrInvalidLocation
	}
	if !schema.ProblemTypes[in.ProblemType] {
		return nil, ErrInvalidProblemType
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	if len(in.Photos) > MaxPhotos {
		return nil, ErrTooManyPhotos
	}
	photos := make([]schema.Photo, 0, len(in.Photos))
	for _, url := range in.Photos {
		url = strings.TrimSpace(url)
		if url == "" {
			return nil, ErrInvalidPhoto
		}
		photos = append(photos, schema.Photo{URL: url, UploadedAt: now})
	}

	payment := schema.Payment{Currency: in.Currency}
	if in.OfferedAmount != nil {
		if *in.OfferedAmount < 0 {
			return nil, ErrNegativeAmount
		}
		payment.OfferedAmount = *in.OfferedAmount
	}

	loc := *in.Location
	loc.Address = strings.TrimSpace(loc.Address)

	return &schema.Request{
		Requester:      requester,
		Status:         schema.RequestPending,
		Location:       loc,
		Geo:            schema.NewGeoPoint(loc),
		ProblemType:    in.ProblemType,
		Description:    description,
		Photos:         photos,
		PendingHelpers: []schema.PendingHelper{},
		Payment:        payment,
		CreatedAt:      now,
	}, nil
}

// ProposeHelp records a helper's offer on a pending request
func ProposeHelp(r *schema.Request, helperID, message string, loc *schema.Location, now time.Time) error {
	if helperID == r.Requester {
		return ErrOwnRequest
	}
	if r.Status != schema.RequestPending {
		return ErrRequestNotPending
	}
	if r.PendingHelper(helperID) != nil {
		return ErrDuplicateProposal
	}

	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > MaxProposalLength {
		return ErrProposalTooLong
	}
	if loc != nil && !loc.Valid() {
		return ErrInvalidLocation
	}

	r.PendingHelpers = append(r.PendingHelpers, schema.PendingHelper{
		Helper:      helperID,
		RequestedAt: now,
		Message:     message,
		Location:    loc,
	})
	return nil
}

// ConfirmHelper assigns one of the pending helpers. The pending list keeps
// its entries; readers filter by the current helper.
func ConfirmHelper(r *schema.Request, callerID, helperID string, now time.Time) error {
	if callerID != r.Requester {
		return ErrNotRequester
	}
	if helperID == "" {
		return ErrMissingHelper
	}
	if r.Status != schema.RequestPending {
		return ErrRequestNotPending
	}
	if r.PendingHelper(helperID) == nil {
		return ErrHelperNotPending
	}

	r.Helper = helperID
	r.Status = schema.RequestAssigned
	r.AssignedAt = &now
	return nil
}

// RejectHelper drops a helper from the pending list without touching the status
func RejectHelper(r *schema.Request, callerID, helperID string) error {
	if callerID != r.Requester {
		return ErrNotRequester
	}
	if helperID == "" {
		return ErrMissingHelper
	}

	kept := make([]schema.PendingHelper, 0, len(r.PendingHelpers))
	for _, p := range r.PendingHelpers {
		if p.Helper != helperID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(r.PendingHelpers) {
		return ErrHelperNotPending
	}

	r.PendingHelpers = kept
	return nil
}

// UpdateStatus moves a request to the target status. Setting the current
// status again returns ErrUnchanged. Completion is only reachable through the
// requester's confirmation.
func UpdateStatus(r *schema.Request, callerID string, target schema.RequestStatus, now time.Time) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	if !r.IsParticipant(callerID) {
		return ErrNotParticipant
	}
	if target == r.Status {
		return ErrUnchanged
	}
	if r.Status.Terminal() {
		return ErrRequestClosed
	}

	switch target {
	case schema.RequestInProgress:
		if r.Status != schema.RequestAssigned {
			return errInvalidTransition(r.Status, target)
		}
		r.Status = schema.RequestInProgress
		return nil

	case schema.RequestCompleted:
		return ConfirmCompletion(r, callerID, now)

	case schema.RequestCancelled:
		if callerID != r.Requester {
			return ErrNotRequester
		}
		if r.Status != schema.RequestPending && r.Status != schema.RequestAssigned {
			return errInvalidTransition(r.Status, target)
		}
		r.Status = schema.RequestCancelled
		r.Helper = ""
		r.CancelledAt = &now
		return nil

	default:
		// pending is never re-entered and assigned goes through ConfirmHelper
		return errInvalidTransition(r.Status, target)
	}
}

// MarkHelperCompleted records the helper's side of the completion handshake.
// The request waits in in_progress for the requester's confirmation. Marking
// twice keeps the first timestamp and returns ErrUnchanged.
func MarkHelperCompleted(r *schema.Request, callerID string, now time.Time) error {
	if r.Helper == "" || callerID != r.Helper {
		return ErrNotAssignedHelper
	}
	if r.Status.Terminal() {
		return ErrRequestClosed
	}
	if r.HelperCompletedAt != nil {
		return ErrUnchanged
	}

	r.HelperCompletedAt = &now
	r.Status = schema.RequestInProgress
	return nil
}

// ConfirmCompletion is the requester's side of the handshake and the only way
// to reach completed
func ConfirmCompletion(r *schema.Request, callerID string, now time.Time) error {
	if callerID != r.Requester {
		return ErrNotRequester
	}
	if r.HelperCompletedAt == nil {
		return ErrHelperMustCompleteFirst
	}
	if r.Status == schema.RequestCompleted {
		return ErrAlreadyCompleted
	}
	if r.Status.Terminal() {
		return ErrRequestClosed
	}

	r.RequesterConfirmedAt = &now
	if r.CompletedAt == nil {
		r.CompletedAt = &now
	}
	r.Status = schema.RequestCompleted
	return nil
}

// SetEstimatedArrival lets the assigned helper announce an arrival time
func SetEstimatedArrival(r *schema.Request, callerID string, eta time.Time) error {
	if r.Helper == "" || callerID != r.Helper {
		return ErrNotAssignedHelper
	}
	if r.Status.Terminal() {
		return ErrRequestClosed
	}

	r.EstimatedArrival = &eta
	return nil
}

// RecordPayment settles a completed request
func RecordPayment(r *schema.Request, callerID, method string, now time.Time) error {
	if callerID != r.Requester {
		return ErrNotRequester
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return ErrMissingPayment
	}
	if r.Status != schema.RequestCompleted {
		return ErrNotCompleted
	}
	if r.Payment.IsPaid {
		return ErrAlreadyPaid
	}

	r.Payment.IsPaid = true
	r.Payment.PaidAt = &now
	r.Payment.PaymentMethod = method
	return nil
}

// CheckDelete allows the requester to delete a request nobody is working on
func CheckDelete(r *schema.Request, callerID string) error {
	if callerID != r.Requester {
		return ErrNotRequester
	}
	if r.Status == schema.RequestAssigned || r.Status == schema.RequestInProgress {
		return ErrDeleteActiveRequest
	}
	return nil
}

// CheckInvariants is run on every write before it is committed
func CheckInvariants(r *schema.Request) error {
	if r.Status.HasHelper() != (r.Helper != "") {
		return fmt.Errorf("request %s: helper %q inconsistent with status %s", r.ID.Hex(), r.Helper, r.Status)
	}

	seen := make(map[string]bool, len(r.PendingHelpers))
	for _, p := range r.PendingHelpers {
		if seen[p.Helper] {
			return fmt.Errorf("request %s: helper %s proposed twice", r.ID.Hex(), p.Helper)
		}
		seen[p.Helper] = true
	}

	if r.RequesterConfirmedAt != nil && r.HelperCompletedAt == nil {
		return fmt.Errorf("request %s: confirmed before the helper completed", r.ID.Hex())
	}
	return nil
}
