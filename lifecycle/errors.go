package lifecycle

import (
	"errors"
	"fmt"
)

// Kind classifies an error so that callers can branch without matching messages
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInfrastructure Kind = "infrastructure"
)

// Error is returned by every request and conversation operation
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of an error. Errors that are not *Error come from
// the infrastructure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfrastructure
}

var (
	ErrRequestNotFound      = newError(KindNotFound, "request not found")
	ErrConversationNotFound = newError(KindNotFound, "conversation not found")
	ErrHelperNotPending     = newError(KindNotFound, "helper has not requested to help with this request")

	ErrNotRequester      = newError(KindAuthorization, "only the requester can perform this action")
	ErrNotAssignedHelper = newError(KindAuthorization, "only the assigned helper can perform this action")
	ErrNotParticipant    = newError(KindAuthorization, "not a participant of this request")
	ErrOwnRequest        = newError(KindAuthorization, "cannot offer help on your own request")
	ErrRequesterOnly     = newError(KindAuthorization, "account is registered as requester only")
	ErrHelperOnly        = newError(KindAuthorization, "account is registered as helper only")

	ErrDuplicateProposal       = newError(KindConflict, "already requested to help with this request")
	ErrRequestNotPending       = newError(KindConflict, "request is no longer pending")
	ErrRequestClosed           = newError(KindConflict, "request is already closed")
	ErrHelperMustCompleteFirst = newError(KindConflict, "helper must complete first")
	ErrAlreadyCompleted        = newError(KindConflict, "request is already completed")
	ErrNoHelperAssigned        = newError(KindConflict, "no helper assigned")
	ErrDeleteActiveRequest     = newError(KindConflict, "cannot delete a request while a helper is on it")
	ErrNotCompleted            = newError(KindConflict, "request must be completed before payment")
	ErrAlreadyPaid             = newError(KindConflict, "request is already paid")
	ErrConcurrentUpdate        = newError(KindConflict, "request was modified concurrently")
	ErrConversationArchived    = newError(KindConflict, "conversation is archived")

	ErrMissingLocation    = newError(KindValidation, "location is required")
	ErrInvalidLocation    = newError(KindValidation, "location is out of range")
	ErrInvalidProblemType = newError(KindValidation, "unknown problem type")
	ErrEmptyDescription   = newError(KindValidation, "description is required")
	ErrDescriptionTooLong = newError(KindValidation, "description is too long")
	ErrTooManyPhotos      = newError(KindValidation, "too many photos")
	ErrInvalidPhoto       = newError(KindValidation, "photo url is required")
	ErrNegativeAmount     = newError(KindValidation, "offered amount must not be negative")
	ErrInvalidStatus      = newError(KindValidation, "unknown request status")
	ErrMissingHelper      = newError(KindValidation, "helper id is required")
	ErrProposalTooLong    = newError(KindValidation, "proposal message is too long")
	ErrMissingPayment     = newError(KindValidation, "payment method is required")
	ErrNothingToUpdate    = newError(KindValidation, "nothing to update")
	ErrEmptyMessage       = newError(KindValidation, "message content is empty")
	ErrMessageTooLong     = newError(KindValidation, "message content is too long")
)

// ErrUnchanged is returned by a transition that would leave the request as
// it is. The store reports success without writing.
var ErrUnchanged = errors.New("request unchanged")

func errInvalidTransition(from, to interface{}) error {
	return newError(KindConflict, "cannot move request from %s to %s", from, to)
}
