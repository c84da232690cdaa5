package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/schema"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newPendingRequest(t *testing.T) *schema.Request {
	r, err := Create("requester", NewRequest{
		Location:    &schema.Location{Latitude: 32.08, Longitude: 34.78},
		ProblemType: schema.ProblemFlatTire,
		Description: "x",
	}, testNow)
	assert.NoError(t, err)
	r.ID = primitive.NewObjectID()
	return r
}

func assertInvariants(t *testing.T, r *schema.Request) {
	assert.NoError(t, CheckInvariants(r))
}

func TestCreatePendingRequest(t *testing.T) {
	r := newPendingRequest(t)

	assert.Equal(t, schema.RequestPending, r.Status)
	assert.Empty(t, r.PendingHelpers)
	assert.NotNil(t, r.PendingHelpers)
	assert.Equal(t, "", r.Helper)
	assert.Equal(t, testNow, r.CreatedAt)
	assert.Equal(t, []float64{34.78, 32.08}, r.Geo.Coordinates)
	assertInvariants(t, r)
}

func TestCreateValidation(t *testing.T) {
	amount := -1.0
	cases := []struct {
		name string
		in   NewRequest
		err  error
	}{
		{"no location", NewRequest{ProblemType: schema.ProblemTowing, Description: "x"}, ErrMissingLocation},
		{"bad latitude", NewRequest{Location: &schema.Location{Latitude: 91}, ProblemType: schema.ProblemTowing, Description: "x"}, ErrInvalidLocation},
		{"unknown problem", NewRequest{Location: &schema.Location{}, ProblemType: "alien_abduction", Description: "x"}, ErrInvalidProblemType},
		{"blank description", NewRequest{Location: &schema.Location{}, ProblemType: schema.ProblemTowing, Description: "   "}, ErrEmptyDescription},
		{"negative amount", NewRequest{Location: &schema.Location{}, ProblemType: schema.ProblemTowing, Description: "x", OfferedAmount: &amount}, ErrNegativeAmount},
		{"empty photo", NewRequest{Location: &schema.Location{}, ProblemType: schema.ProblemTowing, Description: "x", Photos: []string{""}}, ErrInvalidPhoto},
	}

	for _, c := range cases {
		r, err := Create("requester", c.in, testNow)
		assert.Nil(t, r, c.name)
		assert.Equal(t, c.err, err, c.name)
		assert.Equal(t, KindValidation, KindOf(err), c.name)
	}
}

func TestProposeHelpRejectsDuplicate(t *testing.T) {
	r := newPendingRequest(t)

	assert.NoError(t, ProposeHelp(r, "helper-h", "on my way", nil, testNow))
	assert.Len(t, r.PendingHelpers, 1)
	assert.Equal(t, "helper-h", r.PendingHelpers[0].Helper)
	assert.Equal(t, "on my way", r.PendingHelpers[0].Message)

	err := ProposeHelp(r, "helper-h", "again", nil, testNow.Add(time.Minute))
	assert.Equal(t, ErrDuplicateProposal, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Len(t, r.PendingHelpers, 1)
	assertInvariants(t, r)
}

func TestProposeHelpOnOwnRequest(t *testing.T) {
	r := newPendingRequest(t)
	assert.Equal(t, ErrOwnRequest, ProposeHelp(r, "requester", "", nil, testNow))
	assert.Empty(t, r.PendingHelpers)
}

func TestConfirmHelper(t *testing.T) {
	r := newPendingRequest(t)
	assert.NoError(t, ProposeHelp(r, "helper-h", "", nil, testNow))
	assert.NoError(t, ProposeHelp(r, "helper-g", "", nil, testNow))

	assert.Equal(t, ErrNotRequester, ConfirmHelper(r, "helper-h", "helper-h", testNow))
	assert.Equal(t, ErrHelperNotPending, ConfirmHelper(r, "requester", "helper-x", testNow))

	confirmedAt := testNow.Add(time.Minute)
	assert.NoError(t, ConfirmHelper(r, "requester", "helper-h", confirmedAt))
	assert.Equal(t, schema.RequestAssigned, r.Status)
	assert.Equal(t, "helper-h", r.Helper)
	assert.Equal(t, confirmedAt, *r.AssignedAt)
	// the pending list is not pruned on confirmation
	assert.Len(t, r.PendingHelpers, 2)
	assertInvariants(t, r)

	err := ConfirmHelper(r, "requester", "helper-g", testNow)
	assert.Equal(t, ErrRequestNotPending, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "helper-h", r.Helper)
}

func TestRejectHelper(t *testing.T) {
	r := newPendingRequest(t)
	assert.NoError(t, ProposeHelp(r, "helper-h", "", nil, testNow))
	assert.NoError(t, ProposeHelp(r, "helper-g", "", nil, testNow))

	assert.Equal(t, ErrNotRequester, RejectHelper(r, "helper-g", "helper-g"))
	assert.NoError(t, RejectHelper(r, "requester", "helper-g"))
	assert.Len(t, r.PendingHelpers, 1)
	assert.Equal(t, "helper-h", r.PendingHelpers[0].Helper)
	assert.Equal(t, schema.RequestPending, r.Status)

	err := RejectHelper(r, "requester", "helper-g")
	assert.Equal(t, ErrHelperNotPending, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func assignedRequest(t *testing.T) *schema.Request {
	r := newPendingRequest(t)
	assert.NoError(t, ProposeHelp(r, "helper-h", "", nil, testNow))
	assert.NoError(t, ConfirmHelper(r, "requester", "helper-h", testNow))
	return r
}

func TestCompletionHandshake(t *testing.T) {
	r := assignedRequest(t)

	assert.Equal(t, ErrNotAssignedHelper, MarkHelperCompleted(r, "requester", testNow))

	doneAt := testNow.Add(time.Hour)
	assert.NoError(t, MarkHelperCompleted(r, "helper-h", doneAt))
	assert.Equal(t, schema.RequestInProgress, r.Status)
	assert.Equal(t, doneAt, *r.HelperCompletedAt)

	// marking twice keeps the first timestamp
	assert.Equal(t, ErrUnchanged, MarkHelperCompleted(r, "helper-h", doneAt.Add(time.Minute)))
	assert.Equal(t, doneAt, *r.HelperCompletedAt)

	assert.Equal(t, ErrNotRequester, ConfirmCompletion(r, "helper-h", testNow))

	confirmedAt := doneAt.Add(time.Minute)
	assert.NoError(t, ConfirmCompletion(r, "requester", confirmedAt))
	assert.Equal(t, schema.RequestCompleted, r.Status)
	assert.Equal(t, confirmedAt, *r.CompletedAt)
	assert.Equal(t, confirmedAt, *r.RequesterConfirmedAt)
	assertInvariants(t, r)

	assert.Equal(t, ErrAlreadyCompleted, ConfirmCompletion(r, "requester", testNow))
}

func TestConfirmCompletionBeforeHelper(t *testing.T) {
	pending := newPendingRequest(t)
	assigned := assignedRequest(t)
	started := assignedRequest(t)
	assert.NoError(t, UpdateStatus(started, "helper-h", schema.RequestInProgress, testNow))

	for _, r := range []*schema.Request{pending, assigned, started} {
		status := r.Status
		err := ConfirmCompletion(r, "requester", testNow)
		assert.Equal(t, ErrHelperMustCompleteFirst, err)
		assert.Equal(t, KindConflict, KindOf(err))
		assert.Equal(t, status, r.Status)
		assert.Nil(t, r.RequesterConfirmedAt)
	}
}

func TestUpdateStatus(t *testing.T) {
	r := assignedRequest(t)

	assert.Equal(t, ErrInvalidStatus, UpdateStatus(r, "requester", "flying", testNow))
	assert.Equal(t, ErrNotParticipant, UpdateStatus(r, "stranger", schema.RequestInProgress, testNow))

	err := UpdateStatus(r, "requester", schema.RequestPending, testNow)
	assert.Equal(t, KindConflict, KindOf(err))

	assert.NoError(t, UpdateStatus(r, "helper-h", schema.RequestInProgress, testNow))
	assert.Equal(t, schema.RequestInProgress, r.Status)

	// same status again changes nothing
	assert.Equal(t, ErrUnchanged, UpdateStatus(r, "helper-h", schema.RequestInProgress, testNow))
	assert.Equal(t, schema.RequestInProgress, r.Status)

	err = UpdateStatus(r, "requester", schema.RequestCancelled, testNow)
	assert.Equal(t, KindConflict, KindOf(err))

	assert.Equal(t, ErrHelperMustCompleteFirst, UpdateStatus(r, "requester", schema.RequestCompleted, testNow))
	assert.NoError(t, MarkHelperCompleted(r, "helper-h", testNow))
	assert.NoError(t, UpdateStatus(r, "requester", schema.RequestCompleted, testNow))
	assert.Equal(t, schema.RequestCompleted, r.Status)
	assert.NotNil(t, r.CompletedAt)
	assertInvariants(t, r)

	assert.Equal(t, ErrRequestClosed, UpdateStatus(r, "requester", schema.RequestCancelled, testNow))
}

func TestCancelAssignedRequestReleasesHelper(t *testing.T) {
	r := assignedRequest(t)

	assert.Equal(t, ErrNotRequester, UpdateStatus(r, "helper-h", schema.RequestCancelled, testNow))
	assert.NoError(t, UpdateStatus(r, "requester", schema.RequestCancelled, testNow))
	assert.Equal(t, schema.RequestCancelled, r.Status)
	assert.Equal(t, "", r.Helper)
	assert.NotNil(t, r.CancelledAt)
	assertInvariants(t, r)
}

func TestCheckDelete(t *testing.T) {
	pending := newPendingRequest(t)
	assert.Equal(t, ErrNotRequester, CheckDelete(pending, "helper-h"))
	assert.NoError(t, CheckDelete(pending, "requester"))

	assigned := assignedRequest(t)
	assert.Equal(t, ErrDeleteActiveRequest, CheckDelete(assigned, "requester"))

	assert.NoError(t, UpdateStatus(assigned, "requester", schema.RequestCancelled, testNow))
	assert.NoError(t, CheckDelete(assigned, "requester"))
}

func TestRecordPayment(t *testing.T) {
	r := assignedRequest(t)
	assert.Equal(t, ErrNotCompleted, RecordPayment(r, "requester", "cash", testNow))

	assert.NoError(t, MarkHelperCompleted(r, "helper-h", testNow))
	assert.NoError(t, ConfirmCompletion(r, "requester", testNow))

	assert.Equal(t, ErrMissingPayment, RecordPayment(r, "requester", " ", testNow))
	assert.Equal(t, ErrNotRequester, RecordPayment(r, "helper-h", "cash", testNow))
	assert.NoError(t, RecordPayment(r, "requester", "cash", testNow))
	assert.True(t, r.Payment.IsPaid)
	assert.Equal(t, "cash", r.Payment.PaymentMethod)
	assert.Equal(t, ErrAlreadyPaid, RecordPayment(r, "requester", "card", testNow))
}

func TestSetEstimatedArrival(t *testing.T) {
	r := assignedRequest(t)
	eta := testNow.Add(20 * time.Minute)

	assert.Equal(t, ErrNotAssignedHelper, SetEstimatedArrival(r, "requester", eta))
	assert.NoError(t, SetEstimatedArrival(r, "helper-h", eta))
	assert.Equal(t, eta, *r.EstimatedArrival)
}

func TestCheckInvariantsDetectsViolations(t *testing.T) {
	r := newPendingRequest(t)
	r.Helper = "helper-h"
	assert.Error(t, CheckInvariants(r))

	r = newPendingRequest(t)
	r.PendingHelpers = []schema.PendingHelper{{Helper: "a"}, {Helper: "a"}}
	assert.Error(t, CheckInvariants(r))

	r = assignedRequest(t)
	r.RequesterConfirmedAt = &testNow
	assert.Error(t, CheckInvariants(r))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindInfrastructure, KindOf(assert.AnError))
}
