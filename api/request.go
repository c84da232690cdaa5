package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/coordinator"
	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/schema"
)

// objectIDParam reads an ObjectID path parameter and aborts the request when it is malformed
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// locationParams keeps an omitted coordinate apart from a zero one
type locationParams struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
	Address   string   `json:"address"`
}

// location returns nil for an absent location and ErrMissingLocation when a
// coordinate is left out
func (p *locationParams) location() (*schema.Location, error) {
	if p == nil {
		return nil, nil
	}
	if p.Latitude == nil || p.Longitude == nil {
		return nil, lifecycle.ErrMissingLocation
	}
	return &schema.Location{
		Latitude:  *p.Latitude,
		Longitude: *p.Longitude,
		Address:   p.Address,
	}, nil
}

func (s *Server) createRequest(c *gin.Context) {
	var params struct {
		Location      *locationParams    `json:"location"`
		ProblemType   schema.ProblemType `json:"problemType"`
		Description   string             `json:"description"`
		Photos        []string           `json:"photos"`
		OfferedAmount *float64           `json:"offeredAmount"`
		Currency      string             `json:"currency"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	loc, err := params.Location.location()
	if err != nil {
		abortWithError(c, err)
		return
	}

	r, err := s.coordinator.CreateRequest(c.GetString("requester"), lifecycle.NewRequest{
		Location:      loc,
		ProblemType:   params.ProblemType,
		Description:   params.Description,
		Photos:        params.Photos,
		OfferedAmount: params.OfferedAmount,
		Currency:      params.Currency,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": r})
}

// nearbyRequests lists pending requests around the given coordinates, or
// around the last known location of the account
func (s *Server) nearbyRequests(c *gin.Context) {
	var params struct {
		Latitude  *float64 `form:"lat"`
		Longitude *float64 `form:"lng"`
		Distance  int      `form:"distance"`
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	var loc schema.Location
	switch {
	case params.Latitude != nil && params.Longitude != nil:
		loc = schema.Location{Latitude: *params.Latitude, Longitude: *params.Longitude}
	case params.Latitude == nil && params.Longitude == nil:
		account, ok := c.MustGet("account").(*schema.Account)
		if !ok || account.State.LastLocation == nil {
			abortWithEncoding(c, http.StatusBadRequest, errorUnknownAccountLocation)
			return
		}
		loc = *account.State.LastLocation
	default:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	requests, err := s.coordinator.NearbyRequests(loc, params.Distance)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": requests})
}

func (s *Server) listMyRequests(c *gin.Context) {
	requests, err := s.coordinator.ListMine(c.GetString("requester"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": requests})
}

func (s *Server) getRequest(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	r, err := s.coordinator.GetRequest(c.GetString("requester"), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": r})
}

func (s *Server) deleteRequest(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.coordinator.DeleteRequest(c.GetString("requester"), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

func (s *Server) proposeHelp(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var params struct {
		Message  string          `json:"message"`
		Location *locationParams `json:"location"`
	}

	// the body is optional
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
			return
		}
	}

	loc, err := params.Location.location()
	if err != nil {
		abortWithError(c, err)
		return
	}

	r, err := s.coordinator.ProposeHelp(c.GetString("requester"), id, params.Message, loc)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": r})
}

type helperParams struct {
	HelperID string `json:"helperId"`
}

func (s *Server) confirmHelper(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var params helperParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	r, err := s.coordinator.ConfirmHelper(c.GetString("requester"), id, params.HelperID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": r})
}

func (s *Server) rejectHelper(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var params helperParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	r, err := s.coordinator.RejectHelper(c.GetString("requester"), id, params.HelperID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": r})
}

// updateRequestStatus serves the generic status change and both steps of the
// completion handshake, told apart by the body flags
func (s *Server) updateRequestStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var params struct {
		Status             *schema.RequestStatus `json:"status"`
		HelperCompleted    bool                  `json:"helperCompleted"`
		RequesterConfirmed bool                  `json:"requesterConfirmed"`
		EstimatedArrival   *time.Time            `json:"estimatedArrival"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	r, err := s.coordinator.UpdateStatus(c.GetString("requester"), id, coordinator.StatusUpdate{
		Status:             params.Status,
		HelperCompleted:    params.HelperCompleted,
		RequesterConfirmed: params.RequesterConfirmed,
		EstimatedArrival:   params.EstimatedArrival,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": r})
}

func (s *Server) recordPayment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var params struct {
		PaymentMethod string `json:"paymentMethod"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	r, err := s.coordinator.RecordPayment(c.GetString("requester"), id, params.PaymentMethod)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": r})
}
