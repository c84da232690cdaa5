package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/roadside-api/schema"
	"github.com/bitmark-inc/roadside-api/store"
)

// accountRegister is the API for register a new account
func (s *Server) accountRegister(c *gin.Context) {
	logger := log.WithField("api", "accountRegister")
	accountID := c.GetString("requester")

	var params struct {
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		logger.WithError(err).Error(errorInvalidParameters.Message)
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	a, err := s.store.CreateAccount(accountID, params.DisplayName, params.Role)
	switch err {
	case nil:
	case store.ErrAccountTaken:
		abortWithEncoding(c, http.StatusForbidden, errorAccountTaken)
		return
	case store.ErrInvalidRole:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidRole)
		return
	default:
		logger.WithError(err).Error("create account")
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": a,
	})
}

// accountDetail is the API to query an account
func (s *Server) accountDetail(c *gin.Context) {
	a := c.MustGet("account")
	account, ok := a.(*schema.Account)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": account,
	})
}

// accountUpdateLocation stores the location the client reports explicitly
func (s *Server) accountUpdateLocation(c *gin.Context) {
	accountID := c.GetString("requester")

	var params locationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.Error(err)
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest)
		return
	}

	loc, err := params.location()
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if !loc.Valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	if err := s.store.UpdateAccountGeoPosition(accountID, loc.Latitude, loc.Longitude); err != nil {
		c.Error(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
