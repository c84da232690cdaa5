package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/store"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: store.ErrAccountTaken.Error(),
		1101: "account not found",
		1102: store.ErrInvalidRole.Error(),
		1104: "unknown account location",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorAccountTaken           = errorJSON(1100)
	errorAccountNotFound        = errorJSON(1101)
	errorInvalidRole            = errorJSON(1102)
	errorUnknownAccountLocation = errorJSON(1104)
)

// codes of request and conversation errors, one per kind
var kindCodes = map[lifecycle.Kind]int64{
	lifecycle.KindValidation:    1200,
	lifecycle.KindAuthorization: 1300,
	lifecycle.KindNotFound:      1400,
	lifecycle.KindConflict:      1500,
}

var kindStatus = map[lifecycle.Kind]int{
	lifecycle.KindValidation:    http.StatusBadRequest,
	lifecycle.KindAuthorization: http.StatusForbidden,
	lifecycle.KindNotFound:      http.StatusNotFound,
	lifecycle.KindConflict:      http.StatusConflict,
}

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// abortWithError answers with the status of the error kind. Infrastructure
// errors are reported and never shown to the caller.
func abortWithError(c *gin.Context, err error) {
	kind := lifecycle.KindOf(err)

	status, ok := kindStatus[kind]
	if !ok {
		log.WithError(err).WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.FullPath(),
			"requester": c.GetString("requester"),
		}).Error("request failed")

		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}

		resp := errorInternalServer
		resp.Kind = string(lifecycle.KindInfrastructure)
		abortWithEncoding(c, http.StatusInternalServerError, resp, err)
		return
	}

	abortWithEncoding(c, status, ErrorResponse{
		Code:    kindCodes[kind],
		Kind:    string(kind),
		Message: err.Error(),
	})
}
