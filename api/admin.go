package api

import (
	"net/http"

	"github.com/RichardKnop/machinery/v1/tasks"
	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/roadside-api/background"
)

// adminExpireRequests is an internal only api to trigger the task to
// cancel expired pending requests
func (s *Server) adminExpireRequests(c *gin.Context) {
	if _, err := s.background.SendTask(&tasks.Signature{
		Name: background.TaskExpirePendingRequests,
	}); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
