package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listConversations(c *gin.Context) {
	conversations, err := s.coordinator.ListConversations(c.GetString("requester"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": conversations})
}

func (s *Server) getConversation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	conversation, err := s.coordinator.GetConversation(c.GetString("requester"), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": conversation})
}

// getOrCreateConversation returns the conversation of a request, opening it if needed
func (s *Server) getOrCreateConversation(c *gin.Context) {
	requestID, ok := objectIDParam(c, "requestId")
	if !ok {
		return
	}

	conversation, err := s.coordinator.GetOrCreateConversation(c.GetString("requester"), requestID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": conversation})
}

// sendMessage is the REST fallback of the socket `send_message` command
func (s *Server) sendMessage(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var params struct {
		Content string `json:"content"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	message, err := s.coordinator.SendMessage(c.GetString("requester"), id, params.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": message})
}

func (s *Server) markConversationRead(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	count, err := s.coordinator.MarkRead(c.GetString("requester"), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"marked": count}})
}

func (s *Server) archiveConversation(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.coordinator.ArchiveConversation(c.GetString("requester"), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

func (s *Server) unreadCount(c *gin.Context) {
	count, err := s.coordinator.UnreadCount(c.GetString("requester"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"count": count}})
}
