package api

import (
	"errors"
	"fmt"
	"net/http"

	"nofat/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler holds the chat service dependency.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// --- Request/Response Structs ---

// SendMessageRequest mirrors the client contract: save defaults to true so
// ordinary chat is archived; feature calls pass save=false plus a system
// override.
type SendMessageRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
	Save     *bool  `json:"save"`
	System   string `json:"system"`
}

// --- Handler Methods ---

// SendMessage relays one message to the assistant.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	save := true
	if req.Save != nil {
		save = *req.Save
	}

	reply, err := h.chatService.SendMessage(c.Request.Context(), userID, service.SendMessageInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Save:     save,
		System:   req.System,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	c.JSON(http.StatusOK, reply)
}

// History returns the user's chat history, oldest first.
func (h *ChatHandler) History(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	messages, err := h.chatService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load history")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// ClearHistory wipes the user's chat history.
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.chatService.ClearHistory(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	c.Status(http.StatusNoContent)
}

// WeeklyAdvice returns the one-line encouragement for the home-page card.
func (h *ChatHandler) WeeklyAdvice(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	advice := h.chatService.WeeklyAdvice(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"advice": advice})
}
