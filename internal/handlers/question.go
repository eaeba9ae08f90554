package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vipulgupta23/Virtual-Mic/internal/media"
	"github.com/Vipulgupta23/Virtual-Mic/internal/services"
	"github.com/Vipulgupta23/Virtual-Mic/internal/store"
	"github.com/Vipulgupta23/Virtual-Mic/internal/ws"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	hub             *ws.Hub
}

func NewQuestionHandler(questionService *services.QuestionService, hub *ws.Hub) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, hub: hub}
}

type UpdateQuestionRequest struct {
	ParticipantName *string `json:"participant_name" example:"Priya"`
	Status          *string `json:"status" example:"playing"`
	Order           *int    `json:"order" example:"0"`
}

type ReorderRequest struct {
	Questions []store.OrderUpdate `json:"questions" binding:"required"`
}

// SubmitQuestion godoc
// @Summary      Submit an audio question
// @Description  Multipart upload of a recorded clip plus metadata; appended to the end of the session queue
// @Tags         questions
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        audio formData file true "Audio clip (max 10 MB)"
// @Param        participant_name formData string false "Participant name, defaults to Anonymous"
// @Param        duration formData int false "Clip duration in seconds"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/questions [post]
func (h *QuestionHandler) SubmitQuestion(c *gin.Context) {
	sessionID := c.Param("id")

	audio, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio file is required"})
		return
	}

	duration := 0
	if raw := c.PostForm("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid duration"})
			return
		}
	}

	question, err := h.questionService.SubmitQuestion(sessionID, c.PostForm("participant_name"), duration, audio)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, media.ErrTooLarge):
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(sessionID, ws.WSMessage{
		Type: ws.EventQuestionSubmitted,
		Data: question,
	})

	c.JSON(http.StatusCreated, question)
}

// ListQueue godoc
// @Summary      List the session queue
// @Description  Questions for the session ordered for playback
// @Tags         questions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {array} Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/questions [get]
func (h *QuestionHandler) ListQueue(c *gin.Context) {
	questions, err := h.questionService.ListQueue(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary      Get a question
// @Tags         questions
// @Produce      json
// @Param        id path int true "Question ID"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	question, err := h.questionService.GetQuestion(questionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, question)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Description  Partial update: change status while playing, rename the participant, or set order directly (0 promotes to the front)
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        id path int true "Question ID"
// @Param        request body UpdateQuestionRequest true "Fields to change"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(questionID, store.QuestionUpdate{
		ParticipantName: req.ParticipantName,
		Status:          req.Status,
		Order:           req.Order,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, store.ErrQuestionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(question.SessionID, ws.WSMessage{
		Type: ws.EventQuestionUpdated,
		Data: question,
	})

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Description  Removes the question and its audio clip; deleting an already-removed id succeeds
// @Tags         questions
// @Produce      json
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	// Look up the session before the record disappears so the broadcast
	// still knows which queue changed.
	sessionID := ""
	if question, err := h.questionService.GetQuestion(questionID); err == nil {
		sessionID = question.SessionID
	}

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if sessionID != "" {
		h.hub.Broadcast(sessionID, ws.WSMessage{
			Type: ws.EventQuestionDeleted,
			Data: gin.H{"id": questionID},
		})
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

// ReorderQueue godoc
// @Summary      Reorder the session queue
// @Description  Bulk order overwrite after drag-to-reorder; entries for other sessions are ignored
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body ReorderRequest true "New order values"
// @Success      200 {array} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/questions/order [put]
func (h *QuestionHandler) ReorderQueue(c *gin.Context) {
	sessionID := c.Param("id")

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.questionService.Reorder(sessionID, req.Questions); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	questions, err := h.questionService.ListQueue(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(sessionID, ws.WSMessage{
		Type: ws.EventQueueReordered,
		Data: questions,
	})

	c.JSON(http.StatusOK, questions)
}
