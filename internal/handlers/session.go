package handlers

import (
	"errors"
	"net/http"

	"github.com/Vipulgupta23/Virtual-Mic/internal/services"
	"github.com/Vipulgupta23/Virtual-Mic/internal/store"
	"github.com/Vipulgupta23/Virtual-Mic/internal/ws"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
	hub            *ws.Hub
}

func NewSessionHandler(sessionService *services.SessionService, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, hub: hub}
}

type CreateSessionRequest struct {
	HostName string `json:"host_name" binding:"required" example:"Dr. A"`
	IsActive *bool  `json:"is_active" example:"true"`
}

type UpdateSessionRequest struct {
	HostName *string `json:"host_name" example:"Dr. A"`
	IsActive *bool   `json:"is_active" example:"false"`
}

// CreateSession godoc
// @Summary      Create a Q&A session
// @Description  Start a new seminar session, generates a shareable session id
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body CreateSessionRequest true "Session data"
// @Success      201 {object} Session
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	session, err := h.sessionService.CreateSession(req.HostName, isActive)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListSessions godoc
// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Success      200 {array} Session
// @Router       /api/v1/sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionService.ListSessions())
}

// GetSession godoc
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} Session
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

// UpdateSession godoc
// @Summary      Update a session
// @Description  Partial update: rename the host or end the session by setting is_active false
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body UpdateSessionRequest true "Fields to change"
// @Success      200 {object} Session
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id} [put]
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.UpdateSession(c.Param("id"), store.SessionUpdate{
		HostName: req.HostName,
		IsActive: req.IsActive,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, store.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(session.ID, ws.WSMessage{
		Type: ws.EventSessionUpdated,
		Data: session,
	})

	c.JSON(http.StatusOK, session)
}

// GetJoinInfo godoc
// @Summary      Get join link for a session
// @Description  Public endpoint participants hit after scanning the session QR code
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} services.JoinInfo
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/join [get]
func (h *SessionHandler) GetJoinInfo(c *gin.Context) {
	info, err := h.sessionService.JoinInfo(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}
