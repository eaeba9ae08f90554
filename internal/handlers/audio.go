package handlers

import (
	"errors"
	"net/http"

	"github.com/Vipulgupta23/Virtual-Mic/internal/media"
	"github.com/Vipulgupta23/Virtual-Mic/internal/services"

	"github.com/gin-gonic/gin"
)

type AudioHandler struct {
	questionService *services.QuestionService
}

func NewAudioHandler(questionService *services.QuestionService) *AudioHandler {
	return &AudioHandler{questionService: questionService}
}

// ServeAudio godoc
// @Summary      Stream an audio clip
// @Description  Serves the stored clip; supports byte-range requests for progressive playback
// @Tags         audio
// @Produce      octet-stream
// @Param        filename path string true "Audio filename"
// @Success      200
// @Success      206
// @Failure      404 {object} ErrorResponse
// @Router       /audio/{filename} [get]
func (h *AudioHandler) ServeAudio(c *gin.Context) {
	path, err := h.questionService.AudioPath(c.Param("filename"))
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, media.ErrBadFilename) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	// http.ServeFile underneath, which handles Range headers.
	c.File(path)
}
