package httpapi

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/live-summary/internal/export"
	"github.com/nguyentantai21042004/live-summary/internal/hub"
	"github.com/nguyentantai21042004/live-summary/internal/logger"
	"github.com/nguyentantai21042004/live-summary/internal/orchestrator"
	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

type Handler struct {
	orch   orchestrator.Orchestrator
	hub    hub.Hub
	logger logger.Logger
}

func New(orch orchestrator.Orchestrator, h hub.Hub, log logger.Logger) *Handler {
	return &Handler{orch: orch, hub: h, logger: log}
}

// Engine builds a gin engine with every route registered.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger), corsMiddleware())
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.POST("/transcribe", h.transcribe)
	r.GET("/transcript", h.getTranscript)
	r.POST("/clear", h.clear)
	r.GET("/export", h.exportNotes)
	r.GET("/ws", h.websocket)
}

type transcribeRequest struct {
	SpeakerName string `json:"speaker_name" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

func (h *Handler) health(c *gin.Context) {
	success(c, gin.H{
		"status":  "ok",
		"service": "live-summary",
		"clients": h.hub.Clients(),
	})
}

func (h *Handler) transcribe(c *gin.Context) {
	var req transcribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, "Missing required fields: speaker_name, text")
		return
	}

	u, err := h.orch.Ingest(c.Request.Context(), req.SpeakerName, req.Text)
	if err != nil {
		if errors.Is(err, transcript.ErrValidation) {
			failure(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(c.Request.Context(), "Error in transcribe endpoint: %v", err)
		failure(c, http.StatusInternalServerError, "failed to record utterance")
		return
	}

	success(c, gin.H{
		"entry_id": u.ID,
		"entry":    u,
	})
}

func (h *Handler) getTranscript(c *gin.Context) {
	v := h.orch.State()

	utterances := v.Transcript.Utterances
	if utterances == nil {
		utterances = []transcript.Utterance{}
	}
	success(c, gin.H{
		"transcript":    utterances,
		"revision":      v.Transcript.Revision,
		"summary":       v.Summary.Text,
		"summary_state": v.Summary.State,
		"summary_at":    v.Summary.UpdatedAt,
	})
}

func (h *Handler) clear(c *gin.Context) {
	h.orch.Clear(c.Request.Context())
	success(c, nil)
}

func (h *Handler) exportNotes(c *gin.Context) {
	ctx := c.Request.Context()
	v := h.orch.State()

	f, err := os.CreateTemp("", "notes-*.docx")
	if err != nil {
		h.logger.Error(ctx, "Create export file: %v", err)
		failure(c, http.StatusInternalServerError, "export failed")
		return
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	notes := export.Notes{
		Title:       "Meeting notes",
		GeneratedAt: time.Now(),
		Summary:     v.Summary.Text,
		Utterances:  v.Transcript.Utterances,
	}
	if err := export.WriteNotes(path, notes); err != nil {
		h.logger.Error(ctx, "Export notes: %v", err)
		failure(c, http.StatusInternalServerError, "export failed")
		return
	}

	c.FileAttachment(path, "meeting-notes.docx")
}

func (h *Handler) websocket(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
