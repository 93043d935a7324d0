package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tubereport/internal/captions"
	"tubereport/internal/models"
	"tubereport/internal/report"
	"tubereport/internal/summarizer"

	"github.com/gin-gonic/gin"
)

// CouldNotParseMessage is shown to the user whenever a video yields no
// usable captions, whatever the underlying cause was.
const CouldNotParseMessage = "Sorry, could not parse the video. " +
	"Please try again or use a different video."

// SSE event names emitted by the report endpoint, beyond the pipeline's
// own stages.
const (
	eventVideo    = "video"
	eventCaptions = "captions"
	eventError    = "error"
)

// CaptionSource resolves a video reference into its metadata and the
// plain-text captions.
type CaptionSource interface {
	Fetch(ctx context.Context, ref string) (*models.VideoInfo, string, error)
}

// ReportGenerator runs the summarization pipeline for one video.
type ReportGenerator interface {
	Generate(ctx context.Context, req report.Request, observe report.Observer) (string, error)
}

// Catalog manages the featured-video picker shown on the page.
type Catalog interface {
	ListFeaturedVideos(ctx context.Context) ([]models.FeaturedVideo, error)
	UpsertFeaturedVideo(ctx context.Context, video models.FeaturedVideo) error
	RemoveFeaturedVideo(ctx context.Context, videoID int64) error
}

type Handler struct {
	source       CaptionSource
	generator    ReportGenerator
	catalog      Catalog
	defaultModel string
	log          *slog.Logger
}

func NewHandler(
	source CaptionSource,
	generator ReportGenerator,
	catalog Catalog,
	defaultModel string,
	log *slog.Logger,
) *Handler {
	return &Handler{
		source:       source,
		generator:    generator,
		catalog:      catalog,
		defaultModel: defaultModel,
		log:          log,
	}
}

func (h *Handler) IndexPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (h *Handler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"models":        summarizer.SupportedModels(),
		"default_model": h.defaultModel,
		"chunk_limit": gin.H{
			"min":     report.MinChunkLimit,
			"max":     report.MaxChunkLimit,
			"default": report.DefaultChunkLimit,
		},
	})
}

func (h *Handler) ListFeatured(c *gin.Context) {
	videos, err := h.catalog.ListFeaturedVideos(c.Request.Context())
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to list featured videos",
			"error", err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list featured videos"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

type addFeaturedRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (h *Handler) AddFeatured(c *gin.Context) {
	var req addFeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	videoID, err := captions.ParseVideoID(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a video link"})
		return
	}

	video := models.FeaturedVideo{
		URL:   captions.WatchURL(videoID),
		Title: strings.TrimSpace(req.Title),
	}

	if err = h.catalog.UpsertFeaturedVideo(c.Request.Context(), video); err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to upsert featured video",
			"error", err,
			"videoURL", video.URL)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save featured video"})

		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": video.URL})
}

func (h *Handler) RemoveFeatured(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video ID"})
		return
	}

	if err = h.catalog.RemoveFeaturedVideo(c.Request.Context(), videoID); err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to remove featured video",
			"error", err,
			"videoID", videoID)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove featured video"})

		return
	}

	c.Status(http.StatusNoContent)
}

type createReportRequest struct {
	URL        string `json:"url"`
	Model      string `json:"model"`
	ChunkLimit int    `json:"chunk_limit"`
}

// CreateReport streams the pipeline's progress as server-sent events:
// video metadata, a captions word count, then the generator's own chunk
// and report events. Failures surface as a terminal error event rather
// than an HTTP error, since headers are already on the wire.
func (h *Handler) CreateReport(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = h.defaultModel
	}

	if !summarizer.IsSupportedModel(model) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported model: " + model})
		return
	}

	ctx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	video, captionsText, err := h.source.Fetch(ctx, req.URL)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to fetch captions",
			"error", err,
			"videoRef", strings.TrimSpace(req.URL))

		h.writeEvent(c, eventError, gin.H{"message": CouldNotParseMessage})

		return
	}

	h.writeEvent(c, eventVideo, video)
	h.writeEvent(c, eventCaptions, gin.H{
		"word_count": len(strings.Fields(captionsText)),
	})

	_, err = h.generator.Generate(
		ctx,
		report.Request{
			Video:      *video,
			Captions:   captionsText,
			Model:      model,
			ChunkLimit: report.ClampChunkLimit(req.ChunkLimit),
		},
		func(event report.Event) {
			h.writeEvent(c, event.Stage, event)
		},
	)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to generate report",
			"error", err,
			"videoID", video.ID,
			"model", model)

		h.writeEvent(c, eventError, gin.H{"message": CouldNotParseMessage})
	}
}

func (h *Handler) writeEvent(c *gin.Context, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to marshal SSE payload",
			"error", err,
			"event", event)

		return
	}

	if _, err = c.Writer.WriteString("event: " + event + "\ndata: " + string(data) + "\n\n"); err != nil {
		if !errors.Is(err, context.Canceled) {
			h.log.WarnContext(c.Request.Context(), "Failed to write SSE event",
				"error", err,
				"event", event)
		}

		return
	}

	c.Writer.Flush()
}
