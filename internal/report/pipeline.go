package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tubereport/internal/models"
	"tubereport/internal/summarizer"
)

// ErrEmptyTranscript signals that the captions hold no words, so no chunk
// is produced and no completion request is made.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Progress event stages, in emission order.
const (
	StageChunks       = "chunks"
	StageChunkSummary = "chunk_summary"
	StageReport       = "report"
)

// Event describes one step of a report generation run.
type Event struct {
	Stage      string `json:"stage"`
	ChunkIndex int    `json:"chunk_index,omitempty"`
	ChunkCount int    `json:"chunk_count,omitempty"`
	Text       string `json:"text,omitempty"`
}

// Observer receives progress events during a run. Events for chunk i always
// precede events for chunk i+1, and the report event is always last.
type Observer func(Event)

// Request holds everything one report generation run needs. Runs share no
// state: each invocation starts from scratch.
type Request struct {
	Video      models.VideoInfo
	Captions   string
	Model      string
	ChunkLimit int
}

// Generator turns a captioned video into a structured markdown report by
// summarizing the transcript chunk by chunk and aggregating the results
// with one final completion.
type Generator struct {
	completer summarizer.Completer
	log       *slog.Logger
	now       func() time.Time
}

func NewGenerator(completer summarizer.Completer, log *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		log:       log,
		now:       time.Now,
	}
}

// Generate runs the pipeline: chunk, summarize each chunk, aggregate.
// With a single chunk the per-chunk stage is skipped and one direct
// completion covers the full captions. Completion failures degrade to
// inline placeholder text and never abort the run; the only error is an
// empty transcript.
func (g *Generator) Generate(
	ctx context.Context,
	req Request,
	observe Observer,
) (string, error) {
	words := strings.Fields(req.Captions)
	if len(words) == 0 {
		return "", ErrEmptyTranscript
	}

	limit := req.ChunkLimit
	if limit <= 0 {
		limit = DefaultChunkLimit
	}

	chunks := ChunkWords(words, limit)
	g.emit(observe, Event{Stage: StageChunks, ChunkCount: len(chunks)})
	g.log.InfoContext(ctx, "Transcript is chunked",
		"videoID", req.Video.ID,
		"wordCount", len(words),
		"chunkLimit", limit,
		"chunkCount", len(chunks))

	if len(chunks) == 1 {
		return g.generateDirect(ctx, req, observe)
	}

	summaries := make([]string, len(chunks))
	for i, chunk := range chunks {
		summaries[i] = g.summarizeChunk(ctx, req, chunk, i+1, len(chunks))
		g.emit(observe, Event{
			Stage:      StageChunkSummary,
			ChunkIndex: i + 1,
			ChunkCount: len(chunks),
			Text:       summaries[i],
		})
	}

	final, err := g.completer.Complete(
		ctx,
		req.Model,
		aggregatePrompt(req.Video, summaries, g.now()),
	)
	if err != nil {
		g.log.ErrorContext(ctx, "Failed to generate final summary",
			"error", err,
			"videoID", req.Video.ID,
			"model", req.Model,
			"chunkCount", len(chunks))

		final = fmt.Sprintf("Error during final summary generation: %v", err)
	}

	final = strings.TrimSpace(final)
	g.emit(observe, Event{Stage: StageReport, ChunkCount: len(chunks), Text: final})

	return final, nil
}

func (g *Generator) generateDirect(
	ctx context.Context,
	req Request,
	observe Observer,
) (string, error) {
	text, err := g.completer.Complete(
		ctx,
		req.Model,
		directPrompt(req.Video, req.Captions, g.now()),
	)
	if err != nil {
		g.log.ErrorContext(ctx, "Failed to generate summary",
			"error", err,
			"videoID", req.Video.ID,
			"model", req.Model)

		text = fmt.Sprintf("Error during summary generation: %v", err)
	}

	text = strings.TrimSpace(text)
	g.emit(observe, Event{Stage: StageReport, ChunkCount: 1, Text: text})

	return text, nil
}

// summarizeChunk issues a single completion for one chunk. A failure is
// recovered into placeholder text so the remaining chunks still run.
func (g *Generator) summarizeChunk(
	ctx context.Context,
	req Request,
	chunk string,
	index int,
	count int,
) string {
	summary, err := g.completer.Complete(ctx, req.Model, chunkPrompt(req.Video, chunk))
	if err != nil {
		g.log.ErrorContext(ctx, "Failed to summarize chunk",
			"error", err,
			"videoID", req.Video.ID,
			"model", req.Model,
			"chunkIndex", index,
			"chunkCount", count)

		return fmt.Sprintf("Error during API call: %v", err)
	}

	return strings.TrimSpace(summary)
}

func (g *Generator) emit(observe Observer, event Event) {
	if observe == nil {
		return
	}

	observe(event)
}
