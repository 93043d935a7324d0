package report

import "strings"

// Chunk limit bounds, in words per chunk.
const (
	MinChunkLimit     = 1000
	MaxChunkLimit     = 10000
	DefaultChunkLimit = 4500
)

// ClampChunkLimit forces limit into the supported range. A non-positive
// limit falls back to the default.
func ClampChunkLimit(limit int) int {
	if limit <= 0 {
		return DefaultChunkLimit
	}
	if limit < MinChunkLimit {
		return MinChunkLimit
	}
	if limit > MaxChunkLimit {
		return MaxChunkLimit
	}
	return limit
}

// ChunkWords partitions words into contiguous groups of at most limit words
// each, re-joined with single spaces and preserving source order. The final
// group holds the remainder and may be shorter. Empty input or a
// non-positive limit yields no chunks.
//
// TODO: chunk by estimated tokens instead of words; a chunk near the word
// limit can still exceed a model's context window.
func ChunkWords(words []string, limit int) []string {
	if len(words) == 0 || limit <= 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+limit-1)/limit)
	for start := 0; start < len(words); start += limit {
		end := min(start+limit, len(words))
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	return chunks
}
