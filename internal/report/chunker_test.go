package report_test

import (
	"fmt"
	"strings"
	"testing"

	"tubereport/internal/report"
)

func makeWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return words
}

func TestChunkWordsCountAndReassembly(t *testing.T) {
	cases := []struct {
		wordCount int
		limit     int
	}{
		{wordCount: 1, limit: 4500},
		{wordCount: 3000, limit: 4500},
		{wordCount: 4500, limit: 4500},
		{wordCount: 9000, limit: 4500},
		{wordCount: 9001, limit: 4500},
		{wordCount: 10500, limit: 1000},
	}

	for _, tc := range cases {
		words := makeWords(tc.wordCount)
		chunks := report.ChunkWords(words, tc.limit)

		wantCount := (tc.wordCount + tc.limit - 1) / tc.limit
		if len(chunks) != wantCount {
			t.Fatalf("words=%d limit=%d: expected %d chunks, got %d",
				tc.wordCount, tc.limit, wantCount, len(chunks))
		}

		if got := strings.Join(chunks, " "); got != strings.Join(words, " ") {
			t.Fatalf("words=%d limit=%d: reassembled chunks do not reproduce transcript",
				tc.wordCount, tc.limit)
		}

		for i, chunk := range chunks {
			size := len(strings.Fields(chunk))

			if i < len(chunks)-1 {
				if size != tc.limit {
					t.Fatalf("words=%d limit=%d: chunk %d has %d words, expected %d",
						tc.wordCount, tc.limit, i+1, size, tc.limit)
				}
				continue
			}

			wantLast := tc.wordCount % tc.limit
			if wantLast == 0 {
				wantLast = tc.limit
			}
			if size != wantLast {
				t.Fatalf("words=%d limit=%d: last chunk has %d words, expected %d",
					tc.wordCount, tc.limit, size, wantLast)
			}
		}
	}
}

func TestChunkWordsEmptyTranscript(t *testing.T) {
	if chunks := report.ChunkWords(nil, 4500); len(chunks) != 0 {
		t.Fatalf("expected zero chunks for empty transcript, got %d", len(chunks))
	}
}

func TestChunkWordsLimitLargerThanTranscript(t *testing.T) {
	words := makeWords(42)
	chunks := report.ChunkWords(words, 4500)

	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk, got %d", len(chunks))
	}

	if chunks[0] != strings.Join(words, " ") {
		t.Fatalf("expected single chunk to contain whole transcript")
	}
}

func TestChunkWordsExactMultiple(t *testing.T) {
	chunks := report.ChunkWords(makeWords(9000), 4500)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if got := len(strings.Fields(chunk)); got != 4500 {
			t.Fatalf("chunk %d has %d words, expected 4500", i+1, got)
		}
	}
}

func TestClampChunkLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{in: 0, want: report.DefaultChunkLimit},
		{in: -1, want: report.DefaultChunkLimit},
		{in: 500, want: report.MinChunkLimit},
		{in: 1000, want: 1000},
		{in: 4500, want: 4500},
		{in: 10000, want: 10000},
		{in: 20000, want: report.MaxChunkLimit},
	}

	for _, tc := range cases {
		if got := report.ClampChunkLimit(tc.in); got != tc.want {
			t.Fatalf("ClampChunkLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
