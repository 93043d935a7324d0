package captions

import (
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	data := []byte(`var ytInitialPlayerResponse = {"a":{"b":"} {"},"c":[1,2]};var next = 1;`)

	got := extractJSONObject(data)
	want := `{"a":{"b":"} {"},"c":[1,2]}`

	if string(got) != want {
		t.Fatalf("extracted JSON mismatch: got %q want %q", got, want)
	}
}

func TestExtractJSONObjectHandlesEscapes(t *testing.T) {
	data := []byte(`prefix {"text":"quote \" and brace \\"} suffix`)

	got := extractJSONObject(data)
	want := `{"text":"quote \" and brace \\"}`

	if string(got) != want {
		t.Fatalf("extracted JSON mismatch: got %q want %q", got, want)
	}
}

func TestExtractJSONObjectUnbalanced(t *testing.T) {
	if got := extractJSONObject([]byte(`{"open": true`)); got != nil {
		t.Fatalf("expected nil for unbalanced JSON, got %q", got)
	}

	if got := extractJSONObject([]byte(`no object here`)); got != nil {
		t.Fatalf("expected nil when no object present, got %q", got)
	}
}

func TestPickCaptionTrackPrefersManualPreferredLanguage(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "https://example.com/asr-en", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "https://example.com/manual-de", LanguageCode: "de"},
		{BaseURL: "https://example.com/manual-en", LanguageCode: "en"},
	}

	track, ok := pickCaptionTrack(tracks, []string{"en"})
	if !ok {
		t.Fatalf("expected a usable track")
	}

	if track.BaseURL != "https://example.com/manual-en" {
		t.Fatalf("expected manual English track, got %q", track.BaseURL)
	}
}

func TestPickCaptionTrackFallsBackToASR(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "https://example.com/manual-de", LanguageCode: "de"},
		{BaseURL: "https://example.com/asr-en", LanguageCode: "en", Kind: "asr"},
	}

	track, ok := pickCaptionTrack(tracks, []string{"en"})
	if !ok {
		t.Fatalf("expected a usable track")
	}

	if track.BaseURL != "https://example.com/asr-en" {
		t.Fatalf("expected auto-generated English track, got %q", track.BaseURL)
	}
}

func TestPickCaptionTrackSkipsPoTokenTracks(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "https://example.com/manual-en?x=1&exp=xpe", LanguageCode: "en"},
		{BaseURL: "https://example.com/manual-de", LanguageCode: "de"},
	}

	track, ok := pickCaptionTrack(tracks, []string{"en"})
	if !ok {
		t.Fatalf("expected a usable track")
	}

	if track.BaseURL != "https://example.com/manual-de" {
		t.Fatalf("expected PoToken track to be skipped, got %q", track.BaseURL)
	}
}

func TestPickCaptionTrackAllRequirePoToken(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "https://example.com/a&exp=xpe", LanguageCode: "en"},
	}

	if _, ok := pickCaptionTrack(tracks, []string{"en"}); ok {
		t.Fatalf("expected no usable track")
	}
}

func TestJoinTimedText(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="1.5">Hello world</text>
  <text start="1.5" dur="2.0">it&amp;#39;s a test</text>
  <text start="3.5" dur="1.0">   </text>
  <text start="4.5" dur="1.0">of captions</text>
</transcript>`)

	got, err := joinTimedText(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Hello world it's a test of captions"
	if got != want {
		t.Fatalf("joined captions mismatch: got %q want %q", got, want)
	}
}

func TestJoinTimedTextInvalidXML(t *testing.T) {
	if _, err := joinTimedText([]byte("<transcript><text>")); err == nil {
		t.Fatalf("expected error for invalid XML")
	}
}
