package captions

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"mvdan.cc/xurls/v2"
)

const youtubeWatchURLPrefix = "https://www.youtube.com/watch?v="

var videoIDRe = regexp.MustCompile(`^[\w-]{11}$`)

// WatchURL returns the canonical watch page URL for a video ID.
func WatchURL(videoID string) string {
	return youtubeWatchURLPrefix + videoID
}

// ParseVideoID extracts an 11-character YouTube video ID from free-form
// input: a bare ID, a youtu.be short link, or a youtube.com watch, shorts,
// embed, or live URL anywhere in the text.
func ParseVideoID(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("video reference is empty")
	}

	if videoIDRe.MatchString(text) {
		return text, nil
	}

	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return "", fmt.Errorf("create regexp: %w", err)
	}

	raw := httpsURLRe.FindString(text)
	if raw == "" {
		raw = text
	}

	return videoIDFromURL(raw)
}

func videoIDFromURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case host == "youtu.be":
		if len(parts) == 0 || parts[0] == "" {
			return "", fmt.Errorf("no video ID in URL %q", raw)
		}
		return validateVideoID(parts[0], raw)
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			return validateVideoID(v, raw)
		}

		if len(parts) >= 2 && slices.Contains(
			[]string{"shorts", "embed", "live", "v"},
			parts[0],
		) {
			return validateVideoID(parts[1], raw)
		}

		return "", fmt.Errorf("no video ID in URL %q", raw)
	default:
		return "", fmt.Errorf("unsupported video URL %q", raw)
	}
}

func validateVideoID(id string, raw string) (string, error) {
	id = strings.TrimSpace(id)
	if !videoIDRe.MatchString(id) {
		return "", fmt.Errorf("invalid video ID %q in URL %q", id, raw)
	}

	return id, nil
}
