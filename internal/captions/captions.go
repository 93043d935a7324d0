package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tubereport/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	clientTimeout = 20 * time.Second

	maxWatchPageBytes = 6 * 1024 * 1024
	maxPlayerBytes    = 3 * 1024 * 1024
	maxTimedTextBytes = 512 * 1024
)

// ErrNoCaptions signals that the video exists but has no fetchable captions.
// The caller must not start the summarization pipeline in that case.
var ErrNoCaptions = errors.New("no captions available")

// Client retrieves video metadata and caption text from YouTube.
// Primary:  watch page scrape -> ytInitialPlayerResponse -> timedtext XML
// Fallback: ANDROID Innertube /player -> caption tracks -> timedtext XML
type Client struct {
	httpClient *http.Client
	langs      []string
	log        *slog.Logger
}

func NewClient(langs []string, log *slog.Logger) *Client {
	if len(langs) == 0 {
		langs = []string{"en"}
	}

	return &Client{
		httpClient: &http.Client{Timeout: clientTimeout},
		langs:      langs,
		log:        log,
	}
}

// Fetch resolves a video reference to its metadata and full caption text.
// A video without captions returns ErrNoCaptions alongside the metadata,
// so the caller can still name the video in its fallback message.
func (c *Client) Fetch(
	ctx context.Context,
	ref string,
) (*models.VideoInfo, string, error) {
	videoID, err := ParseVideoID(ref)
	if err != nil {
		return nil, "", fmt.Errorf("parse video reference: %w", err)
	}

	body, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch watch page: %w", err)
	}

	info := c.parseWatchMetadata(ctx, videoID, body)

	text, err := c.captionsFromWatchPage(ctx, body)
	if err != nil {
		c.log.WarnContext(ctx, "Watch page captions failed so trying player endpoint",
			"error", err,
			"videoID", videoID)

		text, err = c.captionsFromPlayer(ctx, videoID)
	}
	if err != nil {
		return info, "", fmt.Errorf("%w (videoID = %s): %s", ErrNoCaptions, videoID, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return info, "", fmt.Errorf("%w (videoID = %s)", ErrNoCaptions, videoID)
	}

	return info, text, nil
}

func (c *Client) fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, WatchURL(videoID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer c.closeBody(ctx, resp, "fetchWatchPage", videoID)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// parseWatchMetadata pulls og: tags from the watch page. Missing fields
// degrade to an info record holding only the ID and canonical URL.
func (c *Client) parseWatchMetadata(
	ctx context.Context,
	videoID string,
	body []byte,
) *models.VideoInfo {
	info := &models.VideoInfo{
		ID:  videoID,
		URL: WatchURL(videoID),
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		c.log.WarnContext(ctx, "Failed to parse watch page HTML",
			"error", err,
			"videoID", videoID)

		return info
	}

	if content, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		info.Title = strings.TrimSpace(content)
	}

	if content, ok := doc.Find("meta[property='og:description']").Attr("content"); ok {
		info.Description = strings.TrimSpace(content)
	}

	if content, ok := doc.Find("link[itemprop='name']").Attr("content"); ok {
		info.Author = strings.TrimSpace(content)
	}

	return info
}

func (c *Client) captionsFromWatchPage(ctx context.Context, body []byte) (string, error) {
	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return "", errors.New("ytInitialPlayerResponse not found in watch page")
	}

	jsonData := extractJSONObject(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return "", errors.New("extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return "", fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}

	return c.captionsFromPlayerResponse(ctx, &player)
}

// captionsFromPlayer uses the ANDROID Innertube /player endpoint, which
// serves caption tracks to non-browser clients.
func (c *Client) captionsFromPlayer(ctx context.Context, videoID string) (string, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		ytPlayerURL+"?prettyPrint=false",
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer c.closeBody(ctx, resp, "captionsFromPlayer", videoID)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	var player playerResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxPlayerBytes)).Decode(&player); err != nil {
		return "", fmt.Errorf("decode player response: %w", err)
	}

	return c.captionsFromPlayerResponse(ctx, &player)
}

func (c *Client) captionsFromPlayerResponse(
	ctx context.Context,
	player *playerResponse,
) (string, error) {
	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return "", fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}

		return "", errors.New("no captions in player response")
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", errors.New("no caption tracks")
	}

	track, ok := pickCaptionTrack(tracks, c.langs)
	if !ok {
		return "", errors.New("all caption tracks require PoToken")
	}

	return c.fetchTimedText(ctx, track.BaseURL)
}

// fetchTimedText downloads a timedtext XML caption track and joins its
// lines into one caption string.
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer c.closeBody(ctx, resp, "fetchTimedText", "")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return joinTimedText(body)
}

func joinTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var b strings.Builder
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}

	return b.String(), nil
}

func (c *Client) closeBody(
	ctx context.Context,
	resp *http.Response,
	operation string,
	videoID string,
) {
	if err := resp.Body.Close(); err != nil {
		c.log.ErrorContext(ctx, "Failed to close response body",
			"error", err,
			"operation", operation,
			"videoID", videoID)
	}
}
