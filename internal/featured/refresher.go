package featured

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tubereport/internal/captions"
	"tubereport/internal/models"

	"github.com/mmcdole/gofeed"
)

const (
	recentUploadWindow   = 30 * 24 * time.Hour
	maxUploadsPerChannel = 3
)

// Catalog persists featured videos for the picker.
type Catalog interface {
	UpsertFeaturedVideo(ctx context.Context, video models.FeaturedVideo) error
}

// Refresher keeps the featured-video catalog fresh by polling YouTube
// channel RSS feeds and upserting recent uploads.
type Refresher struct {
	catalog Catalog
	feeds   []string
	parser  *gofeed.Parser
	log     *slog.Logger
}

func NewRefresher(catalog Catalog, feeds []string, log *slog.Logger) *Refresher {
	return &Refresher{
		catalog: catalog,
		feeds:   feeds,
		parser:  gofeed.NewParser(),
		log:     log,
	}
}

// Refresh polls every configured channel feed and upserts its recent
// uploads. Feeds are fetched concurrently; catalog writes stay sequential.
func (r *Refresher) Refresh(ctx context.Context) error {
	if len(r.feeds) == 0 {
		return nil
	}

	var wg sync.WaitGroup

	videoCh := make(chan models.FeaturedVideo, len(r.feeds)*maxUploadsPerChannel)
	errCh := make(chan error, len(r.feeds))

	for _, feedURL := range r.feeds {
		wg.Add(1)

		go func(copiedFeedURL string) {
			defer wg.Done()

			videos, err := r.parseChannelFeed(ctx, copiedFeedURL)
			if err != nil {
				errCh <- fmt.Errorf("parse channel feed: %w", err)
				return
			}

			for _, video := range videos {
				videoCh <- video
			}
		}(feedURL)
	}

	go func() {
		wg.Wait()
		close(videoCh)
		close(errCh)
	}()

	var errs []error
	for video := range videoCh {
		if err := r.catalog.UpsertFeaturedVideo(ctx, video); err != nil {
			errs = append(errs, fmt.Errorf("upsert featured video: %w", err))
		}
	}

	for err := range errCh {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (r *Refresher) parseChannelFeed(
	ctx context.Context,
	feedURL string,
) ([]models.FeaturedVideo, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}

	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed (URL = %s): %w", feedURL, err)
	}

	channelURL := strings.TrimSpace(parsed.Link)
	if channelURL == "" {
		channelURL = feedURL
	}

	cutoffTime := time.Now().Add(-recentUploadWindow)

	var videos []models.FeaturedVideo
	for _, item := range parsed.Items {
		if len(videos) >= maxUploadsPerChannel {
			break
		}

		video, ok := r.parseFeedItem(ctx, item, feedURL, channelURL, cutoffTime)
		if !ok {
			continue
		}

		videos = append(videos, video)
	}

	return videos, nil
}

func (r *Refresher) parseFeedItem(
	ctx context.Context,
	item *gofeed.Item,
	feedURL string,
	channelURL string,
	cutoffTime time.Time,
) (models.FeaturedVideo, bool) {
	publishedTime := time.Now()

	if item.PublishedParsed != nil {
		publishedTime = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedTime = *item.UpdatedParsed
	}

	if publishedTime.Before(cutoffTime) {
		return models.FeaturedVideo{}, false
	}

	videoID, err := captions.ParseVideoID(strings.TrimSpace(item.Link))
	if err != nil {
		r.log.WarnContext(ctx, "Skipping feed item without a video link",
			"error", err,
			"feedURL", feedURL,
			"itemTitle", strings.TrimSpace(item.Title))

		return models.FeaturedVideo{}, false
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = captions.WatchURL(videoID)
	}

	return models.FeaturedVideo{
		URL:         captions.WatchURL(videoID),
		Title:       title,
		ChannelURL:  channelURL,
		PublishedAt: publishedTime.UTC(),
	}, true
}
