package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tubereport/internal/models"
)

func (d *Database) UpsertFeaturedVideo(
	ctx context.Context,
	video models.FeaturedVideo,
) error {
	videoURL := strings.TrimSpace(video.URL)
	if videoURL == "" {
		return errors.New("video URL is empty")
	}

	title := strings.TrimSpace(video.Title)
	if title == "" {
		title = videoURL
	}

	query := `insert into featured_videos (url, title, channel_url, published_at)
	values (?, ?, ?, ?)
	on conflict (url) do update
	set title = excluded.title,
		channel_url = excluded.channel_url,
		published_at = excluded.published_at`

	var publishedAt any
	if !video.PublishedAt.IsZero() {
		publishedAt = video.PublishedAt.UTC()
	}

	_, err := d.db.ExecContext(
		ctx,
		query,
		videoURL,
		title,
		strings.TrimSpace(video.ChannelURL),
		publishedAt,
	)

	return err
}

func (d *Database) RemoveFeaturedVideo(ctx context.Context, videoID int64) error {
	query := "delete from featured_videos where id = ?"

	_, err := d.db.ExecContext(ctx, query, videoID)

	return err
}

func (d *Database) ListFeaturedVideos(ctx context.Context) ([]models.FeaturedVideo, error) {
	query := `select id, url, title, channel_url, published_at
	from featured_videos
	order by published_at desc, id asc`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"operation", "ListFeaturedVideos")
		}
	}()

	var videos []models.FeaturedVideo
	for rows.Next() {
		var (
			v           models.FeaturedVideo
			publishedAt sql.NullTime
		)
		if err = rows.Scan(&v.ID, &v.URL, &v.Title, &v.ChannelURL, &publishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		v.URL = strings.TrimSpace(v.URL)
		v.Title = strings.TrimSpace(v.Title)
		v.ChannelURL = strings.TrimSpace(v.ChannelURL)

		if publishedAt.Valid {
			v.PublishedAt = publishedAt.Time.UTC()
		} else {
			v.PublishedAt = time.Time{}
		}

		videos = append(videos, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return videos, nil
}
