package database

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"tubereport/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"), slog.Default())
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	return db
}

func TestMigrationsSeedFeaturedVideos(t *testing.T) {
	db := newTestDatabase(t)

	videos, err := db.ListFeaturedVideos(context.Background())
	if err != nil {
		t.Fatalf("failed to list featured videos: %v", err)
	}

	if len(videos) != 3 {
		t.Fatalf("expected 3 seeded videos, got %d: %v", len(videos), videos)
	}

	urls := make(map[string]bool, len(videos))
	for _, v := range videos {
		urls[v.URL] = true
	}

	if !urls["https://youtu.be/zjkBMFhNj_g"] {
		t.Errorf("seeded video is missing: %v", urls)
	}
}

func TestUpsertFeaturedVideo(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	publishedAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	video := models.FeaturedVideo{
		URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Title:       "First title",
		ChannelURL:  "https://www.youtube.com/channel/UCtest",
		PublishedAt: publishedAt,
	}

	if err := db.UpsertFeaturedVideo(ctx, video); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	video.Title = "Updated title"
	if err := db.UpsertFeaturedVideo(ctx, video); err != nil {
		t.Fatalf("failed to upsert again: %v", err)
	}

	videos, err := db.ListFeaturedVideos(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}

	var found *models.FeaturedVideo
	for i := range videos {
		if videos[i].URL == video.URL {
			found = &videos[i]
			break
		}
	}

	if found == nil {
		t.Fatalf("upserted video is missing from %v", videos)
	}

	if found.Title != "Updated title" {
		t.Errorf("expected the updated title, got %q", found.Title)
	}

	if !found.PublishedAt.Equal(publishedAt) {
		t.Errorf("unexpected published time: %s", found.PublishedAt)
	}
}

func TestUpsertFeaturedVideoEmptyURL(t *testing.T) {
	db := newTestDatabase(t)

	err := db.UpsertFeaturedVideo(context.Background(), models.FeaturedVideo{URL: "   "})
	if err == nil {
		t.Fatal("expected an error for an empty URL")
	}
}

func TestRemoveFeaturedVideo(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	videos, err := db.ListFeaturedVideos(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}

	if len(videos) == 0 {
		t.Fatal("expected seeded videos")
	}

	if err = db.RemoveFeaturedVideo(ctx, videos[0].ID); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}

	remaining, err := db.ListFeaturedVideos(ctx)
	if err != nil {
		t.Fatalf("failed to list after removal: %v", err)
	}

	if len(remaining) != len(videos)-1 {
		t.Errorf("expected %d videos after removal, got %d", len(videos)-1, len(remaining))
	}
}
