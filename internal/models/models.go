package models

import "time"

// VideoInfo is the metadata record returned by the caption source.
type VideoInfo struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
}

type FeaturedVideo struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ChannelURL  string    `json:"channel_url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}
