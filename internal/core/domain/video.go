package domain

import "time"

// Video is the projection of a video document used by watch history. The
// video catalogue itself is owned by another service; this service only
// reads the fields it renders.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     float64   `json:"duration_seconds"`
	OwnerID      string    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
}
