package domain

import "time"

// PlatformYouTube is the default platform for tracked channels.
const PlatformYouTube = "YouTube"

// Channel is a tracked creator channel.
type Channel struct {
	// ID is the platform channel identifier (e.g. "UC...").
	ID string

	// Title is the display name of the channel.
	Title string

	// Description is the channel's self-description.
	Description string

	// SubscriberCount is the subscriber total at last ingest.
	SubscriberCount int64

	// VideoCount is the published video total at last ingest.
	VideoCount int64

	// ViewCount is the lifetime view total at last ingest.
	ViewCount int64

	// CreationDate is when the channel was created on the platform.
	CreationDate string

	// Category is the channel's content category, when known.
	Category string

	// ThumbnailURL and AvatarURL point at channel art.
	ThumbnailURL string
	AvatarURL    string

	// Platform identifies the hosting platform. Defaults to YouTube.
	Platform string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the channel has the minimum required fields.
func (c Channel) Validate() error {
	if c.ID == "" {
		return ErrInvalidInput
	}
	return nil
}
