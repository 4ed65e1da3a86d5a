package domain

import "time"

// EntityInsights aggregates everything known about one entity.
type EntityInsights struct {
	Entity Entity

	// TotalMentions is the mention count summed across videos.
	TotalMentions int

	// VideoCount is how many distinct videos mention the entity.
	VideoCount int

	// ChannelCount is how many distinct channels mention the entity.
	ChannelCount int

	// AverageSentiment is the mean 0-100 sentiment score over mentions.
	AverageSentiment float64

	// FirstSeen is the earliest recorded mention.
	FirstSeen time.Time

	// TopChannels lists the channels mentioning the entity most.
	TopChannels []ChannelMentionCount
}

// ChannelMentionCount pairs a channel with its mention volume.
type ChannelMentionCount struct {
	ChannelID   string
	ChannelName string
	Mentions    int
}

// ChannelInsights aggregates a channel's analysed output.
type ChannelInsights struct {
	Channel Channel

	// VideosIngested is how many of the channel's videos are stored.
	VideosIngested int

	// TopBrands, TopProducts and TopSponsors are the channel's most
	// mentioned entities, ordered by mention count.
	TopBrands   []EntityMentionCount
	TopProducts []EntityMentionCount
	TopSponsors []EntityMentionCount

	// SentimentBreakdown counts videos per overall sentiment.
	SentimentBreakdown map[Sentiment]int
}

// EntityMentionCount pairs an entity with its mention volume.
type EntityMentionCount struct {
	Entity   Entity
	Mentions int
}

// DashboardKind identifies a precomputed dashboard payload.
type DashboardKind string

// Available dashboard kinds.
const (
	DashboardBrand   DashboardKind = "brand"
	DashboardSponsor DashboardKind = "sponsor"
	DashboardChannel DashboardKind = "channel"
	DashboardProduct DashboardKind = "product"
)

// DashboardEntry is a cached, precomputed dashboard payload keyed
// "kind:name" (e.g. "brand:Maybelline").
type DashboardEntry struct {
	Key       string
	Kind      DashboardKind
	Payload   []byte
	UpdatedAt time.Time
}

// DashboardKey builds the cache key for a kind and display name.
func DashboardKey(kind DashboardKind, name string) string {
	return string(kind) + ":" + name
}
