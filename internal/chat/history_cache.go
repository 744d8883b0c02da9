package chat

import (
	"time"

	"github.com/lance116/period-tracker/internal/models"
	"github.com/maypok86/otter/v2"
)

// HistoryCache keeps each user's recent chat messages in memory so the
// history endpoint and prompt composition skip the database on repeat
// reads. Entries expire on write TTL and are evicted explicitly on logout
// and after every new message.
type HistoryCache struct {
	cache *otter.Cache[uint, []models.ChatMessage]
}

func NewHistoryCache(ttl time.Duration) *HistoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &HistoryCache{
		cache: otter.Must(&otter.Options[uint, []models.ChatMessage]{
			MaximumSize:      10_000,
			InitialCapacity:  256,
			ExpiryCalculator: otter.ExpiryWriting[uint, []models.ChatMessage](ttl),
		}),
	}
}

func (history *HistoryCache) Get(userID uint) ([]models.ChatMessage, bool) {
	return history.cache.GetIfPresent(userID)
}

func (history *HistoryCache) Put(userID uint, messages []models.ChatMessage) {
	history.cache.Set(userID, messages)
}

// Evict drops the user's entry; called on logout and after mutations so
// stale history never outlives the session that produced it.
func (history *HistoryCache) Evict(userID uint) {
	history.cache.Invalidate(userID)
}
