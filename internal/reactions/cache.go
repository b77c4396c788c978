package reactions

import (
	"sync"

	"github.com/basaaj/basaaj-go/internal/models"
)

// Cache holds the last server-confirmed reaction state per deal for the
// lifetime of the session. Once an entry exists it takes precedence over
// reaction data freshly fetched with a listing, because the listing endpoint
// does not reliably reflect very recent same-session toggles.
//
// The interface is injected rather than a shared table so tests get a fresh
// instance and an eviction policy can be added without touching call sites.
type Cache interface {
	Get(dealID string) (models.ReactionState, bool)
	Set(dealID string, state models.ReactionState)
	Has(dealID string) bool
}

// SessionCache is the in-memory Cache used in production. Entries live until
// the process exits; unbounded growth over one session is accepted.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]models.ReactionState
}

func NewSessionCache() *SessionCache {
	return &SessionCache{entries: make(map[string]models.ReactionState)}
}

func (c *SessionCache) Get(dealID string) (models.ReactionState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.entries[dealID]
	return st, ok
}

func (c *SessionCache) Set(dealID string, state models.ReactionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dealID] = state
}

func (c *SessionCache) Has(dealID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[dealID]
	return ok
}

// Len reports the number of cached deals.
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
