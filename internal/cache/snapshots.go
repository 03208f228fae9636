// Package cache holds the opt-in TTL cache of per-account analytics
// snapshots used by the HTTP server. Snapshots are immutable once stored;
// filtering and re-aggregation always happen on the caller's side, so a
// cached snapshot is safe to share between requests.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/odenysenko/postlens/internal/model"
)

// Snapshots caches loaded account analytics for a fixed TTL. A nil *Snapshots
// is valid and caches nothing, which keeps the disabled path branch-free for
// callers.
type Snapshots struct {
	cache *gocache.Cache
}

// New creates a snapshot cache, or nil when ttl is not positive.
func New(ttl time.Duration) *Snapshots {
	if ttl <= 0 {
		return nil
	}
	return &Snapshots{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached snapshot for an account, if present.
func (s *Snapshots) Get(account string) (*model.AccountAnalytics, bool) {
	if s == nil {
		return nil, false
	}
	if val, found := s.cache.Get(account); found {
		return val.(*model.AccountAnalytics), true
	}
	return nil, false
}

// Set stores a snapshot under the account id with the default TTL.
func (s *Snapshots) Set(account string, snapshot *model.AccountAnalytics) {
	if s == nil {
		return
	}
	s.cache.Set(account, snapshot, gocache.DefaultExpiration)
}

// Invalidate drops the cached snapshot for an account.
func (s *Snapshots) Invalidate(account string) {
	if s == nil {
		return
	}
	s.cache.Delete(account)
}
