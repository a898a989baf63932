package folio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/unknownriver/folio/cms"
)

// PostSource lists posts from the CMS. *cms.Client satisfies it.
type PostSource interface {
	ListPosts(ctx context.Context) ([]cms.Post, error)
}

// Logger is the subset of echo.Logger the cache reports through.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// PostList is a cached listing. Stale is set when it was served after a
// failed refresh.
type PostList struct {
	Posts     []cms.Post
	FetchedAt time.Time
	Stale     bool
}

// PostCache keeps the CMS listing in memory for a revalidation window.
// Concurrent refreshes share one upstream request, and every good listing
// is written to the snapshot store so a later CMS outage can be bridged.
type PostCache struct {
	mu      sync.RWMutex
	list    PostList
	loaded  bool
	checked time.Time
	ttl     time.Duration

	source PostSource
	store  *Store
	log    Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewPostCache creates a PostCache. store may be nil to disable snapshots.
func NewPostCache(src PostSource, store *Store, ttl time.Duration, log Logger) *PostCache {
	return &PostCache{source: src, store: store, ttl: ttl, log: log, now: time.Now}
}

func (c *PostCache) valid() bool {
	return c.loaded && c.now().Sub(c.checked) < c.ttl
}

// Invalidate clears the freshness window so the next read refetches.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.checked = time.Time{}
	c.mu.Unlock()
}

// List returns the post listing, refreshing it when the window has passed.
func (c *PostCache) List(ctx context.Context) (PostList, error) {
	c.mu.RLock()
	if c.valid() {
		list := c.list
		c.mu.RUnlock()
		return list, nil
	}
	c.mu.RUnlock()

	// The shared refresh must outlive any single caller's cancellation.
	ctx = context.WithoutCancel(ctx)
	v, err, _ := c.group.Do("posts", func() (interface{}, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return PostList{}, err
	}
	return v.(PostList), nil
}

func (c *PostCache) refresh(ctx context.Context) (PostList, error) {
	c.mu.RLock()
	if c.valid() {
		list := c.list
		c.mu.RUnlock()
		return list, nil
	}
	c.mu.RUnlock()

	now := c.now()
	posts, err := c.source.ListPosts(ctx)
	if err == nil {
		if posts == nil {
			posts = []cms.Post{}
		}
		if c.store != nil {
			if serr := c.store.SaveSnapshot(ctx, posts, now); serr != nil {
				c.warnf("save post snapshot: %v", serr)
			}
		}
		list := PostList{Posts: posts, FetchedAt: now}
		c.set(list, now)
		return list, nil
	}

	c.mu.RLock()
	prev, loaded := c.list, c.loaded
	c.mu.RUnlock()
	if loaded {
		c.warnf("refresh posts failed, serving listing from %s: %v", prev.FetchedAt.Format(time.RFC3339), err)
		prev.Stale = true
		c.set(prev, now)
		return prev, nil
	}

	if c.store != nil {
		snap, fetchedAt, serr := c.store.LoadSnapshot(ctx)
		switch {
		case serr == nil:
			c.warnf("refresh posts failed, serving snapshot from %s: %v", fetchedAt.Format(time.RFC3339), err)
			list := PostList{Posts: snap, FetchedAt: fetchedAt, Stale: true}
			c.set(list, now)
			return list, nil
		case !errors.Is(serr, ErrNoSnapshot):
			c.warnf("load post snapshot: %v", serr)
		}
	}
	return PostList{}, fmt.Errorf("folio: list posts: %w", err)
}

func (c *PostCache) set(list PostList, checked time.Time) {
	c.mu.Lock()
	c.list = list
	c.loaded = true
	c.checked = checked
	c.mu.Unlock()
}

func (c *PostCache) warnf(format string, args ...interface{}) {
	if c.log != nil {
		c.log.Warnf(format, args...)
	}
}
