package collector

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/linkstash/linkstash-backend/internal/models"
)

// Collection is the controller for the link overview: the full link list,
// the active search query and a loading flag. The list is reconciled by
// wholesale replacement from the remote store; callers are expected to
// call Refresh once after construction and again after every mutation.
type Collection struct {
	mu    sync.Mutex
	store Store
	log   *slog.Logger

	links   []models.Link
	query   string
	loading bool
}

// NewCollection creates a Collection. It starts empty; call Refresh to
// load the initial list.
func NewCollection(store Store, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{
		store: store,
		log:   logger,
	}
}

// Refresh replaces the link list with the remote state. On failure the
// previous list is kept. The loading flag is cleared on every path.
func (c *Collection) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	links, err := c.store.ListLinks(ctx)
	if err != nil {
		c.log.Error("failed to refresh links", slog.String("error", err.Error()))
		return err
	}

	// A canceled caller must not receive a stale state write
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.links = links
	c.mu.Unlock()

	return nil
}

// SetQuery updates the search query. Pure state change, no remote call.
func (c *Collection) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// Query returns the active search query.
func (c *Collection) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Loading reports whether a refresh is in flight.
func (c *Collection) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Links returns the full list in remote order, newest first.
func (c *Collection) Links() []models.Link {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Link, len(c.links))
	copy(out, c.links)
	return out
}

// Filtered returns the links whose title contains the query,
// case-insensitively. An empty query returns everything. Order is
// preserved from the underlying list.
func (c *Collection) Filtered() []models.Link {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query == "" {
		out := make([]models.Link, len(c.links))
		copy(out, c.links)
		return out
	}

	q := strings.ToLower(c.query)
	out := make([]models.Link, 0, len(c.links))
	for _, link := range c.links {
		if strings.Contains(strings.ToLower(link.Title), q) {
			out = append(out, link)
		}
	}
	return out
}

// CreateLink validates the input, saves a new link and refreshes the list
// so the new entry appears at the head.
func (c *Collection) CreateLink(ctx context.Context, title, url string) (*models.Link, error) {
	if err := ValidateLinkInput(title, url); err != nil {
		return nil, err
	}

	link, err := c.store.CreateLink(ctx, title, url, "")
	if err != nil {
		c.log.Error("failed to create link", slog.String("error", err.Error()))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Refresh(ctx); err != nil {
		// The link exists remotely; the next refresh picks it up
		return link, nil
	}
	return link, nil
}
