package notify

import (
	"context"
	"time"

	"github.com/colonyops/dashbell/internal/core/logging"
	"github.com/rs/zerolog"
)

// Snapshot is a consistent view of every derived value at one instant.
type Snapshot struct {
	Notifications []Notification
	Display       []Notification
	UnreadCount   int
	Badge         string
	ShowBadge     bool
}

// Center joins a Catalog with a ReadState and exposes the values the bell
// panel renders along with the actions it can take.
type Center struct {
	catalog *Catalog
	state   *ReadState
	limit   int
	now     func() time.Time
	log     zerolog.Logger
}

// Option configures a Center.
type Option func(*Center)

// WithDisplayLimit sets how many notifications DisplayNotifications returns.
func WithDisplayLimit(n int) Option {
	return func(c *Center) { c.limit = n }
}

// WithClock sets the clock used for response timestamps and relative times.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// WithLogger sets the logger for read-state changes.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Center) { c.log = l }
}

// NewCenter returns a Center over catalog whose read IDs live in storage.
// Call Init before reading derived values.
func NewCenter(catalog *Catalog, storage ReadIDStore, opts ...Option) *Center {
	c := &Center{
		catalog: catalog,
		state:   NewReadState(storage),
		limit:   DefaultDisplayLimit,
		now:     time.Now,
		log:     logging.Component("notify"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init loads the persisted read IDs.
func (c *Center) Init(ctx context.Context) error {
	if err := c.state.Initialize(ctx); err != nil {
		return err
	}
	c.log.Debug().Ctx(ctx).Int("catalog", c.catalog.Len()).Int("read", c.state.Len()).Msg("notification center initialized")
	return nil
}

// Catalog returns the underlying catalog.
func (c *Center) Catalog() *Catalog { return c.catalog }

// Now returns the current time from the configured clock.
func (c *Center) Now() time.Time { return c.now() }

// Notifications returns the catalog with read state applied.
func (c *Center) Notifications() []Notification {
	return MergeReadState(c.catalog.Entries(), c.state.Set().Has)
}

// UnreadCount returns the number of unread notifications.
func (c *Center) UnreadCount() int {
	return UnreadCount(c.Notifications())
}

// BadgeDisplay returns the bell badge text and whether to show it.
func (c *Center) BadgeDisplay() (string, bool) {
	return BadgeDisplay(c.UnreadCount())
}

// DisplayNotifications returns the most recent notifications, up to the
// display limit.
func (c *Center) DisplayNotifications() []Notification {
	return TopByRecency(c.Notifications(), c.limit)
}

// Snapshot returns all derived values computed from a single merge.
func (c *Center) Snapshot() Snapshot {
	merged := c.Notifications()
	count := UnreadCount(merged)
	badge, show := BadgeDisplay(count)

	return Snapshot{
		Notifications: merged,
		Display:       TopByRecency(merged, c.limit),
		UnreadCount:   count,
		Badge:         badge,
		ShowBadge:     show,
	}
}

// Lookup returns a single notification with read state applied.
func (c *Center) Lookup(id string) (Notification, bool) {
	n, ok := c.catalog.Lookup(id)
	if !ok {
		return Notification{}, false
	}
	n.IsRead = n.IsRead || c.state.Has(id)
	return n, true
}

// MarkAsRead records id as read. Unknown IDs are stored as well.
func (c *Center) MarkAsRead(ctx context.Context, id string) {
	ctx = logging.WithNotificationID(ctx, id)
	if _, ok := c.catalog.Lookup(id); !ok {
		c.log.Debug().Ctx(ctx).Msg("marking id that is not in the catalog")
	}
	c.state.MarkAsRead(ctx, id)
	c.log.Debug().Ctx(ctx).Msg("notification marked as read")
}

// MarkAllAsRead records every catalog entry as read.
func (c *Center) MarkAllAsRead(ctx context.Context) {
	ids := c.catalog.IDs()
	c.state.MarkAll(ctx, ids)
	c.log.Debug().Ctx(ctx).Int("count", len(ids)).Msg("all notifications marked as read")
}

// Refresh picks up read IDs written to storage by other processes and
// returns how many were new.
func (c *Center) Refresh(ctx context.Context) int {
	added := c.state.Reload(ctx)
	c.log.Debug().Ctx(ctx).Int("added", added).Msg("read state reloaded")
	return added
}

// IsNotificationRead reports whether id is read, either by catalog default
// or because it was marked.
func (c *Center) IsNotificationRead(id string) bool {
	if c.state.Has(id) {
		return true
	}
	n, ok := c.catalog.Lookup(id)
	return ok && n.IsRead
}

// ReadIDs returns the persisted read IDs in sorted order.
func (c *Center) ReadIDs() []string {
	return c.state.IDs()
}
