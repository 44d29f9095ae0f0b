package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/parcelshield/shieldkit/core"
	"github.com/parcelshield/shieldkit/pkg/cache"
	"go.uber.org/zap"
)

// adminFlashClear is how long admin success flashes stay visible.
const adminFlashClear = 3 * time.Second

const deleteConfirmPrompt = "Are you sure you want to delete this item? This action cannot be undone."

// ContentSyncController loads, deletes and edits content collections.
// Concurrent loads of the same render target are serialized by request
// token: only the newest load may touch the target, older responses
// are dropped on arrival.
type ContentSyncController struct {
	api     *APIClient
	render  core.Renderer
	notify  core.Notifier
	confirm core.Confirmer
	cache   *cache.CollectionCache
	log     *zap.SugaredLogger

	mu     sync.Mutex
	tokens map[string]uint64
}

func NewContentSyncController(api *APIClient, render core.Renderer, notify core.Notifier, confirm core.Confirmer, log *zap.SugaredLogger) *ContentSyncController {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ContentSyncController{
		api:     api,
		render:  render,
		notify:  notify,
		confirm: confirm,
		cache:   cache.NewCollectionCache(),
		log:     log,
	}
}

// begin claims the target for a new load and returns its token.
func (c *ContentSyncController) begin(target string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens == nil {
		c.tokens = make(map[string]uint64)
	}
	c.tokens[target]++
	return c.tokens[target]
}

// latest reports whether token still owns the target.
func (c *ContentSyncController) latest(target string, token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens[target] == token
}

func (c *ContentSyncController) fetch(ctx context.Context, kind core.Kind) ([]core.ContentItem, error) {
	reply, err := c.api.GetJSON(ctx, fmt.Sprintf("/content/%s", kind))
	if err != nil {
		return nil, err
	}
	if !reply.OK() {
		return nil, reply.DomainError("Failed to load content")
	}
	var items []core.ContentItem
	if err := reply.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s collection: %w", kind, err)
	}
	return items, nil
}

// LoadPublic fetches a collection and renders its public view. The
// target shows the loading state first, then exactly one of list,
// empty or error.
func (c *ContentSyncController) LoadPublic(ctx context.Context, kind core.Kind) error {
	res, err := core.ResourceFor(kind)
	if err != nil {
		return err
	}
	token := c.begin(res.Target)
	c.render.Loading(res.Target)

	items, err := c.fetch(ctx, kind)
	if !c.latest(res.Target, token) {
		c.log.Debugw("dropping stale load", "target", res.Target)
		return nil
	}
	if err != nil {
		c.render.Error(res.Target, "Error: "+err.Error())
		return err
	}
	if len(items) == 0 {
		c.render.Empty(res.Target, res.EmptyMessage)
		return nil
	}

	entries := make([]core.ListEntry, 0, len(items))
	for i := range items {
		rendered, err := res.Render(&items[i])
		if err != nil {
			c.render.Error(res.Target, "Error: "+err.Error())
			return err
		}
		entries = append(entries, core.ListEntry{
			ID:        items[i].ID,
			Rendered:  rendered,
			CreatedAt: items[i].CreatedAt,
		})
	}
	c.render.List(res.Target, entries)
	return nil
}

// LoadAdmin fetches a collection into the admin table and caches it
// for optimistic removal.
func (c *ContentSyncController) LoadAdmin(ctx context.Context, kind core.Kind) error {
	res, err := core.ResourceFor(kind)
	if err != nil {
		return err
	}
	token := c.begin(core.TargetAdminItems)
	c.notify.Clear(core.AreaAdminMsg)
	c.render.Loading(core.TargetAdminItems)

	items, err := c.fetch(ctx, kind)
	if !c.latest(core.TargetAdminItems, token) {
		c.log.Debugw("dropping stale admin load", "kind", kind)
		return nil
	}
	if err != nil {
		c.render.Error(core.TargetAdminItems, "Error: "+err.Error())
		return err
	}

	c.cache.Replace(kind, items)
	c.renderAdmin(res, items)
	return nil
}

func (c *ContentSyncController) renderAdmin(res *core.Resource, items []core.ContentItem) {
	if len(items) == 0 {
		c.render.Empty(core.TargetAdminItems, "No items found. Upload some content to get started!")
		return
	}
	entries := make([]core.ListEntry, 0, len(items))
	for i := range items {
		entries = append(entries, core.ListEntry{
			ID:        items[i].ID,
			Title:     res.DisplayTitle(&items[i]),
			Path:      res.DisplayPath(&items[i]),
			CreatedAt: items[i].CreatedAt,
			Editable:  true,
		})
	}
	c.render.List(core.TargetAdminItems, entries)
}

// DeleteItem removes an item after confirmation. A successful delete
// updates the cached collection and re-renders from it without a
// refetch; a declined confirmation is not an error.
func (c *ContentSyncController) DeleteItem(ctx context.Context, kind core.Kind, id int64) error {
	res, err := core.ResourceFor(kind)
	if err != nil {
		return err
	}
	if !c.confirm.Confirm(deleteConfirmPrompt) {
		return nil
	}

	reply, err := c.api.Delete(ctx, fmt.Sprintf("/content/%s/%d", kind, id))
	if err != nil {
		c.notify.Flash(core.AreaAdminMsg, core.ToneError, "Network error during delete", 0)
		return err
	}
	if !reply.OK() {
		msg := reply.MessageOr("Unknown error")
		c.notify.Flash(core.AreaAdminMsg, core.ToneError, "Delete failed: "+msg, 0)
		return reply.DomainError("Unknown error")
	}

	remaining := c.cache.Remove(kind, id)
	c.renderAdmin(res, remaining)
	c.notify.Flash(core.AreaAdminMsg, core.ToneSuccess, "Deleted successfully", adminFlashClear)
	c.log.Infow("item deleted", "kind", kind, "id", id)
	return nil
}

// EditItem updates an item's title and body, then refetches the
// collection. Unlike delete, the edited row is re-read from the server
// because the stored item may differ from what was submitted.
func (c *ContentSyncController) EditItem(ctx context.Context, kind core.Kind, id int64, title, body string) error {
	if _, err := core.ResourceFor(kind); err != nil {
		return err
	}

	reply, err := c.api.PutJSON(ctx, fmt.Sprintf("/content/%s/%d", kind, id), map[string]string{
		"title": title,
		"body":  body,
	})
	if err != nil {
		c.notify.Flash(core.AreaAdminMsg, core.ToneError, "Network error during update", 0)
		return err
	}
	if !reply.OK() {
		msg := reply.MessageOr("Unknown error")
		c.notify.Flash(core.AreaAdminMsg, core.ToneError, "Update failed: "+msg, 0)
		return reply.DomainError("Unknown error")
	}

	c.notify.Flash(core.AreaAdminMsg, core.ToneSuccess, "Updated successfully", adminFlashClear)
	c.log.Infow("item updated", "kind", kind, "id", id)
	return c.LoadAdmin(ctx, kind)
}
