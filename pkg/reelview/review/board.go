// Package review holds the in-memory board state for the active view.
// The board is authoritative for what the reviewer sees: mutations
// apply locally first and are persisted asynchronously through the
// dispatcher.
package review

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reelsmaxx/reelview/pkg/reelview/drive"
	"github.com/reelsmaxx/reelview/pkg/reelview/models"
	"github.com/reelsmaxx/reelview/pkg/reelview/store"
)

// Mode selects how a board orders and merges items.
type Mode int

const (
	// ModeGroup shows a single day's videos oldest-first; new items
	// are appended.
	ModeGroup Mode = iota
	// ModeFeed shows videos across days newest-first with offset
	// pagination; new items are prepended.
	ModeFeed
)

// Card is one visible item plus its playback state. Playback starts
// on the direct stream URL and flips permanently to the preview frame
// after a reported load error.
type Card struct {
	models.Video
	PlaybackURL   string `json:"playback_url"`
	FrameFallback bool   `json:"frame_fallback"`
}

// Board holds the ordered visible sequence for one view.
type Board struct {
	mu sync.Mutex

	mode         Mode
	dateKey      string // ModeGroup only
	statusFilter string // ModeFeed only, optional
	pageSize     int

	store      store.Store
	dispatcher *Dispatcher
	logger     *zap.Logger

	items    []models.Video
	fallback map[string]bool // item id -> frame fallback reached
	offset   int
	hasMore  bool
}

// NewGroupBoard creates a board over one day's videos.
func NewGroupBoard(s store.Store, d *Dispatcher, logger *zap.Logger, dateKey string, pageSize int) *Board {
	return &Board{
		mode:       ModeGroup,
		dateKey:    dateKey,
		pageSize:   pageSize,
		store:      s,
		dispatcher: d,
		logger:     logger,
		fallback:   make(map[string]bool),
	}
}

// NewFeedBoard creates a newest-first board across days, optionally
// filtered to a single status.
func NewFeedBoard(s store.Store, d *Dispatcher, logger *zap.Logger, statusFilter string, pageSize int) *Board {
	return &Board{
		mode:         ModeFeed,
		statusFilter: statusFilter,
		pageSize:     pageSize,
		store:        s,
		dispatcher:   d,
		logger:       logger,
		fallback:     make(map[string]bool),
	}
}

func (b *Board) order() store.Order {
	if b.mode == ModeFeed {
		return store.OrderNewestFirst
	}
	return store.OrderOldestFirst
}

func (b *Board) filter() store.Filter {
	if b.mode == ModeGroup {
		return store.Filter{DateKey: b.dateKey}
	}
	return store.Filter{Status: b.statusFilter}
}

// Load fetches the next page from the store. The first page replaces
// the visible sequence; continuations append. HasMore is inferred from
// the returned count: a short page means exhaustion. A read error is
// logged and rendered as an empty page, indistinguishable from genuine
// emptiness.
func (b *Board) Load(ctx context.Context, first bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if first {
		b.offset = 0
	}
	page := store.Page{Offset: b.offset, Limit: b.pageSize}

	fetched, err := b.store.List(ctx, b.filter(), b.order(), page)
	if err != nil {
		b.logger.Warn("load failed, showing empty page", zap.Error(err))
		fetched = nil
	}

	if first {
		b.items = fetched
	} else {
		b.items = append(b.items, fetched...)
	}
	b.offset += len(fetched)
	b.hasMore = len(fetched) == b.pageSize
}

// HasMore reports whether the last Load indicated another page.
func (b *Board) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasMore
}

// AddBatch splits pasted text on line breaks, resolves each non-blank
// line to a Drive file id, and merges the resulting items into the
// board immediately. Lines that do not resolve are silently skipped.
// One create per item is dispatched asynchronously; the merge does not
// wait for, and is never rolled back by, those writes.
func (b *Board) AddBatch(raw, dateKey string) []models.Video {
	var added []models.Video
	now := time.Now()

	for _, line := range strings.Split(raw, "\n") {
		link := strings.TrimSpace(line)
		if link == "" {
			continue
		}
		fileID := drive.ExtractFileID(link)
		if fileID == "" {
			continue
		}
		added = append(added, models.Video{
			ID:          newItemID(fileID, now),
			DateKey:     dateKey,
			FileID:      fileID,
			OriginalURL: link,
			Caption:     "",
			Feedback:    "",
			Status:      models.StatusPending,
			CreatedAt:   now,
		})
	}
	if len(added) == 0 {
		return nil
	}

	b.mu.Lock()
	if b.mode == ModeFeed {
		b.items = append(append([]models.Video{}, added...), b.items...)
		b.offset += len(added)
	} else {
		b.items = append(b.items, added...)
	}
	b.mu.Unlock()

	for _, v := range added {
		b.dispatcher.EnqueueCreate(v)
	}
	return added
}

// Mutable fields. Anything else is immutable after creation.
const (
	FieldCaption  = "caption"
	FieldFeedback = "feedback"
	FieldStatus   = "status"
)

// MutateField replaces one field on the visible item and dispatches a
// partial update carrying only that field. Unknown ids are a local
// no-op; the update is not dispatched for them since there is nothing
// the reviewer could have been editing.
func (b *Board) MutateField(id, field, value string) bool {
	b.mu.Lock()
	found := false
	for i := range b.items {
		if b.items[i].ID != id {
			continue
		}
		switch field {
		case FieldCaption:
			b.items[i].Caption = value
		case FieldFeedback:
			b.items[i].Feedback = value
		case FieldStatus:
			b.items[i].Status = value
		default:
			b.mu.Unlock()
			return false
		}
		found = true
		break
	}
	b.mu.Unlock()

	if found {
		b.dispatcher.EnqueueUpdate(id, map[string]interface{}{field: value})
	}
	return found
}

// Remove deletes the item from the visible sequence and dispatches a
// delete. The dispatch happens even when the id is not present
// locally: the store may hold rows this view never loaded.
func (b *Board) Remove(id string) {
	b.mu.Lock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			if b.mode == ModeFeed && b.offset > 0 {
				b.offset--
			}
			delete(b.fallback, id)
			break
		}
	}
	b.mu.Unlock()

	b.dispatcher.EnqueueDelete(id)
}

// MarkMediaFailed records a direct-stream load error for one item.
// The transition to the preview frame is one-shot and terminal; later
// calls for the same id are no-ops. Returns false for unknown ids.
func (b *Board) MarkMediaFailed(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.fallback[id] = true
			return true
		}
	}
	return false
}

// Cards returns the visible sequence with playback URLs resolved per
// each item's fallback state.
func (b *Board) Cards() []Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	cards := make([]Card, len(b.items))
	for i, v := range b.items {
		c := Card{Video: v}
		if b.fallback[v.ID] {
			c.PlaybackURL = drive.PreviewURL(v.FileID)
			c.FrameFallback = true
		} else {
			c.PlaybackURL = drive.StreamURL(v.FileID)
		}
		cards[i] = c
	}
	return cards
}

// Len returns the number of visible items.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// newItemID builds the client-generated id: file id, millisecond
// timestamp, random suffix. Uniqueness is probabilistic; the primary
// key constraint catches the astronomically unlikely collision.
func newItemID(fileID string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", fileID, now.UnixMilli(), suffix)
}
