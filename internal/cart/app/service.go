package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/adhithya-electronics/storefront-client/internal/cart/domain"
)

// GuestCartKey is the persisted entry holding the cart while logged out.
const GuestCartKey = "guest_cart"

// ErrNoSession is returned by operations that need a server cart while the
// user is logged out.
var ErrNoSession = errors.New("no active session")

// Service maintains the local view of the cart and keeps it consistent with
// the server once a session exists.
//
// While logged out every mutation is local and re-persisted under
// GuestCartKey. When a token becomes available the guest cart is merged into
// the server cart exactly once per token value, then replaced wholesale by the
// server's list. While logged in, mutations are mirrored to the server without
// gating the local update; server failures are logged and the optimistic
// local state stands.
type Service struct {
	mu    sync.Mutex
	items []domain.LineItem
	token string // last token seen from the session store

	api   CartAPI
	store Storage
	log   *slog.Logger

	inflight sync.WaitGroup
}

func NewService(api CartAPI, store Storage, log *slog.Logger) *Service {
	return &Service{
		api:   api,
		store: store,
		log:   log,
	}
}

// LoadGuestCart restores the persisted guest cart. A missing or corrupt entry
// is an empty cart.
func (s *Service) LoadGuestCart() {
	raw, ok := s.store.Get(GuestCartKey)
	if !ok {
		return
	}
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("discarding unreadable guest cart", slog.Any("err", err))
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// HandleTokenChange is registered with the session store. A new non-empty
// token triggers the one-shot merge-and-fetch reconciliation; losing the
// token drops back to guest mode and re-persists the current items.
func (s *Service) HandleTokenChange(ctx context.Context, token string) {
	s.mu.Lock()
	if token == s.token {
		s.mu.Unlock()
		return
	}
	s.token = token
	items := s.snapshotLocked()
	s.mu.Unlock()

	if token == "" {
		s.persistGuest(items)
		return
	}
	s.reconcile(ctx)
}

// reconcile merges any persisted guest cart into the server cart, then
// replaces the local list with the server's authoritative one. The merge
// completes before the fetch is issued.
func (s *Service) reconcile(ctx context.Context) {
	if raw, ok := s.store.Get(GuestCartKey); ok {
		var guest []domain.LineItem
		if err := json.Unmarshal([]byte(raw), &guest); err != nil {
			s.log.Warn("discarding unreadable guest cart", slog.Any("err", err))
		} else if len(guest) > 0 {
			if err := s.api.Merge(ctx, guest); err != nil {
				s.log.Error("merge guest cart", slog.Any("err", err))
			} else if err := s.store.Delete(GuestCartKey); err != nil {
				s.log.Error("delete guest cart entry", slog.Any("err", err))
			}
		}
	}

	if err := s.refresh(ctx); err != nil {
		s.log.Error("fetch cart", slog.Any("err", err))
	}
}

// Refresh pulls the server cart and replaces the local list with it. A guest
// cart has no server counterpart, so a session is required.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	authed := s.token != ""
	s.mu.Unlock()

	if !authed {
		return ErrNoSession
	}
	if err := s.refresh(ctx); err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	return nil
}

func (s *Service) refresh(ctx context.Context) error {
	items, err := s.api.Fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// AddItem applies a quantity delta for item.ID. The delta is clamped to the
// stock ceiling when one is known; adding past the ceiling with no headroom
// leaves the cart unchanged. Non-positive deltas are not special-cased here:
// call sites detect a non-positive resulting quantity and call RemoveItem.
func (s *Service) AddItem(ctx context.Context, item domain.LineItem) {
	if item.StockAvailable > 0 && item.Quantity > item.StockAvailable {
		item.Quantity = item.StockAvailable
	}

	s.mu.Lock()
	authed := s.token != ""
	s.mu.Unlock()

	if authed {
		s.mirror(ctx, func(ctx context.Context) error {
			return s.api.Add(ctx, item.ID, item.Quantity)
		}, "add item on server", item.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(item.ID); idx >= 0 {
		existing := &s.items[idx]
		total := existing.Quantity + item.Quantity
		final := total
		if existing.StockAvailable > 0 && total > existing.StockAvailable {
			final = existing.StockAvailable
		}
		if final == existing.Quantity && total > existing.Quantity {
			// No headroom left.
			return
		}
		existing.Quantity = final
	} else {
		s.items = append(s.items, item)
	}

	if !authed {
		s.persistGuest(s.snapshotLocked())
	}
}

// RemoveItem deletes the item locally regardless of server outcome. Removing
// an absent id is a no-op.
func (s *Service) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	authed := s.token != ""
	s.mu.Unlock()

	if authed {
		s.mirror(ctx, func(ctx context.Context) error {
			return s.api.Remove(ctx, id)
		}, "remove item on server", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	if !authed {
		s.persistGuest(s.snapshotLocked())
	}
}

// ClearCart empties the local cart and deletes the guest entry. It issues no
// server request.
func (s *Service) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.store.Delete(GuestCartKey); err != nil {
		s.log.Error("delete guest cart entry", slog.Any("err", err))
	}
}

func (s *Service) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) TotalItems() int {
	return domain.TotalItems(s.Items())
}

func (s *Service) TotalPrice() float64 {
	return domain.TotalPrice(s.Items())
}

// Wait blocks until mirrored server calls have finished. Short-lived callers
// use it before exiting so fire-and-forget requests are not cut off.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// mirror runs a server call without gating the local mutation on it. Once
// issued the call runs to completion; failures are logged, never rolled back.
func (s *Service) mirror(ctx context.Context, call func(context.Context) error, msg, id string) {
	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := call(ctx); err != nil {
			s.log.Error(msg, slog.String("id", id), slog.Any("err", err))
		}
	}()
}

func (s *Service) persistGuest(items []domain.LineItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		s.log.Error("encode guest cart", slog.Any("err", err))
		return
	}
	if err := s.store.Set(GuestCartKey, string(raw)); err != nil {
		s.log.Error("persist guest cart", slog.Any("err", err))
	}
}

func (s *Service) indexLocked(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) snapshotLocked() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}
