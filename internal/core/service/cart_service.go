package service

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jeanmendescs/marketplace/internal/core/domain"
	"github.com/jeanmendescs/marketplace/internal/port"
)

// Toast messages emitted on cart mutations.
const (
	msgAddedToCart     = "Added to cart"
	msgRemovedFromCart = "Removed from cart"
	msgCartCleared     = "Cart cleared"
)

type subscriber struct {
	id int
	fn func(items []int)
}

// CartService is the single source of truth for which products are selected
// for purchase. It holds a set of product ids: adding is idempotent and no
// per-item quantity is tracked. Every mutation persists the set, notifies
// subscribers synchronously, and emits a toast.
//
// All mutations are serialized behind one mutex so each operation stays
// atomic and observably total under concurrent callers.
type CartService struct {
	storage  port.CartStorage
	catalog  port.Catalog
	notifier port.Notifier
	logger   *zap.Logger

	mu     sync.Mutex
	items  map[int]struct{}
	subs   []subscriber
	nextID int
}

func NewCartService(storage port.CartStorage, catalog port.Catalog, notifier port.Notifier, logger *zap.Logger) *CartService {
	return &CartService{
		storage:  storage,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		items:    make(map[int]struct{}),
	}
}

// Restore loads the persisted cart. Absent, unreadable, or malformed data
// falls back to an empty cart; the failure is logged, never propagated.
func (s *CartService) Restore(ctx context.Context) {
	raw, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("cart restore failed, starting empty", zap.Error(err))
		return
	}

	ids, err := domain.DecodeCart(raw)
	if err != nil {
		s.logger.Warn("stored cart is malformed, starting empty", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.items = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
	s.mu.Unlock()
}

// AddToCart inserts a product id. Calling it twice with the same id leaves
// cardinality unchanged. It never fails, even for ids missing from the
// catalog; dangling ids are filtered at projection time instead.
func (s *CartService) AddToCart(ctx context.Context, productID int) {
	s.mu.Lock()
	s.items[productID] = struct{}{}
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.afterMutation(ctx, snapshot, subs, msgAddedToCart)
}

// RemoveFromCart deletes a product id; removing an absent id is a no-op,
// not an error.
func (s *CartService) RemoveFromCart(ctx context.Context, productID int) {
	s.mu.Lock()
	delete(s.items, productID)
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.afterMutation(ctx, snapshot, subs, msgRemovedFromCart)
}

// ClearCart empties the set.
func (s *CartService) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.items = make(map[int]struct{})
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.afterMutation(ctx, snapshot, subs, msgCartCleared)
}

// IsInCart reports membership.
func (s *CartService) IsInCart(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[productID]
	return ok
}

// TotalQuantity returns the number of distinct products in the cart. Each
// product counts 0 or 1 regardless of how many times it was added.
func (s *CartService) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a sorted snapshot of the cart's product ids.
func (s *CartService) Items() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// LineItems projects the cart through the catalog. Ids without a matching
// product are silently dropped.
func (s *CartService) LineItems() []domain.LineItem {
	items := make([]domain.LineItem, 0)
	for _, id := range s.Items() {
		product, ok := s.catalog.GetProductByID(id)
		if !ok {
			continue
		}
		items = append(items, domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
		})
	}
	return items
}

// Subtotal sums the line-item prices. Dangling ids contribute nothing.
func (s *CartService) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.LineItems() {
		total = total.Add(item.Price)
	}
	return total
}

// Subscribe registers fn to run synchronously after every mutation with the
// post-mutation snapshot. The returned func unsubscribes.
func (s *CartService) Subscribe(fn func(items []int)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *CartService) snapshotLocked() []int {
	ids := make([]int, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *CartService) subscribersLocked() []subscriber {
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	return subs
}

// afterMutation runs the mutation side effects: a fire-and-forget persistence
// write, the synchronous subscriber fan-out, and the toast. Persistence
// failures are logged and swallowed; the in-memory state already changed.
func (s *CartService) afterMutation(ctx context.Context, snapshot []int, subs []subscriber, toast string) {
	if err := s.storage.Save(ctx, domain.EncodeCart(snapshot)); err != nil {
		s.logger.Warn("cart persistence write failed", zap.Error(err), zap.Ints("items", snapshot))
	}

	for _, sub := range subs {
		sub.fn(snapshot)
	}

	s.notifier.Notify(toast)
}
