package tests

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jeanmendescs/marketplace/internal/adapter/catalog"
	"github.com/jeanmendescs/marketplace/internal/adapter/storage"
	"github.com/jeanmendescs/marketplace/internal/core/checkout"
	"github.com/jeanmendescs/marketplace/internal/core/domain"
	"github.com/jeanmendescs/marketplace/internal/core/service"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) NavigateTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

func setupRedis(t *testing.T) (*redis.Client, string) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	// A unique key per run keeps parallel test invocations isolated.
	key := "test:cart:" + uuid.New().String()
	t.Cleanup(func() {
		rdb.Del(context.Background(), key)
		rdb.Close()
	})
	return rdb, key
}

func fixedValidator() *checkout.Validator {
	return checkout.NewValidatorAt(func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
}

func validForm() checkout.FormData {
	return checkout.FormData{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Address:    "123 Main Street",
		City:       "Springfield",
		State:      "IL",
		ZipCode:    "62704",
		Country:    "US",
		CardNumber: checkout.FormatCardNumber("1234567890123456"),
		CardName:   "Jane Doe",
		ExpiryDate: checkout.FormatExpiry("1226"),
		CVV:        checkout.DigitsOnly("123"),
	}
}

func TestIntegration_CartSurvivesRestart(t *testing.T) {
	rdb, key := setupRedis(t)
	ctx := context.Background()

	cat, err := catalog.NewStatic()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	// First "session": add two products.
	first := service.NewCartService(storage.NewRedisAdapter(rdb, key), cat, &recordingNotifier{}, zap.NewNop())
	first.Restore(ctx)
	first.AddToCart(ctx, 1)
	first.AddToCart(ctx, 2)
	first.AddToCart(ctx, 1)

	// Second "session" over the same storage simulates a reload.
	second := service.NewCartService(storage.NewRedisAdapter(rdb, key), cat, &recordingNotifier{}, zap.NewNop())
	second.Restore(ctx)

	if got := second.TotalQuantity(); got != 2 {
		t.Errorf("expected 2 items after restore, got %d", got)
	}
	if !second.IsInCart(1) || !second.IsInCart(2) {
		t.Errorf("expected products 1 and 2 restored, got %v", second.Items())
	}
}

func TestIntegration_MalformedStorageFallsBackToEmpty(t *testing.T) {
	rdb, key := setupRedis(t)
	ctx := context.Background()

	rdb.Set(ctx, key, `{"shape":"wrong"}`, 0)

	cat, err := catalog.NewStatic()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	svc := service.NewCartService(storage.NewRedisAdapter(rdb, key), cat, &recordingNotifier{}, zap.NewNop())
	svc.Restore(ctx)

	if got := svc.TotalQuantity(); got != 0 {
		t.Errorf("expected empty cart on malformed storage, got %d items", got)
	}
}

func TestIntegration_FullCheckoutFlow(t *testing.T) {
	rdb, key := setupRedis(t)
	ctx := context.Background()

	cat, err := catalog.NewStatic()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	notifier := &recordingNotifier{}
	navigator := &recordingNavigator{}

	cart := service.NewCartService(storage.NewRedisAdapter(rdb, key), cat, notifier, zap.NewNop())
	cart.Restore(ctx)
	checkoutSvc := service.NewCheckoutService(cart, fixedValidator(), navigator, notifier, zap.NewNop())

	cart.AddToCart(ctx, 1) // $30.00
	cart.AddToCart(ctx, 2) // $40.00

	if got := domain.FormatPrice(cart.Subtotal()); got != "$70.00" {
		t.Fatalf("expected subtotal $70.00 before submit, got %s", got)
	}

	conf, fieldErrs, err := checkoutSvc.Submit(ctx, validForm())
	if err != nil {
		t.Fatalf("submit failed: %v (field errors: %v)", err, fieldErrs)
	}

	if got := domain.FormatPrice(conf.Total); got != "$70.00" {
		t.Errorf("expected total $70.00, got %s", got)
	}
	if got := cart.TotalQuantity(); got != 0 {
		t.Errorf("expected cart cleared, got %d items", got)
	}
	if got := navigator.last(); got != service.ConfirmationPath {
		t.Errorf("expected navigation to %s, got %s", service.ConfirmationPath, got)
	}

	// The cleared cart is also what durable storage now holds.
	raw, err := rdb.Get(ctx, key).Result()
	if err != nil {
		t.Fatalf("read back stored cart: %v", err)
	}
	if raw != "[]" {
		t.Errorf("expected stored cart [], got %s", raw)
	}
}
