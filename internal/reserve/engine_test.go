package reserve

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sbedoyat/carhub/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, 5*time.Second), st
}

func addPart(t *testing.T, st *store.Store, qty int32) int64 {
	t.Helper()
	id, err := st.AddPart(context.Background(), &store.SparePart{
		Name: "Brake pad set", Brand: "Brembo", PriceCents: 8990,
		StockQuantity: qty, LocationID: 1,
	})
	if err != nil {
		t.Fatalf("add part: %v", err)
	}
	return id
}

func stockOf(t *testing.T, st *store.Store, partID int64) int32 {
	t.Helper()
	qty, err := st.Stock(context.Background(), nil, partID)
	if err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return qty
}

func TestReserveSuccessDecrementsStock(t *testing.T) {
	eng, st := newTestEngine(t)
	partID := addPart(t, st, 5)

	bookingID, err := eng.Reserve(context.Background(), 1, partID, 3)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if bookingID == 0 {
		t.Fatalf("expected a booking id")
	}
	if got := stockOf(t, st, partID); got != 2 {
		t.Fatalf("stock after reserve: got %d, want 2", got)
	}

	views, err := st.BookingsByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("bookings: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected exactly 1 booking, got %d", len(views))
	}
	if views[0].PartID != partID || views[0].Quantity != 3 {
		t.Fatalf("unexpected booking row: %+v", views[0])
	}
}

func TestReserveInsufficientLeavesStateUntouched(t *testing.T) {
	eng, st := newTestEngine(t)
	partID := addPart(t, st, 5)

	if _, err := eng.Reserve(context.Background(), 1, partID, 3); err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	_, err := eng.Reserve(context.Background(), 2, partID, 3)
	var short ErrInsufficient
	if !errors.As(err, &short) {
		t.Fatalf("expected ErrInsufficient, got %v", err)
	}
	if short.Need != 3 || short.Avail != 2 {
		t.Fatalf("unexpected error detail: %+v", short)
	}
	if got := stockOf(t, st, partID); got != 2 {
		t.Fatalf("stock changed on failed reserve: got %d, want 2", got)
	}
	views, err := st.BookingsByUser(context.Background(), 2)
	if err != nil {
		t.Fatalf("bookings: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("failed reserve left a booking row: %+v", views)
	}
}

func TestReserveFailureIsRepeatable(t *testing.T) {
	eng, st := newTestEngine(t)
	partID := addPart(t, st, 2)

	for i := 0; i < 3; i++ {
		_, err := eng.Reserve(context.Background(), 1, partID, 10)
		var short ErrInsufficient
		if !errors.As(err, &short) {
			t.Fatalf("attempt %d: expected ErrInsufficient, got %v", i, err)
		}
		if short.Avail != 2 {
			t.Fatalf("attempt %d: avail drifted to %d", i, short.Avail)
		}
	}
}

func TestReserveZeroQuantity(t *testing.T) {
	eng, st := newTestEngine(t)
	partID := addPart(t, st, 5)

	if _, err := eng.Reserve(context.Background(), 1, partID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := eng.Reserve(context.Background(), 1, partID, -4); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative, got %v", err)
	}
}

func TestReserveUnknownPart(t *testing.T) {
	eng, st := newTestEngine(t)

	_, err := eng.Reserve(context.Background(), 1, 999, 1)
	var notFound ErrNoSuchPart
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNoSuchPart, got %v", err)
	}
	if notFound.PartID != 999 {
		t.Fatalf("wrong part id in error: %d", notFound.PartID)
	}
	views, err := st.AllBookings(context.Background())
	if err != nil {
		t.Fatalf("bookings: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("booking created for missing part")
	}
}

// N concurrent callers asking one unit each against stock S: exactly S
// succeed and the rest are rejected, stock ends at zero.
func TestReserveConcurrentOversubscription(t *testing.T) {
	eng, st := newTestEngine(t)
	const stock = 5
	const callers = 20
	partID := addPart(t, st, stock)

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = eng.Reserve(context.Background(), int64(n+1), partID, 1)
		}(i)
	}
	wg.Wait()

	okCount, shortCount := 0, 0
	for _, err := range errs {
		var short ErrInsufficient
		switch {
		case err == nil:
			okCount++
		case errors.As(err, &short):
			shortCount++
		default:
			t.Fatalf("unexpected failure mode: %v", err)
		}
	}
	if okCount != stock {
		t.Fatalf("successes: got %d, want %d", okCount, stock)
	}
	if shortCount != callers-stock {
		t.Fatalf("rejections: got %d, want %d", shortCount, callers-stock)
	}
	if got := stockOf(t, st, partID); got != 0 {
		t.Fatalf("final stock: got %d, want 0", got)
	}
	total := 0
	for n := 1; n <= callers; n++ {
		bs, err := st.BookingsByUser(context.Background(), int64(n))
		if err != nil {
			t.Fatalf("bookings for %d: %v", n, err)
		}
		total += len(bs)
	}
	if total != stock {
		t.Fatalf("journal rows: got %d, want %d", total, stock)
	}
}

// Reservations against different parts run concurrently: with part A's
// lock held, part B stays reservable well within the lock budget.
func TestReserveDifferentPartsDoNotBlock(t *testing.T) {
	eng, st := newTestEngine(t)
	partA := addPart(t, st, 100)
	partB := addPart(t, st, 100)

	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		unlock, err := eng.locks.acquire(context.Background(), partA, time.Minute)
		if err != nil {
			t.Errorf("acquire A: %v", err)
			close(held)
			return
		}
		close(held)
		<-release
		unlock()
	}()
	<-held

	done := make(chan error, 1)
	go func() {
		_, err := eng.Reserve(context.Background(), 1, partB, 1)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("reserve on free part: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("reserve on part B blocked behind part A's lock")
	}
	close(release)
}

// A caller that times out waiting on the part lock gets a transaction
// failure and writes nothing.
func TestReserveLockWaitTimeout(t *testing.T) {
	eng, st := newTestEngine(t)
	partID := addPart(t, st, 10)
	eng.lockWait = 50 * time.Millisecond

	unlock, err := eng.locks.acquire(context.Background(), partID, time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer unlock()

	_, err = eng.Reserve(context.Background(), 1, partID, 1)
	if !errors.Is(err, ErrTxFailed) {
		t.Fatalf("expected ErrTxFailed, got %v", err)
	}
	if got := stockOf(t, st, partID); got != 10 {
		t.Fatalf("stock changed on lock timeout: %d", got)
	}
}
