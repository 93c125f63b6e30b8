// Package reserve implements the inventory reservation engine: one
// booking request becomes one journal insert plus one guarded stock
// decrement, committed together or not at all.
package reserve

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sbedoyat/carhub/internal/store"
)

// ErrInvalidQuantity rejects non-positive quantities before any
// transaction is opened.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// ErrTxFailed wraps lock timeouts and storage faults: the reservation
// aborted and nothing was written. Callers may retry the whole call.
var ErrTxFailed = errors.New("reservation aborted")

type ErrNoSuchPart struct{ PartID int64 }

func (e ErrNoSuchPart) Error() string {
	return fmt.Sprintf("spare part %d not found", e.PartID)
}

type ErrInsufficient struct {
	PartID int64
	Need   int32
	Avail  int32
}

func (e ErrInsufficient) Error() string {
	return fmt.Sprintf("insufficient stock for part %d: need %d, have %d", e.PartID, e.Need, e.Avail)
}

// Engine serializes reservations per part. All stock decrements go
// through Reserve; the quantity can never be observed negative.
type Engine struct {
	st       *store.Store
	locks    *partLocks
	lockWait time.Duration
}

func New(st *store.Store, lockWait time.Duration) *Engine {
	return &Engine{st: st, locks: newPartLocks(), lockWait: lockWait}
}

// Reserve books qty units of a part for a user and returns the booking
// id. Failure modes, in validation order: ErrInvalidQuantity,
// ErrNoSuchPart, ErrInsufficient, ErrTxFailed. Any failure leaves both
// the ledger and the journal untouched.
func (e *Engine) Reserve(ctx context.Context, userID, partID int64, qty int32) (int64, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}

	// Chequeo optimista, sin lock: rechaza temprano sin tocar la cola
	// de la pieza. El resultado no es autoritativo.
	avail, err := e.st.Stock(ctx, nil, partID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoSuchPart{PartID: partID}
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTxFailed, err)
	}
	if avail < qty {
		return 0, ErrInsufficient{PartID: partID, Need: qty, Avail: avail}
	}

	unlock, err := e.locks.acquire(ctx, partID, e.lockWait)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTxFailed, err)
	}
	defer unlock()

	tx, err := e.st.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTxFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	// Re-lectura bajo el lock: esta sí es autoritativa. La pieza pudo
	// desaparecer o quedarse sin stock mientras esperábamos.
	avail, err = e.st.Stock(ctx, tx, partID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoSuchPart{PartID: partID}
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTxFailed, err)
	}
	if avail < qty {
		return 0, ErrInsufficient{PartID: partID, Need: qty, Avail: avail}
	}

	bookingID, err := e.st.InsertBooking(ctx, tx, userID, partID, qty)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTxFailed, err)
	}

	applied, err := e.st.DecrementStock(ctx, tx, partID, qty)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTxFailed, err)
	}
	if !applied {
		// Segunda línea de defensa: el guard del UPDATE no dejó pasar
		// el decremento. El rollback descarta el booking insertado.
		return 0, ErrInsufficient{PartID: partID, Need: qty, Avail: avail}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTxFailed, err)
	}

	log.Debug().
		Int64("booking_id", bookingID).
		Int64("part_id", partID).
		Int32("qty", qty).
		Msg("reservation committed")
	return bookingID, nil
}
