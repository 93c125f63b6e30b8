package store

import (
	"context"
	"testing"
)

func seedUser(t *testing.T, st *Store, name, email, role string) int64 {
	t.Helper()
	id, err := st.CreateUser(context.Background(), &User{
		Name: name, Email: email, PasswordHash: "x", Phone: "555", Role: role,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func TestBookingQueriesJoinDisplayFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, st, "Alice", "alice@x.co", RoleCustomer)
	bob := seedUser(t, st, "Bob", "bob@x.co", RoleCustomer)
	partID, err := st.AddPart(ctx, &SparePart{Name: "Timing belt", Brand: "Gates", PriceCents: 4550, StockQuantity: 10, LocationID: 2})
	if err != nil {
		t.Fatalf("add part: %v", err)
	}

	for _, b := range []struct {
		user int64
		qty  int32
	}{{alice, 2}, {bob, 1}, {alice, 3}} {
		tx, err := st.BeginTx(ctx)
		if err != nil {
			t.Fatalf("begin: %v", err)
		}
		if _, err := st.InsertBooking(ctx, tx, b.user, partID, b.qty); err != nil {
			t.Fatalf("insert booking: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}

	mine, err := st.BookingsByUser(ctx, alice)
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("alice bookings: got %d, want 2", len(mine))
	}
	if mine[0].PartName != "Timing belt" || mine[0].PartBrand != "Gates" || mine[0].PriceCents != 4550 {
		t.Fatalf("missing joined part fields: %+v", mine[0])
	}
	if mine[0].UserName != "" {
		t.Fatalf("user view should not carry user_name")
	}

	all, err := st.AllBookings(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all bookings: got %d, want 3", len(all))
	}
	names := map[int64]string{alice: "Alice", bob: "Bob"}
	for _, v := range all {
		if v.UserName != names[v.UserID] {
			t.Fatalf("wrong joined user name: %+v", v)
		}
	}
}

func TestUncommittedBookingInvisible(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "Cara", "cara@x.co", RoleCustomer)
	partID, err := st.AddPart(ctx, &SparePart{Name: "Brake disc", Brand: "ATE", PriceCents: 6700, StockQuantity: 4, LocationID: 1})
	if err != nil {
		t.Fatalf("add part: %v", err)
	}

	tx, err := st.BeginTx(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := st.InsertBooking(ctx, tx, u, partID, 1); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	got, err := st.BookingsByUser(ctx, u)
	if err != nil {
		t.Fatalf("by user: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rolled-back booking is visible: %+v", got)
	}
}
