package laundry

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

func setupWashingItem(t *testing.T, database *sql.DB) (*model.User, *model.Item) {
	t.Helper()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	item, err := store.CreateItem(ctx, database, &model.Item{
		OwnerID:  user.ID,
		Name:     "Shirt",
		Category: model.CategoryShirt,
		Color:    "Blue",
		Season:   model.SeasonSpring,
		Occasion: model.OccasionCasual,
	})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	if _, err := store.StartWashing(ctx, database, user.ID, item.ID); err != nil {
		t.Fatalf("starting wash: %v", err)
	}
	return user, item
}

// backdate pushes an item's last state change into the past.
func backdate(t *testing.T, database *sql.DB, itemID int64, days int) {
	t.Helper()
	_, err := database.Exec(
		`UPDATE items SET updated_at = datetime('now', ?) WHERE id = ?`,
		fmt.Sprintf("-%d days", days), itemID,
	)
	if err != nil {
		t.Fatalf("backdating item: %v", err)
	}
}

func itemWashing(t *testing.T, database *sql.DB, ownerID, itemID int64) bool {
	t.Helper()
	item, err := store.GetItem(context.Background(), database, ownerID, itemID)
	if err != nil || item == nil {
		t.Fatalf("getting item: %v", err)
	}
	return item.Washing
}

func TestSweepClearsElapsedWash(t *testing.T) {
	database := db.NewTestDB(t)
	user, item := setupWashingItem(t, database)

	backdate(t, database, item.ID, 2)

	s := &Sweeper{DB: database}
	s.SweepOnce(context.Background())

	if itemWashing(t, database, user.ID, item.ID) {
		t.Error("expected item cleared after wash duration elapsed")
	}
}

func TestSweepLeavesFreshWash(t *testing.T) {
	database := db.NewTestDB(t)
	user, item := setupWashingItem(t, database)

	s := &Sweeper{DB: database}
	s.SweepOnce(context.Background())

	if !itemWashing(t, database, user.ID, item.ID) {
		t.Error("item cleared before the wash duration elapsed")
	}
}

func TestSweepHonorsUserDuration(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := setupWashingItem(t, database)

	// The user washes for 3 days; 2 elapsed days is not enough.
	if err := store.UpdateProfile(ctx, database, user.ID, user.Name, 3); err != nil {
		t.Fatalf("updating profile: %v", err)
	}
	backdate(t, database, item.ID, 2)

	s := &Sweeper{DB: database}
	s.SweepOnce(ctx)
	if !itemWashing(t, database, user.ID, item.ID) {
		t.Error("item cleared before the user's wash duration elapsed")
	}

	backdate(t, database, item.ID, 4)
	s.SweepOnce(ctx)
	if itemWashing(t, database, user.ID, item.ID) {
		t.Error("expected item cleared after the user's wash duration elapsed")
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := setupWashingItem(t, database)

	backdate(t, database, item.ID, 2)

	s := &Sweeper{DB: database}
	s.SweepOnce(ctx)
	s.SweepOnce(ctx)

	if itemWashing(t, database, user.ID, item.ID) {
		t.Error("expected item to stay clean")
	}

	// A cleared item can be worn again immediately.
	if _, err := store.MarkWorn(ctx, database, user.ID, item.ID); err != nil {
		t.Errorf("wearing cleared item failed: %v", err)
	}
}

func TestSweepSkipsOrphanedItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := setupWashingItem(t, database)

	// Orphan the item by removing its owner row underneath it.
	if _, err := database.Exec(`PRAGMA foreign_keys = OFF`); err != nil {
		t.Fatalf("disabling foreign keys: %v", err)
	}
	if _, err := database.Exec(`DELETE FROM users WHERE id = ?`, user.ID); err != nil {
		t.Fatalf("deleting user: %v", err)
	}
	backdate(t, database, item.ID, 5)

	// The sweep must not touch the orphan, and must not fail because of it.
	s := &Sweeper{DB: database}
	s.SweepOnce(ctx)

	var washing bool
	err := database.QueryRow(`SELECT washing FROM items WHERE id = ?`, item.ID).Scan(&washing)
	if err != nil {
		t.Fatalf("reading item: %v", err)
	}
	if !washing {
		t.Error("sweep cleared an item without an owner")
	}
}
