package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func testUser(t *testing.T, database *sql.DB) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), database, "Ana", "ana@example.com", "hash")
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

func testItem(t *testing.T, database *sql.DB, ownerID int64, category, clr string) *model.Item {
	t.Helper()
	item, err := CreateItem(context.Background(), database, &model.Item{
		OwnerID:  ownerID,
		Name:     "Test " + category,
		Category: category,
		Color:    clr,
		Season:   model.SeasonSpring,
		Occasion: model.OccasionCasual,
	})
	if err != nil {
		t.Fatalf("creating test item: %v", err)
	}
	return item
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	item := testItem(t, database, user.ID, model.CategoryShirt, "Blue")

	got, err := GetItem(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.Name != "Test shirt" || got.Color != "Blue" || got.Washing {
		t.Errorf("unexpected item: %+v", got)
	}

	// Items are scoped to their owner.
	got, err = GetItem(ctx, database, user.ID+1, item.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil for another owner's item")
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	testItem(t, database, user.ID, model.CategoryShirt, "Navy")
	testItem(t, database, user.ID, model.CategoryPants, "Black")
	testItem(t, database, user.ID, model.CategoryFootwear, "Crimson")

	items, err := ListItems(ctx, database, user.ID, ItemFilters{})
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	items, _ = ListItems(ctx, database, user.ID, ItemFilters{Category: model.CategoryPants})
	if len(items) != 1 || items[0].Category != model.CategoryPants {
		t.Errorf("category filter returned %v", items)
	}

	// Color group filter matches every shade in the group: Navy is Blue,
	// Crimson is Red.
	items, _ = ListItems(ctx, database, user.ID, ItemFilters{ColorGroup: "Blue"})
	if len(items) != 1 || items[0].Color != "Navy" {
		t.Errorf("color group filter returned %v", items)
	}

	items, _ = ListItems(ctx, database, user.ID, ItemFilters{Search: "shirt"})
	if len(items) != 1 || items[0].Category != model.CategoryShirt {
		t.Errorf("search filter returned %v", items)
	}
}

func TestMarkWorn(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	item := testItem(t, database, user.ID, model.CategoryShirt, "Blue")

	used, err := MarkWorn(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("MarkWorn failed: %v", err)
	}
	if used != 1 {
		t.Errorf("expected usage count 1, got %d", used)
	}

	used, _ = MarkWorn(ctx, database, user.ID, item.ID)
	if used != 2 {
		t.Errorf("expected usage count 2, got %d", used)
	}

	// The returned count is the one the wear itself produced.
	got, _ := GetItem(ctx, database, user.ID, item.ID)
	if got.UsedTimes != used {
		t.Errorf("stored count %d disagrees with returned count %d", got.UsedTimes, used)
	}

	_, err = MarkWorn(ctx, database, user.ID, item.ID+100)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestMarkWornWhileWashing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	item := testItem(t, database, user.ID, model.CategoryShirt, "Blue")

	MarkWorn(ctx, database, user.ID, item.ID)
	if _, err := StartWashing(ctx, database, user.ID, item.ID); err != nil {
		t.Fatalf("StartWashing failed: %v", err)
	}

	_, err := MarkWorn(ctx, database, user.ID, item.ID)
	if !errors.Is(err, ErrWashing) {
		t.Fatalf("expected ErrWashing, got %v", err)
	}

	// The failed wear must not touch the counter.
	got, _ := GetItem(ctx, database, user.ID, item.ID)
	if got.UsedTimes != 0 {
		t.Errorf("usage count changed to %d during wash", got.UsedTimes)
	}
}

func TestStartWashing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	item := testItem(t, database, user.ID, model.CategoryShirt, "Blue")

	MarkWorn(ctx, database, user.ID, item.ID)
	MarkWorn(ctx, database, user.ID, item.ID)

	washed, err := StartWashing(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("StartWashing failed: %v", err)
	}
	if !washed.Washing {
		t.Error("expected washing flag set")
	}
	if washed.UsedTimes != 0 {
		t.Errorf("expected usage counter reset, got %d", washed.UsedTimes)
	}

	// Washing an item that is already in the wash is a conflict.
	_, err = StartWashing(ctx, database, user.ID, item.ID)
	if !errors.Is(err, ErrWashing) {
		t.Errorf("expected ErrWashing on double wash, got %v", err)
	}

	_, err = StartWashing(ctx, database, user.ID, item.ID+100)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkWornOutfitAtomic(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	shirt := testItem(t, database, user.ID, model.CategoryShirt, "Blue")
	pants := testItem(t, database, user.ID, model.CategoryPants, "Black")

	if _, err := StartWashing(ctx, database, user.ID, pants.ID); err != nil {
		t.Fatalf("StartWashing failed: %v", err)
	}

	err := MarkWornOutfit(ctx, database, user.ID, []int64{shirt.ID, pants.ID})
	if !errors.Is(err, ErrWashing) {
		t.Fatalf("expected ErrWashing, got %v", err)
	}

	// The shirt's counter must not move if the pants were unavailable.
	got, _ := GetItem(ctx, database, user.ID, shirt.ID)
	if got.UsedTimes != 0 {
		t.Errorf("shirt usage count = %d after failed outfit wear, want 0", got.UsedTimes)
	}

	// No ledger entry either.
	outfits, _ := ListRecentOutfits(ctx, database, user.ID, 10)
	if len(outfits) != 0 {
		t.Errorf("expected no recorded outfits, got %d", len(outfits))
	}
}

func TestMarkWornOutfitRecordsLedger(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	shirt := testItem(t, database, user.ID, model.CategoryShirt, "Blue")
	pants := testItem(t, database, user.ID, model.CategoryPants, "Black")

	if err := MarkWornOutfit(ctx, database, user.ID, []int64{pants.ID, shirt.ID}); err != nil {
		t.Fatalf("MarkWornOutfit failed: %v", err)
	}

	for _, id := range []int64{shirt.ID, pants.ID} {
		got, _ := GetItem(ctx, database, user.ID, id)
		if got.UsedTimes != 1 {
			t.Errorf("item %d usage count = %d, want 1", id, got.UsedTimes)
		}
	}

	outfits, err := ListRecentOutfits(ctx, database, user.ID, 10)
	if err != nil {
		t.Fatalf("ListRecentOutfits failed: %v", err)
	}
	if len(outfits) != 1 {
		t.Fatalf("expected 1 recorded outfit, got %d", len(outfits))
	}
	if key := model.OutfitKey(outfits[0].ItemIDs); key != model.OutfitKey([]int64{shirt.ID, pants.ID}) {
		t.Errorf("unexpected outfit key %q", key)
	}
}

func TestMarkWornOutfitSingleItemNotRecorded(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	shirt := testItem(t, database, user.ID, model.CategoryShirt, "Blue")

	if err := MarkWornOutfit(ctx, database, user.ID, []int64{shirt.ID}); err != nil {
		t.Fatalf("MarkWornOutfit failed: %v", err)
	}

	outfits, _ := ListRecentOutfits(ctx, database, user.ID, 10)
	if len(outfits) != 0 {
		t.Errorf("single-item wear must not enter the outfit ledger, got %d entries", len(outfits))
	}
}

func TestListEligibleExcludesWashing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	shirt := testItem(t, database, user.ID, model.CategoryShirt, "Blue")
	pants := testItem(t, database, user.ID, model.CategoryPants, "Black")

	items, err := ListEligible(ctx, database, user.ID, model.OccasionCasual,
		[]string{model.SeasonSummer, model.SeasonSpring})
	if err != nil {
		t.Fatalf("ListEligible failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 eligible items, got %d", len(items))
	}

	if _, err := StartWashing(ctx, database, user.ID, pants.ID); err != nil {
		t.Fatalf("StartWashing failed: %v", err)
	}

	items, _ = ListEligible(ctx, database, user.ID, model.OccasionCasual,
		[]string{model.SeasonSummer, model.SeasonSpring})
	if len(items) != 1 || items[0].ID != shirt.ID {
		t.Errorf("expected only the shirt to stay eligible, got %v", items)
	}
}

func TestUpdateAndDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	item := testItem(t, database, user.ID, model.CategoryShirt, "Blue")

	err := UpdateItem(ctx, database, user.ID, item.ID, "Linen shirt", "closet",
		model.CategoryShirt, "White", model.SeasonSummer, model.OccasionFormal)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	got, _ := GetItem(ctx, database, user.ID, item.ID)
	if got.Name != "Linen shirt" || got.Color != "White" || got.Season != model.SeasonSummer {
		t.Errorf("unexpected item after update: %+v", got)
	}

	if err := DeleteItem(ctx, database, user.ID, item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if err := DeleteItem(ctx, database, user.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database)
	item := testItem(t, database, user.ID, model.CategoryShirt, "Blue")

	data := []byte{0xff, 0xd8, 0xff}
	if err := SetItemImage(ctx, database, user.ID, item.ID, data, "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage failed: %v", err)
	}

	image, mime, err := GetItemImage(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage failed: %v", err)
	}
	if mime != "image/jpeg" || len(image) != 3 {
		t.Errorf("unexpected image %v mime %q", image, mime)
	}

	image, mime, err = GetItemImage(ctx, database, user.ID, item.ID+100)
	if err != nil || image != nil || mime != "" {
		t.Errorf("expected empty result for missing item, got %v %q %v", image, mime, err)
	}
}
