package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// RecordWear upserts a worn combination into the outfit ledger. The item
// set is canonicalized (deduplicated, sorted) so the same items in any
// order hit the same record; re-wearing bumps last_used instead of creating
// a duplicate.
func RecordWear(ctx context.Context, db *sql.DB, ownerID int64, itemIDs []int64) error {
	key := model.OutfitKey(itemIDs)
	if len(model.ParseOutfitKey(key)) < 2 {
		return fmt.Errorf("an outfit needs at least 2 distinct items")
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO outfits (owner_id, item_key, last_used) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (owner_id, item_key) DO UPDATE SET last_used = CURRENT_TIMESTAMP`,
		ownerID, key,
	)
	if err != nil {
		return fmt.Errorf("recording outfit: %w", err)
	}
	return nil
}

// ListRecentOutfits returns a user's worn outfits, most recent first, with
// item references resolved to full item data. References to since-deleted
// items resolve to nothing and are dropped from the result's item list.
func ListRecentOutfits(ctx context.Context, db *sql.DB, ownerID int64, limit int) ([]model.Outfit, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, owner_id, item_key, last_used FROM outfits
		 WHERE owner_id = ? ORDER BY last_used DESC, id DESC LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outfits: %w", err)
	}
	defer rows.Close()

	var outfits []model.Outfit
	for rows.Next() {
		var o model.Outfit
		var key string
		if err := rows.Scan(&o.ID, &o.OwnerID, &key, &o.LastUsed); err != nil {
			return nil, fmt.Errorf("scanning outfit: %w", err)
		}
		o.ItemIDs = model.ParseOutfitKey(key)
		outfits = append(outfits, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := resolveOutfitItems(ctx, db, ownerID, outfits); err != nil {
		return nil, err
	}
	return outfits, nil
}

// resolveOutfitItems fetches every referenced item in one query and joins
// the results back onto the outfit records.
func resolveOutfitItems(ctx context.Context, db *sql.DB, ownerID int64, outfits []model.Outfit) error {
	seen := make(map[int64]bool)
	var ids []int64
	for _, o := range outfits {
		for _, id := range o.ItemIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	query := `SELECT ` + itemColumns + ` FROM items
		 WHERE owner_id = ? AND id IN (?` + strings.Repeat(", ?", len(ids)-1) + `)`
	args := []any{ownerID}
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("resolving outfit items: %w", err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return err
	}

	byID := make(map[int64]model.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for i := range outfits {
		for _, id := range outfits[i].ItemIDs {
			if item, ok := byID[id]; ok {
				outfits[i].Items = append(outfits[i].Items, item)
			}
		}
	}
	return nil
}
