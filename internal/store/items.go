package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/color"
	"github.com/erazemk/garderoba/internal/model"
)

const itemColumns = `id, owner_id, name, location, category, color, season, occasion,
	used_times, washing, image_mime, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	item := &model.Item{}
	var location, imageMime sql.NullString
	err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &location, &item.Category,
		&item.Color, &item.Season, &item.Occasion, &item.UsedTimes, &item.Washing,
		&imageMime, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Location = location.String
	item.ImageMime = imageMime.String
	return item, nil
}

// CreateItem inserts a new item and returns it.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (owner_id, name, location, category, color, season, occasion)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.OwnerID, item.Name, item.Location, item.Category, item.Color, item.Season, item.Occasion,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, item.OwnerID, id)
}

// GetItem returns an item by ID, scoped to its owner.
func GetItem(ctx context.Context, db *sql.DB, ownerID, id int64) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ItemFilters narrows a wardrobe listing. Zero values mean "no filter".
type ItemFilters struct {
	Season     string
	Occasion   string
	Category   string
	ColorGroup string // matches every color name in the group
	Search     string // case-insensitive name substring
}

// ListItems returns a user's items, newest first, optionally filtered.
func ListItems(ctx context.Context, db *sql.DB, ownerID int64, filters ItemFilters) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ?`
	args := []any{ownerID}

	if filters.Season != "" {
		query += ` AND season = ?`
		args = append(args, filters.Season)
	}
	if filters.Occasion != "" {
		query += ` AND occasion = ?`
		args = append(args, filters.Occasion)
	}
	if filters.Category != "" {
		query += ` AND category = ?`
		args = append(args, filters.Category)
	}
	if filters.ColorGroup != "" {
		names := color.GroupColors(filters.ColorGroup)
		if names == nil {
			// Unknown group: fall back to an exact color match.
			query += ` AND color = ?`
			args = append(args, filters.ColorGroup)
		} else {
			query += ` AND color IN (?` + strings.Repeat(", ?", len(names)-1) + `)`
			for _, n := range names {
				args = append(args, n)
			}
		}
	}
	if filters.Search != "" {
		query += ` AND name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(filters.Search)+"%")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListEligible returns the outfit generation pool: a user's items matching
// the occasion and any of the seasons, excluding items in the wash. Ordered
// by id so enumeration over the pool is deterministic.
func ListEligible(ctx context.Context, db *sql.DB, ownerID int64, occasion string, seasons []string) ([]model.Item, error) {
	if len(seasons) == 0 {
		return nil, fmt.Errorf("at least one season required")
	}

	query := `SELECT ` + itemColumns + ` FROM items
		 WHERE owner_id = ? AND occasion = ? AND washing = 0
		 AND season IN (?` + strings.Repeat(", ?", len(seasons)-1) + `)
		 ORDER BY id`
	args := []any{ownerID, occasion}
	for _, s := range seasons {
		args = append(args, s)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing eligible items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// UpdateItem updates an item's user-editable attributes.
func UpdateItem(ctx context.Context, db *sql.DB, ownerID, id int64, name, location, category, clr, season, occasion string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, location = ?, category = ?, color = ?, season = ?,
		 occasion = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner_id = ?`,
		name, location, category, clr, season, occasion, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem permanently removes an item. Outfit records referencing it are
// left alone; readers tolerate the dangling reference.
func DeleteItem(ctx context.Context, db *sql.DB, ownerID, id int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetItemImage stores an item's photo.
func SetItemImage(ctx context.Context, db *sql.DB, ownerID, id int64, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ? WHERE id = ? AND owner_id = ?`,
		image, mime, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItemImage returns an item's photo and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, ownerID, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

// MarkWorn increments an item's usage counter and returns the new count.
// The increment, the washing-flag guard and the count read are one
// statement, so two concurrent requests can never both observe a clean item,
// and the returned count is the one this wear produced even if the item's
// state changes right after. Returns ErrWashing if the item is in the wash,
// ErrNotFound if it does not exist or belongs to someone else.
func MarkWorn(ctx context.Context, db *sql.DB, ownerID, id int64) (int, error) {
	var used int
	err := db.QueryRowContext(ctx,
		`UPDATE items SET used_times = used_times + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner_id = ? AND washing = 0
		 RETURNING used_times`,
		id, ownerID,
	).Scan(&used)
	if err == sql.ErrNoRows {
		return 0, wornConflict(ctx, db, ownerID, id)
	}
	if err != nil {
		return 0, fmt.Errorf("marking item worn: %w", err)
	}
	return used, nil
}

// MarkWornOutfit marks every item in the set worn inside one transaction:
// if any member is missing or in the wash, no counter changes. Sets of two
// or more items are additionally recorded in the outfit ledger.
func MarkWornOutfit(ctx context.Context, db *sql.DB, ownerID int64, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return fmt.Errorf("no items given")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range itemIDs {
		result, err := tx.ExecContext(ctx,
			`UPDATE items SET used_times = used_times + 1, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND owner_id = ? AND washing = 0`,
			id, ownerID,
		)
		if err != nil {
			return fmt.Errorf("marking item %d worn: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			var washing bool
			err := tx.QueryRowContext(ctx,
				`SELECT washing FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
			).Scan(&washing)
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("checking item %d: %w", id, err)
			}
			return ErrWashing
		}
	}

	key := model.OutfitKey(itemIDs)
	if len(model.ParseOutfitKey(key)) > 1 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outfits (owner_id, item_key, last_used) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT (owner_id, item_key) DO UPDATE SET last_used = CURRENT_TIMESTAMP`,
			ownerID, key,
		); err != nil {
			return fmt.Errorf("recording outfit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing worn outfit: %w", err)
	}
	return nil
}

// StartWashing puts an item in the wash: washing set, usage counter reset,
// updated_at anchored to now for the recovery sweep. The check-then-set is
// a single conditional update; washing an already-washing item returns
// ErrWashing.
func StartWashing(ctx context.Context, db *sql.DB, ownerID, id int64) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET washing = 1, used_times = 0, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner_id = ? AND washing = 0`,
		id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("starting wash: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, wornConflict(ctx, db, ownerID, id)
	}
	return GetItem(ctx, db, ownerID, id)
}

// wornConflict distinguishes why a conditional washing-guarded update
// matched no rows.
func wornConflict(ctx context.Context, db *sql.DB, ownerID, id int64) error {
	var washing bool
	err := db.QueryRowContext(ctx,
		`SELECT washing FROM items WHERE id = ? AND owner_id = ?`, id, ownerID,
	).Scan(&washing)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking item: %w", err)
	}
	// The guard matched no rows, so the item was washing when the update
	// ran, even if the sweep has cleared it since.
	return ErrWashing
}

// WashingItem is one row of the recovery sweep's work list.
type WashingItem struct {
	ItemID    int64
	OwnerID   int64
	HasOwner  bool
	WashDays  sql.NullInt64
	UpdatedAt sql.NullTime
}

// ListWashing returns every item currently in the wash, joined with its
// owner's configured wash duration. Items whose owner row is gone still
// appear, with HasOwner false, so the sweep can log and skip them.
func ListWashing(ctx context.Context, db *sql.DB) ([]WashingItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT i.id, i.owner_id, u.id IS NOT NULL, u.wash_duration_days, i.updated_at
		 FROM items i
		 LEFT JOIN users u ON u.id = i.owner_id
		 WHERE i.washing = 1
		 ORDER BY i.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing washing items: %w", err)
	}
	defer rows.Close()

	var items []WashingItem
	for rows.Next() {
		var wi WashingItem
		if err := rows.Scan(&wi.ItemID, &wi.OwnerID, &wi.HasOwner, &wi.WashDays, &wi.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning washing item: %w", err)
		}
		items = append(items, wi)
	}
	return items, rows.Err()
}

// FinishWashing clears the washing flag if at least `days` days have elapsed
// since the item's last state change. Both the elapsed check and the flag
// guard live in the UPDATE itself, so a wash started between the sweep's
// read and this write is never silently overwritten. Reports whether the
// item was cleared.
func FinishWashing(ctx context.Context, db *sql.DB, itemID int64, days int) (bool, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET washing = 0, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND washing = 1
		 AND julianday('now') - julianday(updated_at) >= ?`,
		itemID, days,
	)
	if err != nil {
		return false, fmt.Errorf("finishing wash: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finishing wash: %w", err)
	}
	return n > 0, nil
}
