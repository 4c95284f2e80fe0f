package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/garderoba/internal/classify"
	"github.com/erazemk/garderoba/internal/color"
	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// ItemsHandler handles wardrobe item endpoints.
type ItemsHandler struct {
	DB         *sql.DB
	Classifier *classify.Client
}

type updateItemRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Category *string `json:"category"`
	Color    *string `json:"color"`
	Season   *string `json:"season"`
	Occasion *string `json:"occasion"`
}

type wearItemRequest struct {
	Outfit []int64 `json:"outfit"`
}

// Create handles POST /api/items: the photo is processed, the garment's
// type, season and occasion are detected by the classifier service, and the
// color is matched from the photo's average RGB.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	name := r.FormValue("name")
	if name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	location := r.FormValue("location")

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.Classifier.ClassifyImage(r.Context(), photo.Data, model.Categories)
	if err != nil {
		jsonError(w, http.StatusBadGateway, "garment classification failed")
		return
	}
	if strings.Contains(strings.ToLower(category), "underwear") {
		category = model.CategoryUnderwear
	}

	season, err := h.Classifier.ClassifyImage(r.Context(), photo.Data, model.Seasons)
	if err != nil {
		jsonError(w, http.StatusBadGateway, "season classification failed")
		return
	}

	occasion, err := h.Classifier.ClassifyImage(r.Context(), photo.Data, model.Occasions)
	if err != nil {
		jsonError(w, http.StatusBadGateway, "occasion classification failed")
		return
	}

	item := &model.Item{
		OwnerID:  claims.UserID,
		Name:     name,
		Location: location,
		Category: category,
		Color:    color.Closest(photo.AvgR, photo.AvgG, photo.AvgB),
		Season:   season,
		Occasion: occasion,
	}

	created, err := store.CreateItem(r.Context(), h.DB, item)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, claims.UserID, created.ID, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	created.ImageMime = photo.MIME

	jsonResponse(w, http.StatusCreated, created)
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	q := r.URL.Query()

	filters := store.ItemFilters{
		Season:     q.Get("season"),
		Occasion:   q.Get("occasion"),
		Category:   q.Get("type"),
		ColorGroup: q.Get("color"),
		Search:     q.Get("search"),
	}

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID, filters)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/items/{id}. Absent fields keep their current
// value; supplied tags must be valid.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			jsonError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		item.Name = *req.Name
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.Category != nil {
		if !model.ValidCategory(*req.Category) {
			jsonError(w, http.StatusBadRequest, "invalid category")
			return
		}
		item.Category = *req.Category
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Season != nil {
		if !model.ValidSeason(*req.Season) {
			jsonError(w, http.StatusBadRequest, "invalid season")
			return
		}
		item.Season = *req.Season
	}
	if req.Occasion != nil {
		if !model.ValidOccasion(*req.Occasion) {
			jsonError(w, http.StatusBadRequest, "invalid occasion")
			return
		}
		item.Occasion = *req.Occasion
	}

	err = store.UpdateItem(r.Context(), h.DB, claims.UserID, id,
		item.Name, item.Location, item.Category, item.Color, item.Season, item.Occasion)
	if err != nil {
		storeError(w, err, "failed to update item")
		return
	}

	updated, err := store.GetItem(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}. The item is removed permanently;
// outfit records keep referencing it and degrade gracefully.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, claims.UserID, id); err != nil {
		storeError(w, err, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// Wear handles POST /api/items/{id}/wear: bumps the item's usage counter
// and, when a co-worn item list of two or more ids is supplied, records the
// combination in the outfit ledger.
func (h *ItemsHandler) Wear(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req wearItemRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	used, err := store.MarkWorn(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		storeError(w, err, "failed to mark item worn")
		return
	}

	if len(req.Outfit) > 1 {
		if err := store.RecordWear(r.Context(), h.DB, claims.UserID, req.Outfit); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to record outfit")
			return
		}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message":    "usage incremented",
		"used_times": used,
	})
}

// Wash handles POST /api/items/{id}/wash: resets the usage counter and
// marks the item unavailable until the recovery sweep clears it.
func (h *ItemsHandler) Wash(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.StartWashing(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		storeError(w, err, "failed to start washing")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}
