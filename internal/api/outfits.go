package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/garderoba/internal/classify"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/outfit"
	"github.com/erazemk/garderoba/internal/store"
)

// OutfitsHandler handles outfit generation and the worn-outfit ledger.
type OutfitsHandler struct {
	DB         *sql.DB
	Classifier *classify.Client
}

// recentOutfitLimit caps the worn-outfits listing.
const recentOutfitLimit = 10

// occasionLabels are the candidate labels the event description is resolved
// against.
var occasionLabels = []string{model.OccasionFormal, model.OccasionCasual, model.OccasionSports}

type wearOutfitRequest struct {
	Outfit []int64 `json:"outfit"`
}

// Generate handles GET /api/outfits/generate?text=&season=&page=.
// The free-text event description is resolved to an occasion by the
// classifier service; the season hint is combined with the all-season tag.
func (h *OutfitsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	q := r.URL.Query()

	text := q.Get("text")
	if text == "" {
		jsonError(w, http.StatusBadRequest, "event description required")
		return
	}

	page := 1
	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = n
	}

	occasion, err := h.Classifier.ClassifyText(r.Context(), text, occasionLabels)
	if err != nil {
		jsonError(w, http.StatusBadGateway, "occasion classification failed")
		return
	}

	// The all-season tag is always part of the query set.
	seasons := []string{model.SeasonSpring}
	if s := strings.ToLower(q.Get("season")); s != "" && s != model.SeasonSpring {
		seasons = []string{s, model.SeasonSpring}
	}

	pool, err := store.ListEligible(r.Context(), h.DB, claims.UserID, occasion, seasons)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load wardrobe")
		return
	}

	result, err := outfit.Generate(pool, seasons, page)
	if err != nil {
		var missing *outfit.MissingCategoryError
		if errors.As(err, &missing) {
			jsonError(w, http.StatusBadRequest, missing.Error())
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to generate outfits")
		return
	}

	if len(result.Rejected) > 0 {
		slog.Debug("outfit generation rejected combinations",
			"user", claims.UserID, "rejected", len(result.Rejected),
			"first_reason", result.Rejected[0].Reason)
	}

	if result.Outfits == nil {
		result.Outfits = [][]model.Item{}
	}
	jsonResponse(w, http.StatusOK, result)
}

// Wear handles POST /api/outfits/wear: every item in the set is marked worn
// (all or nothing) and the combination is recorded.
func (h *OutfitsHandler) Wear(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req wearOutfitRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Outfit) == 0 {
		jsonError(w, http.StatusBadRequest, "outfit item ids required")
		return
	}

	if err := store.MarkWornOutfit(r.Context(), h.DB, claims.UserID, req.Outfit); err != nil {
		storeError(w, err, "failed to mark outfit worn")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "outfit worn"})
}

// Recent handles GET /api/outfits/recent.
func (h *OutfitsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	outfits, err := store.ListRecentOutfits(r.Context(), h.DB, claims.UserID, recentOutfitLimit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list outfits")
		return
	}
	if outfits == nil {
		outfits = []model.Outfit{}
	}
	jsonResponse(w, http.StatusOK, outfits)
}
