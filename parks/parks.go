package parks

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"parkscout/autocom"
	"parkscout/finder"
	"parkscout/models"
	"parkscout/nps"
	"parkscout/rdx"
	"parkscout/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the reference-data, suggestion and search endpoints. The
// cache is injected so tests can swap it for an in-memory one.
type Handler struct {
	api    nps.API
	cache  RefCache
	finder *finder.Finder
}

func NewHandler(api nps.API, cache RefCache) *Handler {
	return &Handler{
		api:    api,
		cache:  cache,
		finder: finder.New(api),
	}
}

const (
	categoryActivities = "activities"
	categoryTopics     = "topics"
)

// listRef serves one cached reference listing, refetching from upstream on a
// cache miss or an explicit ?refresh=1.
func (h *Handler) listRef(w http.ResponseWriter, r *http.Request, category string, list func(context.Context) ([]models.RefItem, error)) {
	if r.URL.Query().Get("refresh") == "1" {
		h.cache.Invalidate(r.Context(), category)
	}

	if items, ok := h.cache.Get(r.Context(), category); ok {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"data": items, "total": len(items)})
		return
	}

	items, err := list(r.Context())
	if err != nil {
		log.Printf("Failed to fetch %s listing: %v", category, err)
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.cache.Put(r.Context(), category, items)
	for _, item := range items {
		if err := autocom.AddRefToAutocomplete(rdx.Conn, category, item.Name); err != nil {
			log.Printf("Autocomplete index failed: %v", err)
			break
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"data": items, "total": len(items)})
}

func (h *Handler) GetActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.listRef(w, r, categoryActivities, h.api.ListActivities)
}

func (h *Handler) GetTopics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.listRef(w, r, categoryTopics, h.api.ListTopics)
}

// Suggest serves typeahead name suggestions for one category.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	category := r.URL.Query().Get("category")
	if category != categoryActivities && category != categoryTopics {
		utils.RespondWithError(w, http.StatusBadRequest, "category must be activities or topics")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "q required")
		return
	}

	names, err := autocom.SearchAutocomplete(rdx.Conn, category, query, 10)
	if err != nil {
		log.Printf("Autocomplete search failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Suggestion lookup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"data": names})
}

// Search runs the full result-resolution pipeline for the posted criteria.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	results, err := h.finder.Search(r.Context(), query)
	if err != nil {
		// The raw message surfaces as-is; the client renders it verbatim.
		log.Printf("Search failed: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"total": len(results),
	})
}
