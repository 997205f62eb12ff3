package handler

import (
	"net/http"

	"github.com/jellydator/ttlcache/v3"
)

const genresCacheKey = "genres"

// listGenresHandler returns the distinct genres in the catalog. The set only
// changes on book mutations, so it is served from the cache; every mutating
// handler drops the cache entry.
func (h *Handler) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	var genres []string
	if item := h.cache.Get(genresCacheKey); item != nil {
		genres = item.Value()
	} else {
		var err error
		genres, err = h.service.ListGenres()
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		h.cache.Set(genresCacheKey, genres, ttlcache.DefaultTTL)
	}
	err := h.encodeJSON(w, http.StatusOK, envelope{"genres": genres}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
