package api

import (
	"net/http"

	"contentfield/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// ListSuggestions handles GET /api/v1/suggestions/:type/:country?q=
// It runs one gateway lookup outside of any session. An empty query
// returns an empty list without calling upstream.
func ListSuggestions(ctx rweb.Context) error {
	if gateway == nil {
		logger.LogErr(serr.New("suggestion gateway not configured"), "suggestion passthrough")
		return writeError(ctx, http.StatusServiceUnavailable, "suggestion lookup unavailable")
	}

	ct, err := models.ParseContentType(ctx.Request().Param("type"))
	if err != nil || !ct.IsSet() {
		return writeError(ctx, http.StatusBadRequest, "invalid content type")
	}

	cc, err := models.ParseCountryCode(ctx.Request().Param("country"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid country code")
	}

	query := ctx.Request().QueryParam("q")
	if query == "" {
		return writeSuccess(ctx, http.StatusOK, []models.Suggestion{})
	}

	suggestions, err := fetchSuggestions(ct, query, cc)
	if err != nil {
		logger.LogErr(err, "suggestion passthrough failed", "type", string(ct), "country", string(cc))
		return writeError(ctx, http.StatusBadGateway, "suggestion lookup failed")
	}

	return writeSuccess(ctx, http.StatusOK, suggestions)
}
