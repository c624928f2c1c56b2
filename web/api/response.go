package api

import (
	"context"
	"time"

	"contentfield/models"

	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// APIResponse provides a consistent JSON response structure for all API endpoints.
// Success responses include data, error responses include an error message.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeSuccess sends a successful JSON response with data.
// Uses rweb's built-in WriteJSON which sets content-type automatically.
func writeSuccess(ctx rweb.Context, status int, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: true, Data: data})
}

// writeError sends an error JSON response.
func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Error: message})
}

// Handlers share one gateway and one session registry, set at server start.
var (
	gateway       models.SuggestionFetcher
	sessions      *models.SessionRegistry
	lookupTimeout = 10 * time.Second
)

// Configure hands the handlers their collaborators. timeout bounds each
// suggestion lookup a handler runs; zero keeps the current bound.
func Configure(fetcher models.SuggestionFetcher, registry *models.SessionRegistry, timeout time.Duration) {
	gateway = fetcher
	sessions = registry
	if timeout > 0 {
		lookupTimeout = timeout
	}
}

// lookupContext bounds one upstream lookup.
func lookupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), lookupTimeout)
}

// fetchSuggestions runs a single gateway lookup outside of any session.
func fetchSuggestions(ct models.ContentType, query string, cc models.CountryCode) ([]models.Suggestion, error) {
	if gateway == nil {
		return nil, serr.New("suggestion gateway not configured")
	}
	ctx, cancel := lookupContext()
	defer cancel()
	return gateway.FetchSuggestions(ctx, ct, query, cc)
}
