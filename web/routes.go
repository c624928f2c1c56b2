package web

import (
	"contentfield/web/api"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server) {
	s.Get("/health", func(ctx rweb.Context) error {
		return ctx.WriteJSON(api.APIResponse{Success: true, Data: "ok"})
	})

	// Widget page, loaded by the host into the field iframe
	s.Get("/field", api.FieldPage)
	s.Get("/partials/sessions/:sid", api.SessionPartial)

	// Field session endpoints, driven by field.js
	s.Get("/api/v1/sessions/:sid", api.GetSession)
	s.Delete("/api/v1/sessions/:sid", api.CloseSession)
	s.Post("/api/v1/sessions/:sid/type", api.ChangeType)
	s.Post("/api/v1/sessions/:sid/country", api.ChangeCountry)
	s.Get("/api/v1/sessions/:sid/search", api.Search)
	s.Post("/api/v1/sessions/:sid/selection", api.Select)
	s.Delete("/api/v1/sessions/:sid/selection", api.RemoveSelection)

	// Direct suggestion lookup
	s.Get("/api/v1/suggestions/:type/:country", api.ListSuggestions)

	// Host field store, token protected
	s.Get("/api/v1/entries/:entry/field", api.GetField)
	s.Put("/api/v1/entries/:entry/field", api.PutField)
}
