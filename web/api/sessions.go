package api

import (
	"encoding/json"
	"net/http"

	"contentfield/models"
	"contentfield/web/pages/field"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// SessionOutput is returned by every session endpoint: the controller state
// plus the fragments field.js swaps into the page.
type SessionOutput struct {
	SessionID     string            `json:"session_id"`
	State         models.FieldState `json:"state"`
	SelectionHTML string            `json:"selection_html"`
	ResultsHTML   string            `json:"results_html"`
	BodyHTML      string            `json:"body_html,omitempty"`
}

// TypeInput is the body of POST /api/v1/sessions/:sid/type
type TypeInput struct {
	Type string `json:"type"`
}

// CountryInput is the body of POST /api/v1/sessions/:sid/country
type CountryInput struct {
	Country string `json:"country"`
}

// SelectionInput is the body of POST /api/v1/sessions/:sid/selection
type SelectionInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetSession handles GET /api/v1/sessions/:sid
func GetSession(ctx rweb.Context) error {
	session, ok := lookupSession(ctx)
	if !ok {
		return writeError(ctx, http.StatusNotFound, "session not found")
	}
	return writeSession(ctx, session, true)
}

// ChangeType handles POST /api/v1/sessions/:sid/type
// Clears the selection and the suggestion list; the whole body is re-rendered.
func ChangeType(ctx rweb.Context) error {
	session, ok := lookupSession(ctx)
	if !ok {
		return writeError(ctx, http.StatusNotFound, "session not found")
	}

	var input TypeInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}

	ct, err := models.ParseContentType(input.Type)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	session.Controller.ChangeContentType(ct)
	return writeSession(ctx, session, true)
}

// ChangeCountry handles POST /api/v1/sessions/:sid/country
func ChangeCountry(ctx rweb.Context) error {
	session, ok := lookupSession(ctx)
	if !ok {
		return writeError(ctx, http.StatusNotFound, "session not found")
	}

	var input CountryInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}

	cc, err := models.ParseCountryCode(input.Country)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	session.Controller.ChangeCountry(cc)
	return writeSession(ctx, session, false)
}

// Search handles GET /api/v1/sessions/:sid/search?q=
// A failed upstream lookup is not an HTTP error: the state carries
// search_failed and the previous list stays.
func Search(ctx rweb.Context) error {
	session, ok := lookupSession(ctx)
	if !ok {
		return writeError(ctx, http.StatusNotFound, "session not found")
	}

	lookupCtx, cancel := lookupContext()
	defer cancel()

	session.Controller.Search(lookupCtx, ctx.Request().QueryParam("q"))
	return writeSession(ctx, session, false)
}

// Select handles POST /api/v1/sessions/:sid/selection
func Select(ctx rweb.Context) error {
	session, ok := lookupSession(ctx)
	if !ok {
		return writeError(ctx, http.StatusNotFound, "session not found")
	}

	var input SelectionInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if input.ID == "" {
		return writeError(ctx, http.StatusBadRequest, "id is required")
	}

	session.Controller.Select(models.Suggestion{ID: input.ID, Name: input.Name})
	return writeSession(ctx, session, false)
}

// RemoveSelection handles DELETE /api/v1/sessions/:sid/selection
func RemoveSelection(ctx rweb.Context) error {
	session, ok := lookupSession(ctx)
	if !ok {
		return writeError(ctx, http.StatusNotFound, "session not found")
	}

	session.Controller.RemoveSelection()
	return writeSession(ctx, session, false)
}

// CloseSession handles DELETE /api/v1/sessions/:sid
// field.js sends it when the widget page goes away. The stored value is
// not touched.
func CloseSession(ctx rweb.Context) error {
	if _, ok := lookupSession(ctx); !ok {
		return writeError(ctx, http.StatusNotFound, "session not found")
	}
	sessions.Close(ctx.Request().Param("sid"))
	return writeSuccess(ctx, http.StatusOK, nil)
}

// SessionPartial handles GET /partials/sessions/:sid and returns the widget
// body as HTML.
func SessionPartial(ctx rweb.Context) error {
	session, ok := lookupSession(ctx)
	if !ok {
		ctx.SetStatus(http.StatusNotFound)
		return nil
	}
	return ctx.WriteHTML(field.RenderBody(session.Controller.State()))
}

func lookupSession(ctx rweb.Context) (*models.FieldSession, bool) {
	if sessions == nil {
		logger.LogErr(serr.New("session registry not configured"), "session lookup")
		return nil, false
	}
	return sessions.Get(ctx.Request().Param("sid"))
}

func writeSession(ctx rweb.Context, session *models.FieldSession, withBody bool) error {
	state := session.Controller.State()
	out := SessionOutput{
		SessionID:     session.ID,
		State:         state,
		SelectionHTML: field.RenderSelection(state),
		ResultsHTML:   field.RenderResults(state),
	}
	if withBody {
		out.BodyHTML = field.RenderBody(state)
	}
	return writeSuccess(ctx, http.StatusOK, out)
}
