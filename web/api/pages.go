package api

import (
	"net/http"

	"contentfield/models"
	"contentfield/web/pages/field"

	"github.com/rohanthewiz/rweb"
)

// FieldPage handles GET /field?token=...[&country=DK]
// Opens a session for the token's entry, mounts it against the stored value
// and serves the widget page.
func FieldPage(ctx rweb.Context) error {
	ctx.Response().SetHeader("Content-Type", "text/html; charset=utf-8")

	entryID, _ := ctx.Get("entry_id").(string)
	if entryID == "" {
		ctx.SetStatus(http.StatusUnauthorized)
		return ctx.WriteHTML("<p>A valid field token is required.</p>")
	}
	if sessions == nil {
		ctx.SetStatus(http.StatusServiceUnavailable)
		return ctx.WriteHTML("<p>Field sessions are not available.</p>")
	}

	// The host may open the field in a market other than the default
	var opts []models.FieldControllerOption
	if raw := ctx.Request().QueryParam("country"); raw != "" {
		cc, err := models.ParseCountryCode(raw)
		if err != nil {
			ctx.SetStatus(http.StatusBadRequest)
			return ctx.WriteHTML("<p>Unknown country code.</p>")
		}
		opts = append(opts, models.WithCountry(cc))
	}

	session := sessions.Open(entryID, opts...)
	return ctx.WriteHTML(field.NewPage(session.ID, session.Controller.State()).Render())
}
