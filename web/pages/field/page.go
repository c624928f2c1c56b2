// Package field renders the content-type link widget: the full page the
// host frame loads and the fragments swapped in as the editor interacts.
package field

import (
	"strconv"

	"contentfield/models"

	"github.com/rohanthewiz/element"
)

// Page is the document served into the host's field iframe.
type Page struct {
	Title     string
	SessionID string
	State     models.FieldState
}

// NewPage creates the widget page for a mounted session.
func NewPage(sessionID string, state models.FieldState) Page {
	return Page{
		Title:     "Content type",
		SessionID: sessionID,
		State:     state,
	}
}

// Render generates the complete HTML for the widget page
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(p.Title),
			b.Link("rel", "stylesheet", "href", "/static/css/field.css?v=1"),
		),
		b.Body().R(
			b.Div("class", "field-app", "id", "field-app",
				"data-session", p.SessionID,
				"data-height", strconv.Itoa(p.State.Height)).R(
				b.PClass("field-help").T(
					"Select a type this content piece belongs to, then link it to one ID by searching below. "+
						"Changing country lets you search for country specific IDs."),
				element.RenderComponents(b, Body{State: p.State}),
			),
			b.Script("src", "/static/js/field.js?v=1").R(),
		),
	)

	return b.String()
}

// Body is the swappable part of the widget. It is re-rendered whenever the
// content type changes, since that decides whether the search row exists.
type Body struct {
	State models.FieldState
}

// Render implements element.Component
func (w Body) Render(b *element.Builder) any {
	b.Div("class", "field-body", "id", "field-body").R(
		element.RenderComponents(b,
			TypeSelect{Current: w.State.ContentType},
			Selection{Selected: w.State.Selected},
		),
		b.Wrap(func() {
			if w.State.ContentType.IsSet() {
				element.RenderComponents(b, SearchRow{State: w.State})
			}
		}),
	)
	return nil
}

// RenderBody returns the widget body as an HTML fragment.
func RenderBody(state models.FieldState) string {
	b := element.NewBuilder()
	element.RenderComponents(b, Body{State: state})
	return b.String()
}
