package field

import (
	"contentfield/models"

	"github.com/rohanthewiz/element"
)

// Messages shown in place of an empty result list
const (
	EmptyListMessage   = "Search by name"
	NoMatchesMessage   = "No result found"
	SearchFailedNotice = "Search failed, showing previous results"
)

// Results lists the current suggestions. Each row carries the suggestion in
// data attributes; field.js posts it back when clicked.
type Results struct {
	State models.FieldState
}

// Render implements element.Component
func (r Results) Render(b *element.Builder) any {
	b.Div("class", "field-results", "id", "field-results").R(
		b.Wrap(func() {
			if r.State.SearchFailed {
				b.PClass("field-notice").T(SearchFailedNotice)
			}

			if len(r.State.Suggestions) == 0 {
				msg := EmptyListMessage
				if r.State.Query != "" && r.State.Searching && !r.State.SearchFailed {
					msg = NoMatchesMessage
				}
				b.PClass("field-empty").T(msg)
				return
			}

			b.UlClass("field-options").R(
				element.ForEach(r.State.Suggestions, func(s models.Suggestion) {
					b.Li("class", "field-option",
						"data-id", clean(s.ID),
						"data-name", clean(s.Name),
						"data-action", "select").R(
						b.Span().T(clean(s.Name)),
					)
				}),
			)
		}),
	)
	return nil
}

// RenderResults returns the result list as an HTML fragment.
func RenderResults(state models.FieldState) string {
	b := element.NewBuilder()
	element.RenderComponents(b, Results{State: state})
	return b.String()
}
