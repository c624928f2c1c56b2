package field

import (
	"contentfield/models"

	"github.com/rohanthewiz/element"
)

// Selection shows the current pick as a removable pill, or a "None" pill.
type Selection struct {
	Selected *models.Suggestion
}

// Render implements element.Component
func (s Selection) Render(b *element.Builder) any {
	b.Div("class", "field-selection", "id", "field-selection").R(
		b.DivClass("field-card").R(
			b.Wrap(func() {
				if s.Selected == nil || s.Selected.ID == "" {
					b.SpanClass("pill pill-deleted").T("None")
					return
				}
				b.SpanClass("pill", "data-id", clean(s.Selected.ID)).R(
					b.SpanClass("pill-label").T(clean(s.Selected.Name)+" ("+clean(s.Selected.ID)+")"),
					b.ButtonClass("pill-close", "type", "button", "title", "Remove",
						"data-action", "remove").T("×"),
				)
			}),
		),
	)
	return nil
}

// RenderSelection returns the selection region as an HTML fragment.
func RenderSelection(state models.FieldState) string {
	b := element.NewBuilder()
	element.RenderComponents(b, Selection{Selected: state.Selected})
	return b.String()
}
