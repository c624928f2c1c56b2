package field

import (
	"contentfield/models"

	"github.com/rohanthewiz/element"
)

// SearchRow holds the query input, its result list and the country picker.
// It only exists once a content type is chosen.
type SearchRow struct {
	State models.FieldState
}

// Render implements element.Component
func (s SearchRow) Render(b *element.Builder) any {
	b.DivClass("field-row field-search").R(
		b.DivClass("field-autocomplete").R(
			b.Input("type", "text", "class", "field-query", "id", "field-query",
				"placeholder", "Type to search",
				"value", clean(s.State.Query),
				"autocomplete", "off",
				"data-action", "search"),
			element.RenderComponents(b, Results{State: s.State}),
		),
		b.DivClass("field-country").R(
			b.Select("class", "field-select", "id", "field-country", "name", "selectedCountryCode",
				"data-action", "country").R(
				element.ForEach(models.CountryCodes, func(cc models.CountryCode) {
					b.Option(optionAttrs(string(cc), cc == s.State.Country)...).T(string(cc))
				}),
			),
		),
	)
	return nil
}
