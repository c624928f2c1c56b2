package field

import (
	"contentfield/models"

	"github.com/rohanthewiz/element"
)

// TypeSelect picks the content type. The empty option means "unset".
type TypeSelect struct {
	Current models.ContentType
}

// Render implements element.Component
func (t TypeSelect) Render(b *element.Builder) any {
	b.DivClass("field-row field-type").R(
		b.Select("class", "field-select", "id", "field-type", "name", "fieldType",
			"data-action", "type").R(
			b.Option(optionAttrs("", t.Current == "")...).T("Choose a value"),
			element.ForEach(models.ContentTypes, func(ct models.ContentType) {
				b.Option(optionAttrs(string(ct), ct == t.Current)...).T(string(ct))
			}),
		),
	)
	return nil
}

// optionAttrs builds <option> attributes, marking the current one selected.
func optionAttrs(value string, selected bool) []string {
	attrs := []string{"value", value}
	if selected {
		attrs = append(attrs, "selected", "selected")
	}
	return attrs
}
