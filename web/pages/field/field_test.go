package field

import (
	"regexp"
	"strings"
	"testing"

	"contentfield/models"
)

func TestRenderSelection(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		html := RenderSelection(models.FieldState{})
		if !strings.Contains(html, "None") {
			t.Errorf("expected None pill, got %s", html)
		}
		if strings.Contains(html, `data-action="remove"`) {
			t.Error("None pill must not be removable")
		}
	})

	t.Run("selected", func(t *testing.T) {
		html := RenderSelection(models.FieldState{Selected: &models.Suggestion{ID: "42", Name: "Acme"}})
		if !strings.Contains(html, "Acme (42)") {
			t.Errorf("expected pill label, got %s", html)
		}
		if !strings.Contains(html, `data-action="remove"`) {
			t.Error("expected remove control on the pill")
		}
	})

	t.Run("markup stripped", func(t *testing.T) {
		html := RenderSelection(models.FieldState{Selected: &models.Suggestion{ID: "1", Name: `<script>alert(1)</script>Acme`}})
		if strings.Contains(html, "<script>") {
			t.Errorf("remote markup leaked into the page: %s", html)
		}
	})
}

func TestRenderResultsMessages(t *testing.T) {
	tests := []struct {
		name  string
		state models.FieldState
		want  string
	}{
		{"no query", models.FieldState{}, EmptyListMessage},
		{"searched, nothing found", models.FieldState{Query: "zzz", Searching: true}, NoMatchesMessage},
		{"failed search", models.FieldState{Query: "zzz", Searching: true, SearchFailed: true}, SearchFailedNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := RenderResults(tt.state)
			if !strings.Contains(html, tt.want) {
				t.Errorf("expected %q in %s", tt.want, html)
			}
		})
	}
}

func TestRenderResultsList(t *testing.T) {
	state := models.FieldState{
		Query:     "ph",
		Searching: true,
		Suggestions: []models.Suggestion{
			{ID: "/e/phones", Name: "Electronics - Phones"},
			{ID: "c2", Name: "Laptops"},
		},
	}

	html := RenderResults(state)
	if got := strings.Count(html, `data-action="select"`); got != 2 {
		t.Errorf("expected 2 selectable rows, got %d", got)
	}
	if !strings.Contains(html, `data-id="/e/phones"`) {
		t.Errorf("expected row id attribute, got %s", html)
	}
	if strings.Contains(html, EmptyListMessage) || strings.Contains(html, NoMatchesMessage) {
		t.Error("no empty-list message while there are results")
	}
}

var optionTag = regexp.MustCompile(`<option[^>]*>`)

// hasSelectedOption reports whether one <option> tag carries both the value
// and the selected marker. Attribute order is not fixed.
func hasSelectedOption(html, value string) bool {
	for _, tag := range optionTag.FindAllString(html, -1) {
		if strings.Contains(tag, `value="`+value+`"`) && strings.Contains(tag, `selected="selected"`) {
			return true
		}
	}
	return false
}

func TestRenderBody(t *testing.T) {
	unset := RenderBody(models.FieldState{Country: models.CountrySE})
	if strings.Contains(unset, "field-query") {
		t.Error("search row must not render without a content type")
	}
	if !strings.Contains(unset, "Choose a value") {
		t.Error("expected the unset type option")
	}

	set := RenderBody(models.FieldState{ContentType: models.ContentTypeBrand, Country: models.CountryDK})
	if !strings.Contains(set, "field-query") {
		t.Error("expected the search row once a type is chosen")
	}
	if !hasSelectedOption(set, "BRAND") {
		t.Errorf("expected BRAND to be selected, got %s", set)
	}
	if !hasSelectedOption(set, "DK") {
		t.Errorf("expected DK to be selected, got %s", set)
	}
	if hasSelectedOption(set, "SE") {
		t.Error("only the current country should be selected")
	}
}

func TestPageRender(t *testing.T) {
	html := NewPage("sess-1", models.FieldState{Height: 250}).Render()

	for _, want := range []string{
		`data-session="sess-1"`,
		`data-height="250"`,
		"/static/js/field.js",
		"/static/css/field.css",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in page", want)
		}
	}
}
