// Package tui drives a FieldController from the terminal. It is the same
// state machine the web widget uses, with a bubbletea front end in place of
// the browser.
package tui

import (
	"context"
	"strings"

	"contentfield/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pillStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// searchDoneMsg is sent when a Search call returns; the view re-reads state.
type searchDoneMsg struct{}

// Model is the bubbletea model around one controller.
type Model struct {
	entryID string
	ctrl    *models.FieldController
	input   textinput.Model
	cursor  int
}

// NewModel mounts a controller for entryID and wraps it.
func NewModel(fetcher models.SuggestionFetcher, store models.FieldStore, entryID string) Model {
	ctrl := models.NewFieldController(fetcher, store, &models.HeightRecorder{})
	ctrl.Mount()

	input := textinput.New()
	input.Placeholder = "Type to search"
	input.Focus()

	return Model{entryID: entryID, ctrl: ctrl, input: input}
}

// Run starts the interactive program and blocks until the user quits.
func Run(fetcher models.SuggestionFetcher, store models.FieldStore, entryID string) error {
	_, err := tea.NewProgram(NewModel(fetcher, store, entryID)).Run()
	return err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+t":
			m.ctrl.ChangeContentType(nextContentType(m.ctrl.State().ContentType))
			m.input.SetValue("")
			m.cursor = 0
			return m, nil

		case "ctrl+r":
			m.ctrl.ChangeCountry(nextCountry(m.ctrl.State().Country))
			return m, nil

		case "ctrl+x":
			m.ctrl.RemoveSelection()
			return m, nil

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down":
			if m.cursor < len(m.ctrl.State().Suggestions)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			suggestions := m.ctrl.State().Suggestions
			if m.cursor < len(suggestions) {
				m.ctrl.Select(suggestions[m.cursor])
				m.input.SetValue("")
				m.cursor = 0
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if query := m.input.Value(); query != before {
		m.cursor = 0
		return m, tea.Batch(cmd, m.searchCmd(query))
	}
	return m, cmd
}

// searchCmd runs the lookup off the update loop. The controller drops the
// result itself if a newer search has been issued by the time it lands.
func (m Model) searchCmd(query string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Search(context.Background(), query)
		return searchDoneMsg{}
	}
}

func (m *Model) clampCursor() {
	if n := len(m.ctrl.State().Suggestions); m.cursor >= n {
		m.cursor = 0
	}
}

// View implements tea.Model
func (m Model) View() string {
	state := m.ctrl.State()
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Entry "+m.entryID) + "\n\n")

	contentType := "Choose a value"
	if state.ContentType.IsSet() {
		contentType = string(state.ContentType)
	}
	sb.WriteString("Type:     " + contentType + "\n")
	sb.WriteString("Country:  " + string(state.Country) + "\n")

	if state.Selected != nil {
		sb.WriteString("Selected: " + pillStyle.Render(state.Selected.Name+" ("+state.Selected.ID+")") + "\n")
	} else {
		sb.WriteString("Selected: " + mutedStyle.Render("None") + "\n")
	}

	if state.ContentType.IsSet() {
		sb.WriteString("\n" + m.input.View() + "\n")

		if state.SearchFailed {
			sb.WriteString(noticeStyle.Render("Search failed, showing previous results") + "\n")
		}

		switch {
		case len(state.Suggestions) > 0:
			for i, s := range state.Suggestions {
				if i == m.cursor {
					sb.WriteString(cursorStyle.Render("> "+s.Name) + "\n")
				} else {
					sb.WriteString("  " + s.Name + "\n")
				}
			}
		case state.Query != "" && state.Searching && !state.SearchFailed:
			sb.WriteString(mutedStyle.Render("No result found") + "\n")
		default:
			sb.WriteString(mutedStyle.Render("Search by name") + "\n")
		}
	}

	if state.CommitError != "" {
		sb.WriteString(noticeStyle.Render("Save failed: "+state.CommitError) + "\n")
	}

	sb.WriteString("\n" + helpLineStyle.Render("ctrl+t type • ctrl+r country • ↑/↓ move • enter select • ctrl+x remove • esc quit"))
	return sb.String()
}

// nextContentType cycles unset -> CATEGORY -> ... -> BRAND -> unset.
func nextContentType(current models.ContentType) models.ContentType {
	for i, ct := range models.ContentTypes {
		if ct == current {
			if i+1 < len(models.ContentTypes) {
				return models.ContentTypes[i+1]
			}
			return ""
		}
	}
	return models.ContentTypes[0]
}

func nextCountry(current models.CountryCode) models.CountryCode {
	for i, cc := range models.CountryCodes {
		if cc == current {
			return models.CountryCodes[(i+1)%len(models.CountryCodes)]
		}
	}
	return models.DefaultCountryCode
}
