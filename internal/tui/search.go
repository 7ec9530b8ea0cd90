package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/cbueth/conjugateur-fr/internal/colorize"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

const suggestionLimit = 12

// openVerbMsg asks the app to open the conjugation table for a verb.
type openVerbMsg struct {
	word string
}

func openVerb(word string) tea.Cmd {
	return func() tea.Msg {
		return openVerbMsg{word: word}
	}
}

// SearchModel is the verb search view: a text input with live prefix
// suggestions from the dataset, most common verbs first.
type SearchModel struct {
	input       textinput.Model
	store       *verbdata.Store
	suggestions []string
	selected    int

	width  int
	height int
}

// NewSearchModel creates a new search view model.
func NewSearchModel(store *verbdata.Store) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Tapez un infinitif..."
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 32
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorPrimary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorAccent)

	m := SearchModel{input: ti, store: store}
	m.suggestions = store.Suggest("", suggestionLimit)
	return m
}

// SetSize updates the view dimensions.
func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "ctrl+n":
			if m.selected < len(m.suggestions)-1 {
				m.selected++
			}
			return m, nil
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "enter":
			word := strings.TrimSpace(m.input.Value())
			if m.selected < len(m.suggestions) {
				word = m.suggestions[m.selected]
			}
			if word == "" {
				return m, nil
			}
			return m, openVerb(word)
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.selected = 0
		m.suggestions = m.store.Suggest(strings.TrimSpace(m.input.Value()), suggestionLimit)
	}
	return m, cmd
}

// View renders the search view.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(searchBoxStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.suggestions) == 0 {
		b.WriteString(helpStyle.Render("Aucun verbe ne correspond"))
		b.WriteString("\n")
	}
	for i, word := range m.suggestions {
		line := runewidth.FillRight(word, 24)
		if rec, ok := m.store.Lookup(word); ok {
			line += colorize.DisplayMarker(rec.Irregularity)
		}
		if i == m.selected {
			b.WriteString(suggestionActiveStyle.Render(line))
		} else {
			b.WriteString(suggestionStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: choisir • entrée: conjuguer • esc: quitter"))
	return b.String()
}
