package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cbueth/conjugateur-fr/internal/clipboard"
	"github.com/cbueth/conjugateur-fr/internal/config"
	"github.com/cbueth/conjugateur-fr/internal/render"
)

// clearCopiedMsg clears the transient copied notice.
type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// TableModel shows the conjugation table of one verb, with a tab per
// tense plus an all-tenses tab.
type TableModel struct {
	renderer *render.TermRenderer
	view     *render.VerbView
	tab      int // index into view.Tenses, len(view.Tenses) shows all

	copied  bool
	copyErr error
	canCopy bool

	width  int
	height int
}

// NewTableModel creates a new table view model.
func NewTableModel(palette config.Palette) TableModel {
	return TableModel{
		renderer: render.NewTermRenderer(palette),
		canCopy:  clipboard.Available(),
	}
}

// SetVerb replaces the displayed verb and resets the tab to all tenses.
func (m *TableModel) SetVerb(view *render.VerbView) {
	m.view = view
	m.tab = len(view.Tenses)
	m.copied = false
	m.copyErr = nil
}

// SetSize updates the view dimensions.
func (m *TableModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m TableModel) Update(msg tea.Msg) (TableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.view == nil {
			return m, nil
		}
		switch msg.String() {
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % (len(m.view.Tenses) + 1)
			return m, nil
		case "shift+tab", "left", "h":
			m.tab--
			if m.tab < 0 {
				m.tab = len(m.view.Tenses)
			}
			return m, nil
		case "c", "y":
			if err := clipboard.Copy(render.PlainText(m.subView())); err != nil {
				m.copyErr = err
				return m, nil
			}
			m.copyErr = nil
			m.copied = true
			return m, clearCopiedAfter(2 * time.Second)
		}

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	return m, nil
}

// subView is the verb view restricted to the active tab.
func (m TableModel) subView() *render.VerbView {
	if m.tab >= len(m.view.Tenses) {
		return m.view
	}
	sub := *m.view
	sub.Tenses = m.view.Tenses[m.tab : m.tab+1]
	return &sub
}

// View renders the table view.
func (m TableModel) View() string {
	if m.view == nil {
		return helpStyle.Render("Aucun verbe sélectionné")
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderer.Render(m.subView()))
	b.WriteString("\n")

	if m.copied {
		b.WriteString(copiedStyle.Render("Copié !"))
		b.WriteString("\n")
	} else if m.copyErr != nil {
		b.WriteString(errorStyle.Render(m.copyErr.Error()))
		b.WriteString("\n")
	}
	help := "tab/←/→: temps • esc: retour"
	if m.canCopy {
		help = "tab/←/→: temps • c: copier • esc: retour"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m TableModel) renderTabs() string {
	tabs := make([]string, 0, len(m.view.Tenses)+1)
	for i, tv := range m.view.Tenses {
		label := tv.Tense.French()
		if i == m.tab {
			tabs = append(tabs, tenseTabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tenseTabStyle.Render(label))
		}
	}
	if m.tab >= len(m.view.Tenses) {
		tabs = append(tabs, tenseTabActiveStyle.Render("Tous"))
	} else {
		tabs = append(tabs, tenseTabStyle.Render("Tous"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
