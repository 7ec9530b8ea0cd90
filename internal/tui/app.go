package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/cbueth/conjugateur-fr/internal/config"
	"github.com/cbueth/conjugateur-fr/internal/render"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

// activeView identifies the visible view.
type activeView int

const (
	viewSearch activeView = iota
	viewTable
)

// AppModel is the root bubbletea model.
type AppModel struct {
	store *verbdata.Store

	searchView SearchModel
	tableView  TableModel
	current    activeView

	showHelp bool
	err      error

	width  int
	height int
	ready  bool
}

// NewApp creates the root model over an opened dataset.
func NewApp(store *verbdata.Store, cfg *config.Config) AppModel {
	if cfg == nil {
		cfg = config.Default()
	}
	return AppModel{
		store:      store,
		searchView: NewSearchModel(store),
		tableView:  NewTableModel(cfg.Palette),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Global keys. Plain letters stay typable in the search
		// input, so only the table view quits on q.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "esc":
			if m.current == viewTable {
				m.current = viewSearch
				m.err = nil
				return m, nil
			}
			return m, tea.Quit
		case "q":
			if m.current == viewTable {
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - 4
		contentHeight := m.height - 4
		m.searchView.SetSize(contentWidth, contentHeight)
		m.tableView.SetSize(contentWidth, contentHeight)
		return m, nil

	case openVerbMsg:
		rec, ok := m.store.Lookup(msg.word)
		if !ok {
			m.err = fmt.Errorf("verbe introuvable : %s", msg.word)
			return m, nil
		}
		m.err = nil
		m.tableView.SetVerb(render.NewVerbView(rec))
		m.current = viewTable
		return m, nil
	}

	// Delegate to the active view
	var cmd tea.Cmd
	switch m.current {
	case viewTable:
		m.tableView, cmd = m.tableView.Update(msg)
	default:
		m.searchView, cmd = m.searchView.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Chargement..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := titleStyle.Render("Conjugateur") +
		verbCountStyle.Render(fmt.Sprintf("%d verbes", m.store.Len()))

	var body string
	switch m.current {
	case viewTable:
		body = m.tableView.View()
	default:
		body = m.searchView.View()
	}

	if m.err != nil {
		body = errorStyle.Render(wordWrap(m.err.Error(), m.width-6)) + "\n\n" + body
	}

	return contentStyle.Render(header + "\n\n" + body)
}

// wordWrap wraps text at word boundaries to fit the given width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		width = 60
	}

	var lines []string
	var current string

	for _, word := range strings.Fields(text) {
		if current == "" {
			current = word
			continue
		}
		if runewidth.StringWidth(current)+runewidth.StringWidth(word)+1 <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	headingStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSuccess).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(colorText)

	helpText := headingStyle.Render("Conjugateur français") + "\n\n"

	helpText += sectionStyle.Render("Touches globales") + "\n"
	helpText += keyStyle.Render("?") + descStyle.Render("Afficher cette aide") + "\n"
	helpText += keyStyle.Render("esc") + descStyle.Render("Retour / quitter") + "\n"
	helpText += keyStyle.Render("ctrl+c") + descStyle.Render("Quitter") + "\n"

	helpText += sectionStyle.Render("Recherche") + "\n"
	helpText += keyStyle.Render("↑/↓") + descStyle.Render("Choisir une suggestion") + "\n"
	helpText += keyStyle.Render("entrée") + descStyle.Render("Conjuguer le verbe") + "\n"

	helpText += sectionStyle.Render("Tableau") + "\n"
	helpText += keyStyle.Render("tab/←/→") + descStyle.Render("Changer de temps") + "\n"
	helpText += keyStyle.Render("c") + descStyle.Render("Copier le tableau") + "\n"
	helpText += keyStyle.Render("q") + descStyle.Render("Quitter") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(colorMuted).
		Italic(true).
		Render("Appuyez sur une touche pour fermer")

	helpBox := helpBoxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}

// Run opens the TUI over the dataset and blocks until the user quits.
func Run(store *verbdata.Store, cfg *config.Config) error {
	p := tea.NewProgram(NewApp(store, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
