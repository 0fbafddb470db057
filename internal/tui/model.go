// Package tui is the terminal front end of the gallery.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mtlprog/sqlgallery/internal/catalog"
	"github.com/mtlprog/sqlgallery/internal/copier"
	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/gallery"
	"github.com/mtlprog/sqlgallery/internal/service"
)

// CardCopier runs fetch-and-copy for a card.
type CardCopier interface {
	CopyCard(ctx context.Context, cardID, source string, cb copier.Clipboard) (*domain.CopyEvent, error)
}

// copyResultMsg carries the completion of an asynchronous copy.
type copyResultMsg struct {
	cardID string
	title  string
	event  *domain.CopyEvent
	err    error
}

// Model is the bubbletea model of the gallery browser.
type Model struct {
	ctx       context.Context
	cancel    context.CancelFunc
	catalog   *domain.Catalog
	selector  *gallery.Selector
	copier    CardCopier
	clipboard copier.Clipboard

	cursor    int
	search    textinput.Model
	searching bool
	results   []catalog.Match

	pending   int
	status    string
	statusErr bool

	help   help.Model
	keys   keyMap
	width  int
	height int
}

// New creates a Model positioned on the first tab. Copies started from the
// model are bound to ctx and abandoned when the user quits.
func New(ctx context.Context, cat *domain.Catalog, c CardCopier, cb copier.Clipboard) Model {
	ctx, cancel := context.WithCancel(ctx)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search cards"
	ti.CharLimit = 64

	return Model{
		ctx:       ctx,
		cancel:    cancel,
		catalog:   cat,
		selector:  gallery.NewSelector(cat, 0),
		copier:    c,
		clipboard: cb,
		search:    ti,
		help:      help.New(),
		keys:      keys,
		status:    "Ready",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case copyResultMsg:
		return m.handleCopyResult(msg), nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.selector.Next()
		m.clearSearch()
		m.cursor = 0

	case key.Matches(msg, m.keys.PrevTab):
		m.selector.Prev()
		m.clearSearch()
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cards())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Copy):
		return m.startCopy()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Cancel):
		m.clearSearch()
		m.cursor = 0

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.cancel()
		return m, tea.Quit
	case tea.KeyEsc:
		m.clearSearch()
		m.cursor = 0
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.results = catalog.Search(m.catalog, m.search.Value(), 0)
	m.cursor = 0
	return m, cmd
}

func (m *Model) clearSearch() {
	m.searching = false
	m.search.Blur()
	m.search.Reset()
	m.results = nil
}

// filtering reports whether the list shows search results instead of the active tab.
func (m Model) filtering() bool {
	return strings.TrimSpace(m.search.Value()) != ""
}

// cards returns the cards currently listed.
func (m Model) cards() []domain.Card {
	if m.filtering() {
		out := make([]domain.Card, len(m.results))
		for i, r := range m.results {
			out[i] = r.Card
		}
		return out
	}
	cards, err := m.catalog.Cards(m.selector.Active())
	if err != nil {
		return nil
	}
	return cards
}

func (m Model) selected() (domain.Card, bool) {
	cards := m.cards()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return domain.Card{}, false
	}
	return cards[m.cursor], true
}

func (m Model) startCopy() (tea.Model, tea.Cmd) {
	card, ok := m.selected()
	if !ok {
		return m, nil
	}
	if !card.HasRawContent() {
		m.statusErr = false
		if card.HasLink() {
			m.status = fmt.Sprintf("%s has no script, see %s", card.Title, card.LinkURL)
		} else {
			m.status = fmt.Sprintf("%s has no script", card.Title)
		}
		return m, nil
	}

	m.pending++
	m.statusErr = false
	m.status = fmt.Sprintf("Copying %s…", card.Title)
	return m, copyCmd(m.ctx, m.copier, m.clipboard, card)
}

func copyCmd(ctx context.Context, c CardCopier, cb copier.Clipboard, card domain.Card) tea.Cmd {
	return func() tea.Msg {
		event, err := c.CopyCard(ctx, card.ID, service.SourceTUI, cb)
		return copyResultMsg{cardID: card.ID, title: card.Title, event: event, err: err}
	}
}

func (m Model) handleCopyResult(msg copyResultMsg) Model {
	if m.pending > 0 {
		m.pending--
	}
	if errors.Is(msg.err, context.Canceled) {
		return m
	}
	if msg.err != nil {
		m.statusErr = true
		m.status = fmt.Sprintf("Copy of %s failed: %v", msg.title, msg.err)
		return m
	}

	m.statusErr = false
	n := 0
	if msg.event != nil {
		n = msg.event.Bytes
	}
	m.status = fmt.Sprintf("Copied %s (%d bytes) at %s", msg.title, n, time.Now().Format("15:04:05"))
	return m
}

// Active returns the active tab name.
func (m Model) Active() string {
	return m.selector.Active()
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SQL Gallery"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.searching || m.filtering() {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderTabs() string {
	names := m.selector.Names()
	tabs := make([]string, len(names))
	for i, name := range names {
		cards, _ := m.catalog.Cards(name)
		label := fmt.Sprintf("%s %d", name, len(cards))
		if name == m.selector.Active() && !m.filtering() {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderCards() string {
	cards := m.cards()
	if len(cards) == 0 {
		if m.filtering() {
			return emptyStyle.Render("No matching cards")
		}
		return emptyStyle.Render("No cards")
	}

	var b strings.Builder
	for i, card := range cards {
		marker := "  "
		style := cardTitleStyle
		if i == m.cursor {
			marker = "> "
			style = selectedCardStyle
		}
		b.WriteString(marker)
		b.WriteString(style.Render(card.Title))
		if !card.HasRawContent() {
			b.WriteString(cardMetaStyle.Render("  (link)"))
		}
		b.WriteString("\n")
		if summary := firstLine(card.Content); summary != "" {
			b.WriteString("    ")
			b.WriteString(cardMetaStyle.Render(summary))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderStatus() string {
	var line string
	switch {
	case m.statusErr:
		line = statusErrorStyle.Render(m.status)
	case strings.HasPrefix(m.status, "Copied"):
		line = statusOKStyle.Render(m.status)
	default:
		line = statusStyle.Render(m.status)
	}
	if s := pendingLabel(m.pending); s != "" {
		line += " " + cardMetaStyle.Render(s)
	}
	return line
}

func pendingLabel(n int) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return "(1 copy in flight)"
	default:
		return fmt.Sprintf("(%d copies in flight)", n)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
