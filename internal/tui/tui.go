// Package tui is the interactive packing list. Every key press is one event:
// it mutates the list (which persists itself) and the visible rows and stats
// are recomputed from scratch.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/packlist/internal/model"
	"github.com/idilsaglam/packlist/internal/packing"
	"github.com/idilsaglam/packlist/internal/ui"
)

// EmptyMessage is shown instead of the list when nothing is visible.
const EmptyMessage = "No items found. Add items using the form above."

type inputMode int

const (
	browsing inputMode = iota
	adding
	filtering
)

// row adapts model.Item to bubbles/list.Item
type row struct{ item model.Item }

func (r row) Title() string       { return r.item.Description }
func (r row) Description() string { return "" }
func (r row) FilterValue() string { return r.item.Description }

// Custom delegate to control how items render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	r, _ := li.(row)
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := r.item.Description
	status := t.Muted.Render("not packed")
	if r.item.Packed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
		status = t.Muted.Render("packed")
	}
	qty := t.Accent.Render(fmt.Sprintf("x%d", r.item.Quantity))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s %s  %s", prefix, box, text, qty, status)
}

// Model is the bubbletea model for the interactive list.
type Model struct {
	ctx   context.Context
	items *packing.List
	gen   model.IDGenerator

	rows   list.Model
	sort   packing.SortMode
	filter textinput.Model

	mode     inputMode
	desc     textinput.Model
	qty      textinput.Model
	focusQty bool

	width, height int
	err           error
}

var (
	toggleKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	filterKey = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	sortKey   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort"))
	clearKey  = key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all"))
	packedKey = key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "remove packed"))
	quitKey   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// New builds the model over an open list.
func New(ctx context.Context, items *packing.List, gen model.IDGenerator) Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = "My Travel List"
	l.SetShowHelp(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding {
		return []key.Binding{toggleKey, deleteKey, addKey, filterKey, sortKey, clearKey, packedKey, quitKey}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "Search items..."

	desc := textinput.New()
	desc.Prompt = "> "
	desc.Placeholder = "e.g. Toothbrush, Charger, Passport"
	desc.CharLimit = 200

	qty := textinput.New()
	qty.Prompt = "x "
	qty.CharLimit = 6
	qty.Validate = digitsOnly

	m := Model{
		ctx:    ctx,
		items:  items,
		gen:    gen,
		rows:   l,
		filter: filter,
		desc:   desc,
		qty:    qty,
		width:  80,
		height: 24,
	}
	m.rows.SetSize(m.width-4, m.height-8)
	m.resetForm()
	m.refresh()
	return m
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("quantity must be a number")
		}
	}
	return nil
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, items *packing.List, gen model.IDGenerator) error {
	p := tea.NewProgram(New(ctx, items, gen), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fmt.Errorf("sync: %w", fm.err)
	}
	return nil
}

// Visible returns the rows currently shown.
func (m Model) Visible() []model.Item {
	out := make([]model.Item, 0, len(m.rows.Items()))
	for _, li := range m.rows.Items() {
		if r, ok := li.(row); ok {
			out = append(out, r.item)
		}
	}
	return out
}

// refresh recomputes the visible rows from the list, filter and sort mode.
func (m *Model) refresh() {
	shown := packing.VisibleItems(m.items.Items(), m.filter.Value(), m.sort)
	li := make([]list.Item, len(shown))
	for i, it := range shown {
		li[i] = row{item: it}
	}
	idx := m.rows.Index()
	m.rows.SetItems(li)
	if idx >= len(li) {
		idx = len(li) - 1
	}
	if idx >= 0 {
		m.rows.Select(idx)
	}
	if err := m.items.SyncErr(); err != nil {
		m.err = err
	}
}

func (m *Model) resetForm() {
	m.desc.SetValue("")
	m.qty.SetValue("1")
	m.focusQty = false
}

func (m Model) selected() (model.Item, bool) {
	r, ok := m.rows.SelectedItem().(row)
	return r.item, ok
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.rows.SetSize(max(10, m.width-4), max(3, m.height-8))
		return m, nil
	}

	switch m.mode {
	case adding:
		return m.updateAdding(msg)
	case filtering:
		return m.updateFiltering(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, quitKey), km.String() == "esc":
		return m, tea.Quit
	case key.Matches(km, toggleKey):
		if it, ok := m.selected(); ok {
			m.items.Toggle(m.ctx, it.ID)
			m.refresh()
		}
		return m, nil
	case key.Matches(km, deleteKey):
		if it, ok := m.selected(); ok {
			m.items.Delete(m.ctx, it.ID)
			m.refresh()
		}
		return m, nil
	case key.Matches(km, clearKey):
		m.items.ClearAll(m.ctx)
		m.refresh()
		return m, nil
	case key.Matches(km, packedKey):
		m.items.ClearPacked(m.ctx)
		m.refresh()
		return m, nil
	case key.Matches(km, sortKey):
		m.sort = m.sort.Next()
		m.refresh()
		return m, nil
	case key.Matches(km, addKey):
		m.mode = adding
		m.resetForm()
		m.qty.Blur()
		return m, m.desc.Focus()
	case key.Matches(km, filterKey):
		m.mode = filtering
		return m, m.filter.Focus()
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			form := packing.Form{Description: m.desc.Value(), Quantity: m.qty.Value()}
			if !form.Submit(m.ctx, m.items, m.gen) {
				return m, nil
			}
			m.resetForm()
			m.desc.Blur()
			m.qty.Blur()
			m.mode = browsing
			m.rows.Select(0)
			m.refresh()
			return m, nil
		case "esc":
			m.resetForm()
			m.desc.Blur()
			m.qty.Blur()
			m.mode = browsing
			return m, nil
		case "tab", "shift+tab":
			m.focusQty = !m.focusQty
			if m.focusQty {
				m.desc.Blur()
				return m, m.qty.Focus()
			}
			m.qty.Blur()
			return m, m.desc.Focus()
		}
	}
	var cmd tea.Cmd
	if m.focusQty {
		m.qty, cmd = m.qty.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

func (m Model) updateFiltering(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			m.filter.Blur()
			m.mode = browsing
			return m, nil
		case "esc":
			m.filter.SetValue("")
			m.filter.Blur()
			m.mode = browsing
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) View() string {
	t := ui.Current()

	var footer []string
	if m.mode == adding {
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		footer = append(footer, bar.Render("Add item (tab switches field)\n"+m.desc.View()+"\n"+m.qty.View()))
	}
	if m.mode == filtering || m.filter.Value() != "" {
		footer = append(footer, m.filter.View())
	}
	footer = append(footer, t.Muted.Render("sort: "+m.sort.String()))
	footer = append(footer, m.statsLine())
	if m.err != nil {
		footer = append(footer, t.Error.Render("✖ sync: "+m.err.Error()))
	}

	listHeight := max(3, m.height-2-lipgloss.Height(strings.Join(footer, "\n")))
	m.rows.SetSize(max(10, m.width-4), listHeight)

	body := m.rows.View()
	if len(m.rows.Items()) == 0 {
		body = t.Title.Render(m.rows.Title) + "\n\n" + t.Muted.Render(EmptyMessage)
	}
	return ui.Panel(append([]string{body, ""}, footer...))
}

func (m Model) statsLine() string {
	t := ui.Current()
	s := packing.ComputeStats(m.items.Items())
	return fmt.Sprintf("%s %d  %s %d  %s  %s",
		t.Accent.Render("Total"), s.Total,
		t.Success.Render("Packed"), s.Packed,
		t.Muted.Render(ui.ProgressBar(s.Percent, 20)),
		t.Title.Render(fmt.Sprintf("%d%% done", s.Percent)),
	)
}
