package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/barysiuk/claudesync/internal/core"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("cancelled")

const (
	defaultSelectWidth = 80
	maxSelectRows      = 15

	// title, page dots, selection count and help line
	selectChromeLines = 4
)

// Option is one selectable row: an item to sync or an MCP server.
type Option struct {
	ID     string
	Label  string
	Hint   string
	Status core.ComparisonStatus // empty for MCP servers
}

// BuildOptions turns comparisons and pending MCP server names into rows.
// Only new and modified items are offered.
func BuildOptions(comparisons []core.Comparison, mcpNames []string) []Option {
	var opts []Option
	for _, c := range comparisons {
		if !c.Selectable() {
			continue
		}
		hint := string(c.Item.Kind)
		if c.LinkedItem != nil {
			hint += " (will link to existing)"
		}
		label := c.Item.DisplayName
		if label == "" {
			label = c.Item.Name
		}
		opts = append(opts, Option{ID: c.Item.ID, Label: label, Hint: hint, Status: c.Status})
	}
	for _, name := range mcpNames {
		opts = append(opts, Option{ID: "mcp:" + name, Label: name, Hint: "MCP server"})
	}
	return opts
}

// optionItem wraps an Option for the bubbles list.
type optionItem struct {
	opt      Option
	selected bool
}

func (i optionItem) FilterValue() string { return i.opt.Label }

// optionDelegate renders rows as: > [x] ● label  hint
// Single-choice lists drop the checkbox.
type optionDelegate struct {
	single bool
}

func (d optionDelegate) Height() int                             { return 1 }
func (d optionDelegate) Spacing() int                            { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(optionItem)
	if !ok {
		return
	}

	isCursor := index == m.Index()
	indicator := "  "
	if isCursor {
		indicator = "> "
	}

	check := "[ ] "
	switch {
	case d.single:
		check = ""
	case it.selected:
		check = checkStyle.Render("[x]") + " "
	}

	badge := infoStyle.Render("●")
	if it.opt.Status != "" {
		badge = statusBadge(it.opt.Status)
	}

	label := normalItemStyle.Render(it.opt.Label)
	if isCursor {
		label = selectedItemStyle.Render(it.opt.Label)
	}

	line := indicator + check + badge + " " + label
	if it.opt.Hint != "" {
		line += "  " + mutedStyle.Render(it.opt.Hint)
	}
	if width := m.Width(); width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	_, _ = fmt.Fprint(w, line)
}

// SelectModel is a multi-select list. Every row starts selected. In
// single-choice mode Enter picks the row under the cursor.
type SelectModel struct {
	title  string
	single bool
	list   list.Model
	help   help.Model

	done      bool
	cancelled bool
}

// NewSelectModel creates a selector headed by title.
func NewSelectModel(title string, options []Option) SelectModel {
	return newSelectModel(title, options, false)
}

// NewChooseModel creates a single-choice selector headed by title.
func NewChooseModel(title string, options []Option) SelectModel {
	return newSelectModel(title, options, true)
}

func newSelectModel(title string, options []Option, single bool) SelectModel {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = optionItem{opt: opt, selected: !single}
	}

	l := list.New(items, optionDelegate{single: single}, defaultSelectWidth, listHeight(len(options), 0))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return SelectModel{title: title, single: single, list: l, help: help.New()}
}

// listHeight fits the rows into the terminal, leaving room for the chrome.
// Page dots are rendered by View, outside the list.
func listHeight(rows, termHeight int) int {
	h := min(rows, maxSelectRows)
	if termHeight > selectChromeLines {
		h = min(h, termHeight-selectChromeLines)
	}
	return max(1, h)
}

func (m SelectModel) Init() tea.Cmd { return nil }

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, listHeight(len(m.list.Items()), msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.single && (key.Matches(msg, keys.Toggle) || key.Matches(msg, keys.ToggleAll)):
			return m, nil

		case key.Matches(msg, keys.Toggle):
			it, ok := m.list.SelectedItem().(optionItem)
			if !ok {
				return m, nil
			}
			it.selected = !it.selected
			cmd := m.list.SetItem(m.list.Index(), it)
			return m, cmd

		case key.Matches(msg, keys.ToggleAll):
			return m, m.toggleAll()

		case key.Matches(msg, keys.Enter):
			if m.single {
				it, ok := m.list.SelectedItem().(optionItem)
				if !ok {
					return m, nil
				}
				it.selected = true
				m.list.SetItem(m.list.Index(), it)
			}
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleAll selects every row, or clears them all when all are selected.
func (m *SelectModel) toggleAll() tea.Cmd {
	items := m.list.Items()
	target := !m.allSelected()
	updated := make([]list.Item, len(items))
	for i, item := range items {
		it := item.(optionItem)
		it.selected = target
		updated[i] = it
	}
	return m.list.SetItems(updated)
}

func (m SelectModel) allSelected() bool {
	for _, item := range m.list.Items() {
		if !item.(optionItem).selected {
			return false
		}
	}
	return true
}

func (m SelectModel) View() string {
	selected := len(m.Selected())
	total := len(m.list.Items())

	if m.cancelled {
		return m.title + " " + mutedStyle.Render("cancelled") + "\n"
	}
	if m.done && m.single {
		return fmt.Sprintf("%s %s\n", m.title, mutedStyle.Render(strings.Join(m.Selected(), "")))
	}
	if m.done {
		return fmt.Sprintf("%s %s\n", m.title, mutedStyle.Render(fmt.Sprintf("%d selected", selected)))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.list.View() + "\n")
	if m.list.Paginator.TotalPages > 1 {
		b.WriteString("  " + m.list.Paginator.View() + "\n")
	}
	if m.single {
		b.WriteString("  " + m.help.View(chooseHelpKeyMap{}) + "\n")
		return b.String()
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d of %d selected", selected, total)) + "\n")
	b.WriteString("  " + m.help.View(selectHelpKeyMap{}) + "\n")
	return b.String()
}

// Selected returns the ids of the selected rows in display order.
func (m SelectModel) Selected() []string {
	var ids []string
	for _, item := range m.list.Items() {
		if it := item.(optionItem); it.selected {
			ids = append(ids, it.opt.ID)
		}
	}
	return ids
}

// Cancelled reports whether the user backed out.
func (m SelectModel) Cancelled() bool { return m.cancelled }

// RunSelect shows the selector on the given streams and returns the chosen ids.
func RunSelect(title string, options []Option, in io.Reader, out io.Writer) ([]string, error) {
	p := tea.NewProgram(NewSelectModel(title, options), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running selector: %w", err)
	}
	m := final.(SelectModel)
	if m.Cancelled() {
		return nil, ErrCancelled
	}
	return m.Selected(), nil
}

// RunChoose shows a single-choice selector and returns the chosen id.
func RunChoose(title string, options []Option, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(NewChooseModel(title, options), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running selector: %w", err)
	}
	m := final.(SelectModel)
	selected := m.Selected()
	if m.Cancelled() || len(selected) == 0 {
		return "", ErrCancelled
	}
	return selected[0], nil
}
