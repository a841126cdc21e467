// Package tui is the interactive list view. It edits a collection in
// place; the caller persists it when Changed reports true.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Description }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Description }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.item.Description
	if it.item.Done {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	id := t.Muted.Render(fmt.Sprintf("%3d", it.item.ID))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, id, box, text)
}

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	removeKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
)

// Model implements tea.Model over a collection.
type Model struct {
	coll    *todolist.Collection
	list    list.Model
	changed bool

	// Inline add
	adding bool
	ti     textinput.Model

	status string // outcome of the last action, shown under the list
	failed bool
}

// New builds the list for c.
func New(c *todolist.Collection) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	bindings := func() []key.Binding { return []key.Binding{toggleKey, removeKey, addKey} }
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item description..."
	ti.CharLimit = 200

	m := Model{coll: c, list: l, ti: ti}
	m.refresh()
	return m
}

// Changed reports whether the collection was modified.
func (m Model) Changed() bool { return m.changed }

// Status returns the last action's message.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(size.Width-4, size.Height-6)
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	// keys belong to the filter input while the user types a filter
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			// first esc clears an applied filter, handled by the list
			if m.list.FilterState() != list.FilterApplied {
				return m, tea.Quit
			}
		case " ":
			if it, ok := m.selected(); ok {
				done, _ := m.coll.UpdateByID(it.ID)
				m.changed = true
				m.setStatus(fmt.Sprintf("%d : %s -> done=%t", it.ID, it.Description, done), false)
				return m, m.refresh()
			}
			return m, nil
		case "d":
			if it, ok := m.selected(); ok {
				m.coll.RemoveByID(it.ID)
				m.changed = true
				m.setStatus(fmt.Sprintf("deleted %d : %s", it.ID, it.Description), false)
				return m, m.refresh()
			}
			return m, nil
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.status = ""
			return m, m.ti.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			desc := strings.TrimSpace(m.ti.Value())
			if desc == "" {
				m.setStatus("description cannot be empty", true)
				return m, nil
			}
			if !m.coll.Insert(desc) {
				if _, dup := m.coll.FindByDescription(desc); dup {
					m.setStatus("todo item already exists: "+todolist.Normalize(desc), true)
				} else {
					m.setStatus("no ids left", true)
				}
				return m, nil
			}
			m.changed = true
			m.setStatus("added "+todolist.Normalize(desc), false)
			m.stopAdding()
			return m, m.refresh()
		case "esc":
			m.stopAdding()
			m.status = ""
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.Current().BorderColor).
			Padding(0, 1)
		content += "\n" + bar.Render("Add new item\n"+m.ti.View())
	}
	if m.status != "" {
		style := ui.Current().Success
		if m.failed {
			style = ui.Current().Error
		}
		content += "\n" + style.Render(m.status)
	}
	return ui.Box(content)
}

func (m *Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.item, true
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

func (m *Model) stopAdding() {
	m.adding = false
	m.ti.SetValue("")
	m.ti.Blur()
}

// refresh rebuilds the list rows and the header counts from the collection.
func (m *Model) refresh() tea.Cmd {
	items := m.coll.Items()
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, listItem{item: it})
	}

	t := ui.Current()
	done, pending := m.coll.Stats()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		"Todos",
		t.SymDone, done,
		t.SymPending, pending,
		"Total", len(items),
	)
	return m.list.SetItems(rows)
}

// Run starts the program on the alternate screen and reports whether the
// collection changed before the user quit.
func Run(c *todolist.Collection) (bool, error) {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return fm.Changed(), nil
}
