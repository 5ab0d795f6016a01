package prompt

import (
	"os"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/gitnav/internal/ui/styles"
)

// Item is one choice in a Select prompt.
type Item struct {
	Label  string // shown and filtered on
	Detail string // optional second line, e.g. an alias target
	Value  string // returned when chosen; defaults to Label
}

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int
	Cancelled bool
}

type listItem struct {
	Item
	index int
}

func (i listItem) Title() string       { return i.Label }
func (i listItem) Description() string { return i.Detail }
func (i listItem) FilterValue() string { return i.Label + " " + i.Detail }

type selectModel struct {
	list      list.Model
	done      bool
	cancelled bool
	selected  int
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// While typing a filter, keys belong to the filter input.
		if m.list.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(listItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

func newSelectModel(title string, items []Item) selectModel {
	listItems := make([]list.Item, len(items))
	hasDetail := false
	for i, it := range items {
		listItems[i] = listItem{Item: it, index: i}
		if it.Detail != "" {
			hasDetail = true
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = hasDetail
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = styles.AccentStyle
	delegate.Styles.SelectedDesc = styles.MutedStyle

	height := len(items) + 6
	if hasDetail {
		height = 2*len(items) + 6
	}
	l := list.New(listItems, delegate, 60, min(height, 20))
	l.Title = title
	l.Styles.Title = styles.HeaderStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return selectModel{list: l, selected: -1}
}

// Select shows a filterable list on stderr and returns the chosen item's
// value. Stdout stays free so the result can be piped.
func Select(title string, items []Item) (SelectResult, error) {
	if len(items) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(newSelectModel(title, items),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	finalModel, err := p.Run()
	if err != nil {
		return SelectResult{}, err
	}
	m := finalModel.(selectModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(items) {
		return SelectResult{Cancelled: true}, nil
	}

	it := items[m.selected]
	value := it.Value
	if value == "" {
		value = it.Label
	}
	return SelectResult{Value: value, Index: m.selected}, nil
}
