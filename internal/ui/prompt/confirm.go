package prompt

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/gitnav/internal/ui/styles"
)

// ConfirmResult holds the answer of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	question   string
	defaultYes bool
	result     ConfirmResult
	done       bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.result.Confirmed = true
	case "n", "N":
		m.result.Confirmed = false
	case "enter":
		m.result.Confirmed = m.defaultYes
	case "ctrl+c", "q", "esc":
		m.result.Cancelled = true
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) hint() string {
	if m.defaultYes {
		return "[Y/n]"
	}
	return "[y/N]"
}

func (m confirmModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.question + " " + styles.MutedStyle.Render(m.hint()) + " ")
}

// Confirm asks a yes/no question on stderr. Enter picks defaultYes.
func Confirm(question string, defaultYes bool) (ConfirmResult, error) {
	p := tea.NewProgram(
		confirmModel{question: question, defaultYes: defaultYes},
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)
	final, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	return final.(confirmModel).result, nil
}
