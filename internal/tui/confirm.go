package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no dialog rendered as a bordered box.
//
// Navigation: left/right/tab/shift+tab move focus between Yes and No buttons.
// Enter activates the focused button. y/n/esc are shortcut accelerators.
//
// The program quits as soon as the user answers; Confirmed reports the answer.
type ConfirmModel struct {
	message   string
	focusYes  bool // true = Yes focused, false = No focused.
	answered  bool
	confirmed bool
}

// NewConfirmModel creates a dialog for message. defaultYes sets the initial
// focus; destructive prompts should start on No.
func NewConfirmModel(message string, defaultYes bool) ConfirmModel {
	return ConfirmModel{message: message, focusYes: defaultYes}
}

// Confirmed reports whether the user chose Yes.
func (m ConfirmModel) Confirmed() bool { return m.confirmed }

// Answered reports whether the user made a choice.
func (m ConfirmModel) Answered() bool { return m.answered }

func (m ConfirmModel) Init() tea.Cmd { return nil }

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmYesKey):
		return m.answer(true)

	case key.Matches(keyMsg, confirmNoKey),
		key.Matches(keyMsg, keys.Back),
		key.Matches(keyMsg, confirmQuit):
		return m.answer(false)

	case key.Matches(keyMsg, keys.Enter):
		return m.answer(m.focusYes)

	case key.Matches(keyMsg, confirmLeft), key.Matches(keyMsg, confirmRight),
		key.Matches(keyMsg, confirmTab), key.Matches(keyMsg, confirmShiftTab):
		m.focusYes = !m.focusYes
	}

	return m, nil
}

func (m ConfirmModel) answer(yes bool) (tea.Model, tea.Cmd) {
	m.answered = true
	m.confirmed = yes
	return m, tea.Quit
}

// View renders the message and the Yes / No buttons. Once answered the
// dialog collapses to a one-line summary.
func (m ConfirmModel) View() string {
	if m.answered {
		answer := "No"
		if m.confirmed {
			answer = "Yes"
		}
		return fmt.Sprintf("%s %s\n", m.message, mutedStyle.Render(answer))
	}

	question := lipgloss.NewStyle().
		Width(40).
		Align(lipgloss.Center).
		Render(m.message)

	var yesBtn, noBtn string
	if m.focusYes {
		yesBtn = dialogActiveButtonStyle.Render("Yes")
		noBtn = dialogButtonStyle.Render("No")
	} else {
		yesBtn = dialogButtonStyle.Render("Yes")
		noBtn = dialogActiveButtonStyle.Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, "", buttons)
	return dialogBoxStyle.Render(ui) + "\n"
}

// RunConfirm asks a yes/no question on the given terminal streams.
func RunConfirm(message string, defaultYes bool, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(message, defaultYes), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running confirm prompt: %w", err)
	}
	return final.(ConfirmModel).Confirmed(), nil
}
