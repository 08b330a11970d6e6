package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// errCanceled reports that the user backed out of the interactive prompt.
var errCanceled = errors.New("canceled")

// pathProvider supplies the two paths a split needs. CLI arguments satisfy
// it directly; the interactive prompt covers runs started without them.
type pathProvider interface {
	SplitPaths() (input string, outDir string, err error)
}

// argPaths is the non-interactive provider: both paths came from the
// command line.
type argPaths struct {
	input  string
	outDir string
}

func (a argPaths) SplitPaths() (string, string, error) {
	return a.input, a.outDir, nil
}

// promptPaths asks the terminal for the paths, optionally prefilled with an
// input path the command line already supplied.
type promptPaths struct {
	input string
}

func (p promptPaths) SplitPaths() (string, string, error) {
	program := tea.NewProgram(newPathPrompt(p.input))
	finalModel, err := program.Run()
	if err != nil {
		return "", "", fmt.Errorf("interactive prompt unavailable (%w); pass <input.mid> <output-dir> instead", err)
	}

	prompt, ok := finalModel.(pathPrompt)
	if !ok || prompt.canceled || !prompt.done {
		return "", "", errCanceled
	}

	return prompt.fields[0].Value(), prompt.fields[1].Value(), nil
}

var promptLabels = [...]string{"Source MIDI file", "Output directory"}

var (
	promptTitleStyle = lipgloss.NewStyle().Bold(true)
	promptLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	promptHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// pathPrompt is the bubbletea model behind the interactive path entry: two
// text fields walked through with Enter.
type pathPrompt struct {
	fields   []textinput.Model
	focused  int
	done     bool
	canceled bool
}

func newPathPrompt(presetInput string) pathPrompt {
	source := textinput.New()
	source.Placeholder = "song.mid"
	source.CharLimit = 512
	source.Width = 60
	source.SetValue(presetInput)
	source.Focus()

	outDir := textinput.New()
	outDir.Placeholder = "split"
	outDir.CharLimit = 512
	outDir.Width = 60

	return pathPrompt{fields: []textinput.Model{source, outDir}}
}

func (p pathPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p pathPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.canceled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if p.fields[p.focused].Value() == "" {
				return p, nil
			}
			if p.focused < len(p.fields)-1 {
				p.fields[p.focused].Blur()
				p.focused++
				return p, p.fields[p.focused].Focus()
			}
			p.done = true
			return p, tea.Quit

		case tea.KeyTab:
			p.fields[p.focused].Blur()
			p.focused = (p.focused + 1) % len(p.fields)
			return p, p.fields[p.focused].Focus()
		}
	}

	var cmd tea.Cmd
	p.fields[p.focused], cmd = p.fields[p.focused].Update(msg)
	return p, cmd
}

func (p pathPrompt) View() string {
	if p.done || p.canceled {
		return ""
	}

	view := promptTitleStyle.Render("Split a Format 1 MIDI file into one file per track") + "\n\n"
	for i, field := range p.fields {
		view += promptLabelStyle.Render(promptLabels[i]) + "\n"
		view += field.View() + "\n\n"
	}
	view += promptHelpStyle.Render("enter: next/confirm  tab: switch  esc: cancel") + "\n"
	return view
}
