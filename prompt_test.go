package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// pressKey feeds one special key into the prompt model.
func pressKey(p pathPrompt, keyType tea.KeyType) pathPrompt {
	model, _ := p.Update(tea.KeyMsg{Type: keyType})
	return model.(pathPrompt)
}

// typeText feeds text into the prompt model one rune at a time, the way a
// terminal would deliver it.
func typeText(p pathPrompt, text string) pathPrompt {
	for _, r := range text {
		model, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		p = model.(pathPrompt)
	}
	return p
}

func TestPathPrompt_CollectsBothPaths(t *testing.T) {
	p := newPathPrompt("")

	p = typeText(p, "song.mid")
	p = pressKey(p, tea.KeyEnter)

	if p.focused != 1 {
		t.Fatalf("expected focus on the output field, got field %d", p.focused)
	}

	p = typeText(p, "out")
	p = pressKey(p, tea.KeyEnter)

	if !p.done {
		t.Error("expected prompt to be done after confirming both fields")
	}
	if p.canceled {
		t.Error("expected prompt to not be canceled")
	}
	if got := p.fields[0].Value(); got != "song.mid" {
		t.Errorf("expected input 'song.mid', got '%s'", got)
	}
	if got := p.fields[1].Value(); got != "out" {
		t.Errorf("expected output dir 'out', got '%s'", got)
	}
}

func TestPathPrompt_EnterOnEmptyFieldHolds(t *testing.T) {
	p := newPathPrompt("")
	p = pressKey(p, tea.KeyEnter)

	if p.focused != 0 {
		t.Errorf("expected focus to stay on the empty field, got field %d", p.focused)
	}
	if p.done {
		t.Error("expected prompt to not be done")
	}
}

func TestPathPrompt_EscCancels(t *testing.T) {
	p := newPathPrompt("")
	p = typeText(p, "half-typed")
	p = pressKey(p, tea.KeyEsc)

	if !p.canceled {
		t.Error("expected prompt to be canceled")
	}
	if p.done {
		t.Error("expected prompt to not be done")
	}
	if view := p.View(); view != "" {
		t.Errorf("expected empty view after cancel, got %q", view)
	}
}

func TestPathPrompt_PresetInput(t *testing.T) {
	p := newPathPrompt("preset.mid")

	if got := p.fields[0].Value(); got != "preset.mid" {
		t.Errorf("expected prefilled input 'preset.mid', got '%s'", got)
	}

	// the preset counts as entered, so Enter moves straight on
	p = pressKey(p, tea.KeyEnter)
	if p.focused != 1 {
		t.Errorf("expected focus on the output field, got field %d", p.focused)
	}
}

func TestPathPrompt_TabCyclesFocus(t *testing.T) {
	p := newPathPrompt("")

	p = pressKey(p, tea.KeyTab)
	if p.focused != 1 {
		t.Fatalf("expected focus on field 1 after tab, got field %d", p.focused)
	}

	p = typeText(p, "dir")
	if got := p.fields[1].Value(); got != "dir" {
		t.Errorf("expected typed text in the output field, got '%s'", got)
	}
	if got := p.fields[0].Value(); got != "" {
		t.Errorf("expected input field untouched, got '%s'", got)
	}

	p = pressKey(p, tea.KeyTab)
	if p.focused != 0 {
		t.Errorf("expected tab to cycle back to field 0, got field %d", p.focused)
	}
}

func TestPathPrompt_ViewShowsLabels(t *testing.T) {
	view := newPathPrompt("").View()

	for _, label := range promptLabels {
		if !strings.Contains(view, label) {
			t.Errorf("expected view to contain label %q", label)
		}
	}
}

func TestArgPaths(t *testing.T) {
	input, outDir, err := argPaths{input: "a.mid", outDir: "b"}.SplitPaths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input != "a.mid" || outDir != "b" {
		t.Errorf("expected ('a.mid', 'b'), got (%q, %q)", input, outDir)
	}
}
