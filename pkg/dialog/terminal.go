package dialog

import (
	"strings"

	"github.com/pterm/pterm"
)

// Terminal draws prompts with pterm's interactive printers.
type Terminal struct{}

func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) ShowProgress(text string) {
	pterm.Info.Println(text)
}

func (t *Terminal) Confirm(prompt string) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(prompt)
	if err != nil {
		return false, cancelled(err)
	}
	return ok, nil
}

func (t *Terminal) PromptText(prompt string) (string, error) {
	s, err := pterm.DefaultInteractiveTextInput.Show(prompt)
	if err != nil {
		return "", cancelled(err)
	}
	return strings.TrimSpace(s), nil
}

func (t *Terminal) PromptSecret(prompt string) (string, error) {
	s, err := pterm.DefaultInteractiveTextInput.
		WithMask("*").
		Show(prompt)
	if err != nil {
		return "", cancelled(err)
	}
	return s, nil
}

func (t *Terminal) Message(title, text string) error {
	pterm.DefaultBox.WithTitle(title).Println(text)
	return nil
}
