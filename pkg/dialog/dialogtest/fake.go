// Package dialogtest provides a scripted dialog.Dialog for tests.
package dialogtest

import (
	"github.com/arthur-debert/rigup/pkg/errors"
)

// Fake answers prompts from queues. An empty queue behaves like the
// operator closing the dialog.
type Fake struct {
	Confirms []bool
	Texts    []string
	Secrets  []string

	Progress []string
	Prompts  []string
	Messages []string
}

func New() *Fake {
	return &Fake{}
}

func (f *Fake) ShowProgress(text string) {
	f.Progress = append(f.Progress, text)
}

func (f *Fake) Confirm(prompt string) (bool, error) {
	f.Prompts = append(f.Prompts, prompt)
	if len(f.Confirms) == 0 {
		return false, errors.New(errors.ErrOperatorCancelled, "dialog closed")
	}
	v := f.Confirms[0]
	f.Confirms = f.Confirms[1:]
	return v, nil
}

func (f *Fake) PromptText(prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if len(f.Texts) == 0 {
		return "", errors.New(errors.ErrOperatorCancelled, "dialog closed")
	}
	v := f.Texts[0]
	f.Texts = f.Texts[1:]
	return v, nil
}

func (f *Fake) PromptSecret(prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if len(f.Secrets) == 0 {
		return "", errors.New(errors.ErrOperatorCancelled, "dialog closed")
	}
	v := f.Secrets[0]
	f.Secrets = f.Secrets[1:]
	return v, nil
}

func (f *Fake) Message(title, text string) error {
	f.Messages = append(f.Messages, title+": "+text)
	return nil
}
