// Package dialog is the interactive surface rigup talks to the operator
// through: progress lines, yes/no questions, text and password prompts.
package dialog

import (
	"os"
	"strings"

	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/mattn/go-isatty"
)

// Backend names accepted by New.
const (
	BackendAuto     = "auto"
	BackendTerminal = "terminal"
	BackendPlain    = "plain"
)

// Dialog is implemented by every operator surface.
//
// Confirm returns false, nil when the operator answers no. Closing the input
// or interrupting a prompt returns an OPERATOR_CANCELLED error.
type Dialog interface {
	ShowProgress(text string)
	Confirm(prompt string) (bool, error)
	PromptText(prompt string) (string, error)
	PromptSecret(prompt string) (string, error)
	Message(title, text string) error
}

// New returns the dialog named by backend. auto picks Terminal when out is
// a terminal and Plain otherwise.
func New(backend string, in, out *os.File) (Dialog, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendAuto:
		if isTerminal(out) && isTerminal(in) {
			return NewTerminal(), nil
		}
		return NewPlain(in, out), nil
	case BackendTerminal:
		return NewTerminal(), nil
	case BackendPlain:
		return NewPlain(in, out), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown dialog backend %q", backend).
			WithDetail("backend", backend)
	}
}

// Require asks prompt and turns a "no" into OPERATOR_CANCELLED.
func Require(d Dialog, prompt string) error {
	ok, err := d.Confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrOperatorCancelled, "operator declined to continue")
	}
	return nil
}

func cancelled(err error) error {
	return errors.Wrap(err, errors.ErrOperatorCancelled, "input closed")
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
