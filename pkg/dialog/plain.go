package dialog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Plain reads answers line by line. It is used when rigup is piped or run
// under a terminal pterm cannot drive.
type Plain struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
}

func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), raw: in, out: out}
}

func (p *Plain) ShowProgress(text string) {
	_, _ = fmt.Fprintln(p.out, text)
}

func (p *Plain) Confirm(prompt string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (p *Plain) PromptText(prompt string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", prompt)
	return p.readLine()
}

// PromptSecret disables echo when reading from a terminal.
func (p *Plain) PromptSecret(prompt string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", prompt)
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", cancelled(err)
		}
		return string(secret), nil
	}
	return p.readLine()
}

func (p *Plain) Message(title, text string) error {
	_, err := fmt.Fprintf(p.out, "== %s ==\n%s\n", title, text)
	return err
}

// readLine returns a line without its terminator. A final unterminated line
// is accepted; a read with nothing at all left is a cancellation.
func (p *Plain) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", cancelled(err)
	}
	return strings.TrimSpace(line), nil
}
