package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/youzi-corp/pos-client/internal/ui"
)

// terminalUI implementa las superficies de UI abstractas (ui.Listener,
// ui.PageListener, auth.Confirmer) sobre la terminal.
type terminalUI struct {
	out io.Writer
	in  *bufio.Reader
}

func newTerminalUI(out io.Writer, in io.Reader) *terminalUI {
	return &terminalUI{out: out, in: bufio.NewReader(in)}
}

func (t *terminalUI) ShowLoading(message string) {
	fmt.Fprintf(t.out, "... %s\n", message)
}

func (t *terminalUI) HideLoading() {}

func (t *terminalUI) ShowNotification(message string, severity ui.Severity) {
	prefix := map[ui.Severity]string{
		ui.SeverityInfo:    "[i]",
		ui.SeveritySuccess: "[ok]",
		ui.SeverityWarning: "[!]",
		ui.SeverityError:   "[x]",
	}[severity]
	fmt.Fprintf(t.out, "%s %s\n", prefix, message)
}

func (t *terminalUI) ClearNotification() {}

func (t *terminalUI) PageChanged(name, title string) {
	fmt.Fprintf(t.out, "== %s ==\n", title)
}

// Confirm pregunta sí/no por stdin. Solo "y"/"ya"/"yes" confirma.
func (t *terminalUI) Confirm(prompt string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "ya", "yes":
		return true
	}
	return false
}

// readLine lee una línea de stdin (para el prompt de password).
func (t *terminalUI) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
