// Package console implements the line-based game dialogue on a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrorMarker prefixes every error line so scripts can grep for it.
const ErrorMarker = "[Error]"

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	winStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
)

// Console writes prompts and messages.
type Console struct {
	out    io.Writer
	styled bool
}

// New returns a Console writing to out. Colors are used only when out is a terminal.
func New(out io.Writer) *Console {
	return &Console{out: out, styled: shouldUseColor(out)}
}

// NewPlain returns a Console that never colors output.
func NewPlain(out io.Writer) *Console {
	return &Console{out: out}
}

// Println writes a normal line.
func (c *Console) Println(line string) {
	c.write(line + "\n")
}

// Printf writes a formatted normal line.
func (c *Console) Printf(format string, args ...any) {
	c.Println(fmt.Sprintf(format, args...))
}

// Prompt writes text without a trailing newline.
func (c *Console) Prompt(text string) {
	c.write(text)
}

// Errorf writes a line prefixed with ErrorMarker.
func (c *Console) Errorf(format string, args ...any) {
	marker := ErrorMarker
	if c.styled {
		marker = errorStyle.Render(marker)
	}
	c.write(marker + " " + fmt.Sprintf(format, args...) + "\n")
}

// Hint writes a hint line.
func (c *Console) Hint(line string) {
	if c.styled {
		line = hintStyle.Render(line)
	}
	c.Println(line)
}

// Success writes a congratulation line.
func (c *Console) Success(line string) {
	if c.styled {
		line = winStyle.Render(line)
	}
	c.Println(line)
}

func (c *Console) write(s string) {
	// A closed stdout has nowhere to report to.
	_, _ = io.WriteString(c.out, s)
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
