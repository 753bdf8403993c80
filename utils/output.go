package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
)

var panelStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#F4D060")).
	Padding(0, 2)

func Infof(format string, a ...any) {
	fmt.Printf(" %s\n", fmt.Sprintf(format, a...))
}

func Successf(format string, a ...any) {
	fmt.Printf(" %s\n", text.FgGreen.Sprintf(format, a...))
}

func Warningf(format string, a ...any) {
	fmt.Printf(" %s\n", text.FgYellow.Sprintf(format, a...))
}

func Errorf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, " %s\n", text.FgRed.Sprintf(format, a...))
}

// DrawPanel renders a bordered action-required box, used when the student has
// to do something outside this tool before re-running it.
func DrawPanel(title string, lines ...string) {
	body := text.FgHiWhite.Sprint(title) + "\n\n" + strings.Join(lines, "\n")
	fmt.Println(panelStyle.Render(body))
}
