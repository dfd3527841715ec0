package aimode

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	gray   = lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#BDBDBD"}
	indigo = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}

	ruleStyle  = lipgloss.NewStyle().Foreground(gray)
	fenceStyle = lipgloss.NewStyle().Foreground(indigo)
)

const ruleWidth = 60

/*
Render formats an answer for the terminal: prose paragraphs separated by
blank lines, code as fenced blocks with the language on the opening fence.
Code bodies pass through untouched apart from trailing whitespace.
*/
func Render(answer *Answer) string {
	rule := ruleStyle.Render(strings.Repeat("─", ruleWidth))

	b := &strings.Builder{}
	b.WriteString(rule)
	b.WriteString("\n\n")

	for _, block := range answer.Blocks {
		switch block.Kind {
		case CodeBlock:
			b.WriteString(fenceStyle.Render("```" + block.Lang))
			b.WriteString("\n")
			b.WriteString(strings.TrimRight(block.Body, " \t\n"))
			b.WriteString("\n")
			b.WriteString(fenceStyle.Render("```"))
			b.WriteString("\n\n")
		default:
			b.WriteString(block.Body)
			b.WriteString("\n\n")
		}
	}

	b.WriteString(rule)
	return b.String()
}
