package wisdom3d

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	logTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	adviceStyle = lipgloss.NewStyle().
			Bold(true)
	bookStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245"))
	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			MarginBottom(1)
)

// RenderLog formats the encounter log newest-first for a terminal.
func RenderLog(newest []Metadata) string {
	var b strings.Builder
	b.WriteString(logTitleStyle.Render(fmt.Sprintf("Log (%d)", len(newest))))
	b.WriteString("\n\n")
	for _, m := range newest {
		b.WriteString(itemStyle.Render(
			adviceStyle.Render(m.Sentence) + "\n" +
				bookStyle.Render(m.Title+" by "+m.Author),
		))
		b.WriteString("\n")
	}
	return b.String()
}
