package style

import (
	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)
)

var tagStyles = map[manifest.Tag]lipgloss.Style{
	manifest.TagOfficial: lipgloss.NewStyle().Foreground(OfficialColor).Bold(true),
	manifest.TagAUR:      lipgloss.NewStyle().Foreground(AURColor).Bold(true),
	manifest.TagGit:      lipgloss.NewStyle().Foreground(GitColor).Bold(true),
	manifest.TagPip:      lipgloss.NewStyle().Foreground(PipColor).Bold(true),
}

// TagStyle returns the style used to print tag.
func TagStyle(tag manifest.Tag) lipgloss.Style {
	if s, ok := tagStyles[tag]; ok {
		return s
	}
	return NormalStyle
}

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
