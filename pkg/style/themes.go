package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. AdaptiveColor switches with the terminal background.
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#F0F3F6"}
	TextColor    = lipgloss.AdaptiveColor{Light: "#3D444D", Dark: "#D1D7E0"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#9198A1"}
	BorderColor  = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#3D444D"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
)

// One colour per manifest tag, used when listing records.
var (
	OfficialColor = lipgloss.AdaptiveColor{Light: "#0550AE", Dark: "#79C0FF"}
	AURColor      = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#BC8CFF"}
	GitColor      = lipgloss.AdaptiveColor{Light: "#BC4C00", Dark: "#FFA657"}
	PipColor      = lipgloss.AdaptiveColor{Light: "#116329", Dark: "#56D364"}
)
