package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#1d4ed8")
	Foreground  = lipgloss.Color("#1f2937")
	Muted       = lipgloss.Color("#6b7280")
	Border      = lipgloss.Color("#d1d5db")
	Destructive = lipgloss.Color("#dc2626")
	Success     = lipgloss.Color("#16a34a")
	Info        = lipgloss.Color("#2563eb")
)

type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Required lipgloss.Style
	Focused  lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Card     lipgloss.Style
	MapPanel lipgloss.Style
	Marker   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Spinner  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true).
			MarginTop(1),
		Label: lipgloss.NewStyle().
			Foreground(Foreground),
		Required: lipgloss.NewStyle().
			Foreground(Destructive),
		Focused: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Value: lipgloss.NewStyle().
			Foreground(Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(Muted),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		MapPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(0, 1),
		Marker: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(Info).
			Bold(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(Primary).
			Padding(0, 2),
		Disabled: lipgloss.NewStyle().
			Foreground(Muted).
			Background(Border).
			Padding(0, 2),
		Spinner: lipgloss.NewStyle().
			Foreground(Info),
	}
}
