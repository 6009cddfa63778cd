package tui

import lp "github.com/charmbracelet/lipgloss"

// Constants for UI styling and configuration
const (
	// Color constants
	colorSuccess    = "10"  // Green for success states
	colorWarning    = "11"  // Yellow for warnings
	colorInfo       = "12"  // Blue for info
	colorError      = "9"   // Red for errors
	colorBackground = "240" // Gray background
	colorForeground = "255" // White foreground

	// progress channel depth; updates beyond it are dropped
	progressBuffer = 64
)

// View states
type viewState int

const (
	viewList viewState = iota
	viewInitialSetup
	viewSettings
)

// Column widths
const (
	colWidthVersion  = 24
	colWidthType     = 12
	colWidthReleased = 12
	colWidthStatus   = 12

	settingsLabelWidth = 20
)

// Styles using lipgloss
var (
	headerStyle      = lp.NewStyle().Bold(true).Padding(0, 1).Foreground(lp.Color(colorForeground)).Background(lp.Color("236"))
	selectedRowStyle = lp.NewStyle().Background(lp.Color(colorBackground)).Foreground(lp.Color(colorForeground))
	regularRowStyle  = lp.NewStyle()
	footerStyle      = lp.NewStyle().MarginTop(1).Padding(0, 1)
	keyStyle         = lp.NewStyle().Foreground(lp.Color(colorInfo))
	errorStyle       = lp.NewStyle().Foreground(lp.Color(colorError))
	successStyle     = lp.NewStyle().Foreground(lp.Color(colorSuccess))
	warningStyle     = lp.NewStyle().Foreground(lp.Color(colorWarning))
	faintStyle       = lp.NewStyle().Faint(true)

	cellStyleLeft   = lp.NewStyle()
	cellStyleCenter = lp.NewStyle().Align(lp.Center)
)
