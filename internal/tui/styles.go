package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary       = lipgloss.Color("#3DDC84") // Leaf green, primary accent
	colorAccent        = lipgloss.Color("#FFD700") // Gold, prices and notices
	colorSuccess       = lipgloss.Color("#00E676") // Green, in-cart markers
	colorDanger        = lipgloss.Color("#FF5252") // Red, errors
	colorMuted         = lipgloss.Color("#636363") // Gray, de-emphasized
	colorMutedLight    = lipgloss.Color("#8C8C8C") // Lighter gray, normal text
	colorWhite         = lipgloss.Color("#EEEEEE") // Off-white, primary text
	colorBrightWhite   = lipgloss.Color("#FFFFFF") // Pure white, emphatic text
	colorSurface       = lipgloss.Color("#1E1E2E") // Dark surface, status bar bg
	colorSurfaceBright = lipgloss.Color("#2A2A3C") // Lighter surface, inactive buttons
	colorSurfaceDim    = lipgloss.Color("#181825") // Darkest surface, footer bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

const (
	iconInCart = "✓"
	iconFailed = "✗"
	iconLeaf   = "❦"
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite)

	styleStatusTotal = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorAccent).
				Bold(true)
)

// Category button styles.
var (
	styleCategoryActive = lipgloss.NewStyle().
				Background(colorPrimary).
				Foreground(colorSurfaceDim).
				Bold(true).
				Padding(0, 1)

	styleCategoryInactive = lipgloss.NewStyle().
				Background(colorSurfaceBright).
				Foreground(colorMutedLight).
				Padding(0, 1)

	// styleCategoryCursor marks the keyboard cursor when it is not on the
	// active button.
	styleCategoryCursor = lipgloss.NewStyle().
				Background(colorSurfaceBright).
				Foreground(colorBrightWhite).
				Underline(true).
				Padding(0, 1)
)

// Plant card styles.
var (
	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleCardSelected = styleCard.
				BorderForeground(colorPrimary)

	styleCardName = lipgloss.NewStyle().
			Foreground(colorBrightWhite).
			Bold(true)

	styleCardDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleCardCategory = lipgloss.NewStyle().
				Foreground(colorMuted)

	stylePrice = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleInCart = lipgloss.NewStyle().
			Foreground(colorSuccess)
)

// Region header and inline message styles.
var (
	styleRegionTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleRegionTitleBlurred = lipgloss.NewStyle().
				Foreground(colorMutedLight).
				Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleEmpty = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

// Cart panel styles.
var (
	styleCartPanel = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorMuted).
			PaddingLeft(1)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleCartTotal = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

// Detail overlay styles.
var (
	styleDetailBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	styleDetailTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDetailLabel = lipgloss.NewStyle().
				Foreground(colorMutedLight).
				Bold(true)

	styleDetailDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleDetailSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleScrollIndicator = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)

// Section border for separating view regions.
var styleSectionBorder = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), true, false, false, false).
	BorderForeground(colorMuted)
