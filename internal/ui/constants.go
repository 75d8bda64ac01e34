package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconStop     = "⏹"
	IconRetry    = "↻"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconClose    = "×"
	IconDelete   = "🗑"
	IconError    = "❌"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (TaskRow / lists)
const (
	StatusLabelWidth  float32 = 96
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 420
	RowMinHeight float32 = 72

	WindowWidth  float32 = 820
	WindowHeight float32 = 640
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Profile form limits
const (
	MinProfileCount     = 1
	MaxProfileCount     = 1000
	DefaultProfileCount = 10
)

// Ribbon text
const (
	// TickerTitleLimit bounds the number of playlist titles fed to the header ribbon.
	TickerTitleLimit = 20
	// PlaylistParseTimeout bounds a playlist lookup started from the video tab.
	PlaylistParseTimeout = 45 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
