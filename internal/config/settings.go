package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/ytget/mediadl/internal/marquee"
	"github.com/ytget/mediadl/internal/model"
	"github.com/ytget/mediadl/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL         = "api_base_url"
	KeyRequestTimeout     = "request_timeout_minutes"
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyDefaultMode        = "default_mode"
	KeyDefaultQuality     = "default_quality"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyMarqueeText        = "marquee_text"
	KeyMarqueeSpeed       = "marquee_speed"
	KeyMarqueeDirection   = "marquee_direction"
	KeyMarqueeInteractive = "marquee_interactive"
	KeyMarqueeClass       = "marquee_class"
)

// Default values
const (
	DefaultAPIBaseURL         = "http://localhost:5000"
	DefaultRequestTimeout     = 10 * time.Minute
	DefaultMaxParallel        = 2
	DefaultMode               = model.ModeVideo
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = true
	DefaultMarqueeInteractive = true
	DefaultMarqueeClass       = "primary"
)

// Limits
const (
	MinParallel         = 1
	MaxParallel         = 10
	MaxMarqueeSpeed     = 20.0
	MaxTimeoutMinutes   = 120
	FallbackDownloadDir = "/tmp/downloads"
)

// ErrInvalidAPIURL is returned for base URLs that are not absolute http(s) URLs.
var ErrInvalidAPIURL = errors.New("API base URL must be an absolute http or https URL")

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

func (s *Settings) prefs() fyne.Preferences {
	return s.app.Preferences()
}

// GetAPIBaseURL returns the download server address without a trailing slash
func (s *Settings) GetAPIBaseURL() string {
	raw := s.prefs().StringWithFallback(KeyAPIBaseURL, DefaultAPIBaseURL)
	if raw == "" {
		return DefaultAPIBaseURL
	}
	return raw
}

// SetAPIBaseURL validates and stores the download server address
func (s *Settings) SetAPIBaseURL(raw string) error {
	normalized, err := NormalizeBaseURL(raw)
	if err != nil {
		return err
	}
	s.prefs().SetString(KeyAPIBaseURL, normalized)
	return nil
}

// NormalizeBaseURL trims whitespace and trailing slashes and checks the scheme and host.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAPIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidAPIURL, raw)
	}
	return raw, nil
}

// GetRequestTimeout returns how long a single download request may take
func (s *Settings) GetRequestTimeout() time.Duration {
	minutes := s.prefs().Int(KeyRequestTimeout)
	if minutes <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(minutes) * time.Minute
}

// SetRequestTimeout stores the timeout rounded to whole minutes, clamped to [1, MaxTimeoutMinutes]
func (s *Settings) SetRequestTimeout(d time.Duration) {
	minutes := int(d.Round(time.Minute) / time.Minute)
	minutes = max(1, min(minutes, MaxTimeoutMinutes))
	s.prefs().SetInt(KeyRequestTimeout, minutes)
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.prefs().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.prefs().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	s.prefs().SetInt(KeyMaxParallel, max(MinParallel, min(count, MaxParallel)))
}

// GetDefaultMode returns the mode preselected in the forms
func (s *Settings) GetDefaultMode() model.Mode {
	return model.ParseMode(s.prefs().StringWithFallback(KeyDefaultMode, string(DefaultMode)))
}

// SetDefaultMode sets the mode preselected in the forms
func (s *Settings) SetDefaultMode(mode model.Mode) {
	s.prefs().SetString(KeyDefaultMode, string(mode))
}

// GetDefaultQuality returns the quality preselected for profile and channel downloads
func (s *Settings) GetDefaultQuality() string {
	q := s.prefs().StringWithFallback(KeyDefaultQuality, model.DefaultQuality)
	for _, known := range model.Qualities {
		if q == known {
			return q
		}
	}
	return model.DefaultQuality
}

// SetDefaultQuality sets the quality preselected for profile and channel downloads
func (s *Settings) SetDefaultQuality(quality string) {
	s.prefs().SetString(KeyDefaultQuality, quality)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.prefs().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"vi":     "Tiếng Việt",
	}
}

// GetAutoRevealOnComplete returns whether to auto-reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.prefs().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.prefs().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetMarqueeOptions assembles the header ribbon options from stored values
func (s *Settings) GetMarqueeOptions() marquee.Options {
	opts := marquee.DefaultOptions()
	if text := s.prefs().String(KeyMarqueeText); strings.TrimSpace(text) != "" {
		opts.Text = text
	}
	opts.Speed = s.GetMarqueeSpeed()
	if dir, err := marquee.ParseDirection(s.prefs().StringWithFallback(KeyMarqueeDirection, marquee.Left.String())); err == nil {
		opts.Direction = dir
	}
	opts.Interactive = s.prefs().BoolWithFallback(KeyMarqueeInteractive, DefaultMarqueeInteractive)
	opts.ClassName = s.prefs().StringWithFallback(KeyMarqueeClass, DefaultMarqueeClass)
	return opts
}

// SetMarqueeOptions stores the header ribbon options
func (s *Settings) SetMarqueeOptions(opts marquee.Options) {
	s.prefs().SetString(KeyMarqueeText, opts.Text)
	s.SetMarqueeSpeed(opts.Speed)
	s.prefs().SetString(KeyMarqueeDirection, opts.Direction.String())
	s.prefs().SetBool(KeyMarqueeInteractive, opts.Interactive)
	s.prefs().SetString(KeyMarqueeClass, opts.ClassName)
}

// GetMarqueeSpeed returns the ribbon speed in units per frame
func (s *Settings) GetMarqueeSpeed() float64 {
	return clampSpeed(s.prefs().FloatWithFallback(KeyMarqueeSpeed, marquee.DefaultSpeed))
}

// SetMarqueeSpeed stores the ribbon speed clamped to [0, MaxMarqueeSpeed]
func (s *Settings) SetMarqueeSpeed(speed float64) {
	s.prefs().SetFloat(KeyMarqueeSpeed, clampSpeed(speed))
}

func clampSpeed(speed float64) float64 {
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return marquee.DefaultSpeed
	}
	return math.Max(0, math.Min(math.Abs(speed), MaxMarqueeSpeed))
}
