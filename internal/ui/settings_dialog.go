package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mediadl/internal/config"
	"github.com/ytget/mediadl/internal/marquee"
	"github.com/ytget/mediadl/internal/model"
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 560
	MarqueeSpeedStep             = 0.5
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	apiURLEntry      *widget.Entry
	timeoutEntry     *widget.Entry
	downloadDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	modeSelect       *widget.Select
	qualitySelect    *widget.Select
	languageSelect   *widget.Select
	autoRevealCheck  *widget.Check

	marqueeTextEntry   *widget.Entry
	marqueeSpeedSlider *widget.Slider
	marqueeDirRadio    *widget.RadioGroup
	marqueeDragCheck   *widget.Check
	marqueeClassEntry  *widget.Entry

	languageCodes map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the values were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) text(key string) string {
	return sd.localization.GetText(key)
}

func (sd *SettingsDialog) createUI() {
	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)
	sd.apiURLEntry.Validator = func(s string) error {
		_, err := config.NormalizeBaseURL(s)
		return err
	}

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(fmt.Sprintf("1-%d", config.MaxTimeoutMinutes))

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(sd.text(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinParallel, config.MaxParallel))

	sd.modeSelect = widget.NewSelect([]string{string(model.ModeVideo), string(model.ModeAudio)}, nil)
	sd.qualitySelect = widget.NewSelect(model.Qualities, nil)

	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.autoRevealCheck = widget.NewCheck(sd.text(KeyAutoReveal), nil)

	sd.marqueeTextEntry = widget.NewEntry()
	sd.marqueeTextEntry.SetPlaceHolder(marquee.DefaultText)
	sd.marqueeSpeedSlider = widget.NewSlider(0, config.MaxMarqueeSpeed)
	sd.marqueeSpeedSlider.Step = MarqueeSpeedStep
	sd.marqueeDirRadio = widget.NewRadioGroup([]string{marquee.Left.String(), marquee.Right.String()}, nil)
	sd.marqueeDirRadio.Horizontal = true
	sd.marqueeDragCheck = widget.NewCheck(sd.text(KeyMarqueeDrag), nil)
	sd.marqueeClassEntry = widget.NewEntry()
	sd.marqueeClassEntry.SetPlaceHolder("primary bold")

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(sd.text(KeyAPIBaseURL), sd.apiURLEntry),
			widget.NewFormItem(sd.text(KeyRequestTimeout), sd.timeoutEntry),
			widget.NewFormItem(sd.text(KeyDownloadDirectory), downloadDirRow),
			widget.NewFormItem(sd.text(KeyMaxParallel), sd.maxParallelEntry),
			widget.NewFormItem(sd.text(KeyDefaultMode), sd.modeSelect),
			widget.NewFormItem(sd.text(KeyDefaultQuality), sd.qualitySelect),
			widget.NewFormItem(sd.text(KeyLanguage), sd.languageSelect),
			widget.NewFormItem("", sd.autoRevealCheck),
		),
		widget.NewSeparator(),
		widget.NewLabelWithStyle(sd.text(KeyMarqueeSection), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem(sd.text(KeyMarqueeText), sd.marqueeTextEntry),
			widget.NewFormItem(sd.text(KeyMarqueeSpeed), sd.marqueeSpeedSlider),
			widget.NewFormItem(sd.text(KeyMarqueeDirection), sd.marqueeDirRadio),
			widget.NewFormItem(sd.text(KeyMarqueeClass), sd.marqueeClassEntry),
			widget.NewFormItem("", sd.marqueeDragCheck),
		),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.text(KeySettings),
		sd.text(KeySave),
		sd.text(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout() / time.Minute)))
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.modeSelect.SetSelected(string(sd.settings.GetDefaultMode()))
	sd.qualitySelect.SetSelected(sd.settings.GetDefaultQuality())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())

	opts := sd.settings.GetMarqueeOptions()
	sd.marqueeTextEntry.SetText(opts.Text)
	sd.marqueeSpeedSlider.SetValue(opts.Speed)
	sd.marqueeDirRadio.SetSelected(opts.Direction.String())
	sd.marqueeDragCheck.SetChecked(opts.Interactive)
	sd.marqueeClassEntry.SetText(opts.ClassName)
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	if err := sd.apply(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply stores the widget values. Empty or unparsable numeric fields keep the stored value;
// an invalid server address aborts before anything is written.
func (sd *SettingsDialog) apply() error {
	if raw := strings.TrimSpace(sd.apiURLEntry.Text); raw != "" {
		if _, err := config.NormalizeBaseURL(raw); err != nil {
			return fmt.Errorf("%s: %w", sd.text(KeyInvalidAPIURL), err)
		}
		if err := sd.settings.SetAPIBaseURL(raw); err != nil {
			return err
		}
	}

	if minutes, err := strconv.Atoi(strings.TrimSpace(sd.timeoutEntry.Text)); err == nil {
		sd.settings.SetRequestTimeout(time.Duration(minutes) * time.Minute)
	}

	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if n, err := strconv.Atoi(strings.TrimSpace(sd.maxParallelEntry.Text)); err == nil {
		sd.settings.SetMaxParallelDownloads(n)
	}

	if sd.modeSelect.Selected != "" {
		sd.settings.SetDefaultMode(model.ParseMode(sd.modeSelect.Selected))
	}
	if sd.qualitySelect.Selected != "" {
		sd.settings.SetDefaultQuality(sd.qualitySelect.Selected)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	opts := sd.settings.GetMarqueeOptions()
	if text := strings.TrimSpace(sd.marqueeTextEntry.Text); text != "" {
		opts.Text = sd.marqueeTextEntry.Text
	}
	opts.Speed = sd.marqueeSpeedSlider.Value
	if dir, err := marquee.ParseDirection(sd.marqueeDirRadio.Selected); err == nil {
		opts.Direction = dir
	}
	opts.Interactive = sd.marqueeDragCheck.Checked
	opts.ClassName = strings.TrimSpace(sd.marqueeClassEntry.Text)
	sd.settings.SetMarqueeOptions(opts)

	return nil
}
