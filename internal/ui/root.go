package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mediadl/internal/config"
	"github.com/ytget/mediadl/internal/download"
	"github.com/ytget/mediadl/internal/marquee"
	"github.com/ytget/mediadl/internal/model"
	"github.com/ytget/mediadl/internal/platform"
)

// modeForm is the mode/cookies pair every download form carries.
type modeForm struct {
	mode    *widget.RadioGroup
	cookies *widget.Entry
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	parserService *platform.YTDLPParserService
	parseMutex    sync.Mutex
	parseCancel   context.CancelFunc
	parsedURL     string

	header     *Marquee
	headerBand *fyne.Container

	tabs *container.AppTabs

	videoURLEntry    *widget.Entry
	videoForm        modeForm
	videoDownloadBtn *widget.Button

	platformSelect       *widget.Select
	profileUserEntry     *widget.Entry
	profileCountEntry    *widget.Entry
	profileQualitySelect *widget.Select
	profileForm          modeForm
	profileDownloadBtn   *widget.Button

	channelURLEntry      *widget.Entry
	channelCountEntry    *widget.Entry
	channelQualitySelect *widget.Select
	channelForm          modeForm
	channelDownloadBtn   *widget.Button

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	errorLabel            *widget.Label

	recentLabel *widget.Label
	clearBtn    *widget.Button
	emptyLabel  *widget.Label
	taskBox     *fyne.Container
	rows        map[string]*TaskRow
	rowOrder    []string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, downloadSvc download.Downloader, parserService *platform.YTDLPParserService) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Printf("Cannot create download directory: %v", err)
	}

	ui := &RootUI{
		window:        window,
		downloadSvc:   downloadSvc,
		settings:      settings,
		localization:  localization,
		parserService: parserService,
		rows:          make(map[string]*TaskRow),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

func (ui *RootUI) text(key string) string {
	return ui.localization.GetText(key)
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.header = NewMarquee(ui.settings.GetMarqueeOptions())
	ui.headerBand = container.NewStack(canvas.NewRectangle(ui.header.Theme().Color(ColorNameMarqueeBand, fyne.CurrentApp().Settings().ThemeVariant())), ui.header)

	ui.tabs = container.NewAppTabs(
		container.NewTabItem(ui.text(KeyTabVideo), ui.createVideoForm()),
		container.NewTabItem(ui.text(KeyTabProfile), ui.createProfileForm()),
		container.NewTabItem(ui.text(KeyTabChannel), ui.createChannelForm()),
	)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, nil, nil, container.NewVBox(ui.notificationLabel, ui.notificationSpinner))
	ui.notificationContainer.Hide()

	ui.errorLabel = widget.NewLabel("")
	ui.errorLabel.Importance = widget.DangerImportance
	ui.errorLabel.Wrapping = fyne.TextWrapWord
	ui.errorLabel.Hide()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	ui.recentLabel = widget.NewLabelWithStyle(ui.text(KeyRecentDownloads), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.clearBtn = widget.NewButton(ui.text(KeyClearFinished), ui.onClearFinished)
	ui.clearBtn.Importance = widget.LowImportance
	ui.emptyLabel = widget.NewLabel(ui.text(KeyNoDownloads))
	ui.taskBox = container.NewVBox(ui.emptyLabel)

	recentHeader := container.NewHBox(ui.recentLabel, layout.NewSpacer(), ui.clearBtn, settingsBtn)

	body := container.NewBorder(
		container.NewVBox(ui.tabs, ui.notificationContainer, ui.errorLabel, widget.NewSeparator(), recentHeader),
		nil,
		nil,
		nil,
		container.NewVScroll(ui.taskBox),
	)

	// The ribbon spans the full window width; the window edge clips the overscan.
	ui.window.SetPadded(false)
	ui.window.SetContent(container.NewBorder(ui.headerBand, nil, nil, nil, container.NewPadded(body)))

	for _, t := range ui.downloadSvc.GetAllTasks() {
		ui.upsertRow(t)
	}

	log.Printf("UI setup completed successfully")
}

func (ui *RootUI) newModeForm(defaultMode model.Mode) modeForm {
	f := modeForm{
		mode:    widget.NewRadioGroup([]string{ui.text(KeyModeVideo), ui.text(KeyModeAudio)}, nil),
		cookies: widget.NewMultiLineEntry(),
	}
	f.mode.Horizontal = true
	f.mode.Required = true
	f.setMode(defaultMode)
	f.cookies.SetPlaceHolder(ui.text(KeyCookies))
	f.cookies.SetMinRowsVisible(2)
	return f
}

// setMode selects by position: Options is always [video, audio] in the current language.
func (f modeForm) setMode(mode model.Mode) {
	i := 0
	if mode == model.ModeAudio {
		i = 1
	}
	f.mode.SetSelected(f.mode.Options[i])
	f.mode.Refresh()
}

func (f modeForm) selectedMode() model.Mode {
	if len(f.mode.Options) > 1 && f.mode.Selected == f.mode.Options[1] {
		return model.ModeAudio
	}
	return model.ModeVideo
}

func newCountEntry() *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(DefaultProfileCount))
	e.Validator = func(s string) error {
		_, err := parseCount(s)
		return err
	}
	return e
}

// parseCount accepts whole numbers in [MinProfileCount, MaxProfileCount].
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < MinProfileCount || n > MaxProfileCount {
		return 0, fmt.Errorf("count must be between %d and %d", MinProfileCount, MaxProfileCount)
	}
	return n, nil
}

func (ui *RootUI) createVideoForm() fyne.CanvasObject {
	ui.videoURLEntry = widget.NewEntry()
	ui.videoURLEntry.SetPlaceHolder(ui.text(KeyEnterURL))
	ui.videoURLEntry.OnSubmitted = func(string) { ui.onVideoDownload() }
	ui.videoURLEntry.OnChanged = ui.onVideoURLChanged
	ui.videoForm = ui.newModeForm(ui.settings.GetDefaultMode())
	ui.videoDownloadBtn = widget.NewButton(ui.text(KeyDownload), ui.onVideoDownload)
	ui.videoDownloadBtn.Importance = widget.HighImportance

	return container.NewVBox(
		container.NewBorder(nil, nil, nil, ui.videoDownloadBtn, ui.videoURLEntry),
		ui.videoForm.mode,
		ui.videoForm.cookies,
	)
}

func (ui *RootUI) createProfileForm() fyne.CanvasObject {
	ui.platformSelect = widget.NewSelect(model.Platforms, nil)
	ui.platformSelect.SetSelected(model.DefaultPlatform)
	ui.profileUserEntry = widget.NewEntry()
	ui.profileUserEntry.SetPlaceHolder("@username")
	ui.profileUserEntry.OnSubmitted = func(string) { ui.onProfileDownload() }
	ui.profileCountEntry = newCountEntry()
	ui.profileQualitySelect = widget.NewSelect(model.Qualities, nil)
	ui.profileQualitySelect.SetSelected(ui.settings.GetDefaultQuality())
	ui.profileForm = ui.newModeForm(ui.settings.GetDefaultMode())
	ui.profileDownloadBtn = widget.NewButton(ui.text(KeyDownload), ui.onProfileDownload)
	ui.profileDownloadBtn.Importance = widget.HighImportance

	return container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(ui.text(KeyPlatform), ui.platformSelect),
			widget.NewFormItem(ui.text(KeyUsername), ui.profileUserEntry),
			widget.NewFormItem(ui.text(KeyCount), ui.profileCountEntry),
			widget.NewFormItem(ui.text(KeyQuality), ui.profileQualitySelect),
			widget.NewFormItem(ui.text(KeyMode), ui.profileForm.mode),
		),
		ui.profileForm.cookies,
		container.NewHBox(layout.NewSpacer(), ui.profileDownloadBtn),
	)
}

func (ui *RootUI) createChannelForm() fyne.CanvasObject {
	ui.channelURLEntry = widget.NewEntry()
	ui.channelURLEntry.SetPlaceHolder(ui.text(KeyEnterChannelURL))
	ui.channelURLEntry.OnSubmitted = func(string) { ui.onChannelDownload() }
	ui.channelCountEntry = newCountEntry()
	ui.channelQualitySelect = widget.NewSelect(model.Qualities, nil)
	ui.channelQualitySelect.SetSelected(ui.settings.GetDefaultQuality())
	ui.channelForm = ui.newModeForm(ui.settings.GetDefaultMode())
	ui.channelDownloadBtn = widget.NewButton(ui.text(KeyDownload), ui.onChannelDownload)
	ui.channelDownloadBtn.Importance = widget.HighImportance

	return container.NewVBox(
		container.NewBorder(nil, nil, nil, ui.channelDownloadBtn, ui.channelURLEntry),
		widget.NewForm(
			widget.NewFormItem(ui.text(KeyCount), ui.channelCountEntry),
			widget.NewFormItem(ui.text(KeyQuality), ui.channelQualitySelect),
			widget.NewFormItem(ui.text(KeyMode), ui.channelForm.mode),
		),
		ui.channelForm.cookies,
	)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.text(KeySettings), ui.onShowSettings)
	clearItem := fyne.NewMenuItem(ui.text(KeyClearFinished), ui.onClearFinished)

	languageMenu := fyne.NewMenu(ui.text(KeyLanguage))
	available := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(available[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.text(KeyFile), settingsItem, clearItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.text(KeyAppTitle))

	ui.tabs.Items[0].Text = ui.text(KeyTabVideo)
	ui.tabs.Items[1].Text = ui.text(KeyTabProfile)
	ui.tabs.Items[2].Text = ui.text(KeyTabChannel)
	ui.tabs.Refresh()

	ui.videoURLEntry.SetPlaceHolder(ui.text(KeyEnterURL))
	ui.channelURLEntry.SetPlaceHolder(ui.text(KeyEnterChannelURL))
	for _, btn := range []*widget.Button{ui.videoDownloadBtn, ui.profileDownloadBtn, ui.channelDownloadBtn} {
		btn.SetText(ui.text(KeyDownload))
	}
	for _, f := range []modeForm{ui.videoForm, ui.profileForm, ui.channelForm} {
		mode := f.selectedMode()
		f.mode.Options = []string{ui.text(KeyModeVideo), ui.text(KeyModeAudio)}
		f.setMode(mode)
		f.cookies.SetPlaceHolder(ui.text(KeyCookies))
	}

	ui.recentLabel.SetText(ui.text(KeyRecentDownloads))
	ui.clearBtn.SetText(ui.text(KeyClearFinished))
	ui.emptyLabel.SetText(ui.text(KeyNoDownloads))
}

// onVideoURLChanged looks up playlist titles for the header ribbon once a playlist link is pasted.
func (ui *RootUI) onVideoURLChanged(text string) {
	text = strings.TrimSpace(text)

	ui.parseMutex.Lock()
	if text == ui.parsedURL {
		ui.parseMutex.Unlock()
		return
	}
	ui.parsedURL = text
	if ui.parseCancel != nil {
		ui.parseCancel()
		ui.parseCancel = nil
	}

	if !platform.IsPlaylistURL(text) {
		ui.parseMutex.Unlock()
		if text == "" {
			ui.header.SetText(ui.settings.GetMarqueeOptions().Text)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), PlaylistParseTimeout)
	ui.parseCancel = cancel
	ui.parseMutex.Unlock()

	ui.showNotification(ui.text(KeyParsingStarted), true)
	go func() {
		defer cancel()
		ui.loadPlaylistTitles(ctx, text)
	}()
}

// loadPlaylistTitles lists the playlist and replaces the ribbon text with its titles.
func (ui *RootUI) loadPlaylistTitles(ctx context.Context, url string) {
	playlist, err := ui.parserService.ParsePlaylist(ctx, url)
	if errors.Is(ctx.Err(), context.Canceled) {
		return
	}

	fyne.Do(func() {
		if err != nil {
			log.Printf("Playlist parsing failed: %v", err)
			ui.showNotification(ui.text(KeyParsingFailed)+": "+err.Error(), false)
			return
		}

		log.Printf("Playlist parsed: %s with %d videos", playlist.Title, playlist.TotalVideos())
		if ticker := playlist.TickerText(TickerTitleLimit); ticker != "" {
			ui.header.SetText(ticker)
		}
		ui.showNotification(fmt.Sprintf("%s: %s (%d)", ui.text(KeyPlaylistParsed), playlist.Title, playlist.TotalVideos()), false)
	})
}

func (ui *RootUI) onVideoDownload() {
	url := strings.TrimSpace(ui.videoURLEntry.Text)
	if url == "" {
		ui.setError(ui.text(KeyPleaseEnterURL))
		return
	}
	ui.submit(model.DownloadRequest{
		Kind:    model.KindVideo,
		URL:     url,
		Mode:    ui.videoForm.selectedMode(),
		Cookies: ui.videoForm.cookies.Text,
	}, KeyDownloading)
}

func (ui *RootUI) onProfileDownload() {
	user := strings.TrimSpace(ui.profileUserEntry.Text)
	count, err := parseCount(ui.profileCountEntry.Text)
	if user == "" || err != nil {
		ui.setError(ui.text(KeyInvalidProfile))
		return
	}
	ui.submit(model.DownloadRequest{
		Kind:     model.KindProfile,
		Platform: ui.platformSelect.Selected,
		Username: user,
		Count:    count,
		Quality:  ui.profileQualitySelect.Selected,
		Mode:     ui.profileForm.selectedMode(),
		Cookies:  ui.profileForm.cookies.Text,
	}, KeyProfileFetching)
}

func (ui *RootUI) onChannelDownload() {
	url := strings.TrimSpace(ui.channelURLEntry.Text)
	if url == "" {
		ui.setError(ui.text(KeyPleaseEnterURL))
		return
	}
	count, err := parseCount(ui.channelCountEntry.Text)
	if err != nil {
		ui.setError(ui.text(KeyInvalidProfile))
		return
	}
	ui.submit(model.DownloadRequest{
		Kind:    model.KindChannel,
		URL:     url,
		Count:   count,
		Quality: ui.channelQualitySelect.Selected,
		Mode:    ui.channelForm.selectedMode(),
		Cookies: ui.channelForm.cookies.Text,
	}, KeyDownloading)
}

// submit queues req and shows busyKey in the status panel.
func (ui *RootUI) submit(req model.DownloadRequest, busyKey string) {
	ui.setError("")

	task, err := ui.downloadSvc.AddTask(req)
	if err != nil {
		log.Printf("Cannot add %s task for %s: %v", req.Kind, req.Source(), err)
		ui.setError(ui.requestErrorText(err))
		return
	}

	log.Printf("Task added: ID=%s kind=%s source=%s", task.ID, task.Request.Kind, task.Request.Source())
	ui.upsertRow(task)
	ui.showNotification(ui.text(busyKey), true)
}

func (ui *RootUI) requestErrorText(err error) string {
	switch {
	case errors.Is(err, download.ErrDuplicateTask):
		return ui.text(KeyAlreadyInQueue)
	case errors.Is(err, download.ErrMissingURL):
		return ui.text(KeyPleaseEnterURL)
	case errors.Is(err, download.ErrMissingUsername), errors.Is(err, download.ErrInvalidCount):
		return ui.text(KeyInvalidProfile)
	default:
		return ui.text(KeyGenericError) + " " + err.Error()
	}
}

// setError shows message under the forms; an empty message hides the label.
func (ui *RootUI) setError(message string) {
	ui.errorLabel.SetText(message)
	setVisible(ui.errorLabel, message != "")
}

// showNotification displays a message in the status panel.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	setVisible(ui.notificationSpinner, spinning)
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// hideNotification hides the status panel.
func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes stored settings into the running services and the header.
func (ui *RootUI) applySettings() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	ui.downloadSvc.SetAPI(download.NewClient(ui.settings.GetAPIBaseURL(), ui.settings.GetRequestTimeout()))
	ui.downloadSvc.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		log.Printf("Cannot create download directory %s: %v", dir, err)
	}
	ui.downloadSvc.SetDownloadDirectory(dir)

	ui.replaceHeader(ui.settings.GetMarqueeOptions())
	ui.showNotification(ui.text(KeySettingsSaved), false)
}

// replaceHeader swaps the ribbon for one built from opts and tears the old one down.
func (ui *RootUI) replaceHeader(opts marquee.Options) {
	old := ui.header
	ui.header = NewMarquee(opts)
	ui.headerBand.Objects[len(ui.headerBand.Objects)-1] = ui.header
	ui.headerBand.Refresh()
	old.Destroy()
}

func (ui *RootUI) onClearFinished() {
	n := ui.downloadSvc.ClearFinished()
	log.Printf("Cleared %d finished tasks", n)
	ui.syncRows()
}

// onTaskUpdate receives task snapshots from download workers.
func (ui *RootUI) onTaskUpdate(task model.DownloadTask) {
	fyne.Do(func() {
		ui.applyTaskUpdate(task)
	})
}

func (ui *RootUI) applyTaskUpdate(task model.DownloadTask) {
	var previous model.TaskStatus
	if row, ok := ui.rows[task.ID]; ok {
		previous = row.Task().Status
	}
	ui.upsertRow(task)

	if previous != task.Status {
		log.Printf("Task %s: %s -> %s", task.ID, previous, task.Status)
		switch task.Status {
		case model.TaskStatusCompleted:
			ui.onTaskCompleted(task)
		case model.TaskStatusError:
			ui.setError(ui.text(KeyDownloadFailed) + ": " + task.LastError)
		}
	}

	ui.updateBusyState()
}

func (ui *RootUI) onTaskCompleted(task model.DownloadTask) {
	if task.Message != "" {
		ui.showNotification(task.Message, false)
		return
	}
	ui.sendCompletionNotification(task)
	if ui.settings.GetAutoRevealOnComplete() && task.OutputPath != "" {
		log.Printf("Auto-revealing completed task %s: %s", task.ID, task.OutputPath)
		ui.onRevealFile(task.OutputPath)
	}
}

// updateBusyState hides the spinner once no task is waiting on the server.
func (ui *RootUI) updateBusyState() {
	for _, row := range ui.rows {
		st := row.Task().Status
		if st.IsActive() || st == model.TaskStatusPending {
			ui.notificationSpinner.Show()
			return
		}
	}
	ui.notificationSpinner.Hide()
}

// upsertRow adds a row for a new task, newest first, or updates the existing one.
func (ui *RootUI) upsertRow(task model.DownloadTask) {
	if row, ok := ui.rows[task.ID]; ok {
		row.UpdateTask(task)
		return
	}

	row := NewTaskRow(task, ui.localization)
	row.SetCallbacks(TaskRowCallbacks{
		OnStop:     ui.onStopTask,
		OnRetry:    ui.onRetryTask,
		OnRemove:   ui.onRemoveTask,
		OnReveal:   ui.onRevealFile,
		OnOpen:     ui.onOpenFile,
		OnCopyPath: ui.onCopyPath,
	})
	ui.rows[task.ID] = row
	ui.rowOrder = append([]string{task.ID}, ui.rowOrder...)
	ui.layoutRows()
}

// syncRows drops rows whose task is gone from the service.
func (ui *RootUI) syncRows() {
	alive := make(map[string]bool)
	for _, t := range ui.downloadSvc.GetAllTasks() {
		alive[t.ID] = true
	}
	order := ui.rowOrder[:0]
	for _, id := range ui.rowOrder {
		if alive[id] {
			order = append(order, id)
		} else {
			delete(ui.rows, id)
		}
	}
	ui.rowOrder = order
	ui.layoutRows()
	if len(ui.rowOrder) == 0 {
		ui.hideNotification()
	}
}

func (ui *RootUI) layoutRows() {
	objects := make([]fyne.CanvasObject, 0, len(ui.rowOrder))
	for _, id := range ui.rowOrder {
		objects = append(objects, ui.rows[id])
	}
	if len(objects) == 0 {
		objects = append(objects, ui.emptyLabel)
	}
	ui.taskBox.Objects = objects
	ui.taskBox.Refresh()
}

func (ui *RootUI) onStopTask(taskID string) {
	if err := ui.downloadSvc.StopTask(taskID); err != nil {
		log.Printf("Error stopping task %s: %v", taskID, err)
		ui.setError(err.Error())
	}
}

func (ui *RootUI) onRetryTask(taskID string) {
	if err := ui.downloadSvc.RetryTask(taskID); err != nil {
		log.Printf("Error retrying task %s: %v", taskID, err)
		ui.setError(err.Error())
		return
	}
	ui.setError("")
}

func (ui *RootUI) onRemoveTask(taskID string) {
	if err := ui.downloadSvc.RemoveTask(taskID); err != nil {
		log.Printf("Error removing task %s: %v", taskID, err)
		ui.setError(err.Error())
		return
	}
	ui.syncRows()
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		ui.setError(ui.text(KeyNoFilePath))
		return
	}
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.setError(ui.text(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile handles opening a downloaded file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		ui.setError(ui.text(KeyNoFilePath))
		return
	}
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.setError(ui.text(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onCopyPath handles copying file path to clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	if filePath == "" {
		ui.setError(ui.text(KeyNoFilePath))
		return
	}
	fyne.CurrentApp().Clipboard().SetContent(filePath)
	ui.showNotification(ui.text(KeyPathCopied), false)
}

// sendCompletionNotification sends a system notification for completed downloads
func (ui *RootUI) sendCompletionNotification(task model.DownloadTask) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.text(KeyDownloadCompleted),
		Content: task.GetDisplayTitle(),
	})
	ui.showNotification(ui.text(KeyDownloadCompleted)+MiddleDotSeparator+task.GetDisplayTitle(), false)
	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast with reveal and open actions
func (ui *RootUI) showToastNotification(task model.DownloadTask) {
	titleLabel := widget.NewLabel(ui.text(KeyDownloadCompleted))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(task.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toastPopup *widget.PopUp
	revealBtn := widget.NewButton(IconFolder, func() {
		toastPopup.Hide()
		ui.onRevealFile(task.OutputPath)
	})
	revealBtn.Importance = widget.HighImportance
	openBtn := widget.NewButton(ui.text(KeyOpen), func() {
		toastPopup.Hide()
		ui.onOpenFile(task.OutputPath)
	})
	closeBtn := widget.NewButton(IconClose, func() {
		toastPopup.Hide()
	})
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
		container.NewHBox(revealBtn, openBtn),
	)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPopup.Resize(toastSize)
	toastPopup.ShowAtPosition(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}

// Close stops background work owned by the window.
func (ui *RootUI) Close() {
	ui.parseMutex.Lock()
	if ui.parseCancel != nil {
		ui.parseCancel()
		ui.parseCancel = nil
	}
	ui.parseMutex.Unlock()
	ui.header.Destroy()
}
