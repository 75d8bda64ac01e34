package ui

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/mediadl/internal/model"
)

// Progress display bounds
const (
	MaxProgressPercent = 100
	MinProgressPercent = 0
)

// TaskRowCallbacks are the actions a row can trigger. Nil callbacks disable their button.
type TaskRowCallbacks struct {
	OnStop     func(taskID string)
	OnRetry    func(taskID string)
	OnRemove   func(taskID string)
	OnReveal   func(filePath string)
	OnOpen     func(filePath string)
	OnCopyPath func(filePath string)
}

// TaskRow shows one download with its status and actions
type TaskRow struct {
	widget.BaseWidget

	task         model.DownloadTask
	localization *Localization
	callbacks    TaskRowCallbacks

	titleLabel   *widget.Label
	detailLabel  *widget.Label
	statusLabel  *widget.Label
	percentLabel *widget.Label
	sizeLabel    *widget.Label
	progressBar  *widget.ProgressBar
	progressSpin *widget.ProgressBarInfinite
	stopBtn      *widget.Button
	retryBtn     *widget.Button
	removeBtn    *widget.Button
	revealBtn    *widget.Button
	playBtn      *widget.Button
	copyBtn      *widget.Button
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task model.DownloadTask, localization *Localization) *TaskRow {
	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(callbacks TaskRowCallbacks) {
	tr.callbacks = callbacks
	tr.updateButtons()
}

// Task returns the snapshot the row currently shows
func (tr *TaskRow) Task() model.DownloadTask {
	return tr.task
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task model.DownloadTask) {
	if task.ID != tr.task.ID {
		log.Printf("Warning: TaskRow %s received update for task %s", tr.task.ID, task.ID)
		return
	}
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.detailLabel = widget.NewLabel("")
	tr.detailLabel.Truncation = fyne.TextTruncateEllipsis
	tr.detailLabel.SizeName = theme.SizeNameCaptionText

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.percentLabel = widget.NewLabel("")
	tr.percentLabel.Alignment = fyne.TextAlignTrailing
	tr.sizeLabel = widget.NewLabel("")
	tr.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.progressBar = widget.NewProgressBar()
	tr.progressBar.TextFormatter = func() string { return "" }
	tr.progressSpin = widget.NewProgressBarInfinite()

	tr.stopBtn = widget.NewButton(IconStop, func() {
		if tr.callbacks.OnStop != nil {
			tr.callbacks.OnStop(tr.task.ID)
		}
	})
	tr.retryBtn = widget.NewButton(IconRetry, func() {
		if tr.callbacks.OnRetry != nil {
			tr.callbacks.OnRetry(tr.task.ID)
		}
	})
	tr.removeBtn = widget.NewButton(IconDelete, func() {
		if tr.callbacks.OnRemove != nil {
			tr.callbacks.OnRemove(tr.task.ID)
		}
	})
	tr.revealBtn = widget.NewButton(IconFolder, func() {
		if tr.callbacks.OnReveal != nil {
			tr.callbacks.OnReveal(tr.task.OutputPath)
		}
	})
	tr.playBtn = widget.NewButton(IconPlay, func() {
		if tr.callbacks.OnOpen != nil {
			tr.callbacks.OnOpen(tr.task.OutputPath)
		}
	})
	tr.copyBtn = widget.NewButton(IconCopy, func() {
		if tr.callbacks.OnCopyPath != nil {
			tr.callbacks.OnCopyPath(tr.task.OutputPath)
		}
	})
	for _, b := range []*widget.Button{tr.stopBtn, tr.retryBtn, tr.removeBtn, tr.revealBtn, tr.playBtn, tr.copyBtn} {
		b.Importance = widget.LowImportance
	}
}

// effectivePercent clamps the task percentage; completed tasks always show 100.
func effectivePercent(task model.DownloadTask) int {
	if task.Status == model.TaskStatusCompleted {
		return MaxProgressPercent
	}
	p := task.Percent
	if p <= 0 && task.Progress > 0 {
		p = int(task.Progress * MaxProgressPercent)
	}
	return max(MinProgressPercent, min(p, MaxProgressPercent))
}

// detailText is the second line: the error, the server message or the source.
func detailText(task model.DownloadTask) string {
	switch {
	case task.LastError != "":
		return IconError + " " + task.LastError
	case task.Message != "":
		return task.Message
	default:
		return strings.Join([]string{string(task.Request.Kind), task.Request.Source()}, MiddleDotSeparator)
	}
}

func (tr *TaskRow) updateFromTask() {
	task := tr.task

	tr.titleLabel.SetText(task.GetDisplayTitle())
	tr.detailLabel.SetText(detailText(task))
	tr.statusLabel.SetText(task.Status.String())
	tr.sizeLabel.SetText(task.GetSizeString())

	percent := effectivePercent(task)
	tr.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
	tr.progressBar.SetValue(float64(percent) / MaxProgressPercent)

	unknownSize := task.FileSize < 0
	if task.Status == model.TaskStatusStarting || (task.Status == model.TaskStatusDownloading && unknownSize) {
		tr.progressBar.Hide()
		tr.progressSpin.Show()
		tr.progressSpin.Start()
	} else {
		tr.progressSpin.Stop()
		tr.progressSpin.Hide()
		tr.progressBar.Show()
	}

	switch task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
	case model.TaskStatusDownloading, model.TaskStatusStarting:
		tr.statusLabel.Importance = widget.HighImportance
	case model.TaskStatusStopped:
		tr.statusLabel.Importance = widget.WarningImportance
	default:
		tr.statusLabel.Importance = widget.MediumImportance
	}
	tr.statusLabel.Refresh()

	tr.updateButtons()
}

func (tr *TaskRow) updateButtons() {
	task := tr.task
	active := task.Status.IsActive() || task.Status == model.TaskStatusPending
	retryable := task.Status == model.TaskStatusError || task.Status == model.TaskStatusStopped
	hasFile := task.OutputPath != ""

	setVisible(tr.stopBtn, active)
	setVisible(tr.retryBtn, retryable)
	setEnabled(tr.stopBtn, tr.callbacks.OnStop != nil)
	setEnabled(tr.retryBtn, tr.callbacks.OnRetry != nil)
	setEnabled(tr.removeBtn, !active && tr.callbacks.OnRemove != nil)
	setEnabled(tr.revealBtn, hasFile && tr.callbacks.OnReveal != nil)
	setEnabled(tr.playBtn, hasFile && tr.callbacks.OnOpen != nil)
	setEnabled(tr.copyBtn, hasFile && tr.callbacks.OnCopyPath != nil)
}

func setVisible(obj fyne.CanvasObject, visible bool) {
	if visible {
		obj.Show()
	} else {
		obj.Hide()
	}
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	return &taskRowRenderer{taskRow: tr}
}

type taskRowRenderer struct {
	taskRow *TaskRow
	layout  *fyne.Container
}

func (r *taskRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

func (r *taskRowRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	ms := r.layout.MinSize()
	return fyne.NewSize(max(ms.Width, RowMinWidth), max(ms.Height, RowMinHeight))
}

func (r *taskRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

func (r *taskRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

func (r *taskRowRenderer) Destroy() {}

func (r *taskRowRenderer) createLayout() {
	tr := r.taskRow

	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewVBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		fixedWidth(PercentLabelWidth, tr.percentLabel),
	)
	actions := container.NewHBox(tr.stopBtn, tr.retryBtn, tr.revealBtn, tr.playBtn, tr.copyBtn, tr.removeBtn)
	right := container.NewBorder(nil, nil, nil, actions, info)

	text := container.NewVBox(tr.titleLabel, tr.detailLabel)
	progress := container.NewBorder(nil, nil, nil, tr.sizeLabel, container.NewStack(tr.progressBar, tr.progressSpin))

	r.layout = container.NewVBox(
		container.NewBorder(nil, nil, nil, right, text),
		progress,
		widget.NewSeparator(),
	)
}
