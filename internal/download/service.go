package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/ytget/mediadl/internal/model"
	"github.com/ytget/mediadl/internal/platform"
)

// Service constants
const (
	TaskIDPrefix     = "task-"
	PartialSuffix    = ".part"
	ProgressInterval = 250 * time.Millisecond
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskActive    = errors.New("task is still running")
	ErrTaskNotActive = errors.New("task is not active")
	ErrDuplicateTask = errors.New("task already exists")
)

// Service handles download operations
type Service struct {
	api         API
	tasks       map[string]*model.DownloadTask
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	sem         *semaphore.Weighted
	maxParallel int
	downloadDir string
	onUpdate    func(model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service
func NewService(api API, downloadDir string, maxParallel int) *Service {
	maxParallel = max(1, maxParallel)
	return &Service{
		api:         api,
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		sem:         semaphore.NewWeighted(int64(maxParallel)),
		maxParallel: maxParallel,
		downloadDir: downloadDir,
	}
}

// SetUpdateCallback sets the callback function for task updates.
// It is called from worker goroutines.
func (s *Service) SetUpdateCallback(callback func(model.DownloadTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetMaxParallelDownloads applies to tasks queued from now on; running tasks keep their slot.
func (s *Service) SetMaxParallelDownloads(n int) {
	n = max(1, n)
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	if n == s.maxParallel {
		return
	}
	s.maxParallel = n
	s.sem = semaphore.NewWeighted(int64(n))
}

// SetAPI swaps the server client for tasks started from now on.
func (s *Service) SetAPI(api API) {
	s.tasksMutex.Lock()
	s.api = api
	s.tasksMutex.Unlock()
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	s.downloadDir = dir
	s.tasksMutex.Unlock()
}

// AddTask validates req and queues a new task
func (s *Service) AddTask(req model.DownloadRequest) (model.DownloadTask, error) {
	req = Normalize(req)
	if err := Validate(req); err != nil {
		return model.DownloadTask{}, err
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.Request.Kind == req.Kind && task.Request.Source() == req.Source() && !task.Status.IsFinished() {
			return model.DownloadTask{}, fmt.Errorf("%w for %s", ErrDuplicateTask, req.Source())
		}
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		Request:   req,
		Status:    model.TaskStatusPending,
		FileSize:  -1,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	s.launchLocked(task)

	return *task, nil
}

// launchLocked starts the worker for task. tasksMutex must be held.
func (s *Service) launchLocked(task *model.DownloadTask) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[task.ID] = cancel
	go s.run(ctx, task, s.api, s.sem, s.downloadDir)
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return *task, true
}

// GetAllTasks returns snapshots of all tasks, newest first
func (s *Service) GetAllTasks() []model.DownloadTask {
	s.tasksMutex.RLock()
	tasks := make([]model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, *task)
	}
	s.tasksMutex.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].StartedAt.Equal(tasks[j].StartedAt) {
			return tasks[i].StartedAt.After(tasks[j].StartedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks
}

// StopTask cancels a pending or running task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if task.Status.IsFinished() {
		return fmt.Errorf("%w: %s", ErrTaskNotActive, task.Status)
	}
	if cancel, ok := s.cancels[id]; ok {
		cancel()
	}
	return nil
}

// RetryTask re-queues a stopped or failed task with the same request
func (s *Service) RetryTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if task.Status != model.TaskStatusError && task.Status != model.TaskStatusStopped {
		return fmt.Errorf("cannot retry task in status %s", task.Status)
	}

	task.Status = model.TaskStatusPending
	task.LastError = ""
	task.Message = ""
	task.Progress, task.Percent, task.Received = 0, 0, 0
	task.FileSize = -1
	task.StartedAt = time.Now()
	task.FinishedAt = time.Time{}
	s.launchLocked(task)
	s.notifyLocked(task)
	return nil
}

// RemoveTask forgets a finished task
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if !task.Status.IsFinished() {
		return fmt.Errorf("%w: %s", ErrTaskActive, id)
	}
	delete(s.tasks, id)
	delete(s.cancels, id)
	return nil
}

// ClearFinished removes every finished task and returns how many were removed
func (s *Service) ClearFinished() int {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	n := 0
	for id, task := range s.tasks {
		if task.Status.IsFinished() {
			delete(s.tasks, id)
			delete(s.cancels, id)
			n++
		}
	}
	return n
}

// run waits for a slot, performs the request and stores the result
func (s *Service) run(ctx context.Context, task *model.DownloadTask, api API, sem *semaphore.Weighted, dir string) {
	if err := sem.Acquire(ctx, 1); err != nil {
		s.finish(ctx, task, err)
		return
	}
	defer sem.Release(1)

	s.update(task, func(t *model.DownloadTask) {
		t.Status = model.TaskStatusStarting
	})

	resp, err := api.Download(ctx, task.Request)
	if err != nil {
		s.finish(ctx, task, err)
		return
	}

	if resp.Body == nil {
		s.update(task, func(t *model.DownloadTask) {
			t.Message = resp.Message
		})
		s.finish(ctx, task, nil)
		return
	}
	defer resp.Body.Close()

	s.update(task, func(t *model.DownloadTask) {
		t.Status = model.TaskStatusDownloading
		t.FileSize = resp.Size
		t.Title = strings.TrimSuffix(resp.Filename, filepath.Ext(resp.Filename))
	})

	path, err := s.save(ctx, task, dir, resp)
	if err == nil {
		s.update(task, func(t *model.DownloadTask) {
			t.OutputPath = path
		})
		log.Printf("Download %s saved to %s", task.ID, path)
	}
	s.finish(ctx, task, err)
}

// save streams the body into a unique file under dir and returns its path
func (s *Service) save(ctx context.Context, task *model.DownloadTask, dir string, resp *Response) (string, error) {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	path, err := platform.UniqueFilePath(dir, platform.SanitizeFilename(resp.Filename))
	if err != nil {
		return "", err
	}

	partial := path + PartialSuffix
	f, err := os.OpenFile(partial, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, platform.DefaultFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	pw := &progressWriter{
		w: f,
		report: func(n int64) {
			s.update(task, func(t *model.DownloadTask) {
				t.Received = n
				if t.FileSize > 0 {
					t.Progress = min(1, float64(n)/float64(t.FileSize))
					t.Percent = int(t.Progress * 100)
				}
			})
		},
	}
	_, copyErr := io.Copy(pw, resp.Body)
	pw.flush()
	closeErr := f.Close()

	if err := errors.Join(copyErr, closeErr, ctx.Err()); err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(partial, path); err != nil {
		os.Remove(partial)
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}
	return path, nil
}

// finish records the terminal status for task and releases its cancel func
func (s *Service) finish(ctx context.Context, task *model.DownloadTask, err error) {
	s.tasksMutex.Lock()
	switch {
	case ctx.Err() == context.Canceled:
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	if cancel, ok := s.cancels[task.ID]; ok {
		cancel()
		delete(s.cancels, task.ID)
	}
	snapshot := *task
	cb := s.onUpdate
	s.tasksMutex.Unlock()

	if err != nil && snapshot.Status == model.TaskStatusError {
		log.Printf("Download %s failed: %v", task.ID, err)
	}
	if cb != nil {
		cb(snapshot)
	}
}

// update mutates task under the lock and notifies with a snapshot
func (s *Service) update(task *model.DownloadTask, fn func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	fn(task)
	snapshot := *task
	cb := s.onUpdate
	s.tasksMutex.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// notifyLocked schedules a notification for task. tasksMutex must be held.
func (s *Service) notifyLocked(task *model.DownloadTask) {
	if s.onUpdate == nil {
		return
	}
	snapshot, cb := *task, s.onUpdate
	go cb(snapshot)
}

// progressWriter reports the running byte count at most once per ProgressInterval
type progressWriter struct {
	w      io.Writer
	n      int64
	last   time.Time
	report func(int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.n += int64(n)
	if now := time.Now(); now.Sub(p.last) >= ProgressInterval {
		p.last = now
		p.report(p.n)
	}
	return n, err
}

func (p *progressWriter) flush() {
	p.report(p.n)
}

// generateTaskID returns a time-ordered unique task id
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
