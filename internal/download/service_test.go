package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/mediadl/internal/model"
)

// waitForStatus polls until the task reaches a status accepted by done.
func waitForStatus(t *testing.T, s *Service, id string, done func(model.TaskStatus) bool) model.DownloadTask {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		task, ok := s.GetTask(id)
		if ok && done(task.Status) {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	task, _ := s.GetTask(id)
	t.Fatalf("Task %s did not reach expected status, last %s", id, task.Status)
	return task
}

func finished(st model.TaskStatus) bool { return st.IsFinished() }

func videoReq(url string) model.DownloadRequest {
	return model.DownloadRequest{Kind: model.KindVideo, URL: url}
}

func TestNewService(t *testing.T) {
	service := NewService(NewClient("http://localhost", 0), "/tmp", 0)

	if service.downloadDir != "/tmp" {
		t.Errorf("Expected downloadDir to be '/tmp', got '%s'", service.downloadDir)
	}
	if service.maxParallel != 1 {
		t.Errorf("Expected maxParallel to be clamped to 1, got %d", service.maxParallel)
	}
	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestServiceSavesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Disposition", `attachment; filename="Song: Live?.mp4"`)
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer server.Close()

	dir := t.TempDir()
	service := NewService(NewClient(server.URL, 0), dir, 2)

	var mu sync.Mutex
	var seen []model.TaskStatus
	service.SetUpdateCallback(func(task model.DownloadTask) {
		mu.Lock()
		seen = append(seen, task.Status)
		mu.Unlock()
	})

	task, err := service.AddTask(videoReq("  https://youtube.com/watch?v=a  "))
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.Request.URL != "https://youtube.com/watch?v=a" {
		t.Errorf("Expected normalized URL, got %q", task.Request.URL)
	}

	done := waitForStatus(t, service, task.ID, finished)
	if done.Status != model.TaskStatusCompleted {
		t.Fatalf("Expected completed, got %s (%s)", done.Status, done.LastError)
	}
	if done.OutputPath != filepath.Join(dir, "Song_ Live_.mp4") {
		t.Errorf("Unexpected output path %s", done.OutputPath)
	}
	if done.Received != 4096 || done.Percent != 100 {
		t.Errorf("Expected full progress, got %d bytes %d%%", done.Received, done.Percent)
	}
	data, err := os.ReadFile(done.OutputPath)
	if err != nil || len(data) != 4096 {
		t.Errorf("Saved file unreadable or wrong size: %v", err)
	}
	if _, err := os.Stat(done.OutputPath + PartialSuffix); !os.IsNotExist(err) {
		t.Error("Partial file should be renamed")
	}
	if done.GetDisplayTitle() != "Song: Live?" {
		t.Errorf("Unexpected display title %q", done.GetDisplayTitle())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 3 || seen[0] != model.TaskStatusStarting || seen[len(seen)-1] != model.TaskStatusCompleted {
		t.Errorf("Unexpected status sequence %v", seen)
	}
}

func TestServiceUniqueNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write([]byte("PK"))
	}))
	defer server.Close()

	dir := t.TempDir()
	service := NewService(NewClient(server.URL, 0), dir, 1)

	first, _ := service.AddTask(model.DownloadRequest{Kind: model.KindProfile, Username: "a", Count: 1})
	a := waitForStatus(t, service, first.ID, finished)
	second, _ := service.AddTask(model.DownloadRequest{Kind: model.KindProfile, Username: "b", Count: 1})
	b := waitForStatus(t, service, second.ID, finished)

	if a.OutputPath != filepath.Join(dir, FallbackArchiveName) {
		t.Errorf("Unexpected first path %s", a.OutputPath)
	}
	if b.OutputPath != filepath.Join(dir, "profile (1).zip") {
		t.Errorf("Unexpected second path %s", b.OutputPath)
	}
}

func TestServiceMessageAndError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "profile") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message":"No new videos"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error":"Download failed: unsupported URL"}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	service := NewService(NewClient(server.URL, 0), dir, 2)

	msgTask, _ := service.AddTask(model.DownloadRequest{Kind: model.KindProfile, Username: "me", Count: 2})
	errTask, _ := service.AddTask(videoReq("https://bad"))

	msg := waitForStatus(t, service, msgTask.ID, finished)
	if msg.Status != model.TaskStatusCompleted || msg.Message != "No new videos" || msg.OutputPath != "" {
		t.Errorf("Unexpected message task %+v", msg)
	}

	failed := waitForStatus(t, service, errTask.ID, finished)
	if failed.Status != model.TaskStatusError || failed.LastError != "Download failed: unsupported URL" {
		t.Errorf("Unexpected failed task %+v", failed)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("No files expected, found %d", len(entries))
	}

	if err := service.RetryTask(failed.ID); err != nil {
		t.Fatalf("RetryTask failed: %v", err)
	}
	again := waitForStatus(t, service, failed.ID, finished)
	if again.Status != model.TaskStatusError {
		t.Errorf("Retried task should fail again, got %s", again.Status)
	}
	if err := service.RetryTask(msg.ID); err == nil {
		t.Error("Retrying a completed task should fail")
	}
}

func TestServiceStopTask(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	service := NewService(NewClient(server.URL, 0), t.TempDir(), 1)

	running, _ := service.AddTask(videoReq("https://one"))
	queued, _ := service.AddTask(videoReq("https://two"))

	waitForStatus(t, service, running.ID, func(st model.TaskStatus) bool { return st == model.TaskStatusStarting })
	if task, _ := service.GetTask(queued.ID); task.Status != model.TaskStatusPending {
		t.Errorf("Second task should wait for a slot, got %s", task.Status)
	}

	if err := service.StopTask(queued.ID); err != nil {
		t.Fatalf("StopTask(queued) failed: %v", err)
	}
	if err := service.StopTask(running.ID); err != nil {
		t.Fatalf("StopTask(running) failed: %v", err)
	}

	for _, id := range []string{running.ID, queued.ID} {
		task := waitForStatus(t, service, id, finished)
		if task.Status != model.TaskStatusStopped {
			t.Errorf("Task %s: expected stopped, got %s", id, task.Status)
		}
	}

	if err := service.StopTask(running.ID); !errors.Is(err, ErrTaskNotActive) {
		t.Errorf("Stopping a finished task should return ErrTaskNotActive, got %v", err)
	}
}

func TestServiceDuplicateAndRemove(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	service := NewService(NewClient(server.URL, 0), t.TempDir(), 1)

	task, err := service.AddTask(videoReq("https://same"))
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := service.AddTask(videoReq("https://same")); !errors.Is(err, ErrDuplicateTask) {
		t.Errorf("Expected ErrDuplicateTask, got %v", err)
	}
	if _, err := service.AddTask(videoReq("")); !errors.Is(err, ErrMissingURL) {
		t.Errorf("Expected ErrMissingURL, got %v", err)
	}

	if err := service.RemoveTask(task.ID); !errors.Is(err, ErrTaskActive) {
		t.Errorf("Removing an active task should fail with ErrTaskActive, got %v", err)
	}
	close(release)
	waitForStatus(t, service, task.ID, finished)

	if err := service.RemoveTask(task.ID); err != nil {
		t.Errorf("RemoveTask failed: %v", err)
	}
	if err := service.RemoveTask(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
	if _, exists := service.GetTask(task.ID); exists {
		t.Error("Task should be gone after RemoveTask")
	}
}

func TestServiceClearFinishedAndOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	service := NewService(NewClient(server.URL, 0), t.TempDir(), 3)
	var ids []string
	for _, u := range []string{"https://a", "https://b", "https://c"} {
		task, err := service.AddTask(videoReq(u))
		if err != nil {
			t.Fatalf("AddTask(%s) failed: %v", u, err)
		}
		ids = append(ids, task.ID)
		time.Sleep(2 * time.Millisecond)
	}
	for _, id := range ids {
		waitForStatus(t, service, id, finished)
	}

	all := service.GetAllTasks()
	if len(all) != 3 || all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("Expected newest first, got %v", all)
	}

	if n := service.ClearFinished(); n != 3 {
		t.Errorf("Expected 3 cleared tasks, got %d", n)
	}
	if len(service.GetAllTasks()) != 0 {
		t.Error("Expected no tasks after ClearFinished")
	}
}

func TestGenerateTaskID(t *testing.T) {
	a, b := generateTaskID(), generateTaskID()
	if !strings.HasPrefix(a, TaskIDPrefix) || a == b {
		t.Errorf("Expected unique prefixed ids, got %s and %s", a, b)
	}
}

var _ API = (*Client)(nil)
var _ Downloader = (*Service)(nil)

func TestServiceStopWhileServerBusy(t *testing.T) {
	service := NewService(apiFunc(func(ctx context.Context, req model.DownloadRequest) (*Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), t.TempDir(), 1)

	task, _ := service.AddTask(videoReq("https://x"))
	waitForStatus(t, service, task.ID, func(st model.TaskStatus) bool { return st == model.TaskStatusStarting })
	service.StopTask(task.ID)
	if got := waitForStatus(t, service, task.ID, finished); got.Status != model.TaskStatusStopped {
		t.Errorf("Expected stopped, got %s", got.Status)
	}
}

type apiFunc func(ctx context.Context, req model.DownloadRequest) (*Response, error)

func (f apiFunc) Download(ctx context.Context, req model.DownloadRequest) (*Response, error) {
	return f(ctx, req)
}

func TestServiceSetAPI(t *testing.T) {
	failing := apiFunc(func(ctx context.Context, req model.DownloadRequest) (*Response, error) {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "old server"}
	})
	working := apiFunc(func(ctx context.Context, req model.DownloadRequest) (*Response, error) {
		return &Response{Message: "queued on new server"}, nil
	})

	service := NewService(failing, t.TempDir(), 1)
	first, _ := service.AddTask(videoReq("https://a"))
	if got := waitForStatus(t, service, first.ID, finished); got.Status != model.TaskStatusError {
		t.Fatalf("Expected error from old server, got %s", got.Status)
	}

	service.SetAPI(working)
	if err := service.RetryTask(first.ID); err != nil {
		t.Fatalf("RetryTask failed: %v", err)
	}
	got := waitForStatus(t, service, first.ID, finished)
	if got.Status != model.TaskStatusCompleted || got.Message != "queued on new server" {
		t.Errorf("Expected completion through new server, got %s %q", got.Status, got.Message)
	}
}
