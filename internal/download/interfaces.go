package download

import (
	"github.com/ytget/mediadl/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(model.DownloadTask))
	AddTask(req model.DownloadRequest) (model.DownloadTask, error)
	GetTask(id string) (model.DownloadTask, bool)
	GetAllTasks() []model.DownloadTask
	StopTask(id string) error
	RetryTask(id string) error
	RemoveTask(id string) error
	ClearFinished() int

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetAPI replaces the server client for new tasks
	SetAPI(api API)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)
}
