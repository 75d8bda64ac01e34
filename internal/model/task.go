package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadKind selects the server endpoint a task posts to.
type DownloadKind string

const (
	KindVideo   DownloadKind = "video"
	KindProfile DownloadKind = "profile"
	KindChannel DownloadKind = "channel"
)

// Mode selects between the full video and an extracted audio track.
type Mode string

const (
	ModeVideo Mode = "video"
	ModeAudio Mode = "audio"
)

// ParseMode maps any unknown value to ModeVideo, as the server does.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeAudio)) {
		return ModeAudio
	}
	return ModeVideo
}

// Default request values
const (
	DefaultPlatform = "youtube"
	DefaultQuality  = "auto"
)

// Platforms lists the profile sources the server accepts.
var Platforms = []string{"youtube", "tiktok", "instagram", "facebook"}

// Qualities lists the quality presets offered for profile and channel downloads.
var Qualities = []string{"auto", "1080", "720", "480", "360"}

// DownloadRequest is everything the user entered in one of the forms.
type DownloadRequest struct {
	Kind     DownloadKind
	URL      string // video and channel
	Platform string // profile
	Username string // profile
	Count    int    // profile and channel
	Quality  string // profile and channel
	Mode     Mode
	Cookies  string
}

// Source returns what the request points at, for display.
func (r DownloadRequest) Source() string {
	if r.Kind == KindProfile {
		return r.Platform + ":@" + strings.TrimPrefix(r.Username, "@")
	}
	return r.URL
}

// DownloadTask represents a single download task
type DownloadTask struct {
	ID         string
	Request    DownloadRequest
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0, 0 while the size is unknown
	Percent    int       // 0 to 100
	Received   int64     // bytes written so far
	FileSize   int64     // expected size in bytes, -1 if unknown
	LastError  string    // last error message if any
	Message    string    // informational reply from the server, no file written
	OutputPath string    // path to downloaded file
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
	Title      string    // title shown in the list
}

// GetSizeString returns "received / total", or only the received amount when the total is unknown.
func (dt *DownloadTask) GetSizeString() string {
	if dt.Received <= 0 && dt.FileSize <= 0 {
		return "—"
	}
	if dt.FileSize <= 0 {
		return FormatBytes(dt.Received)
	}
	return FormatBytes(dt.Received) + " / " + FormatBytes(dt.FileSize)
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// GetDisplayTitle returns title, filename, or the request source in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return dt.Request.Source()
}
