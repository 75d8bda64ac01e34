package model

import (
	"strings"
	"time"
)

// PlaylistStatus represents the current status of a playlist listing
type PlaylistStatus string

const (
	PlaylistStatusParsing PlaylistStatus = "parsing"
	PlaylistStatusReady   PlaylistStatus = "ready"
	PlaylistStatusError   PlaylistStatus = "error"
)

// TitleSeparator joins playlist titles in the header ribbon.
const TitleSeparator = "  •  "

// PlaylistVideo represents a single video in a playlist
type PlaylistVideo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
	URL      string `json:"url"`
}

// Playlist is a listed playlist. Only titles and URLs are kept; the server downloads the media.
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Videos    []*PlaylistVideo `json:"videos"`
	Status    PlaylistStatus   `json:"status"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(url string) *Playlist {
	now := time.Now()
	return &Playlist{
		URL:       url,
		Status:    PlaylistStatusParsing,
		Videos:    make([]*PlaylistVideo, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddVideo adds a video to the playlist
func (p *Playlist) AddVideo(video *PlaylistVideo) {
	p.Videos = append(p.Videos, video)
	p.UpdatedAt = time.Now()
}

// UpdateStatus updates the playlist status
func (p *Playlist) UpdateStatus(status PlaylistStatus) {
	p.Status = status
	p.UpdatedAt = time.Now()
}

// Fail records err and moves the playlist to the error state.
func (p *Playlist) Fail(err error) {
	p.Error = err.Error()
	p.UpdateStatus(PlaylistStatusError)
}

// TotalVideos returns the number of listed videos.
func (p *Playlist) TotalVideos() int {
	return len(p.Videos)
}

// Titles returns the non-empty video titles in playlist order.
func (p *Playlist) Titles() []string {
	titles := make([]string, 0, len(p.Videos))
	for _, v := range p.Videos {
		if t := strings.TrimSpace(v.Title); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// TickerText joins up to limit titles for the header ribbon. limit <= 0 means all.
// An empty playlist falls back to its own title.
func (p *Playlist) TickerText(limit int) string {
	titles := p.Titles()
	if limit > 0 && len(titles) > limit {
		titles = titles[:limit]
	}
	if len(titles) == 0 {
		return strings.TrimSpace(p.Title)
	}
	return strings.Join(titles, TitleSeparator)
}
