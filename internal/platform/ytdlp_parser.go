package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/mediadl/internal/model"
	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
	PlaylistSuffix      = " Playlist"
	MinPrefixLength     = 10
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistItem is the part of a listed playlist entry the app uses.
type PlaylistItem struct {
	VideoID string
	Title   string
}

// ItemLister fetches all entries of a playlist by id.
type ItemLister func(ctx context.Context, playlistID string) ([]PlaylistItem, error)

// ytdlpLister lists entries through the ytdlp library.
func ytdlpLister(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// YTDLPParserService lists playlist titles using the ytdlp library
type YTDLPParserService struct {
	timeout time.Duration
	list    ItemLister
}

// NewYTDLPParserService creates a new parser service
func NewYTDLPParserService() *YTDLPParserService {
	return &YTDLPParserService{
		timeout: DefaultParseTimeout,
		list:    ytdlpLister,
	}
}

// SetTimeout sets the timeout for parsing operations
func (y *YTDLPParserService) SetTimeout(timeout time.Duration) {
	y.timeout = timeout
}

// SetLister replaces the entry source.
func (y *YTDLPParserService) SetLister(list ItemLister) {
	y.list = list
}

// ParsePlaylist lists the videos of the playlist that url points at. On failure the
// returned playlist is in the error state and carries the message.
func (y *YTDLPParserService) ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	playlist := model.NewPlaylist(url)

	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		err = fmt.Errorf("invalid playlist URL %s: %w", url, err)
		playlist.Fail(err)
		return playlist, err
	}
	playlist.ID = playlistID

	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	items, err := y.list(ctx, playlistID)
	if err != nil {
		err = fmt.Errorf("failed to get playlist items: %w", err)
		playlist.Fail(err)
		return playlist, err
	}

	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		playlist.AddVideo(&model.PlaylistVideo{
			ID:    it.VideoID,
			Title: strings.TrimSpace(it.Title),
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}

	playlist.Title = extractPlaylistTitle(playlist.Videos)
	playlist.UpdateStatus(model.PlaylistStatusReady)
	return playlist, nil
}

// extractPlaylistTitle names the playlist after the common prefix of its first two titles,
// or after the first title.
func extractPlaylistTitle(videos []*model.PlaylistVideo) string {
	if len(videos) == 0 {
		return DefaultPlaylistName
	}
	if len(videos) > 1 {
		prefix := findCommonPrefix(videos[0].Title, videos[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return videos[0].Title + PlaylistSuffix
}

// findCommonPrefix returns the longest common prefix, cut at a rune boundary.
func findCommonPrefix(s1, s2 string) string {
	r1, r2 := []rune(s1), []rune(s2)
	n := min(len(r1), len(r2))
	for i := 0; i < n; i++ {
		if r1[i] != r2[i] {
			return string(r1[:i])
		}
	}
	return string(r1[:n])
}
