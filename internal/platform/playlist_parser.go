package platform

import (
	"errors"
	"net/url"
	"strings"
)

// PlaylistQueryKey is the query parameter that carries a playlist id.
const PlaylistQueryKey = "list"

var (
	// ErrNotPlaylistURL is returned for URLs without a playlist id.
	ErrNotPlaylistURL = errors.New("URL does not contain playlist parameter")
)

// IsPlaylistURL reports whether raw carries a non-empty playlist id.
func IsPlaylistURL(raw string) bool {
	_, err := ExtractPlaylistID(raw)
	return err == nil
}

// ExtractPlaylistID returns the playlist id from any of the common forms:
//
//	https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//	https://www.youtube.com/playlist?list=PLAYLIST_ID
//	youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNotPlaylistURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrNotPlaylistURL
	}
	id := strings.TrimSpace(u.Query().Get(PlaylistQueryKey))
	if id == "" {
		return "", ErrNotPlaylistURL
	}
	return id, nil
}
