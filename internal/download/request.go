package download

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ytget/mediadl/internal/model"
)

// Server endpoints
const (
	EndpointVideo   = "/api/download"
	EndpointProfile = "/api/profile_download"
	EndpointChannel = "/api/channel_download"
)

// Fallback file names when the server sends no usable Content-Disposition
const (
	FallbackVideoName   = "download"
	FallbackArchiveName = "profile.zip"
	FallbackChannelName = "channel.zip"
)

var (
	ErrMissingURL      = errors.New("missing URL")
	ErrMissingUsername = errors.New("missing username")
	ErrInvalidCount    = errors.New("count must be greater than zero")
	ErrUnknownKind     = errors.New("unknown download kind")
)

type videoPayload struct {
	URL     string     `json:"url"`
	Mode    model.Mode `json:"mode"`
	Cookies string     `json:"cookies"`
}

type profilePayload struct {
	Platform string     `json:"platform"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Quality  string     `json:"quality"`
	Mode     model.Mode `json:"mode"`
	Cookies  string     `json:"cookies"`
}

type channelPayload struct {
	URL     string     `json:"url"`
	Count   int        `json:"count"`
	Quality string     `json:"quality"`
	Mode    model.Mode `json:"mode"`
	Cookies string     `json:"cookies"`
}

// Normalize trims user input and fills defaults for optional fields.
func Normalize(req model.DownloadRequest) model.DownloadRequest {
	req.URL = strings.TrimSpace(req.URL)
	req.Username = strings.TrimSpace(req.Username)
	req.Cookies = strings.TrimSpace(req.Cookies)
	req.Mode = model.ParseMode(string(req.Mode))
	if req.Platform = strings.TrimSpace(req.Platform); req.Platform == "" {
		req.Platform = model.DefaultPlatform
	}
	if req.Quality = strings.TrimSpace(req.Quality); req.Quality == "" {
		req.Quality = model.DefaultQuality
	}
	return req
}

// Validate checks the fields the server requires for req.Kind.
func Validate(req model.DownloadRequest) error {
	switch req.Kind {
	case model.KindVideo:
		if req.URL == "" {
			return ErrMissingURL
		}
	case model.KindProfile:
		if req.Username == "" {
			return ErrMissingUsername
		}
		if req.Count <= 0 {
			return ErrInvalidCount
		}
	case model.KindChannel:
		if req.URL == "" {
			return ErrMissingURL
		}
		if req.Count <= 0 {
			return ErrInvalidCount
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	return nil
}

// endpoint returns the path, JSON body and fallback file name for req.
func endpoint(req model.DownloadRequest) (string, any, string, error) {
	switch req.Kind {
	case model.KindVideo:
		return EndpointVideo, videoPayload{URL: req.URL, Mode: req.Mode, Cookies: req.Cookies}, FallbackVideoName, nil
	case model.KindProfile:
		return EndpointProfile, profilePayload{
			Platform: req.Platform,
			Username: req.Username,
			Count:    req.Count,
			Quality:  req.Quality,
			Mode:     req.Mode,
			Cookies:  req.Cookies,
		}, FallbackArchiveName, nil
	case model.KindChannel:
		return EndpointChannel, channelPayload{
			URL:     req.URL,
			Count:   req.Count,
			Quality: req.Quality,
			Mode:    req.Mode,
			Cookies: req.Cookies,
		}, FallbackChannelName, nil
	default:
		return "", nil, "", fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
}
