package download

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ytget/mediadl/internal/model"
)

func TestParseContentDisposition(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"", "download"},
		{`attachment; filename="clip.mp4"`, "clip.mp4"},
		{`attachment; filename=clip.mp4`, "clip.mp4"},
		{`attachment; filename*=UTF-8''%C4%90%C6%B0%E1%BB%9Dng.mp3`, "Đường.mp3"},
		{`attachment; filename="fallback.mp4"; filename*=UTF-8''real%20name.mp4`, "real name.mp4"},
		{`attachment; filename=my clip.mp4`, "my clip.mp4"},
		{`attachment`, "download"},
		{`attachment; filename=""`, "download"},
	}

	for _, test := range tests {
		result := ParseContentDisposition(test.header, FallbackVideoName)
		if result != test.expected {
			t.Errorf("ParseContentDisposition(%q) = %q, expected %q", test.header, result, test.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     model.DownloadRequest
		wantErr error
	}{
		{"video ok", model.DownloadRequest{Kind: model.KindVideo, URL: "u"}, nil},
		{"video missing url", model.DownloadRequest{Kind: model.KindVideo}, ErrMissingURL},
		{"profile ok", model.DownloadRequest{Kind: model.KindProfile, Username: "me", Count: 3}, nil},
		{"profile missing user", model.DownloadRequest{Kind: model.KindProfile, Count: 3}, ErrMissingUsername},
		{"profile zero count", model.DownloadRequest{Kind: model.KindProfile, Username: "me"}, ErrInvalidCount},
		{"channel ok", model.DownloadRequest{Kind: model.KindChannel, URL: "u", Count: 1}, nil},
		{"channel negative count", model.DownloadRequest{Kind: model.KindChannel, URL: "u", Count: -1}, ErrInvalidCount},
		{"unknown kind", model.DownloadRequest{Kind: "podcast"}, ErrUnknownKind},
	}

	for _, test := range tests {
		err := Validate(test.req)
		if test.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
		if test.wantErr != nil && !errors.Is(err, test.wantErr) {
			t.Errorf("%s: expected %v, got %v", test.name, test.wantErr, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	req := Normalize(model.DownloadRequest{
		Kind:     model.KindProfile,
		Username: "  someone ",
		Mode:     "AUDIO",
		Cookies:  " c=1 ",
	})
	if req.Username != "someone" || req.Cookies != "c=1" {
		t.Errorf("Expected trimmed fields, got %+v", req)
	}
	if req.Mode != model.ModeAudio {
		t.Errorf("Expected audio mode, got %s", req.Mode)
	}
	if req.Platform != model.DefaultPlatform || req.Quality != model.DefaultQuality {
		t.Errorf("Expected defaults, got platform=%q quality=%q", req.Platform, req.Quality)
	}
}

func TestClientRequestBodies(t *testing.T) {
	tests := []struct {
		req      model.DownloadRequest
		path     string
		expected map[string]any
	}{
		{
			model.DownloadRequest{Kind: model.KindVideo, URL: "https://v", Mode: model.ModeAudio, Cookies: "k"},
			EndpointVideo,
			map[string]any{"url": "https://v", "mode": "audio", "cookies": "k"},
		},
		{
			model.DownloadRequest{Kind: model.KindProfile, Platform: "tiktok", Username: "me", Count: 5, Quality: "720", Mode: model.ModeVideo},
			EndpointProfile,
			map[string]any{"platform": "tiktok", "username": "me", "count": float64(5), "quality": "720", "mode": "video", "cookies": ""},
		},
		{
			model.DownloadRequest{Kind: model.KindChannel, URL: "https://c", Count: 2, Quality: "auto", Mode: model.ModeVideo},
			EndpointChannel,
			map[string]any{"url": "https://c", "count": float64(2), "quality": "auto", "mode": "video", "cookies": ""},
		},
	}

	for _, test := range tests {
		var gotPath, gotMethod, gotType string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath, gotMethod, gotType = r.URL.Path, r.Method, r.Header.Get("Content-Type")
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message":"queued"}`))
		}))

		client := NewClient(server.URL+"/", 0)
		resp, err := client.Download(context.Background(), test.req)
		server.Close()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", test.path, err)
		}
		if gotPath != test.path || gotMethod != http.MethodPost || gotType != "application/json" {
			t.Errorf("Unexpected request %s %s (%s)", gotMethod, gotPath, gotType)
		}
		if len(gotBody) != len(test.expected) {
			t.Errorf("%s: body %v, expected %v", test.path, gotBody, test.expected)
		}
		for k, v := range test.expected {
			if gotBody[k] != v {
				t.Errorf("%s: field %s = %v, expected %v", test.path, k, gotBody[k], v)
			}
		}
		if resp.Message != "queued" || resp.Body != nil {
			t.Errorf("%s: expected message reply, got %+v", test.path, resp)
		}
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"json error", http.StatusBadRequest, `{"ok":false,"error":"Missing URL"}`, "Missing URL"},
		{"plain body", http.StatusInternalServerError, "boom", "download failed (status 500)"},
		{"json without error", http.StatusBadGateway, `{"ok":false}`, "download failed (status 502)"},
	}

	for _, test := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(test.status)
			w.Write([]byte(test.body))
		}))
		client := NewClient(server.URL, 0)
		_, err := client.Download(context.Background(), model.DownloadRequest{Kind: model.KindVideo, URL: "u"})
		server.Close()

		apiErr, ok := IsAPIError(err)
		if !ok {
			t.Errorf("%s: expected *APIError, got %v", test.name, err)
			continue
		}
		if apiErr.StatusCode != test.status || apiErr.Message != test.expected {
			t.Errorf("%s: got %d %q, expected %d %q", test.name, apiErr.StatusCode, apiErr.Message, test.status, test.expected)
		}
	}
}

func TestClientFileReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Disposition", `attachment; filename="My Clip.mp4"`)
		w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	resp, err := client.Download(context.Background(), model.DownloadRequest{Kind: model.KindVideo, URL: "u"})
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	defer resp.Body.Close()

	if resp.Filename != "My Clip.mp4" || resp.Size != 10 {
		t.Errorf("Unexpected reply %+v", resp)
	}
	data, _ := io.ReadAll(resp.Body)
	if string(data) != "0123456789" {
		t.Errorf("Unexpected body %q", data)
	}
}

func TestClientFallbackNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write([]byte("PK"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	tests := []struct {
		req      model.DownloadRequest
		expected string
	}{
		{model.DownloadRequest{Kind: model.KindVideo, URL: "u"}, FallbackVideoName},
		{model.DownloadRequest{Kind: model.KindProfile, Username: "me", Count: 1}, FallbackArchiveName},
		{model.DownloadRequest{Kind: model.KindChannel, URL: "u", Count: 1}, FallbackChannelName},
	}
	for _, test := range tests {
		resp, err := client.Download(context.Background(), test.req)
		if err != nil {
			t.Fatalf("Unexpected error %v", err)
		}
		resp.Body.Close()
		if resp.Filename != test.expected {
			t.Errorf("%s: expected fallback %q, got %q", test.req.Kind, test.expected, resp.Filename)
		}
	}
}
