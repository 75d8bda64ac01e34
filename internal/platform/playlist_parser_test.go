package platform

import "testing"

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		wantErr  bool
	}{
		{"https://www.youtube.com/playlist?list=PL123", "PL123", false},
		{"https://www.youtube.com/watch?v=abc&list=PL456&start_radio=1", "PL456", false},
		{"youtube.com/playlist?list=PL789", "PL789", false},
		{"  https://youtu.be/abc?list=RDabc  ", "RDabc", false},
		{"https://www.youtube.com/watch?v=abc", "", true},
		{"https://www.youtube.com/playlist?list=", "", true},
		{"", "", true},
		{"://bad", "", true},
	}

	for _, test := range tests {
		id, err := ExtractPlaylistID(test.url)
		if (err != nil) != test.wantErr {
			t.Errorf("ExtractPlaylistID(%q) error = %v, wantErr %v", test.url, err, test.wantErr)
			continue
		}
		if id != test.expected {
			t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", test.url, id, test.expected)
		}
		if IsPlaylistURL(test.url) == test.wantErr {
			t.Errorf("IsPlaylistURL(%q) disagrees with ExtractPlaylistID", test.url)
		}
	}
}
