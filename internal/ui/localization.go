package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyTabVideo          = "tab_video"
	KeyTabProfile        = "tab_profile"
	KeyTabChannel        = "tab_channel"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeyRetry             = "retry"
	KeyRemove            = "remove"
	KeyOpen              = "open"
	KeyPlay              = "play"
	KeyCopyPath          = "copy_path"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyClearFinished     = "clear_finished"
	KeyRecentDownloads   = "recent_downloads"
	KeyNoDownloads       = "no_downloads"
	KeyEnterURL          = "enter_url"
	KeyEnterChannelURL   = "enter_channel_url"
	KeyPlatform          = "platform"
	KeyUsername          = "username"
	KeyCount             = "count"
	KeyQuality           = "quality"
	KeyMode              = "mode"
	KeyModeVideo         = "mode_video"
	KeyModeAudio         = "mode_audio"
	KeyCookies           = "cookies"
	KeyDownloading       = "downloading"
	KeyProfileFetching   = "profile_fetching"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidProfile    = "invalid_profile"
	KeyGenericError      = "generic_error"
	KeyDownloadFailed    = "download_failed"
	KeyDownloadStarted   = "download_started"
	KeyDownloadCompleted = "download_completed"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyPathCopied        = "path_copied"
	KeyNoFilePath        = "no_file_path"
	KeyParsingStarted    = "parsing_started"
	KeyParsingFailed     = "parsing_failed"
	KeyPlaylistParsed    = "playlist_parsed"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidAPIURL     = "invalid_api_url"
	KeyAPIBaseURL        = "api_base_url"
	KeyRequestTimeout    = "request_timeout"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyDefaultMode       = "default_mode"
	KeyDefaultQuality    = "default_quality"
	KeyAutoReveal        = "auto_reveal"
	KeyMarqueeSection    = "marquee_section"
	KeyMarqueeText       = "marquee_text"
	KeyMarqueeSpeed      = "marquee_speed"
	KeyMarqueeDirection  = "marquee_direction"
	KeyMarqueeDrag       = "marquee_drag"
	KeyMarqueeClass      = "marquee_class"
	KeyDirectionLeft     = "direction_left"
	KeyDirectionRight    = "direction_right"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" follows $LANG.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			code, _, _ := strings.Cut(strings.ToLower(v), "_")
			code, _, _ = strings.Cut(code, ".")
			return code
		}
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"vi": "Tiếng Việt",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "MediaDL",
		KeyTabVideo:          "Video",
		KeyTabProfile:        "Profile",
		KeyTabChannel:        "Channel",
		KeyDownload:          "Download",
		KeyStop:              "Stop",
		KeyRetry:             "Retry",
		KeyRemove:            "Remove",
		KeyOpen:              "Open",
		KeyPlay:              "Play",
		KeyCopyPath:          "Path",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyClearFinished:     "Clear finished",
		KeyRecentDownloads:   "Recent downloads",
		KeyNoDownloads:       "Nothing downloaded yet",
		KeyEnterURL:          "Paste a video link",
		KeyEnterChannelURL:   "Paste a channel link",
		KeyPlatform:          "Platform",
		KeyUsername:          "Username",
		KeyCount:             "Count",
		KeyQuality:           "Quality",
		KeyMode:              "Mode",
		KeyModeVideo:         "Video",
		KeyModeAudio:         "Audio",
		KeyCookies:           "Cookies (optional)",
		KeyDownloading:       "Downloading, please wait...",
		KeyProfileFetching:   "Downloading from the account...",
		KeyPleaseEnterURL:    "Please paste a valid link.",
		KeyInvalidProfile:    "Please enter a username and a valid count.",
		KeyGenericError:      "Something went wrong. Try again.",
		KeyDownloadFailed:    "Download failed",
		KeyDownloadStarted:   "Download started",
		KeyDownloadCompleted: "Download completed",
		KeyAlreadyInQueue:    "Already in queue",
		KeyErrorOpeningFile:  "Error opening file",
		KeyPathCopied:        "Path copied to clipboard",
		KeyNoFilePath:        "File path not available",
		KeyParsingStarted:    "Reading playlist...",
		KeyParsingFailed:     "Playlist lookup failed",
		KeyPlaylistParsed:    "Playlist",
		KeySettingsSaved:     "Settings saved",
		KeyInvalidAPIURL:     "Invalid server address",
		KeyAPIBaseURL:        "Server address",
		KeyRequestTimeout:    "Request timeout (minutes)",
		KeyDownloadDirectory: "Download directory",
		KeyMaxParallel:       "Max parallel downloads",
		KeyDefaultMode:       "Default mode",
		KeyDefaultQuality:    "Default quality",
		KeyAutoReveal:        "Reveal finished downloads",
		KeyMarqueeSection:    "Header ribbon",
		KeyMarqueeText:       "Text",
		KeyMarqueeSpeed:      "Speed",
		KeyMarqueeDirection:  "Direction",
		KeyMarqueeDrag:       "Allow dragging",
		KeyMarqueeClass:      "Style classes",
		KeyDirectionLeft:     "Left",
		KeyDirectionRight:    "Right",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
	}

	l.texts["vi"] = map[string]string{
		KeyAppTitle:          "MediaDL",
		KeyTabVideo:          "Video",
		KeyTabProfile:        "Tài khoản",
		KeyTabChannel:        "Kênh",
		KeyDownload:          "Tải xuống",
		KeyStop:              "Dừng",
		KeyRetry:             "Thử lại",
		KeyRemove:            "Xóa",
		KeyOpen:              "Mở",
		KeyPlay:              "Phát",
		KeyCopyPath:          "Đường dẫn",
		KeySettings:          "Cài đặt",
		KeyFile:              "Tệp",
		KeyLanguage:          "Ngôn ngữ",
		KeyClearFinished:     "Xóa mục đã xong",
		KeyRecentDownloads:   "Tải gần đây",
		KeyNoDownloads:       "Chưa có tệp nào",
		KeyEnterURL:          "Dán liên kết video",
		KeyEnterChannelURL:   "Dán liên kết kênh",
		KeyPlatform:          "Nền tảng",
		KeyUsername:          "Tên người dùng",
		KeyCount:             "Số lượng",
		KeyQuality:           "Chất lượng",
		KeyMode:              "Chế độ",
		KeyModeVideo:         "Video",
		KeyModeAudio:         "Âm thanh",
		KeyCookies:           "Cookies (tùy chọn)",
		KeyDownloading:       "Đang tải, vui lòng đợi...",
		KeyProfileFetching:   "Đang tải từ tài khoản...",
		KeyPleaseEnterURL:    "Vui lòng dán liên kết hợp lệ.",
		KeyInvalidProfile:    "Vui lòng nhập username và số lượng hợp lệ.",
		KeyGenericError:      "Có lỗi xảy ra. Hãy thử lại.",
		KeyDownloadFailed:    "Lỗi tải",
		KeyDownloadStarted:   "Đã bắt đầu tải",
		KeyDownloadCompleted: "Tải xong",
		KeyAlreadyInQueue:    "Đã có trong hàng đợi",
		KeyErrorOpeningFile:  "Không mở được tệp",
		KeyPathCopied:        "Đã sao chép đường dẫn",
		KeyNoFilePath:        "Không có đường dẫn tệp",
		KeyParsingStarted:    "Đang đọc danh sách phát...",
		KeyParsingFailed:     "Không đọc được danh sách phát",
		KeyPlaylistParsed:    "Danh sách phát",
		KeySettingsSaved:     "Đã lưu cài đặt",
		KeyInvalidAPIURL:     "Địa chỉ máy chủ không hợp lệ",
		KeyAPIBaseURL:        "Địa chỉ máy chủ",
		KeyRequestTimeout:    "Thời gian chờ (phút)",
		KeyDownloadDirectory: "Thư mục tải xuống",
		KeyMaxParallel:       "Số lượt tải song song",
		KeyDefaultMode:       "Chế độ mặc định",
		KeyDefaultQuality:    "Chất lượng mặc định",
		KeyAutoReveal:        "Mở thư mục khi tải xong",
		KeyMarqueeSection:    "Dải chữ chạy",
		KeyMarqueeText:       "Nội dung",
		KeyMarqueeSpeed:      "Tốc độ",
		KeyMarqueeDirection:  "Hướng",
		KeyMarqueeDrag:       "Cho phép kéo",
		KeyMarqueeClass:      "Lớp kiểu",
		KeyDirectionLeft:     "Trái",
		KeyDirectionRight:    "Phải",
		KeySave:              "Lưu",
		KeyCancel:            "Hủy",
		KeyBrowse:            "Chọn",
	}
}
