package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It hosts the scrolling header ribbon, the video, profile and channel download forms,
// the recent-downloads list and the settings dialog. All UI strings are localized via
// Localization.
