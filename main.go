package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/mediadl/internal/config"
	"github.com/ytget/mediadl/internal/download"
	"github.com/ytget/mediadl/internal/platform"
	"github.com/ytget/mediadl/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.mediadl"
	AppName = "MediaDL"
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("failed to ensure downloads dir: %v", err)
	}

	client := download.NewClient(settings.GetAPIBaseURL(), settings.GetRequestTimeout())
	downloadSvc := download.NewService(client, downloadsDir, settings.GetMaxParallelDownloads())
	log.Printf("Using download server %s", client.BaseURL())

	root := ui.NewRootUI(myWindow, settings, downloadSvc, platform.NewYTDLPParserService())
	myWindow.SetOnClosed(root.Close)

	myWindow.ShowAndRun()
}
