package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/tunegrab/tunegrab/internal/config"
	"github.com/tunegrab/tunegrab/internal/convert"
	"github.com/tunegrab/tunegrab/internal/download"
	"github.com/tunegrab/tunegrab/internal/platform"
	"github.com/tunegrab/tunegrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tunegrab.app"
	AppName = "TuneGrab"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	store, err := config.DefaultStore()
	if err != nil {
		fmt.Printf("failed to locate settings: %v\n", err)
		return
	}
	settings := store.Load()
	if err := platform.EnsureDir(settings.OutputDir); err != nil {
		fmt.Printf("failed to ensure output dir: %v\n", err)
	}

	ffmpegPath, err := platform.FindFFmpeg()
	if err != nil {
		fmt.Printf("warning: %v\n", err)
	}
	converter := convert.NewService(ffmpegPath)

	service := download.NewService(platform.NewResolver(), download.NewYTDLPFetcher())
	service.SetVerifier(converter)
	service.SetFFmpegLocation(platform.FFmpegLocation(ffmpegPath))

	ui.NewRootUI(myWindow, service, converter, store)

	myWindow.ShowAndRun()
}
