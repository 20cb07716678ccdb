package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/ytget/playlist-downloader/internal/app"
	"github.com/ytget/playlist-downloader/internal/config"
	"github.com/ytget/playlist-downloader/internal/logging"
	"github.com/ytget/playlist-downloader/internal/platform"
	"github.com/ytget/playlist-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.playlist-downloader"
	AppName = "Playlist Downloader"
)

func main() {
	myApp := fyneapp.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewAppTheme())

	settings := config.NewSettings(myApp)

	logger, closer, err := logging.New(logging.Options{
		Level:   settings.GetLogLevel(),
		File:    settings.GetLogFile(),
		Console: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
	}
	defer closer.Close()

	logger.Info().Str("version", version).Msg("Playlist Downloader starting")

	if err := platform.ValidateDependencies(logger, nil, settings.Binaries()); err != nil {
		logger.Error().Err(err).Msg("missing dependency")
	}

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Warn().Err(err).Msg("failed to ensure downloads dir")
	}

	// Workers outlive individual clicks; they stop when the window closes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appCtx := app.NewContext(settings, logger)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	ui.NewRootUI(ctx, myWindow, settings, appCtx.Session, logger)

	myWindow.ShowAndRun()
}
