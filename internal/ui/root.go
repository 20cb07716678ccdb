package ui

import (
	"context"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/config"
	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/platform"
	"github.com/ytget/playlist-downloader/internal/session"
)

// RootUI represents the main window
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	settings     *config.Settings
	session      *session.Session
	localization *Localization
	logger       zerolog.Logger

	urlEntry        *widget.Entry
	sourceSelect    *widget.Select
	formatSelect    *widget.Select
	combineCheck    *widget.Check
	dirEntry        *widget.Entry
	loadBtn         *widget.Button
	downloadBtn     *widget.Button
	revealBtn       *widget.Button
	progressBar     *widget.ProgressBar
	progressSpinner *widget.ProgressBarInfinite
	warningsLabel   *widget.Label
	playlistView    *PlaylistView

	status   binding.String
	progress binding.Float
	history  binding.StringList

	lastOutput string

	// UI update debouncing
	lastUIUpdate  time.Time
	lastRunID     string
	lastCompleted int
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI. ctx bounds background work
// started from the window and should live as long as the app.
func NewRootUI(ctx context.Context, window fyne.Window, settings *config.Settings, sess *session.Session, logger zerolog.Logger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		settings:     settings,
		session:      sess,
		localization: localization,
		logger:       logger,
		status:       binding.NewString(),
		progress:     binding.NewFloat(),
		history:      binding.NewStringList(),
	}

	sess.SetWritePlaylist(settings.GetWritePlaylist())
	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

func (ui *RootUI) setupUI() {
	l := ui.localization
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onLoadClick() }

	ui.sourceSelect = widget.NewSelect(sourceLabels(ui.settings.GetSourceOptions()), ui.onSourceChanged)
	ui.formatSelect = widget.NewSelect(formatLabels(ui.settings.GetAudioFormatOptions()), nil)
	ui.combineCheck = widget.NewCheck(l.GetText(KeyCombine), nil)

	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetPlaceHolder(l.GetText(KeySaveLocation))
	browseBtn := widget.NewButton(IconFolder+" "+l.GetText(KeyBrowse), ui.onBrowseClick)

	ui.loadBtn = widget.NewButton(l.GetText(KeyLoadInfo), ui.onLoadClick)
	ui.downloadBtn = widget.NewButton(l.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	resetBtn := widget.NewButton(l.GetText(KeyReset), ui.onResetClick)
	ui.revealBtn = widget.NewButton(l.GetText(KeyReveal), ui.onRevealClick)
	ui.revealBtn.Disable()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.progressBar = widget.NewProgressBarWithData(ui.progress)
	ui.progressSpinner = widget.NewProgressBarInfinite()
	ui.progressSpinner.Stop()
	ui.progressSpinner.Hide()
	statusLabel := widget.NewLabelWithData(ui.status)
	statusLabel.Wrapping = fyne.TextWrapWord
	ui.warningsLabel = widget.NewLabel("")
	ui.warningsLabel.Importance = widget.WarningImportance
	ui.warningsLabel.Hide()

	ui.playlistView = NewPlaylistView()

	historyList := widget.NewListWithData(ui.history,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)
	clearHistoryBtn := widget.NewButton(l.GetText(KeyClearHistory), ui.onClearHistoryClick)
	historyBox := container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyHistory)), clearHistoryBtn),
		nil, nil, nil,
		historyList,
	)

	ui.loadSettings()
	_ = ui.status.Set(l.GetText(KeyReady))

	leading := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		leading = container.NewHBox(logoImage, settingsBtn)
	}

	form := container.NewVBox(
		container.NewBorder(nil, nil, leading, ui.loadBtn, ui.urlEntry),
		container.NewHBox(
			widget.NewLabel(l.GetText(KeySource)), ui.sourceSelect,
			widget.NewLabel(l.GetText(KeyFormat)), ui.formatSelect,
			ui.combineCheck,
		),
		container.NewBorder(nil, nil, nil, browseBtn, ui.dirEntry),
		container.NewHBox(ui.downloadBtn, resetBtn, ui.revealBtn),
		container.NewStack(ui.progressBar, ui.progressSpinner),
		statusLabel,
		ui.warningsLabel,
	)

	split := container.NewVSplit(ui.playlistView.Container(), historyBox)
	split.SetOffset(PlaylistSplitOffset)
	ui.window.SetContent(container.NewBorder(form, nil, nil, nil, split))
}

func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
	))
}

func (ui *RootUI) loadSettings() {
	ui.sourceSelect.SetSelected(ui.settings.GetSource().Label())
	ui.formatSelect.SetSelected(formatLabel(ui.settings.GetAudioFormat()))
	ui.combineCheck.SetChecked(ui.settings.GetCombineOutput())
	ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, func() {
		ui.session.SetWritePlaylist(ui.settings.GetWritePlaylist())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		if !ui.session.Busy() {
			ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
		}
	}).Show()
}

// onSourceChanged hides the controls that only apply to YouTube
func (ui *RootUI) onSourceChanged(label string) {
	if ui.loadBtn == nil || ui.combineCheck == nil {
		return
	}
	source, _ := model.ParseSource(label)
	if source == model.SourceSpotify {
		ui.loadBtn.Disable()
		ui.combineCheck.Disable()
		return
	}
	ui.loadBtn.Enable()
	ui.combineCheck.Enable()
}

func (ui *RootUI) onBrowseClick() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
	}, ui.window)
}

// onLoadClick fetches playlist info in the background
func (ui *RootUI) onLoadClick() {
	rawURL := strings.TrimSpace(ui.urlEntry.Text)
	if rawURL == "" {
		_ = ui.status.Set(session.ErrEmptyURL.Error())
		return
	}
	if ui.selectedSource() == model.SourceSpotify {
		return
	}

	_ = ui.status.Set(ui.localization.GetText(KeyLoadingInfo))
	ui.loadBtn.Disable()

	go func() {
		info, err := ui.session.LoadPlaylist(ui.ctx, rawURL)
		var thumb fyne.Resource
		if err == nil {
			thumb = LoadThumbnail(info.Thumbnail())
		}
		fyne.Do(func() {
			ui.loadBtn.Enable()
			if err != nil {
				_ = ui.status.Set(err.Error())
				return
			}
			ui.playlistView.SetPlaylist(info, thumb)
			_ = ui.status.Set(ui.localization.GetText(KeyReady))
		})
	}()
}

// onDownloadClick starts a download and streams its updates into the window
func (ui *RootUI) onDownloadClick() {
	req := ui.buildRequest()
	ui.saveSelections(req)

	updates, err := ui.session.Download(ui.ctx, req)
	if err != nil {
		_ = ui.status.Set(err.Error())
		return
	}

	ui.setBusy(true)
	ui.lastOutput = ""
	ui.revealBtn.Disable()
	ui.warningsLabel.Hide()

	go ui.consume(updates)
}

func (ui *RootUI) consume(updates <-chan model.Update) {
	for u := range updates {
		if ui.skipUpdate(u) {
			continue
		}
		fyne.Do(func() { ui.applyUpdate(u) })
	}
	fyne.Do(func() { ui.setBusy(false) })
}

// skipUpdate drops byte-level progress updates arriving faster than the
// debounce. An update that starts a run or completes an item always passes.
func (ui *RootUI) skipUpdate(u model.Update) bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	byteLevel := u.Status == model.RunStatusDownloading && !u.Progress.Indeterminate &&
		u.RunID == ui.lastRunID && u.Progress.ItemsCompleted == ui.lastCompleted
	if byteLevel && now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return true
	}
	ui.lastUIUpdate = now
	ui.lastRunID = u.RunID
	ui.lastCompleted = u.Progress.ItemsCompleted
	return false
}

// applyUpdate renders one session update; it must run on the main thread
func (ui *RootUI) applyUpdate(u model.Update) {
	_ = ui.status.Set(u.Message)

	if u.Progress.Indeterminate {
		ui.progressBar.Hide()
		ui.progressSpinner.Show()
		ui.progressSpinner.Start()
	} else {
		ui.progressSpinner.Stop()
		ui.progressSpinner.Hide()
		ui.progressBar.Show()
		_ = ui.progress.Set(u.Progress.Overall)
	}
	ui.playlistView.SetCompleted(u.Progress.ItemsCompleted)

	if !u.Status.IsFinished() {
		return
	}

	ui.progressSpinner.Stop()
	ui.progressSpinner.Hide()
	ui.progressBar.Show()

	if len(u.Warnings) > 0 {
		ui.warningsLabel.SetText(ui.localization.GetText(KeyWarnings) + ":" + WarningSeparator +
			strings.Join(u.Warnings, WarningSeparator))
		ui.warningsLabel.Show()
	}
	if u.OutputPath != "" {
		ui.lastOutput = u.OutputPath
		ui.revealBtn.Enable()
	}
	ui.refreshHistory()
}

func (ui *RootUI) onRevealClick() {
	if ui.lastOutput == "" {
		return
	}
	if err := platform.RevealInFileManager(ui.lastOutput); err != nil {
		ui.logger.Error().Err(err).Str("path", ui.lastOutput).Msg("failed to reveal file")
		_ = ui.status.Set(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onResetClick clears the inputs and the loaded playlist; ignored while busy
func (ui *RootUI) onResetClick() {
	if ui.session.Busy() {
		return
	}
	ui.session.Reset()
	ui.urlEntry.SetText("")
	ui.playlistView.SetPlaylist(nil, nil)
	_ = ui.progress.Set(0)
	ui.warningsLabel.Hide()
	ui.lastOutput = ""
	ui.revealBtn.Disable()
	_ = ui.status.Set(ui.localization.GetText(KeyReady))
}

func (ui *RootUI) onClearHistoryClick() {
	ui.session.History().Clear()
	ui.refreshHistory()
}

func (ui *RootUI) refreshHistory() {
	_ = ui.history.Set(ui.session.History().Lines())
}

func (ui *RootUI) setBusy(busy bool) {
	if busy {
		ui.downloadBtn.Disable()
		return
	}
	ui.downloadBtn.Enable()
}

func (ui *RootUI) selectedSource() model.Source {
	source, err := model.ParseSource(ui.sourceSelect.Selected)
	if err != nil {
		return config.DefaultSource
	}
	return source
}

func (ui *RootUI) selectedFormat() model.AudioFormat {
	format, err := model.ParseAudioFormat(ui.formatSelect.Selected)
	if err != nil {
		return config.DefaultAudioFormat
	}
	return format
}

func (ui *RootUI) buildRequest() model.Request {
	return model.Request{
		Source:  ui.selectedSource(),
		URL:     strings.TrimSpace(ui.urlEntry.Text),
		Dir:     strings.TrimSpace(ui.dirEntry.Text),
		Format:  ui.selectedFormat(),
		Combine: ui.combineCheck.Checked,
	}
}

// saveSelections remembers the user's choices for the next launch
func (ui *RootUI) saveSelections(req model.Request) {
	ui.settings.SetSource(req.Source)
	ui.settings.SetAudioFormat(req.Format)
	ui.settings.SetCombineOutput(req.Combine)
	if req.Dir != "" {
		ui.settings.SetDownloadDirectory(req.Dir)
	}
}

func sourceLabels(sources []model.Source) []string {
	labels := make([]string, 0, len(sources))
	for _, s := range sources {
		labels = append(labels, s.Label())
	}
	return labels
}

func formatLabel(f model.AudioFormat) string {
	return strings.ToUpper(string(f))
}

func formatLabels(formats []model.AudioFormat) []string {
	labels := make([]string, 0, len(formats))
	for _, f := range formats {
		labels = append(labels, formatLabel(f))
	}
	return labels
}
