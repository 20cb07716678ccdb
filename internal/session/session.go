package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/concat"
	"github.com/ytget/playlist-downloader/internal/download"
	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/platform"
	"github.com/ytget/playlist-downloader/internal/progress"
)

// Status and history texts
const (
	MsgYouTubeStarting    = "Starting YouTube download..."
	MsgYouTubeDone        = "Download completed successfully."
	MsgCombining          = "Combining tracks..."
	MsgCombinedFormat     = "Combined into %s"
	MsgSpotifyStarting    = "Starting Spotify download..."
	MsgSpotifyDone        = "Spotify download completed successfully."
	MsgErrorFormat        = "Error: %s"
	HistoryYouTube        = "YouTube playlist downloaded."
	HistoryCombinedFormat = "Combined file: %s"
	HistoryPlaylistFormat = "Playlist file: %s"
	HistorySpotify        = "Spotify album downloaded."
	WarnCombineFailed     = "Combine failed: %v"
	WarnPlaylistFailed    = "Playlist export failed: %v"
	LoadErrorFormat       = "Error loading playlist: %v"
	RunIDPrefix           = "run-"
	UpdateBufferSize      = 64
	ItemEventBufferSize   = 16
)

// Validation errors; the texts are shown to the user as-is
var (
	ErrBusy          = errors.New("a download is already in progress")
	ErrInfoNotLoaded = errors.New("Please wait for loading info...")
	ErrEmptyURL      = errors.New("Please enter a URL.")
	ErrEmptyDir      = errors.New("Please select a save location.")
	ErrURLChanged    = errors.New("The URL changed. Please load it again.")
)

// MetadataFetcher resolves a URL into playlist metadata
type MetadataFetcher interface {
	FetchPlaylist(ctx context.Context, url string) (*model.PlaylistInfo, error)
}

// Deps are the services a session drives
type Deps struct {
	Metadata MetadataFetcher
	YouTube  download.ItemDownloader
	Spotify  download.AlbumDownloader
	Combiner concat.Combiner
	Logger   zerolog.Logger
}

// Session replaces process-wide mutable state with one explicit object.
// At most one download runs at a time.
type Session struct {
	deps    Deps
	history *History

	mu            sync.RWMutex
	playlist      *model.PlaylistInfo
	playlistURL   string
	last          model.Update
	writePlaylist bool

	busy atomic.Bool
}

// New creates a session
func New(deps Deps) *Session {
	return &Session{
		deps:    deps,
		history: NewHistory(),
	}
}

// History returns the session download history
func (s *Session) History() *History {
	return s.history
}

// SetWritePlaylist enables M3U export after YouTube playlist downloads
func (s *Session) SetWritePlaylist(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writePlaylist = enabled
}

// LoadPlaylist fetches metadata for url and replaces the loaded playlist.
// On error the previously loaded playlist is kept.
func (s *Session) LoadPlaylist(ctx context.Context, url string) (*model.PlaylistInfo, error) {
	url = strings.TrimSpace(url)
	info, err := s.deps.Metadata.FetchPlaylist(ctx, url)
	if err != nil {
		s.deps.Logger.Error().Err(err).Str("url", url).Msg("failed to load playlist")
		return nil, fmt.Errorf(LoadErrorFormat, err)
	}

	s.mu.Lock()
	s.playlist = info
	s.playlistURL = url
	s.mu.Unlock()

	s.deps.Logger.Info().Str("title", info.Title).Int("entries", len(info.Entries)).Msg("playlist loaded")
	return info, nil
}

// Playlist returns the loaded playlist or nil
func (s *Session) Playlist() *model.PlaylistInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playlist
}

// Busy reports whether a download is running
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Status returns the most recent update sent by a worker
func (s *Session) Status() model.Update {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Reset forgets the loaded playlist and the last status
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist = nil
	s.playlistURL = ""
	s.last = model.Update{}
}

// Download validates req and starts a worker. A YouTube request must use the
// URL of the loaded playlist. The returned channel receives
// every update of the run and is closed when the run ends; callers must drain it.
// ctx bounds the worker and should outlive the caller's request.
func (s *Session) Download(ctx context.Context, req model.Request) (<-chan model.Update, error) {
	req.URL = strings.TrimSpace(req.URL)
	req.Dir = strings.TrimSpace(req.Dir)
	if req.Source == "" {
		req.Source = model.SourceYouTube
	}

	playlist, playlistURL := s.loaded()
	if req.Source == model.SourceYouTube && playlist == nil {
		return nil, ErrInfoNotLoaded
	}
	if req.URL == "" {
		return nil, ErrEmptyURL
	}
	if req.Source == model.SourceYouTube && req.URL != playlistURL {
		return nil, ErrURLChanged
	}
	if req.Dir == "" {
		return nil, ErrEmptyDir
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	if err := platform.CreateDirectoryIfNotExists(req.Dir); err != nil {
		s.busy.Store(false)
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	w := &worker{
		session:  s,
		runID:    generateRunID(),
		req:      req,
		playlist: playlist,
		updates:  make(chan model.Update, UpdateBufferSize),
	}
	w.logger = s.deps.Logger.With().Str("run_id", w.runID).Str("source", string(req.Source)).Logger()

	go w.run(ctx)
	return w.updates, nil
}

func (s *Session) loaded() (*model.PlaylistInfo, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playlist, s.playlistURL
}

func (s *Session) setLast(u model.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = u
}

func (s *Session) playlistExportEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writePlaylist
}

// worker runs one download
type worker struct {
	session  *Session
	runID    string
	req      model.Request
	playlist *model.PlaylistInfo
	updates  chan model.Update
	logger   zerolog.Logger
	progress model.Progress
}

func (w *worker) run(ctx context.Context) {
	defer close(w.updates)
	defer w.session.busy.Store(false)

	w.logger.Info().Str("url", w.req.URL).Msg("download started")

	switch w.req.Source {
	case model.SourceSpotify:
		w.runSpotify(ctx)
	default:
		w.runYouTube(ctx)
	}
}

func (w *worker) runYouTube(ctx context.Context) {
	total := w.playlist.TotalItems()
	w.progress = model.Progress{TotalItems: total, Message: MsgYouTubeStarting}
	w.send(model.RunStatusDownloading, MsgYouTubeStarting)

	agg := progress.New(total)
	events := make(chan model.ItemEvent, ItemEventBufferSize)
	errCh := make(chan error, 1)

	go func() {
		errCh <- w.session.deps.YouTube.Download(ctx, w.req, events)
		close(events)
	}()

	for ev := range events {
		p, ok := agg.Observe(ev)
		if !ok {
			continue
		}
		w.progress = p
		w.send(model.RunStatusDownloading, p.Message)
	}

	if err := <-errCh; err != nil {
		w.fail(err)
		return
	}

	w.progress.Indeterminate = false
	w.session.history.Add(HistoryYouTube)
	w.logger.Info().Msg("download completed")

	if total <= 1 {
		w.progress.Overall = 1
		w.complete(MsgYouTubeDone, "", nil)
		return
	}

	w.send(model.RunStatusDownloading, MsgYouTubeDone)
	message, outputPath, warnings := w.postProcess(ctx)
	w.complete(message, outputPath, warnings)
}

// postProcess combines the tracks and exports the playlist when enabled.
// Failures here are reported as warnings; the download itself succeeded.
func (w *worker) postProcess(ctx context.Context) (message, outputPath string, warnings []string) {
	message = MsgYouTubeDone
	titles := w.playlist.Titles()
	var included []string

	if w.req.Combine {
		w.send(model.RunStatusCombining, MsgCombining)

		res, err := w.session.deps.Combiner.Combine(ctx, w.req.Dir, titles, w.req.Format)
		if res != nil {
			warnings = append(warnings, res.Warnings()...)
			included = res.Included
		}
		if err != nil {
			w.logger.Warn().Err(err).Msg("combine failed")
			warnings = append(warnings, fmt.Sprintf(WarnCombineFailed, err))
		} else {
			name := filepath.Base(res.OutputPath)
			outputPath = res.OutputPath
			message = fmt.Sprintf(MsgCombinedFormat, name)
			w.session.history.Add(fmt.Sprintf(HistoryCombinedFormat, name))
		}
	}

	if w.session.playlistExportEnabled() {
		if included == nil {
			var err error
			included, _, err = concat.MatchTracks(w.req.Dir, titles, w.req.Format)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(WarnPlaylistFailed, err))
				return message, outputPath, warnings
			}
		}
		path, err := w.session.deps.Combiner.WritePlaylist(ctx, w.req.Dir, included)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf(WarnPlaylistFailed, err))
		} else {
			w.session.history.Add(fmt.Sprintf(HistoryPlaylistFormat, filepath.Base(path)))
		}
	}

	return message, outputPath, warnings
}

func (w *worker) runSpotify(ctx context.Context) {
	w.progress = model.Progress{TotalItems: 1, Indeterminate: true, Message: MsgSpotifyStarting}
	w.send(model.RunStatusDownloading, MsgSpotifyStarting)

	if err := w.session.deps.Spotify.Download(ctx, w.req); err != nil {
		w.fail(err)
		return
	}

	w.session.history.Add(HistorySpotify)
	w.progress = model.Progress{Overall: 1, ItemsCompleted: 1, TotalItems: 1}
	w.complete(MsgSpotifyDone, "", nil)
}

func (w *worker) complete(message, outputPath string, warnings []string) {
	w.progress.Message = message
	w.sendUpdate(model.Update{
		Status:     model.RunStatusCompleted,
		Message:    message,
		OutputPath: outputPath,
		Warnings:   warnings,
	})
	w.logger.Info().Strs("warnings", warnings).Msg(message)
}

func (w *worker) fail(err error) {
	w.logger.Error().Err(err).Msg("download failed")
	message := fmt.Sprintf(MsgErrorFormat, err)
	w.progress.Message = message
	w.sendUpdate(model.Update{
		Status:  model.RunStatusError,
		Message: message,
		Err:     err.Error(),
	})
}

func (w *worker) send(status model.RunStatus, message string) {
	w.sendUpdate(model.Update{Status: status, Message: message})
}

func (w *worker) sendUpdate(u model.Update) {
	u.RunID = w.runID
	u.Source = w.req.Source
	u.Progress = w.progress
	w.session.setLast(u)
	w.updates <- u
}

// generateRunID generates a unique, time ordered run ID using UUID v7
func generateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RunIDPrefix+"%d", time.Now().UnixNano())
	}
	return RunIDPrefix + id.String()
}
