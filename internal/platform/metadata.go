package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/model"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	VideoParam     = "v"
	ParamSeparator = "&"
	ShortHost      = "youtu.be"
	ShortsPath     = "/shorts/"
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
)

// URL templates
const (
	YouTubeVideoURLTemplate    = "https://www.youtube.com/watch?v=%s"
	YouTubePlaylistURLTemplate = "https://www.youtube.com/playlist?list=%s"
	ThumbnailURLTemplate       = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// Playlist title constants
const (
	MinPrefixLength = 10
	PlaylistSuffix  = " Playlist"
)

// ErrNoURL is returned when metadata is requested for an empty URL
var ErrNoURL = errors.New("no URL provided")

// PlaylistLister lists the entries of a playlist by its ID
type PlaylistLister interface {
	ListPlaylist(ctx context.Context, playlistID string) ([]model.Entry, error)
}

// VideoProber fetches metadata for a single video URL
type VideoProber interface {
	ProbeVideo(ctx context.Context, videoURL string) (model.Entry, error)
}

// PlaylistTitler reads the title a playlist carries on YouTube. A prober that
// implements it supplies playlist titles.
type PlaylistTitler interface {
	PlaylistTitle(ctx context.Context, playlistURL string) (string, error)
}

// MetadataService resolves a URL into PlaylistInfo
type MetadataService struct {
	lister  PlaylistLister
	prober  VideoProber
	timeout time.Duration
	logger  zerolog.Logger
}

// NewMetadataService creates a service using the library-backed lister and prober
func NewMetadataService(logger zerolog.Logger) *MetadataService {
	return NewMetadataServiceWith(NewYTDLPLister(), NewYTDLPProber(), logger)
}

// NewMetadataServiceWith creates a service with explicit backends
func NewMetadataServiceWith(lister PlaylistLister, prober VideoProber, logger zerolog.Logger) *MetadataService {
	return &MetadataService{
		lister:  lister,
		prober:  prober,
		timeout: DefaultParseTimeout,
		logger:  logger,
	}
}

// SetTimeout sets the timeout for metadata operations
func (m *MetadataService) SetTimeout(timeout time.Duration) {
	m.timeout = timeout
}

// FetchPlaylist returns metadata for a playlist or single video URL
func (m *MetadataService) FetchPlaylist(ctx context.Context, rawURL string) (*model.PlaylistInfo, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrNoURL
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if playlistID := extractPlaylistID(rawURL); playlistID != "" {
		return m.fetchPlaylist(ctx, rawURL, playlistID)
	}

	videoID := extractVideoID(rawURL)
	if videoID == "" {
		return nil, fmt.Errorf("unsupported URL: %s", rawURL)
	}
	return m.fetchVideo(ctx, rawURL, videoID), nil
}

func (m *MetadataService) fetchPlaylist(ctx context.Context, rawURL, playlistID string) (*model.PlaylistInfo, error) {
	entries, err := m.lister.ListPlaylist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	for i := range entries {
		fillEntryDefaults(&entries[i])
	}

	m.logger.Debug().Str("playlist_id", playlistID).Int("entries", len(entries)).Msg("playlist loaded")

	return &model.PlaylistInfo{
		Title:      m.playlistTitle(ctx, playlistID, entries),
		URL:        rawURL,
		IsPlaylist: true,
		Entries:    entries,
		FetchedAt:  time.Now(),
	}, nil
}

// playlistTitle prefers the real playlist title and falls back to one derived
// from the entries.
func (m *MetadataService) playlistTitle(ctx context.Context, playlistID string, entries []model.Entry) string {
	if titler, ok := m.prober.(PlaylistTitler); ok {
		title, err := titler.PlaylistTitle(ctx, fmt.Sprintf(YouTubePlaylistURLTemplate, playlistID))
		if err != nil {
			m.logger.Warn().Err(err).Str("playlist_id", playlistID).Msg("playlist title lookup failed")
		} else if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	return extractPlaylistTitle(entries)
}

// fetchVideo never fails: without probe data the video ID stands in for the title.
func (m *MetadataService) fetchVideo(ctx context.Context, rawURL, videoID string) *model.PlaylistInfo {
	entry := model.Entry{ID: videoID, Title: videoID}
	if m.prober != nil {
		probed, err := m.prober.ProbeVideo(ctx, rawURL)
		if err != nil {
			m.logger.Warn().Err(err).Str("video_id", videoID).Msg("video probe failed")
		} else {
			if probed.ID == "" {
				probed.ID = videoID
			}
			if probed.Title == "" {
				probed.Title = videoID
			}
			entry = probed
		}
	}
	fillEntryDefaults(&entry)

	return &model.PlaylistInfo{
		Title:     entry.Title,
		URL:       rawURL,
		Entries:   []model.Entry{entry},
		FetchedAt: time.Now(),
	}
}

func fillEntryDefaults(e *model.Entry) {
	if e.ID == "" {
		return
	}
	if e.URL == "" {
		e.URL = fmt.Sprintf(YouTubeVideoURLTemplate, e.ID)
	}
	if e.Thumbnail == "" {
		e.Thumbnail = fmt.Sprintf(ThumbnailURLTemplate, e.ID)
	}
}

// extractPlaylistID extracts the playlist ID from various URL formats
func extractPlaylistID(rawURL string) string {
	if !strings.Contains(rawURL, PlaylistParam) {
		return ""
	}
	parts := strings.Split(rawURL, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

// extractVideoID supports watch?v=, youtu.be/ and /shorts/ links
func extractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	if id := u.Query().Get(VideoParam); id != "" {
		return id
	}
	if strings.TrimPrefix(u.Host, "www.") == ShortHost {
		return strings.Trim(u.Path, "/")
	}
	if strings.HasPrefix(u.Path, ShortsPath) {
		return strings.Trim(strings.TrimPrefix(u.Path, ShortsPath), "/")
	}
	return ""
}

// extractPlaylistTitle generates a title for the playlist based on its entries
func extractPlaylistTitle(entries []model.Entry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		commonPrefix := findCommonPrefix(entries[0].Title, entries[1].Title)
		if len(commonPrefix) > MinPrefixLength {
			return strings.TrimSpace(commonPrefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
