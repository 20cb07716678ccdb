package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/session"
)

//go:embed index.html
var indexHTML []byte

// playlistRequest is the body of POST /api/playlist
type playlistRequest struct {
	URL string `json:"url"`
}

// downloadRequest is the body of POST /api/download. Empty fields fall back
// to the configured defaults.
type downloadRequest struct {
	Source  string `json:"source"`
	URL     string `json:"url"`
	Dir     string `json:"dir"`
	Format  string `json:"format"`
	Combine *bool  `json:"combine"`
}

type playlistResponse struct {
	*model.PlaylistInfo
	Summary      string `json:"summary"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type statusResponse struct {
	Busy     bool                `json:"busy"`
	Playlist *model.PlaylistInfo `json:"playlist,omitempty"`
	Last     model.Update        `json:"last"`
	Percent  int                 `json:"percent"`
}

type downloadResponse struct {
	Started bool `json:"started"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(c *echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMETextHTMLCharsetUTF8, indexHTML)
}

func (s *Server) handleLoadPlaylist(c *echo.Context) error {
	var req playlistRequest
	if err := decodeJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	info, err := s.session.LoadPlaylist(c.Request().Context(), req.URL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, playlistResponse{
		PlaylistInfo: info,
		Summary:      info.Summary(),
		ThumbnailURL: info.Thumbnail(),
	})
}

func (s *Server) handleDownload(c *echo.Context) error {
	var body downloadRequest
	if err := decodeJSON(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	req, err := s.buildRequest(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updates, err := s.session.Download(s.runCtx, req)
	switch {
	case errors.Is(err, session.ErrBusy):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case err != nil:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	go s.drain(updates)
	return c.JSON(http.StatusAccepted, downloadResponse{Started: true})
}

// drain logs the run's terminal update; the page polls the session snapshot
func (s *Server) drain(updates <-chan model.Update) {
	for u := range updates {
		if u.Status.IsFinished() {
			s.logger.Info().
				Str("run_id", u.RunID).
				Str("status", u.Status.String()).
				Strs("warnings", u.Warnings).
				Msg(u.Message)
		}
	}
}

func (s *Server) handleStatus(c *echo.Context) error {
	last := s.session.Status()
	return c.JSON(http.StatusOK, statusResponse{
		Busy:     s.session.Busy(),
		Playlist: s.session.Playlist(),
		Last:     last,
		Percent:  last.Progress.Percent(),
	})
}

func (s *Server) handleHistory(c *echo.Context) error {
	return c.JSON(http.StatusOK, s.session.History().Lines())
}

func (s *Server) handleClearHistory(c *echo.Context) error {
	s.session.History().Clear()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleReset(c *echo.Context) error {
	if s.session.Busy() {
		return c.JSON(http.StatusConflict, errorResponse{Error: session.ErrBusy.Error()})
	}
	s.session.Reset()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) buildRequest(body downloadRequest) (model.Request, error) {
	req := model.Request{
		URL:     body.URL,
		Dir:     body.Dir,
		Format:  s.settings.GetAudioFormat(),
		Source:  s.settings.GetSource(),
		Combine: s.settings.GetCombineOutput(),
	}
	if body.Source != "" {
		source, err := model.ParseSource(body.Source)
		if err != nil {
			return req, err
		}
		req.Source = source
	}
	if body.Format != "" {
		format, err := model.ParseAudioFormat(body.Format)
		if err != nil {
			return req, err
		}
		req.Format = format
	}
	if body.Combine != nil {
		req.Combine = *body.Combine
	}
	if req.Dir == "" {
		req.Dir = s.settings.GetDownloadDirectory()
	}
	return req, nil
}

func decodeJSON(c *echo.Context, v any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
