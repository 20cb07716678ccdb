package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/playlist-downloader/internal/config"
	"github.com/ytget/playlist-downloader/internal/model"
	"github.com/ytget/playlist-downloader/internal/platform"
	"github.com/ytget/playlist-downloader/internal/web"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <url>",
		Short: "Show the title and entries of a playlist or video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := c.app.Session.LoadPlaylist(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			successColor.Fprintln(c.out, info.Title)
			fmt.Fprintln(c.out, info.Summary())
			fmt.Fprintln(c.out, info.Thumbnail())
			for i, e := range info.Entries {
				fmt.Fprintf(c.out, "%3d. %s\n", i+1, e.Title)
			}
			return nil
		},
	}
}

func (c *CLI) newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a YouTube playlist or video as audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireDependencies(); err != nil {
				return err
			}

			noCombine, _ := cmd.Flags().GetBool(FlagNoCombine)
			writePlaylist, _ := cmd.Flags().GetBool(FlagPlaylist)
			if cmd.Flags().Changed(FlagPlaylist) {
				c.app.Session.SetWritePlaylist(writePlaylist)
			}

			info, err := c.app.Session.LoadPlaylist(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s (%s)\n", info.Title, info.Summary())

			req := c.request(model.SourceYouTube, args[0])
			req.Combine = c.settings.GetCombineOutput() && !noCombine
			return c.runDownload(cmd, req, info.Title)
		},
	}
	cmd.Flags().Bool(FlagNoCombine, false, "keep per-track files only")
	cmd.Flags().Bool(FlagPlaylist, false, "write an M3U playlist next to the tracks")
	return cmd
}

func (c *CLI) newSpotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spotify <url>",
		Short: "Download a Spotify album or playlist with spotdl",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := platform.ResolveBinary(c.settings.GetSpotDLPath()); err != nil {
				return err
			}
			return c.runDownload(cmd, c.request(model.SourceSpotify, args[0]), model.SourceSpotify.Label())
		},
	}
}

func (c *CLI) newCombineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine <title>...",
		Short: "Concatenate already downloaded tracks in playlist order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.settings.GetDownloadDirectory()
			if !platform.IsDirectory(dir) {
				return fmt.Errorf("download directory not found: %s", dir)
			}
			format := c.settings.GetAudioFormat()

			res, err := c.app.Combiner.Combine(cmd.Context(), dir, args, format)
			if res != nil {
				for _, w := range res.Warnings() {
					warnColor.Fprintln(c.out, "warning:", w)
				}
			}
			if err != nil {
				return err
			}
			successColor.Fprintf(c.out, "Combined into %s\n", res.OutputPath)

			if writePlaylist, _ := cmd.Flags().GetBool(FlagPlaylist); writePlaylist {
				path, err := c.app.Combiner.WritePlaylist(cmd.Context(), dir, res.Included)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.out, path)
			}
			return nil
		},
	}
	cmd.Flags().Bool(FlagPlaylist, false, "also write an M3U playlist of the included tracks")
	return cmd
}

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser front-end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireDependencies(); err != nil {
				c.logger.Warn().Err(err).Msg("downloads will fail until the dependency is installed")
			}
			srv := web.NewServer(cmd.Context(), c.app.Session, c.settings, c.logger)
			return srv.ListenAndServe(cmd.Context(), c.settings.GetListenAddr())
		},
	}
	cmd.Flags().String(FlagListen, "", "listen address (default "+config.DefaultListenAddr+")")
	return cmd
}

func (c *CLI) request(source model.Source, url string) model.Request {
	return model.Request{
		Source:  source,
		URL:     url,
		Dir:     c.settings.GetDownloadDirectory(),
		Format:  c.settings.GetAudioFormat(),
		Combine: c.settings.GetCombineOutput(),
	}
}

// runDownload starts req and renders its updates until the run ends
func (c *CLI) runDownload(cmd *cobra.Command, req model.Request, name string) error {
	updates, err := c.app.Session.Download(cmd.Context(), req)
	if err != nil {
		return err
	}

	last := newProgressReporter(c.out).Run(name, updates)
	if last.Status == model.RunStatusError {
		return fmt.Errorf("download failed: %s", last.Err)
	}
	return nil
}
