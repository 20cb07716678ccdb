package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ytget/playlist-downloader/internal/app"
	"github.com/ytget/playlist-downloader/internal/config"
	"github.com/ytget/playlist-downloader/internal/logging"
	"github.com/ytget/playlist-downloader/internal/platform"
)

// Flag names
const (
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagDir       = "dir"
	FlagFormat    = "format"
	FlagNoCombine = "no-combine"
	FlagPlaylist  = "playlist"
	FlagListen    = "listen"
)

// ContextFactory builds the services for a loaded configuration
type ContextFactory func(settings *config.Settings, logger zerolog.Logger) *app.Context

// CLI holds the command tree and the state loaded before a command runs
type CLI struct {
	root       *cobra.Command
	newContext ContextFactory
	lookPath   platform.LookPathFunc
	out        io.Writer
	logOut     io.Writer

	v        *viper.Viper
	settings *config.Settings
	logger   zerolog.Logger
	closer   io.Closer
	app      *app.Context
}

// New creates the production CLI
func New(version string) *CLI {
	return newCLI(version, app.NewContext, exec.LookPath, color.Output, os.Stderr)
}

func newCLI(version string, factory ContextFactory, lookPath platform.LookPathFunc, out, logOut io.Writer) *CLI {
	c := &CLI{
		newContext: factory,
		lookPath:   lookPath,
		out:        out,
		logOut:     logOut,
		logger:     zerolog.Nop(),
	}

	c.root = &cobra.Command{
		Use:               "playlistdl",
		Short:             "playlistdl downloads YouTube playlists and Spotify albums as audio",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.load,
		PersistentPostRun: func(*cobra.Command, []string) { c.close() },
	}
	c.root.SetOut(out)

	flags := c.root.PersistentFlags()
	flags.String(FlagConfig, "", "config file (default ./playlistdl.yaml or the user config dir)")
	flags.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	flags.String(FlagDir, "", "download directory")
	flags.String(FlagFormat, "", "audio format: flac or mp3")

	c.root.AddCommand(
		c.newInfoCmd(),
		c.newDownloadCmd(),
		c.newSpotifyCmd(),
		c.newCombineCmd(),
		c.newServeCmd(),
	)
	return c
}

// Execute runs the command tree; ctx should be cancelled on interrupt
func (c *CLI) Execute(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// SetArgs overrides os.Args[1:]
func (c *CLI) SetArgs(args []string) {
	c.root.SetArgs(args)
}

// load reads the configuration, binds the persistent flags over it and
// builds the logger and services
func (c *CLI) load(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString(FlagConfig)
	v, err := config.LoadViper(cfgPath)
	if err != nil {
		return err
	}

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	c.v = v
	c.settings = config.NewSettingsWith(config.NewViperPreferences(v))

	logger, closer, err := logging.New(logging.Options{
		Level:   c.settings.GetLogLevel(),
		File:    c.settings.GetLogFile(),
		Console: c.logOut,
	})
	if err != nil {
		return err
	}
	c.logger = logger
	c.closer = closer

	c.app = c.newContext(c.settings, logger)
	return nil
}

// flagKeys maps config keys to the flags that override them
var flagKeys = map[string]string{
	config.KeyLogLevel:    FlagLogLevel,
	config.KeyDownloadDir: FlagDir,
	config.KeyAudioFormat: FlagFormat,
	config.KeyListenAddr:  FlagListen,
}

// bindFlags binds the flags the user set over the loaded configuration
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func (c *CLI) close() {
	if c.closer != nil {
		c.closer.Close()
	}
}

// requireDependencies fails when yt-dlp or ffmpeg is missing
func (c *CLI) requireDependencies() error {
	return platform.ValidateDependencies(c.logger, c.lookPath, c.settings.Binaries())
}
