package main

// @title           Deep API
// @version         1.0
// @description     Local control API for the Deep launcher search pipeline.

// @contact.name   Deep OSS
// @contact.url    https://github.com/custodia-labs/deep-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      127.0.0.1:7345
// @BasePath  /api/v1
// @schemes   http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/custodia-labs/deep-core/docs"
	"github.com/custodia-labs/deep-core/internal/config"
)

var version = "dev"

var (
	cfgFile string
	verbose bool

	appCfg *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "deep",
	Short: "Launcher search backend.",
	Long: `Deep searches the folders you index and drives the launcher UI
through a local control API.

  deep serve                 run the control API
  deep search notes          run one search and print the results
  deep paths add ~/Documents index a folder`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.deep/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initApp loads .env, configuration and the logger before any subcommand runs
func initApp(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	appCfg = cfg
	logger = newLogger(cfg)
	slog.SetDefault(logger)
	return nil
}

// newLogger writes to stderr so command output on stdout stays clean
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("app", "deep")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
