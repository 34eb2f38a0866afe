// Package cmd contains all CLI commands for the flesch tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/flesch/internal/config"
	"github.com/f3rmion/flesch/internal/logging"
	"github.com/f3rmion/flesch/internal/scoring"
	"github.com/f3rmion/flesch/internal/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flesch",
	Short: "Score text readability against a Flesch-Kincaid endpoint",
	Long: `flesch sends text to a readability scoring service and shows the
Flesch-Kincaid grade level and Flesch reading-ease score it returns.

Running 'flesch' without arguments launches the interactive form:
type or paste text, press the Score button, read the two results.

The service is reached at <endpoint><path>, by default
http://localhost:8080/flesh, with a 3 second timeout.`,
	SilenceUsage: true,
	RunE:         runForm,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/flesch)")
	flags.String("endpoint", "", "base URL of the scoring service")
	flags.String("path", "", "request path on the scoring service")
	flags.Int("timeout", 0, "request timeout in milliseconds")
	flags.Bool("verbose", false, "write debug logs to flesch.log in the config directory")

	viper.BindPFlag("endpoint", flags.Lookup("endpoint"))
	viper.BindPFlag("path", flags.Lookup("path"))
	viper.BindPFlag("timeout", flags.Lookup("timeout"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("FLESCH")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings merges the config file with env and flag overrides.
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadDir(getConfigDir())
	if err != nil {
		return nil, err
	}

	if viper.IsSet("endpoint") && viper.GetString("endpoint") != "" {
		cfg.Endpoint = viper.GetString("endpoint")
	}
	if viper.IsSet("path") && viper.GetString("path") != "" {
		cfg.Path = viper.GetString("path")
	}
	if viper.IsSet("timeout") && viper.GetInt("timeout") > 0 {
		cfg.TimeoutMS = viper.GetInt("timeout")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openLogger returns the debug file logger when --verbose is set.
func openLogger() (*slog.Logger, io.Closer) {
	if !viper.GetBool("verbose") {
		return logging.Discard(), io.NopCloser(nil)
	}
	logger, closer, err := logging.Open(getConfigDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}

func newClient(cfg *config.Config) *scoring.Client {
	return scoring.NewClient(cfg.Endpoint, cfg.Path, scoring.WithTimeout(cfg.Timeout()))
}

// runForm launches the interactive scoring form.
func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closer := openLogger()
	defer closer.Close()

	client := newClient(cfg)
	logger.Info("starting form", "url", client.URL(), "timeout", client.Timeout())

	p := tea.NewProgram(
		tui.NewApp(cmd.Context(), client, tui.Options{
			Endpoint: client.URL(),
			Logger:   logger,
		}),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
