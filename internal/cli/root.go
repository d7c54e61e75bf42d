package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/sift/internal/config"
	"github.com/rshade/sift/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootState is shared by the root command and its subcommands for one execution.
type rootState struct {
	configPath string
	cfg        config.Config
	logResult  *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the sift CLI.
// It loads configuration, wires up logging and tracing, and registers the
// browse, ls and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	st := &rootState{}

	cmd := &cobra.Command{
		Use:           "sift",
		Short:         "Browse directories in a virtualized, sortable file list",
		Long:          "sift: a terminal file browser with sortable, resizable columns and content identifiers",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg

			result := setupLogging(cmd, cfg.Logging, interactive(cmd))
			st.logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(st.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&st.configPath, "config", "", "config file (default ~/.sift/config.yaml)")
	cmd.AddCommand(newBrowseCmd(st), newLsCmd(st), newConfigCmd(st))

	return cmd
}

// loadConfig loads the config from path, or from the default location when empty.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// interactive reports whether cmd takes over the terminal.
func interactive(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationInteractive] == "true"
}

// annotationInteractive marks commands that draw a full-screen interface.
const annotationInteractive = "sift/interactive"

const rootCmdExample = `  # Browse the current directory
  sift browse

  # Browse a directory
  sift browse ~/Downloads

  # Print the first rows of a directory sorted by size
  sift ls ~/Downloads --sort size:desc --height 20

  # Write the default configuration
  sift config init

  # Show the effective configuration
  sift config show`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(st), newConfigPathCmd())
	return cmd
}
