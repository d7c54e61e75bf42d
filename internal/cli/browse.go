package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/sift/internal/config"
	"github.com/rshade/sift/internal/library"
	"github.com/rshade/sift/internal/tui"
)

// newBrowseCmd creates the interactive browser command.
func newBrowseCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse a directory interactively",
		Long: `Opens a full-screen, virtualized file list.

Keys: ↑/k ↓/j move, pgup/pgdn page, home/end jump, ←/→ pick a column,
s sort it, </> resize it, i inspector, r rename, enter open, backspace
parent, esc clear selection, ? help, q quit.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runBrowse(cmd, st.cfg, dir)
		},
	}
}

func runBrowse(cmd *cobra.Command, cfg config.Config, dir string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotInteractive
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return wrapf(err, "resolving %s", dir)
	}
	if err = checkDir(abs); err != nil {
		return err
	}

	ctx := cmd.Context()
	widths := openWidthStore(cfg.View)

	model, err := tui.NewExplorerModel(ctx, abs, cfg.View, tui.LibraryServices(cfg.View, logger), widths, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run interactive browser: %w", err)
	}
	return nil
}

// checkDir validates the starting directory before the screen is taken over.
func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return classify(fmt.Errorf("%w: %s", library.ErrPathNotFound, dir))
	}
	if err != nil {
		return wrapf(err, "stat %s", dir)
	}
	if !info.IsDir() {
		return classify(fmt.Errorf("%w: %s", library.ErrNotDirectory, dir))
	}
	return nil
}

// openWidthStore loads saved column widths; failures disable persistence.
func openWidthStore(cfg config.ViewConfig) *config.WidthStore {
	if !cfg.PersistWidths {
		return nil
	}
	store, err := config.NewWidthStore("")
	if err != nil {
		logger.Warn().Err(err).Msg("column widths will not be saved")
		return nil
	}
	if err = store.Load(); err != nil {
		logger.Warn().Err(err).Str("path", store.FilePath()).Msg("ignoring saved column widths")
	}
	return store
}
