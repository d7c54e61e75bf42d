package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/sift/internal/config"
	"github.com/rshade/sift/internal/explorer"
	"github.com/rshade/sift/internal/files"
	"github.com/rshade/sift/internal/library"
	"github.com/rshade/sift/internal/sizing"
	"github.com/rshade/sift/internal/table"
)

// Output formats for ls.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// Fallback geometry when stdout is not a terminal.
const (
	defaultLsWidth  = 120
	defaultLsHeight = 30
)

// lsOptions holds the flags of the ls command.
type lsOptions struct {
	sort     string
	width    int
	height   int
	offset   int
	format   string
	all      bool
	identify bool
}

// newLsCmd creates the non-interactive listing command. It renders the rows of the
// virtual window a terminal of the given size would show.
func newLsCmd(st *rootState) *cobra.Command {
	var opts lsOptions

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "Print one window of a directory listing",
		Long: `Lists a directory through the same sorted, virtualized list the browser uses
and prints the window of rows visible at the given scroll offset.

Column widths follow the browser: fixed columns keep their widths and the
Name column fills what is left of --width.`,
		Example: `  # List the current directory
  sift ls

  # Largest files first, 20 rows
  sift ls ~/Downloads --sort size:desc --height 20

  # Rows 100 onwards as JSON with content identifiers
  sift ls /data --offset 100 --identify --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runLs(cmd, st.cfg, dir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort expression column[:asc|desc] (name, type, size, created, content_id)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "viewport width in cells (default: terminal width or 120)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "number of rows to print (default: terminal height or 30)")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "scroll offset in rows")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "output format: table or json")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include hidden files")
	cmd.Flags().BoolVar(&opts.identify, "identify", false, "compute content identifiers before printing")

	return cmd
}

func runLs(cmd *cobra.Command, cfg config.Config, dir string, opts lsOptions) error {
	ctx := cmd.Context()

	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("unsupported format %q (want %s or %s)", opts.format, formatTable, formatJSON)
	}
	var (
		field     string
		direction table.Direction
		err       error
	)
	if opts.sort != "" {
		if field, direction, err = table.ParseSortExpression(opts.sort); err != nil {
			return err
		}
	}

	entries, err := library.Scan(ctx, dir, library.ScanOptions{
		ShowHidden: opts.all || cfg.View.ShowHidden,
		Logger:     logger,
	})
	if err != nil {
		return classify(err)
	}

	if opts.identify {
		index := make(map[string]int, len(entries))
		for i, e := range entries {
			index[e.Path] = i
		}
		// Each emit targets a distinct index.
		identifier := library.NewIdentifier(cfg.View.IdentifyConcurrency, logger)
		if err = identifier.Identify(ctx, entries, func(r library.ContentReady) {
			entries[index[r.Path]].ContentID = r.ContentID
		}); err != nil {
			return wrapf(err, "identifying %s", dir)
		}
	}

	view, err := explorer.New(explorer.Options[files.Entry]{
		Columns: files.Columns(files.Cells(cfg.View.CellWidth)),
		Key:     files.Entry.Key,
		Sizing: sizing.Options{
			Padding:        cfg.View.Padding,
			ScrollbarWidth: cfg.View.ScrollbarWidth,
			Tolerance:      cfg.View.SnapTolerance,
		},
		RowHeight: cfg.View.RowHeight,
		Overscan:  0,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	view.SetRows(entries)
	if field != "" {
		if err = view.SetSort(field, direction); err != nil {
			return err
		}
	}

	width, height := viewportSize(opts)
	view.Resize(width, height*cfg.View.RowHeight)
	view.ScrollTo(opts.offset * cfg.View.RowHeight)

	logger.Debug().Ctx(ctx).
		Str("dir", dir).
		Int("entries", len(entries)).
		Int("width", width).
		Int("height", height).
		Msg("rendering listing")

	if opts.format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), view)
	}
	return writeTable(cmd.OutOrStdout(), view, cfg.View.Padding)
}

// viewportSize resolves the listing geometry from flags and the terminal.
func viewportSize(opts lsOptions) (int, int) {
	width, height := opts.width, opts.height
	if width > 0 && height > 0 {
		return width, height
	}

	termWidth, termHeight := defaultLsWidth, defaultLsHeight
	if isTerminal(os.Stdout) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			// Leave room for the header and the shell prompt.
			termWidth, termHeight = w, max(h-2, 1)
		}
	}
	if width <= 0 {
		width = termWidth
	}
	if height <= 0 {
		height = termHeight
	}
	return width, height
}

func writeTable(w io.Writer, view *explorer.ListView[files.Entry], padding int) error {
	header := view.Header()
	indent := strings.Repeat(" ", padding/2)

	var b strings.Builder
	b.WriteString(indent)
	for _, h := range header {
		b.WriteString(cell(h.Title, h.Width))
	}
	b.WriteString("\n")

	for _, row := range view.Rows() {
		b.WriteString(indent)
		for i, c := range row.Cells {
			b.WriteString(cell(c, header[i].Width))
		}
		b.WriteString("\n")
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// cell renders s in a column of width w with a one-cell gap.
func cell(s string, w int) string {
	inner := max(w-1, 0)
	if ansi.StringWidth(s) > inner {
		s = ansi.Truncate(s, inner, "…")
	}
	return s + strings.Repeat(" ", max(w-ansi.StringWidth(s), 0))
}

// jsonRow is the JSON shape of one listed row.
type jsonRow struct {
	Position  int    `json:"position"`
	Path      string `json:"path"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	IsDir     bool   `json:"is_dir"`
	Size      int64  `json:"size"`
	Created   string `json:"created,omitempty"`
	ContentID string `json:"content_id,omitempty"`
}

func writeJSON(w io.Writer, view *explorer.ListView[files.Entry]) error {
	rendered := view.Rows()
	rows := make([]jsonRow, 0, len(rendered))
	for _, r := range rendered {
		e, _ := view.Table().Row(r.RowIndex)
		row := jsonRow{
			Position:  r.Position,
			Path:      e.Path,
			Name:      e.FileName(),
			Kind:      e.Kind.String(),
			IsDir:     e.IsDir,
			Size:      e.Size,
			ContentID: e.ContentID,
		}
		if !e.Created.IsZero() {
			row.Created = e.Created.UTC().Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"total": view.Len(),
		"rows":  rows,
	})
}
