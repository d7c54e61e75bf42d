package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/sift/internal/config"
	"github.com/rshade/sift/internal/explorer"
	"github.com/rshade/sift/internal/files"
	"github.com/rshade/sift/internal/library"
	"github.com/rshade/sift/internal/selection"
	"github.com/rshade/sift/internal/sizing"
)

// ViewState is the top-level state of the explorer.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateError
	ViewStateQuitting
)

// chromeLines is the number of terminal lines outside the list body:
// header, status and help.
const chromeLines = 3

// widthsViewKey keys the explorer's saved widths in the width store.
const widthsViewKey = "explorer"

// contentBuffer is the capacity of the content identifier channel.
const contentBuffer = 64

// ErrInvalidName is reported when a rename target is empty or contains a separator.
var ErrInvalidName = errors.New("invalid file name")

// Services are the data layer operations the explorer drives.
type Services struct {
	Scan     func(ctx context.Context, dir string) ([]files.Entry, error)
	Identify func(ctx context.Context, entries []files.Entry, emit func(library.ContentReady)) error
	// Watch starts watching dir, calling notify on changes, and returns a stop function.
	Watch  func(ctx context.Context, dir string, notify func()) (func(), error)
	Rename func(oldPath, newPath string) error
}

// LibraryServices returns Services backed by the library package.
func LibraryServices(cfg config.ViewConfig, logger zerolog.Logger) Services {
	identifier := library.NewIdentifier(cfg.IdentifyConcurrency, logger)
	return Services{
		Scan: func(ctx context.Context, dir string) ([]files.Entry, error) {
			return library.Scan(ctx, dir, library.ScanOptions{ShowHidden: cfg.ShowHidden, Logger: logger})
		},
		Identify: identifier.Identify,
		Watch: func(ctx context.Context, dir string, notify func()) (func(), error) {
			w, err := library.NewWatcher(dir, library.DefaultDebounce, logger)
			if err != nil {
				return nil, err
			}
			runCtx, cancel := context.WithCancel(ctx)
			go func() {
				if runErr := w.Run(runCtx, notify); runErr != nil {
					logger.Warn().Err(runErr).Msg("watcher stopped")
				}
			}()
			return func() {
				cancel()
				_ = w.Close()
			}, nil
		},
		Rename: os.Rename,
	}
}

// session holds the background work tied to the current listing. It is shared
// by the model copies Bubble Tea passes around.
type session struct {
	gen            int
	cancelIdentify context.CancelFunc
	stopWatch      func()
	watchedDir     string
	rescan         <-chan string
}

func (s *session) stopIdentify() {
	if s.cancelIdentify != nil {
		s.cancelIdentify()
		s.cancelIdentify = nil
	}
}

func (s *session) close() {
	s.stopIdentify()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
}

// ExplorerModel is the Bubble Tea model for the interactive file list.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ExplorerModel struct {
	state ViewState
	ctx   context.Context

	dir     string
	entries []files.Entry
	index   map[string]int

	view   *explorer.ListView[files.Entry]
	cfg    config.ViewConfig
	svc    Services
	widths *config.WidthStore
	logger zerolog.Logger
	sess   *session

	keys      keyMap
	help      help.Model
	rename    textinput.Model
	focus     int
	dragging  string
	identified int

	width  int
	height int

	status string
	err    error
}

// NewExplorerModel creates an explorer rooted at dir. widths may be nil to
// disable width persistence.
func NewExplorerModel(
	ctx context.Context,
	dir string,
	cfg config.ViewConfig,
	svc Services,
	widths *config.WidthStore,
	logger zerolog.Logger,
) (ExplorerModel, error) {
	view, err := explorer.New(explorer.Options[files.Entry]{
		Columns: files.Columns(files.Cells(cfg.CellWidth)),
		Key:     files.Entry.Key,
		Store:   selection.NewMemoryStore(),
		Policy:  selection.ParsePolicy(cfg.SelectionPolicy),
		Sizing: sizing.Options{
			Padding:        cfg.Padding,
			ScrollbarWidth: cfg.ScrollbarWidth,
			Tolerance:      cfg.SnapTolerance,
		},
		RowHeight:      cfg.RowHeight,
		Overscan:       cfg.Overscan,
		InspectorWidth: cfg.InspectorWidth,
		Logger:         logger,
	})
	if err != nil {
		return ExplorerModel{}, fmt.Errorf("building list view: %w", err)
	}

	if widths != nil && cfg.PersistWidths {
		if saved := widths.Get(widthsViewKey); len(saved) > 0 {
			view.RestoreWidths(saved)
		}
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 255

	return ExplorerModel{
		state:  ViewStateLoading,
		ctx:    ctx,
		dir:    dir,
		index:  make(map[string]int),
		view:   view,
		cfg:    cfg,
		svc:    svc,
		widths: widths,
		logger: logger.With().Str("component", "tui").Logger(),
		sess:   &session{},
		keys:   newKeyMap(),
		help:   help.New(),
		rename: input,
	}, nil
}

// Init starts listing the initial directory.
func (m ExplorerModel) Init() tea.Cmd {
	return m.load(m.dir)
}

// Dir returns the browsed directory.
func (m ExplorerModel) Dir() string {
	return m.dir
}

// State returns the view state.
func (m ExplorerModel) State() ViewState {
	return m.state
}

// ListView returns the underlying list view.
func (m ExplorerModel) ListView() *explorer.ListView[files.Entry] {
	return m.view
}

// load lists dir under a new generation, dropping results of older loads.
func (m ExplorerModel) load(dir string) tea.Cmd {
	return m.loadSelecting(dir, "")
}

// loadSelecting is load followed by selecting the entry at selectPath.
func (m ExplorerModel) loadSelecting(dir, selectPath string) tea.Cmd {
	m.sess.gen++
	m.sess.stopIdentify()
	gen := m.sess.gen
	ctx := m.ctx
	scan := m.svc.Scan

	return func() tea.Msg {
		if scan == nil {
			return EntriesLoadedMsg{Gen: gen, Dir: dir, Select: selectPath}
		}
		entries, err := scan(ctx, dir)
		return EntriesLoadedMsg{Gen: gen, Dir: dir, Entries: entries, Select: selectPath, Err: err}
	}
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.view.Resize(msg.Width, m.listHeight())
		return m, nil

	case EntriesLoadedMsg:
		return m.handleEntriesLoaded(msg)

	case ContentReadyMsg:
		m.applyContent(msg)
		return m, nil

	case contentMsg:
		m.applyContent(msg.ContentReadyMsg)
		return m, msg.next

	case identifyDoneMsg:
		if msg.Gen == m.sess.gen && msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.logger.Warn().Err(msg.Err).Msg("content identification stopped")
		}
		return m, nil

	case RescanMsg:
		if msg.Dir != m.sess.watchedDir {
			return m, nil
		}
		m.logger.Debug().Str("dir", m.dir).Msg("rescanning")
		return m, tea.Batch(m.load(m.dir), m.waitRescan())

	case RenamedMsg:
		if msg.Err != nil {
			m.status = errorStyle.Render("rename failed: " + msg.Err.Error())
			return m, nil
		}
		m.status = "renamed to " + filepath.Base(msg.NewPath)
		return m, m.loadSelecting(m.dir, msg.NewPath)

	case tea.KeyMsg:
		if m.state == ViewStateError {
			if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Clear) {
				return m.quit()
			}
			return m, nil
		}
		if m.view.Renaming() {
			return m.handleRenameInput(msg)
		}
		return m.handleListKeypress(msg)
	}

	if m.view.Renaming() {
		var cmd tea.Cmd
		m.rename, cmd = m.rename.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ExplorerModel) handleEntriesLoaded(msg EntriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.sess.gen {
		return m, nil
	}
	if msg.Err != nil {
		m.logger.Error().Err(msg.Err).Str("dir", msg.Dir).Msg("listing failed")
		if m.entries == nil {
			m.state = ViewStateError
			m.err = msg.Err
			return m, nil
		}
		m.status = errorStyle.Render(msg.Err.Error())
		return m, nil
	}

	changedDir := msg.Dir != m.sess.watchedDir
	if changedDir {
		// A new location starts without a selection.
		m.view.ClearSelection()
		m.view.ScrollTo(0)
	}

	m.dir = msg.Dir
	m.entries = msg.Entries
	m.index = make(map[string]int, len(m.entries))
	for i, e := range m.entries {
		m.index[e.Path] = i
	}
	m.identified = 0
	m.view.SetRows(m.entries)
	if i, ok := m.index[msg.Select]; ok && msg.Select != "" {
		m.view.Select(i)
	}
	m.state = ViewStateList
	m.err = nil

	cmds := []tea.Cmd{m.identify(msg.Gen)}
	if changedDir {
		cmds = append(cmds, m.watch(msg.Dir))
	}
	return m, tea.Batch(cmds...)
}

// identify starts content identification for the current entries and returns
// the command that delivers the first result.
func (m ExplorerModel) identify(gen int) tea.Cmd {
	if m.svc.Identify == nil || len(m.entries) == 0 {
		return nil
	}

	pending := make([]files.Entry, len(m.entries))
	copy(pending, m.entries)

	ctx, cancel := context.WithCancel(m.ctx)
	m.sess.stopIdentify()
	m.sess.cancelIdentify = cancel

	results := make(chan library.ContentReady, contentBuffer)
	done := make(chan error, 1)
	identify := m.svc.Identify
	go func() {
		defer close(results)
		done <- identify(ctx, pending, func(r library.ContentReady) {
			select {
			case results <- r:
			case <-ctx.Done():
			}
		})
	}()

	return waitContent(gen, results, done)
}

func waitContent(gen int, results <-chan library.ContentReady, done <-chan error) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return identifyDoneMsg{Gen: gen, Err: <-done}
		}
		return contentMsg{ContentReadyMsg: ContentReadyMsg{Gen: gen, ContentReady: r}, next: waitContent(gen, results, done)}
	}
}

// contentMsg is a ContentReadyMsg with the command that waits for the next one.
type contentMsg struct {
	ContentReadyMsg
	next tea.Cmd
}

func (m *ExplorerModel) applyContent(msg ContentReadyMsg) {
	if msg.Gen != m.sess.gen {
		return
	}
	i, ok := m.index[msg.Path]
	if !ok {
		return
	}
	m.entries[i].ContentID = msg.ContentID
	m.identified++
	m.view.InvalidateRow(i)
}

// watch replaces the directory watcher and returns the command waiting for its
// first rescan signal.
func (m ExplorerModel) watch(dir string) tea.Cmd {
	if m.sess.stopWatch != nil {
		m.sess.stopWatch()
		m.sess.stopWatch = nil
	}
	m.sess.watchedDir = dir
	if m.svc.Watch == nil {
		return nil
	}

	rescan := make(chan string, 1)
	stop, err := m.svc.Watch(m.ctx, dir, func() {
		select {
		case rescan <- dir:
		default:
		}
	})
	if err != nil {
		m.logger.Warn().Err(err).Str("dir", dir).Msg("watching disabled")
		return nil
	}
	m.sess.stopWatch = stop
	m.sess.rescan = rescan
	return m.waitRescan()
}

func (m ExplorerModel) waitRescan() tea.Cmd {
	if m.sess.stopWatch == nil || m.sess.rescan == nil {
		return nil
	}
	rescan := m.sess.rescan
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case dir := <-rescan:
			return RescanMsg{Dir: dir}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m ExplorerModel) handleListKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	resizing := key.Matches(msg, m.keys.Narrow) || key.Matches(msg, m.keys.Widen)
	if m.dragging != "" && !resizing {
		m.endDrag()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Down):
		m.view.SelectNext()
	case key.Matches(msg, m.keys.Up):
		m.view.SelectPrev()
	case key.Matches(msg, m.keys.PageDown):
		m.view.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.view.PageUp()
	case key.Matches(msg, m.keys.Home):
		m.view.Home()
	case key.Matches(msg, m.keys.End):
		m.view.End()
	case key.Matches(msg, m.keys.Sort):
		if err := m.view.ToggleSort(m.focusedColumn()); err != nil {
			m.status = errorStyle.Render(err.Error())
		}
	case key.Matches(msg, m.keys.FocusLeft):
		m.focus = max(m.focus-1, 0)
	case key.Matches(msg, m.keys.FocusRight):
		m.focus = min(m.focus+1, len(m.view.Header())-1)
	case key.Matches(msg, m.keys.Narrow):
		m.resizeFocused(-1)
	case key.Matches(msg, m.keys.Widen):
		m.resizeFocused(1)
	case key.Matches(msg, m.keys.Inspector):
		m.view.ToggleInspector()
	case key.Matches(msg, m.keys.Rename):
		return m.beginRename()
	case key.Matches(msg, m.keys.Open):
		return m.open()
	case key.Matches(msg, m.keys.Parent):
		parent := filepath.Dir(m.dir)
		if parent == m.dir {
			return m, nil
		}
		return m, m.load(parent)
	case key.Matches(msg, m.keys.Clear):
		m.view.ClearSelection()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.view.Resize(m.width, m.listHeight())
	}
	return m, nil
}

func (m ExplorerModel) focusedColumn() string {
	header := m.view.Header()
	if len(header) == 0 {
		return ""
	}
	return header[min(m.focus, len(header)-1)].ID
}

// resizeFocused drags the focused column by delta cells.
func (m *ExplorerModel) resizeFocused(delta int) {
	id := m.focusedColumn()
	if m.dragging != id {
		if m.dragging != "" {
			m.endDrag()
		}
		if !m.view.DragStart(id) {
			m.status = "the name column fills the remaining width"
			return
		}
		m.dragging = id
	}
	m.view.DragMove(id, delta)
}

func (m *ExplorerModel) endDrag() {
	m.view.DragEnd()
	m.dragging = ""
	m.saveWidths()
}

func (m ExplorerModel) saveWidths() {
	if m.widths == nil || !m.cfg.PersistWidths {
		return
	}
	m.widths.Set(widthsViewKey, m.view.Widths())
	if err := m.widths.Save(); err != nil {
		m.logger.Warn().Err(err).Msg("saving column widths")
	}
}

func (m ExplorerModel) quit() (tea.Model, tea.Cmd) {
	if m.dragging != "" {
		m.view.DragEnd()
		m.dragging = ""
	}
	m.saveWidths()
	m.sess.close()
	m.state = ViewStateQuitting
	return m, tea.Quit
}

func (m ExplorerModel) open() (tea.Model, tea.Cmd) {
	row, ok := m.view.SelectedRow()
	if !ok || !row.IsDir {
		return m, nil
	}
	return m, m.load(row.Path)
}

func (m ExplorerModel) beginRename() (tea.Model, tea.Cmd) {
	row, ok := m.view.SelectedRow()
	if !ok || !m.view.BeginRename() {
		return m, nil
	}
	m.rename.SetValue(row.FileName())
	m.rename.CursorEnd()
	m.rename.Focus()
	return m, textinput.Blink
}

func (m ExplorerModel) handleRenameInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view.EndRename()
		m.rename.Blur()
		return m, nil
	case "enter":
		return m.commitRename()
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

func (m ExplorerModel) commitRename() (tea.Model, tea.Cmd) {
	row, ok := m.view.SelectedRow()
	m.view.EndRename()
	m.rename.Blur()
	if !ok {
		return m, nil
	}

	name := strings.TrimSpace(m.rename.Value())
	if name == row.FileName() {
		return m, nil
	}
	if name == "" || strings.ContainsRune(name, filepath.Separator) || name == "." || name == ".." {
		m.status = errorStyle.Render(fmt.Sprintf("%v: %q", ErrInvalidName, name))
		return m, nil
	}
	if m.svc.Rename == nil {
		return m, nil
	}

	oldPath := row.Path
	newPath := filepath.Join(filepath.Dir(oldPath), name)
	rename := m.svc.Rename
	return m, func() tea.Msg {
		return RenamedMsg{OldPath: oldPath, NewPath: newPath, Err: rename(oldPath, newPath)}
	}
}

// listHeight is the number of terminal lines available to rows.
func (m ExplorerModel) listHeight() int {
	lines := chromeLines
	if m.help.ShowAll {
		tallest := 0
		for _, group := range m.keys.FullHelp() {
			tallest = max(tallest, len(group))
		}
		lines += tallest - 1
	}
	return max(m.height-lines, 0)
}
