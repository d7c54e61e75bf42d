package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/sift/internal/explorer"
	"github.com/rshade/sift/internal/files"
	"github.com/rshade/sift/internal/sizing"
	"github.com/rshade/sift/internal/table"
)

// inspectorTimeLayout formats timestamps in the inspector.
const inspectorTimeLayout = "Jan 2 2006 15:04"

// View renders the explorer (Bubble Tea interface).
func (m ExplorerModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return statusStyle.Render("Loading " + m.dir + "...")
	case ViewStateError:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n" + statusStyle.Render("press q to quit")
	case ViewStateList:
	}

	body := m.renderTable()
	if m.view.InspectorVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderInspector())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(), m.help.View(m.keys))
}

// frame lays out one table line: left padding, body clipped to the column area,
// right padding and the scrollbar cell.
func (m ExplorerModel) frame(body, bar string, style *lipgloss.Style) string {
	left := m.cfg.Padding / 2
	right := m.cfg.Padding - left
	inner := max(m.view.ContentWidth()-m.cfg.Padding-m.cfg.ScrollbarWidth, 0)

	content := fit(body, inner, "")
	if style != nil {
		content = style.Render(content)
	}
	return strings.Repeat(" ", left) + content + strings.Repeat(" ", right) +
		scrollStyle.Render(fit(bar, m.cfg.ScrollbarWidth, ""))
}

func (m ExplorerModel) renderTable() string {
	lines := make([]string, 0, m.listHeight()+1)
	lines = append(lines, m.frame(m.renderHeader(), "", nil))

	height := m.listHeight()
	bar := m.scrollbar(height)
	win := m.view.Window()

	line := 0
	for _, row := range m.view.Rows() {
		// Overscan rows lie outside the terminal viewport.
		if row.Position < win.VisibleStart || row.Position > win.VisibleEnd || line >= height {
			continue
		}
		var style *lipgloss.Style
		switch {
		case row.Selected:
			style = &selectedRowStyle
		case row.Even:
			style = &zebraRowStyle
		}
		lines = append(lines, m.frame(m.renderRow(row), bar[line], style))
		line++
	}
	for ; line < height; line++ {
		lines = append(lines, m.frame("", bar[line], nil))
	}
	return strings.Join(lines, "\n")
}

func (m ExplorerModel) renderHeader() string {
	var b strings.Builder
	for i, cell := range m.view.Header() {
		title := cell.Title
		if cell.Sorted {
			if cell.Direction == table.Descending {
				title += " " + caretDown
			} else {
				title += " " + caretUp
			}
		}
		text := fit(title, cell.Width-1, "…") + " "
		if i == m.focus {
			b.WriteString(focusedHeaderStyle.Render(text))
		} else {
			b.WriteString(headerStyle.Render(text))
		}
	}
	return b.String()
}

func (m ExplorerModel) renderRow(row explorer.RenderedRow) string {
	header := m.view.Header()
	var b strings.Builder
	for i, cell := range row.Cells {
		if i >= len(header) {
			break
		}
		w := header[i].Width
		if row.Selected && m.view.Renaming() && header[i].ID == files.ColumnName {
			m.rename.Width = max(w-2, 1)
			b.WriteString(fit(m.rename.View(), w-1, "") + " ")
			continue
		}
		b.WriteString(fit(cell, w-1, "…") + " ")
	}
	return b.String()
}

// scrollbar returns one glyph per list line.
func (m ExplorerModel) scrollbar(height int) []string {
	bar := make([]string, height)
	total := m.view.Window().TotalSize
	if height == 0 || total <= height {
		return bar
	}

	thumb := max(height*height/total, 1)
	maxScroll := total - height
	top := m.view.ScrollTop() * (height - thumb) / maxScroll
	for i := range bar {
		if i >= top && i < top+thumb {
			bar[i] = scrollThumb
		} else {
			bar[i] = scrollTrack
		}
	}
	return bar
}

func (m ExplorerModel) renderInspector() string {
	row, ok := m.view.SelectedRow()
	if !ok {
		return ""
	}

	p := message.NewPrinter(language.English)
	field := func(label, value string) string {
		return inspectorLabelStyle.Render(label) + "\n" + value
	}

	parts := []string{inspectorTitleStyle.Render(row.FileName()), field("Kind", row.Kind.String())}
	if !row.IsDir {
		parts = append(parts, field("Size", humanize.Bytes(uint64(max(row.Size, 0)))+
			p.Sprintf(" (%d bytes)", row.Size)))
	}
	if !row.Created.IsZero() {
		parts = append(parts, field("Created", row.Created.Format(inspectorTimeLayout)))
	}
	if !row.Modified.IsZero() {
		parts = append(parts, field("Modified", humanize.Time(row.Modified)))
	}
	cid := row.ContentID
	if cid == "" && !row.IsDir {
		cid = "pending"
	}
	if cid != "" {
		parts = append(parts, field("Content ID", cid))
	}
	parts = append(parts, field("Path", row.Path))

	// The border takes one cell on each side.
	style := inspectorStyle.Width(max(m.cfg.InspectorWidth-2, 1))
	if h := m.listHeight() + 1 - 2; h > 0 {
		style = style.Height(h)
	}
	return style.Render(strings.Join(parts, "\n\n"))
}

func (m ExplorerModel) renderStatus() string {
	if m.status != "" {
		return m.status
	}

	p := message.NewPrinter(language.English)
	parts := []string{m.dir, p.Sprintf("%d items", m.view.Len())}

	if sort := m.view.Table().Sort(); sort.Active() {
		parts = append(parts, "sorted by "+sort.ColumnID+" "+sort.Direction.String())
	}
	if m.identified > 0 {
		parts = append(parts, p.Sprintf("%d identified", m.identified))
	}
	if m.view.Sizer().Mode() == sizing.Unlocked {
		parts = append(parts, "custom widths")
	}
	return statusStyle.Render(strings.Join(parts, " · "))
}
