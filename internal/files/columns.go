package files

import (
	"github.com/dustin/go-humanize"

	"github.com/rshade/sift/internal/table"
)

// Column ids.
const (
	ColumnName      = "name"
	ColumnType      = "type"
	ColumnSize      = "size"
	ColumnCreated   = "created"
	ColumnContentID = "content_id"
)

// Pixel widths of the explorer list view.
const (
	nameMinWidth      = 200
	defaultMinWidth   = 100
	defaultWidth      = table.DefaultColumnWidth
	sizeWidth         = 100
	contentIDWidth    = 180
	createdDateLayout = "Jan 2 2006"
)

// Units converts the pixel widths of the column set into layout units.
type Units struct {
	// PixelsPerUnit is the pixel width of one unit; 1 keeps pixels.
	PixelsPerUnit int
}

// Pixels keeps widths in pixels.
func Pixels() Units {
	return Units{PixelsPerUnit: 1}
}

// Cells converts widths to terminal cells of cellWidth pixels.
func Cells(cellWidth int) Units {
	return Units{PixelsPerUnit: max(cellWidth, 1)}
}

// Scale converts px to units, rounding up.
func (u Units) Scale(px int) int {
	per := max(u.PixelsPerUnit, 1)
	return (px + per - 1) / per
}

// Columns returns the file list column model in u.
func Columns(u Units) []table.Column[Entry] {
	return []table.Column[Entry]{
		{
			ID:       ColumnName,
			Header:   "Name",
			Accessor: func(e Entry) table.Value { return table.Text(e.FileName()) },
			MinWidth: u.Scale(nameMinWidth),
			Flexible: true,
		},
		{
			ID:           ColumnType,
			Header:       "Type",
			Accessor:     func(e Entry) table.Value { return table.Text(e.Kind.String()) },
			MinWidth:     u.Scale(defaultMinWidth),
			InitialWidth: u.Scale(defaultWidth),
		},
		{
			ID:     ColumnSize,
			Header: "Size",
			Accessor: func(e Entry) table.Value {
				if e.IsDir {
					return table.Missing()
				}
				return table.Number(float64(e.Size))
			},
			Render:       renderSize,
			MinWidth:     u.Scale(defaultMinWidth),
			InitialWidth: u.Scale(sizeWidth),
		},
		{
			ID:       ColumnCreated,
			Header:   "Date Created",
			Accessor: func(e Entry) table.Value { return table.Timestamp(e.Created) },
			Render: func(e Entry) string {
				if e.Created.IsZero() {
					return ""
				}
				return e.Created.Format(createdDateLayout)
			},
			MinWidth:     u.Scale(defaultMinWidth),
			InitialWidth: u.Scale(defaultWidth),
		},
		{
			ID:     ColumnContentID,
			Header: "Content ID",
			Accessor: func(e Entry) table.Value {
				if e.ContentID == "" {
					return table.Missing()
				}
				return table.Text(e.ContentID)
			},
			MinWidth:     u.Scale(defaultMinWidth),
			InitialWidth: u.Scale(contentIDWidth),
		},
	}
}

func renderSize(e Entry) string {
	if e.IsDir || e.Size < 0 {
		return ""
	}
	return humanize.Bytes(uint64(e.Size))
}
