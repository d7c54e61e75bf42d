package table_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/sift/internal/table"
)

// TestCompare tests the total order over tagged values.
func TestCompare(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b table.Value
		want int
	}{
		{name: "numbers", a: table.Number(2), b: table.Number(10), want: -1},
		{name: "equal numbers", a: table.Number(3), b: table.Number(3), want: 0},
		{name: "text by code point", a: table.Text("Zeta"), b: table.Text("alpha"), want: -1},
		{name: "text multibyte", a: table.Text("é"), b: table.Text("z"), want: 1},
		{name: "timestamps", a: table.Timestamp(t0.Add(time.Minute)), b: table.Timestamp(t0), want: 1},
		{name: "number before text", a: table.Number(99), b: table.Text("1"), want: -1},
		{name: "text before timestamp", a: table.Text("z"), b: table.Timestamp(t0), want: -1},
		{name: "missing after everything", a: table.Missing(), b: table.Number(1), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Compare(tt.a, tt.b))
		})
	}
}

// TestValueConstructors tests the missing-value normalization of constructors.
func TestValueConstructors(t *testing.T) {
	assert.True(t, table.Number(math.NaN()).IsMissing())
	assert.True(t, table.Timestamp(time.Time{}).IsMissing())
	assert.Equal(t, table.KindText, table.Text("").Kind())
	assert.Equal(t, "12.5", table.Number(12.5).String())
	assert.Equal(t, "", table.Missing().String())
	assert.Equal(t, "timestamp", table.KindTimestamp.String())
}

// TestParseSortExpression tests sort expression parsing.
func TestParseSortExpression(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantDir   table.Direction
		wantErr   bool
	}{
		{expr: "name", wantField: "name", wantDir: table.Ascending},
		{expr: "size:desc", wantField: "size", wantDir: table.Descending},
		{expr: " size : ASC ", wantField: "size", wantDir: table.Ascending},
		{expr: "", wantErr: true},
		{expr: ":asc", wantErr: true},
		{expr: "a:b:c", wantErr: true},
		{expr: "size:sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, dir, err := table.ParseSortExpression(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}
