package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/sift/internal/cli"
	"github.com/rshade/sift/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "sift", root.Use)
		assert.Equal(t, version.GetVersion(), root.Version)
	})

	t.Run("run function exists", func(_ *testing.T) {
		_ = run
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: cli.ExitCodeError},
		{
			name: "not found",
			err:  &cli.ExitError{Code: cli.ExitCodeNotFound, Err: os.ErrNotExist},
			want: cli.ExitCodeNotFound,
		},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("outer: %w", &cli.ExitError{Code: 3, Err: errors.New("inner")}),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
