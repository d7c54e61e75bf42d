package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	version = "v1.2.3"
	assert.Equal(t, "v1.2.3", GetVersion())

	version = ""
	assert.Equal(t, "dev", GetVersion())
}
