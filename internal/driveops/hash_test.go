package driveops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMD5(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"hello world", "5eb63bbbe01eeed093cb22bb8f5acdc3"},
	}

	for _, tt := range tests {
		path := writeLocal(t, "f", tt.content)

		got, err := ComputeMD5(path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestComputeMD5_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ComputeMD5(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
