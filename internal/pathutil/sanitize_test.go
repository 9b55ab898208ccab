package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) string
		wantErr string
	}{
		{
			name: "existing file",
			setup: func(t *testing.T, dir string) string {
				target := filepath.Join(dir, "merged.yaml")
				require.NoError(t, os.WriteFile(target, []byte("a: 1"), 0o600))
				return target
			},
		},
		{
			name: "new file in existing directory",
			setup: func(_ *testing.T, dir string) string {
				return filepath.Join(dir, "template.yaml")
			},
		},
		{
			name: "directory rejected",
			setup: func(_ *testing.T, dir string) string {
				return dir
			},
			wantErr: "is a directory",
		},
		{
			name: "empty path rejected",
			setup: func(_ *testing.T, _ string) string {
				return ""
			},
			wantErr: "empty output path",
		},
		{
			name: "symlink rejected",
			setup: func(t *testing.T, dir string) string {
				real := filepath.Join(dir, "real.yaml")
				link := filepath.Join(dir, "link.yaml")
				require.NoError(t, os.WriteFile(real, []byte("a: 1"), 0o600))
				require.NoError(t, os.Symlink(real, link))
				return link
			},
			wantErr: "symlink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.setup(t, t.TempDir())

			got, err := SanitizeOutputPath(target)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, target, got)
		})
	}
}

func TestSanitizeOutputPath_RelativeBecomesAbsolute(t *testing.T) {
	got, err := SanitizeOutputPath("merged.yaml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}
