package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/fily/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExisting(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T, dir string)
		wantErr   bool
	}{
		{
			name:      "no existing files",
			setupFunc: func(t *testing.T, dir string) {},
		},
		{
			name: "existing fily.yml",
			setupFunc: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "fily.yml"), []byte("version: '1.0'"), 0644))
			},
			wantErr: true,
		},
		{
			name: "data files alone do not count",
			setupFunc: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, store.ProductsFile), []byte("ID\n"), 0644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setupFunc(t, dir)

			err := CheckExisting(dir)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "project already initialized")
			assert.Contains(t, err.Error(), "fily.yml")
			assert.Contains(t, err.Error(), "fily init --force")
		})
	}
}
