package migration

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoMigrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

func TestResolveDir(t *testing.T) {
	dir, err := resolveDir(repoMigrationsDir(t))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))

	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	require.NoError(t, err)
	downs, err := filepath.Glob(filepath.Join(dir, "*.down.sql"))
	require.NoError(t, err)
	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestResolveDir_Invalid(t *testing.T) {
	_, err := resolveDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	f := filepath.Join(t.TempDir(), "file.sql")
	require.NoError(t, os.WriteFile(f, []byte("SELECT 1"), 0o600))
	_, err = resolveDir(f)
	assert.Error(t, err)
}

func TestUp_NilDB(t *testing.T) {
	assert.Error(t, Runner{}.Up(nil))
}
