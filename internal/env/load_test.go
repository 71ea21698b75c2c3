package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# galaxy settings
GALAXY_CONFIG = "res/config.yaml"
export GALAXY_WORKERS=4
GALAXY_LOG='logs/run.txt'
not a pair
=novalue
GALAXY_PRESET=from-file
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv(ConfigKey, "")
	t.Setenv(WorkersKey, "")
	t.Setenv(LogKey, "")
	t.Setenv("GALAXY_PRESET", "from-process")
	// t.Setenv leaves the keys set; unset the ones the file should fill.
	require.NoError(t, os.Unsetenv(ConfigKey))
	require.NoError(t, os.Unsetenv(WorkersKey))
	require.NoError(t, os.Unsetenv(LogKey))

	require.NoError(t, Load(path))
	assert.Equal(t, "res/config.yaml", os.Getenv(ConfigKey))
	assert.Equal(t, "logs/run.txt", os.Getenv(LogKey))
	assert.Equal(t, 4, Int(WorkersKey, 1))
	assert.Equal(t, "from-process", os.Getenv("GALAXY_PRESET"))
}

func TestLoad_MissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLookups(t *testing.T) {
	t.Setenv("GALAXY_TEST_STR", "")
	assert.Equal(t, "def", String("GALAXY_TEST_STR", "def"))
	t.Setenv("GALAXY_TEST_STR", "value")
	assert.Equal(t, "value", String("GALAXY_TEST_STR", "def"))

	t.Setenv("GALAXY_TEST_INT", "twelve")
	assert.Equal(t, 3, Int("GALAXY_TEST_INT", 3))
	t.Setenv("GALAXY_TEST_INT", " 12 ")
	assert.Equal(t, 12, Int("GALAXY_TEST_INT", 3))
}
