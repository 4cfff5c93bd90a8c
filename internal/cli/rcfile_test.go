package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadRCFileMissingFileReturnsEmptyMapNoError(t *testing.T) {
	rc, err := LoadRCFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, err)
	assert.Empty(t, rc)
}

func TestLoadRCFileParsesKeyValuePairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".autopierc")
	content := "# a comment\nerror-message = stack smashing\nratio=0.5\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rc, err := LoadRCFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "stack smashing", rc["error-message"])
	assert.Equal(t, "0.5", rc["ratio"])
}

func TestLoadRCFileIgnoresCommentAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".autopierc")
	content := "# header\n\nlanguage = cpp\n# trailing\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rc, err := LoadRCFile(path)
	assert.NoError(t, err)
	assert.Len(t, rc, 1)
	assert.Equal(t, "cpp", rc["language"])
}

func TestLoadRCFileRejectsMalformedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".autopierc")
	assert.NoError(t, os.WriteFile(path, []byte("not a valid line at all !!\n"), 0644))

	_, err := LoadRCFile(path)
	assert.Error(t, err)
}
