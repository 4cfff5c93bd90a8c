package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// chdirTemp changes into a fresh temp directory for the duration of the
// test, since Parse reads ".autopierc" relative to the working directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cwd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return dir
}

func TestParseRequiresLocFile(t *testing.T) {
	chdirTemp(t)
	_, err := Parse([]string{"-loc-line", "3"})
	assert.Error(t, err)
}

func TestParsePositionalArgumentSuppliesSourceFile(t *testing.T) {
	chdirTemp(t)
	opts, err := Parse([]string{"-loc-line", "3", "target.c"})
	assert.NoError(t, err)
	assert.Equal(t, "target.c", opts.LocFile)
}

func TestParseExplicitLocFileFlagWinsOverPositional(t *testing.T) {
	chdirTemp(t)
	opts, err := Parse([]string{"-loc-file", "flagged.c", "-loc-line", "3", "positional.c"})
	assert.NoError(t, err)
	assert.Equal(t, "flagged.c", opts.LocFile, "an explicit -loc-file takes precedence over the positional argument")
}

func TestParseRejectsMultiplePositionalArguments(t *testing.T) {
	chdirTemp(t)
	_, err := Parse([]string{"-loc-line", "3", "a.c", "b.c"})
	assert.Error(t, err)
}

func TestParseAppliesDefaultsAndInfersLanguage(t *testing.T) {
	chdirTemp(t)
	opts, err := Parse([]string{"-loc-file", "target.cpp", "-loc-line", "10"})
	assert.NoError(t, err)
	assert.Equal(t, "target.cpp", opts.LocFile)
	assert.Equal(t, 10, opts.LocLine)
	assert.Equal(t, "cpp", opts.Language)
	assert.Equal(t, 1.0, opts.Ratio)
	assert.Equal(t, 5, opts.EpochCount)
	assert.Equal(t, 360*time.Second, opts.Timeout)
}

func TestParseRejectsRatioOutOfRange(t *testing.T) {
	chdirTemp(t)
	_, err := Parse([]string{"-loc-file", "a.c", "-loc-line", "1", "-ratio", "0"})
	assert.Error(t, err)

	_, err = Parse([]string{"-loc-file", "a.c", "-loc-line", "1", "-ratio", "1.5"})
	assert.Error(t, err)
}

func TestParseRejectsLocLineBelowOne(t *testing.T) {
	chdirTemp(t)
	_, err := Parse([]string{"-loc-file", "a.c", "-loc-line", "0"})
	assert.Error(t, err)
}

func TestParseShortFlagAliasesSetTheSameFields(t *testing.T) {
	chdirTemp(t)
	opts, err := Parse([]string{"-loc-file", "a.c", "-loc-line", "1", "-d", "-v", "-l"})
	assert.NoError(t, err)
	assert.True(t, opts.DumpDot)
	assert.True(t, opts.Verbose)
	assert.True(t, opts.Log)
}

func TestParseRCFileSuppliesDefaultsOverriddenByFlags(t *testing.T) {
	dir := chdirTemp(t)
	rc := "error-message = stack smashing\nratio = 0.4\nepoch-count = 9\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".autopierc"), []byte(rc), 0644))

	opts, err := Parse([]string{"-loc-file", "a.c", "-loc-line", "1"})
	assert.NoError(t, err)
	assert.Equal(t, "stack smashing", opts.ErrorMessage)
	assert.Equal(t, 0.4, opts.Ratio)
	assert.Equal(t, 9, opts.EpochCount)

	opts, err = Parse([]string{"-loc-file", "a.c", "-loc-line", "1", "-ratio", "0.9"})
	assert.NoError(t, err)
	assert.Equal(t, 0.9, opts.Ratio, "an explicit flag overrides the rcfile default")
}

func TestParsePropagatesMalformedRCFileError(t *testing.T) {
	dir := chdirTemp(t)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".autopierc"), []byte("!!! not valid\n"), 0644))

	_, err := Parse([]string{"-loc-file", "a.c", "-loc-line", "1"})
	assert.Error(t, err)
}

func TestInferLanguage(t *testing.T) {
	assert.Equal(t, "cpp", inferLanguage("foo.cpp"))
	assert.Equal(t, "cpp", inferLanguage("foo.CC"))
	assert.Equal(t, "cpp", inferLanguage("foo.cxx"))
	assert.Equal(t, "cpp", inferLanguage("foo.hpp"))
	assert.Equal(t, "c", inferLanguage("foo.c"))
	assert.Equal(t, "c", inferLanguage("foo.h"))
	assert.Equal(t, "c", inferLanguage("foo"))
}

func TestCompilerPath(t *testing.T) {
	opts := &Options{Language: "cpp"}
	assert.Equal(t, "c++", opts.CompilerPath())

	opts.Language = "c"
	assert.Equal(t, "cc", opts.CompilerPath())
}
