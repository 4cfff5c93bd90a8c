package reduce

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"autopie/internal/reduce/search"
	"autopie/internal/reducectx"
)

// recordingStrategy captures the Deps it was invoked with, standing in
// for a real search.Strategy so Run's wiring can be checked without
// driving an actual search or oracle.
type recordingStrategy struct {
	deps search.Deps
	out  string
	err  error
}

func (s *recordingStrategy) Run(ctx context.Context, deps search.Deps) (string, error) {
	s.deps = deps
	return s.out, s.err
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.c")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunRejectsMissingSourceFile(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = filepath.Join(t.TempDir(), "does-not-exist.c")
	rc.ErrorLine = 1

	_, err := Run(context.Background(), rc, &recordingStrategy{}, "cc", nil, false)
	assert.Error(t, err)
}

func TestRunRejectsErrorLineOutOfRange(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "int main() {\n  return 0;\n}\n")
	rc.ErrorLine = 999

	_, err := Run(context.Background(), rc, &recordingStrategy{}, "cc", nil, false)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
}

func TestRunRejectsErrorLineBelowOne(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "int main() {\n  return 0;\n}\n")
	rc.ErrorLine = 0

	_, err := Run(context.Background(), rc, &recordingStrategy{}, "cc", nil, false)
	assert.ErrorIs(t, err, ErrLineOutOfRange)
}

func TestRunPropagatesSyntaxErrors(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "int main( {\n  return 0;\n}\n")
	rc.ErrorLine = 2

	_, err := Run(context.Background(), rc, &recordingStrategy{}, "cc", nil, false)
	assert.Error(t, err)
}

func TestRunRejectsSourceWithNoCodeUnits(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "\n\n\n")
	rc.ErrorLine = 1

	_, err := Run(context.Background(), rc, &recordingStrategy{}, "cc", nil, false)
	assert.Error(t, err)
}

func TestRunWiresDepsAndReturnsStrategyResult(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "int main() {\n  int x = 1;\n  return x;\n}\n")
	rc.ErrorLine = 3
	rc.KeepTemp = true
	t.Cleanup(func() {
		if rc.TempDir != "" {
			_ = os.RemoveAll(rc.TempDir)
		}
	})

	strat := &recordingStrategy{out: "winner.c"}
	out, err := Run(context.Background(), rc, strat, "cc", nil, false)

	assert.NoError(t, err)
	assert.Equal(t, "winner.c", out)
	assert.NotNil(t, strat.deps.Graph)
	assert.NotNil(t, strat.deps.MapResult)
	assert.Equal(t, "target", strat.deps.BaseName)
	assert.Equal(t, "c", strat.deps.Ext)
	assert.Equal(t, filepath.Join(rc.TempDir, "autoPieOut.c"), strat.deps.OutputPath, "spec.md §6: confirmed output is temp/autoPieOut.<ext>")
	assert.NotEmpty(t, rc.TempDir, "Run should allocate a temp dir when rc.TempDir is unset")
}

func TestRunClearsAnExplicitTempDirAtStartUnlessKeepTemp(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "int main() {\n  return 0;\n}\n")
	rc.ErrorLine = 2
	rc.TempDir = filepath.Join(t.TempDir(), "temp")
	assert.NoError(t, os.MkdirAll(rc.TempDir, 0755))
	stray := filepath.Join(rc.TempDir, "leftover_from_a_previous_run.c")
	assert.NoError(t, os.WriteFile(stray, []byte("x"), 0644))

	_, err := Run(context.Background(), rc, &recordingStrategy{out: "ok"}, "cc", nil, false)
	assert.NoError(t, err)
	assert.NoFileExists(t, stray, "an explicit temp dir is cleared at the start of a run unless KeepTemp is set")
}

func TestRunKeepTempPreservesExplicitTempDirContents(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "int main() {\n  return 0;\n}\n")
	rc.ErrorLine = 2
	rc.KeepTemp = true
	rc.TempDir = filepath.Join(t.TempDir(), "temp")
	assert.NoError(t, os.MkdirAll(rc.TempDir, 0755))
	kept := filepath.Join(rc.TempDir, "kept_from_a_previous_run.c")
	assert.NoError(t, os.WriteFile(kept, []byte("x"), 0644))

	_, err := Run(context.Background(), rc, &recordingStrategy{out: "ok"}, "cc", nil, false)
	assert.NoError(t, err)
	assert.FileExists(t, kept, "--keep-temp skips clearing the temp dir at the start of a run")
}

func TestRunPropagatesStrategyError(t *testing.T) {
	rc := reducectx.New(nil)
	rc.SourceFile = writeSource(t, "int main() {\n  return 0;\n}\n")
	rc.ErrorLine = 2
	rc.KeepTemp = true
	t.Cleanup(func() {
		if rc.TempDir != "" {
			_ = os.RemoveAll(rc.TempDir)
		}
	})

	strat := &recordingStrategy{err: assert.AnError}
	_, err := Run(context.Background(), rc, strat, "cc", nil, false)
	assert.ErrorIs(t, err, assert.AnError)
}
