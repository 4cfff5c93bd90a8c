package oracle

import (
	"context"
	"os"
	"os/exec"
)

// compile invokes the system compiler the same way spec.md §6 specifies
// ("cc -O0 -g -o <out> <in>"): unoptimised, with debug info, so the
// debugger's line table matches the source exactly. A non-zero exit or a
// missing output file is a silent per-candidate skip (spec.md §7
// "compile").
func compile(ctx context.Context, compilerPath, src, out string) bool {
	cmd := exec.CommandContext(ctx, compilerPath, "-O0", "-g", "-o", out, src)
	if err := cmd.Run(); err != nil {
		return false
	}
	info, err := os.Stat(out)
	return err == nil && info.Size() > 0
}
