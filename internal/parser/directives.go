package parser

// stripDirectives blanks out preprocessor directive lines (#include,
// #define, #pragma, ...) with spaces, preserving every other byte's
// offset/line/column so the rest of the pipeline never has to special-case
// them. This also realizes spec.md scenario S5 ("header exclusion")
// trivially: an #include never contributes any node, since its target is
// never read or parsed, so nothing from it can ever become a code unit.
func stripDirectives(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	lineStart := 0
	for i := 0; i <= len(out); i++ {
		if i == len(out) || out[i] == '\n' {
			line := out[lineStart:i]
			j := 0
			for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
				j++
			}
			if j < len(line) && line[j] == '#' {
				for k := lineStart; k < i; k++ {
					out[k] = ' '
				}
			}
			lineStart = i + 1
		}
	}
	return out
}
