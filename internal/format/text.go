package format

import (
	"fmt"
	"strings"
)

// FormatHoleMap renders the hole set as the memory-map dump text:
//
//	"[0, 10] - [12, 2] - [20, 6]"
//
// A fully allocated pool (zero holes) renders as the literal "[0, 0]"
// placeholder rather than an empty string.
func FormatHoleMap(holes []Extent) string {
	if len(holes) == 0 {
		return "[0, 0]"
	}
	var b strings.Builder
	for i, h := range holes {
		if i > 0 {
			b.WriteString(" - ")
		}
		fmt.Fprintf(&b, "[%d, %d]", h.Start, h.Length)
	}
	return b.String()
}
