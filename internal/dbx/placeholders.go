package dbx

import (
	"strconv"
	"strings"
)

// Placeholders renders n positional parameters starting at $start,
// e.g. Placeholders(3, 2) == "$2, $3, $4".
func Placeholders(n, start int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
	}
	return b.String()
}
