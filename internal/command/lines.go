package command

import (
	"iter"
	"strings"
)

// Lines yields the pieces of s between separators along with their line
// index. Blank lines are skipped but still counted.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			if strings.TrimSpace(piece) != "" && !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
