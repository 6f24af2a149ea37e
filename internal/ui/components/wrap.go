package components

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Wrap breaks s into lines no wider than width terminal cells, splitting
// on whitespace. Words longer than width are cut. Existing newlines are
// kept.
func Wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		curWidth := 0
		for _, w := range words {
			for runewidth.StringWidth(w) > width {
				if curWidth > 0 {
					lines = append(lines, cur.String())
					cur.Reset()
					curWidth = 0
				}
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				lines = append(lines, head)
				w = w[len(head):]
			}
			ww := runewidth.StringWidth(w)
			if ww == 0 {
				continue
			}
			if curWidth > 0 && curWidth+1+ww > width {
				lines = append(lines, cur.String())
				cur.Reset()
				curWidth = 0
			}
			if curWidth > 0 {
				cur.WriteByte(' ')
				curWidth++
			}
			cur.WriteString(w)
			curWidth += ww
		}
		if curWidth > 0 {
			lines = append(lines, cur.String())
		}
	}
	return lines
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
