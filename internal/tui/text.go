package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText word-wraps text to width display columns, keeping explicit line breaks.
// Words wider than width are hard-split.
func wrapText(text string, width int) string {
	if width < 1 {
		return text
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range words {
		for runewidth.StringWidth(word) > width {
			if curW > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// a single rune wider than width
				head = string([]rune(word)[:1])
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		w := runewidth.StringWidth(word)
		if w == 0 {
			continue
		}
		switch {
		case curW == 0:
			cur.WriteString(word)
			curW = w
		case curW+1+w <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + w
		default:
			flush()
			cur.WriteString(word)
			curW = w
		}
	}
	if curW > 0 {
		flush()
	}
	return lines
}

// clampLines wraps text to width and keeps at most maxLines lines, marking a cut with an ellipsis.
// The result always has exactly maxLines lines so cards line up.
func clampLines(text string, width, maxLines int) []string {
	lines := strings.Split(wrapText(text, width), "\n")
	truncated := len(lines) > maxLines
	if truncated {
		lines = lines[:maxLines]
	}
	if truncated && width > 0 {
		last := lines[maxLines-1]
		if runewidth.StringWidth(last)+1 > width {
			last = runewidth.Truncate(last, width-1, "")
		}
		lines[maxLines-1] = last + "…"
	}
	for len(lines) < maxLines {
		lines = append(lines, "")
	}
	return lines
}

// truncate shortens s to width display columns with an ellipsis
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
