package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// truncate shortens value to fit limit terminal cells, adding an ellipsis.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	return runewidth.Truncate(value, limit, "…")
}

// padRight pads value with spaces to exactly width cells, truncating if needed.
func padRight(value string, width int) string {
	return runewidth.FillRight(truncate(value, width), width)
}

// displayName turns an API slug like "mr-mime" into "Mr Mime".
func displayName(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}
	parts := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, part := range parts {
		lower := strings.ToLower(part)
		first, size := utf8.DecodeRuneInString(lower)
		parts[i] = string(unicode.ToUpper(first)) + lower[size:]
	}
	return strings.Join(parts, " ")
}

// formatID renders a catalog number as #001.
func formatID(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// pageWindow lists the page numbers to show around current, with 0 marking
// an elided run. First and last pages are always present.
func pageWindow(current, total, span int) []int {
	if total <= 0 {
		return nil
	}
	current = min(max(current, 1), total)
	lo := max(current-span, 1)
	hi := min(current+span, total)

	var out []int
	if lo > 1 {
		out = append(out, 1)
		if lo > 2 {
			out = append(out, 0)
		}
	}
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	if hi < total {
		if hi < total-1 {
			out = append(out, 0)
		}
		out = append(out, total)
	}
	return out
}

// nextPageSize steps through PageSizes from current in direction dir.
func nextPageSize(current, dir int) int {
	for i, size := range PageSizes {
		if size >= current {
			switch {
			case dir > 0 && size == current:
				return PageSizes[min(i+1, len(PageSizes)-1)]
			case dir > 0:
				return size
			default:
				return PageSizes[max(i-1, 0)]
			}
		}
	}
	return PageSizes[len(PageSizes)-1]
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
