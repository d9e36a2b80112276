package rxtest

import (
	"fmt"
	"strings"
	"time"

	"github.com/7vars/rxcore/rx"
	"github.com/mattn/go-runewidth"
)

// Marbles renders records as a marble diagram with one '-' per frame, e.g.
// "-a--b-(c|)". Next values print with fmt's %v, errors as '#', completion as
// '|'. Notifications sharing a frame are grouped in parentheses.
func Marbles[T any](records []Record[T], frame time.Duration) string {
	if frame <= 0 {
		frame = time.Millisecond
	}
	var (
		b     strings.Builder
		pos   int64
		group []string
	)
	flush := func() {
		switch len(group) {
		case 0:
		case 1:
			b.WriteString(group[0])
		default:
			b.WriteString("(" + strings.Join(group, "") + ")")
		}
		group = group[:0]
	}
	current := int64(-1)
	for _, rec := range records {
		f := int64(rec.At / frame)
		if f != current {
			flush()
			for ; pos < f; pos++ {
				b.WriteByte('-')
			}
			current = f
			pos = f + 1
		}
		group = append(group, symbol(rec.Notification))
	}
	flush()
	return b.String()
}

func symbol[T any](n rx.Notification[T]) string {
	switch n.Kind {
	case rx.ErrorKind:
		return "#"
	case rx.CompleteKind:
		return "|"
	}
	return fmt.Sprintf("%v", n.Value)
}

// Table renders records as aligned "time kind value" rows. Column widths are
// display widths, so values with wide runes stay aligned.
func Table[T any](records []Record[T]) string {
	rows := make([][3]string, 0, len(records))
	var widths [3]int
	for _, rec := range records {
		detail := ""
		switch rec.Kind {
		case rx.NextKind:
			detail = fmt.Sprintf("%v", rec.Value)
		case rx.ErrorKind:
			detail = fmt.Sprintf("%v", rec.Err)
		}
		row := [3]string{rec.At.String(), rec.Kind.String(), detail}
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	for _, row := range rows {
		line := runewidth.FillRight(row[0], widths[0]) + "  " +
			runewidth.FillRight(row[1], widths[1]) + "  " + row[2]
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
