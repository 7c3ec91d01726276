package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/maestro/output"
)

// slowOperation marks spans worth highlighting; interactive saves should stay
// well below it.
const slowOperation = 100 * time.Millisecond

// formatTimingTree writes the span tree, e.g.
//
//	maestro session: 2.41s (5 operations)
//	├─ storage.load: 3ms
//	│  ├─ setup: 1ms
//	│  └─ transactions: 2ms
//	└─ add transaction: 4ms
//	   └─ storage.save: 4ms
func formatTimingTree(w io.Writer, root *span, count int, styles *output.Styles) {
	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s (%d operations)\n", name, formatDuration(root.duration()), count)

	for i, child := range root.children {
		formatSpan(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatSpan(w io.Writer, s *span, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	d := s.duration()
	timing := formatDuration(d)
	tree := prefix + branch
	if styles != nil {
		tree = styles.Dim(tree)
		timing = styles.Timing(timing, d >= slowOperation)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, s.name, timing)

	for i, child := range s.children {
		formatSpan(w, child, prefix+extension, i == len(s.children)-1, styles)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
// Spans that never ended report as "running".
func formatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "running"
	case d < time.Second:
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
	}
}
