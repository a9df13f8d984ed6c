package lang

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// GeneratedHeader is the first line of every generated configuration.
const GeneratedHeader = "# This file was generated by mergeconfig"

// Formatter renders resolved configuration entries as configuration text.
type Formatter struct {
	// BaseDir is the directory that source paths in history comments are
	// made relative to.
	BaseDir string
	// StripHistory omits the "# Previously" lines of reassigned variables.
	StripHistory bool
}

// Format writes one or more lines per entry to w.
//
// Comments are written as-is behind '#', except that comment text which
// itself starts with '#' is dropped. Context variables are never written.
// Each variable ends with its authoritative assignment, optionally preceded
// by a blank line and its earlier values.
func (f Formatter) Format(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)

	for _, entry := range entries {
		switch entry := entry.(type) {
		case *CommentEntry:
			if !strings.HasPrefix(entry.Text, "#") {
				bw.WriteString("#" + entry.Text + "\n")
			}

		case *Variable:
			if strings.HasPrefix(entry.Name, LocalPrefix) || len(entry.History) == 0 {
				continue
			}

			if prev := entry.History[:len(entry.History)-1]; !f.StripHistory && len(prev) > 0 {
				bw.WriteByte('\n')

				for _, h := range prev {
					bw.WriteString("# Previously " + h.Value.Literal() +
						" on " + relativePath(h.Pos.File, f.BaseDir) +
						":" + strconv.Itoa(h.Pos.Line) + "\n")
				}
			}

			bw.WriteString(AssignmentLine(entry.Name, entry.Last().Value) + "\n")
		}
	}

	return bw.Flush()
}

// String returns the formatted entries.
func (f Formatter) String(entries []Entry) string {
	var sb strings.Builder

	_ = f.Format(&sb, entries)

	return sb.String()
}

// AssignmentLine renders the line that assigns value to name. The state n is
// rendered in its "is not set" form.
func AssignmentLine(name string, value Value) string {
	if value.Type == TypeState && value.Text == "n" {
		return "# " + name + " is not set"
	}

	return name + "=" + value.Literal()
}
