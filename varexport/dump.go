package varexport

import (
	"io"

	"github.com/vk/varexport/internal/escape"
)

// lineWriter keeps the first write error and skips everything after it.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) write(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s)
}

// Dump writes every variable as an escaped name=value line. With docs each
// line is preceded by a blank line and its "# doc" comment, if any.
func (n *Namespace) Dump(w io.Writer, includeDocs bool) error {
	lw := &lineWriter{w: w}
	for _, v := range n.Variables() {
		// Value first: a caching variable's doc reports the update it causes.
		value := escape.Value(escape.Text(v.Value()))
		if includeDocs {
			lw.write("\n")
			if doc := v.docText(); doc != "" {
				lw.write("# " + escape.Comment(doc) + "\n")
			}
		}
		lw.write(escape.Name(v.Name()) + "=" + value + "\n")
	}
	return lw.err
}

// DumpJSON writes the variables on one line as {name='value', ...}, without
// escaping.
func (n *Namespace) DumpJSON(w io.Writer) error {
	lw := &lineWriter{w: w}
	lw.write("{")
	for i, v := range n.Variables() {
		if i > 0 {
			lw.write(", ")
		}
		lw.write(v.Name() + "='" + escape.Text(v.Value()) + "'")
	}
	lw.write("}")
	return lw.err
}
