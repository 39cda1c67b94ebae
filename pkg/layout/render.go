package layout

import "strings"

// render materializes f with ambient indentation indent and appends trailing.
//
// Every node writes its own text strictly before whatever follows it, so the
// continuation form toText(indent, trailing) reduces to a left-to-right walk
// into one buffer.
func render(f *Format, indent int, trailing string) string {
	w := &writer{}
	w.format(f, indent)
	w.b.WriteString(trailing)
	return w.b.String()
}

// writer walks a Format into a buffer. With trim set, spaces are held back
// until non-blank text follows on the same line, so no line ends in
// whitespace.
type writer struct {
	b       strings.Builder
	trim    bool
	pending []byte
}

func (w *writer) format(f *Format, indent int) {
	switch f.kind {
	case KindEmpty:
	case KindLine:
		w.text(f.text)
	case KindRaw:
		w.raw(f.text)
	case KindAbove:
		w.format(f.left, indent)
		w.newline()
		w.spaces(indent)
		w.format(f.right, indent)
	case KindBeside:
		w.format(f.left, indent)
		w.format(f.right, indent+f.left.Last)
	case KindFill:
		w.format(f.left, indent)
		w.format(f.right, indent+f.shift)
	case KindIndent:
		w.spaces(f.shift)
		w.format(f.left, indent+f.shift)
	}
}

func (w *writer) text(s string) {
	if !w.trim {
		w.b.WriteString(s)
		return
	}
	body := strings.TrimRight(s, " \t")
	if body != "" {
		w.flush()
		w.b.WriteString(body)
	}
	w.pending = append(w.pending, s[len(body):]...)
}

func (w *writer) raw(s string) {
	w.flush()
	w.b.WriteString(s)
}

func (w *writer) newline() {
	w.pending = w.pending[:0]
	w.b.WriteByte('\n')
}

func (w *writer) spaces(n int) {
	for range n {
		if w.trim {
			w.pending = append(w.pending, ' ')
		} else {
			w.b.WriteByte(' ')
		}
	}
}

func (w *writer) flush() {
	w.b.Write(w.pending)
	w.pending = w.pending[:0]
}
