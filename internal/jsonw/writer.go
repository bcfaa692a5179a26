// Package jsonw provides a small streaming JSON writer.
//
// The emitter needs two things encoding/json cannot give it: raw numeric
// literals (exact decimal forms that must not round-trip through float64)
// and object entries written in caller-chosen order. The writer trusts its
// callers to produce well-formed raw literals; everything else is encoded.
package jsonw

import (
	"bytes"
	"encoding/json"
)

type frame struct {
	count       int
	pendingName bool
}

// Writer builds one JSON value into an in-memory buffer. Output is compact:
// no indentation, no spaces after separators.
type Writer struct {
	buf    bytes.Buffer
	frames []frame
}

// New creates a Writer ready to receive one top-level value.
func New() *Writer {
	return &Writer{frames: []frame{{}}}
}

// Bytes returns the written JSON text.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) top() *frame {
	return &w.frames[len(w.frames)-1]
}

// beginValue writes the separator a value needs in the current context.
func (w *Writer) beginValue() {
	f := w.top()
	if f.pendingName {
		f.pendingName = false
		return
	}
	if f.count > 0 {
		w.buf.WriteByte(',')
	}
	f.count++
}

// Null writes a JSON null.
func (w *Writer) Null() {
	w.beginValue()
	w.buf.WriteString("null")
}

// Bool writes a JSON boolean.
func (w *Writer) Bool(b bool) {
	w.beginValue()
	if b {
		w.buf.WriteString("true")
	} else {
		w.buf.WriteString("false")
	}
}

// String writes a JSON string.
func (w *Writer) String(s string) {
	w.beginValue()
	w.buf.Write(encodeString(s))
}

// Raw writes lit verbatim as one value. The caller guarantees lit is a valid
// JSON literal (used for exact numeric forms).
func (w *Writer) Raw(lit string) {
	w.beginValue()
	w.buf.WriteString(lit)
}

// Name writes an object entry's key. The next write supplies its value.
func (w *Writer) Name(name string) {
	f := w.top()
	if f.count > 0 {
		w.buf.WriteByte(',')
	}
	f.count++
	f.pendingName = true
	w.buf.Write(encodeString(name))
	w.buf.WriteByte(':')
}

// Object writes an object whose entries are produced by fn.
func (w *Writer) Object(fn func()) {
	w.beginValue()
	w.buf.WriteByte('{')
	w.frames = append(w.frames, frame{})
	fn()
	w.frames = w.frames[:len(w.frames)-1]
	w.buf.WriteByte('}')
}

// Array writes an array whose elements are produced by fn.
func (w *Writer) Array(fn func()) {
	w.beginValue()
	w.buf.WriteByte('[')
	w.frames = append(w.frames, frame{})
	fn()
	w.frames = w.frames[:len(w.frames)-1]
	w.buf.WriteByte(']')
}

// encodeString produces a JSON string literal without HTML escaping.
// Emitted paths contain `>` separators that must survive verbatim.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Strings never fail to encode; keep the writer infallible.
		panic(err)
	}
	result := buf.Bytes()
	// json.Encoder adds a trailing newline, remove it.
	if n := len(result); n > 0 && result[n-1] == '\n' {
		result = result[:n-1]
	}
	return result
}
