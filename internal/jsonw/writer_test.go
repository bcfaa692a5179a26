package jsonw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalars(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{"null", func(w *Writer) { w.Null() }, `null`},
		{"true", func(w *Writer) { w.Bool(true) }, `true`},
		{"false", func(w *Writer) { w.Bool(false) }, `false`},
		{"string", func(w *Writer) { w.String("hi") }, `"hi"`},
		{"raw int", func(w *Writer) { w.Raw("42") }, `42`},
		{"raw float", func(w *Writer) { w.Raw("1.5") }, `1.5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			tt.write(w)
			assert.Equal(t, tt.want, string(w.Bytes()))
		})
	}
}

func TestEmptyAggregates(t *testing.T) {
	w := New()
	w.Array(func() {})
	assert.Equal(t, `[]`, string(w.Bytes()))

	w = New()
	w.Object(func() {})
	assert.Equal(t, `{}`, string(w.Bytes()))
}

func TestArrayCommas(t *testing.T) {
	w := New()
	w.Array(func() {
		w.Raw("1")
		w.Raw("2")
		w.Raw("3")
	})
	assert.Equal(t, `[1,2,3]`, string(w.Bytes()))
}

func TestObjectEntries(t *testing.T) {
	w := New()
	w.Object(func() {
		w.Name("a")
		w.Raw("1")
		w.Name("b")
		w.String("x")
	})
	assert.Equal(t, `{"a":1,"b":"x"}`, string(w.Bytes()))
}

func TestNesting(t *testing.T) {
	w := New()
	w.Array(func() {
		w.Object(func() {
			w.Name("fields")
			w.Array(func() {
				w.Null()
				w.Object(func() {})
			})
		})
		w.Bool(false)
	})
	assert.Equal(t, `[{"fields":[null,{}]},false]`, string(w.Bytes()))
}

func TestNoHTMLEscaping(t *testing.T) {
	// Hierarchical paths embed `>` and `&` style characters; they must
	// survive verbatim.
	w := New()
	w.String("OMReferenceTarget:~Top|{{0}}>w")
	assert.Equal(t, `"OMReferenceTarget:~Top|{{0}}>w"`, string(w.Bytes()))
}

func TestStringEscaping(t *testing.T) {
	w := New()
	w.String("a\"b\\c\n")
	assert.Equal(t, `"a\"b\\c\n"`, string(w.Bytes()))
}
