package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLineWidthAndPlain(t *testing.T) {
	l := Line{Spans: []Span{{Text: "ab"}, {Text: "你好", Style: lipgloss.NewStyle().Bold(true)}}}
	if l.Plain() != "ab你好" {
		t.Fatalf("Plain = %q", l.Plain())
	}
	if l.Width() != 6 {
		t.Fatalf("Width = %d, want 6", l.Width())
	}
}

func TestPadLeft(t *testing.T) {
	lines := []Line{{Spans: []Span{{Text: "x"}}}, {}}
	padded := PadLeft(lines, 3)
	if padded[0].Plain() != "   x" || padded[1].Plain() != "   " {
		t.Fatalf("PadLeft = %q", plainLines(padded))
	}
	if lines[0].Plain() != "x" {
		t.Fatalf("PadLeft must not modify its input")
	}
	if got := PadLeft(lines, 0); len(got) != 2 || got[0].Plain() != "x" {
		t.Fatalf("PadLeft(0) = %q", plainLines(got))
	}
}

func TestBufferAndLinesToStrings(t *testing.T) {
	var buf Buffer
	buf.WriteLine(Span{Text: "a"}, Span{Text: ""}, Span{Text: "b"})
	buf.WriteLines(Line{Spans: []Span{{Text: "c"}}})
	out := LinesToStrings(buf.Lines)
	if len(out) != 2 {
		t.Fatalf("lines = %d", len(out))
	}
	if got := plainLines(buf.Lines); got[0] != "ab" || got[1] != "c" {
		t.Fatalf("plainLines = %q", got)
	}
	var nilBuf *Buffer
	nilBuf.WriteLine(Span{Text: "ignored"})
}
