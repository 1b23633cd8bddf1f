package render

import (
	"strings"
	"testing"

	"gemini-chat/internal/chat"
)

func TestRenderTranscriptStacksBubbles(t *testing.T) {
	msgs := []chat.Message{userMsg("one"), remoteMsg("two")}
	lines := RenderTranscript(msgs, TranscriptOptions{Anchor: 1}, 60)
	// 每个单行气泡 3 行 + 1 空行。
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want 8", len(lines))
	}
	if lines[3].Plain() != "" || lines[7].Plain() != "" {
		t.Fatalf("expected blank separators")
	}
	if !strings.Contains(lines[5].Plain(), "two") {
		t.Fatalf("second bubble body = %q", lines[5].Plain())
	}
}

func TestRenderTranscriptAnchorHidesNewer(t *testing.T) {
	msgs := []chat.Message{userMsg("one"), remoteMsg("two"), userMsg("three")}
	lines := RenderTranscript(msgs, TranscriptOptions{Anchor: 0, Loading: true}, 60)
	joined := strings.Join(plainLines(lines), "\n")
	if strings.Contains(joined, "two") || strings.Contains(joined, "three") {
		t.Fatalf("messages after anchor should be hidden:\n%s", joined)
	}
	if strings.Contains(joined, "thinking") {
		t.Fatalf("loading bubble only shows when anchored at the newest message")
	}
}

func TestRenderTranscriptAppendsLoading(t *testing.T) {
	msgs := []chat.Message{userMsg("one")}
	lines := RenderTranscript(msgs, TranscriptOptions{Anchor: 0, Loading: true, Frame: 2}, 60)
	joined := strings.Join(plainLines(lines), "\n")
	if !strings.Contains(joined, "Gemini is thinking...") || !strings.Contains(joined, SpinnerFrame(2)) {
		t.Fatalf("loading bubble missing:\n%s", joined)
	}
}

func TestRenderTranscriptEmpty(t *testing.T) {
	if lines := RenderTranscript(nil, TranscriptOptions{}, 60); len(lines) != 0 {
		t.Fatalf("empty transcript rendered %d lines", len(lines))
	}
}

func TestTail(t *testing.T) {
	lines := []Line{{}, {}, {}, {}}
	lines[3] = Line{Spans: []Span{{Text: "last"}}}
	got := Tail(lines, 2)
	if len(got) != 2 || got[1].Plain() != "last" {
		t.Fatalf("Tail = %+v", got)
	}
	if got := Tail(lines, 10); len(got) != 4 {
		t.Fatalf("Tail with room = %d lines", len(got))
	}
	if got := Tail(lines, 0); got != nil {
		t.Fatalf("Tail(0) = %+v", got)
	}
}
