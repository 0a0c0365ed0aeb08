package markpad

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestRecorder_DisabledIsNoOp(t *testing.T) {
	t.Parallel()

	r := NewRecorder(false)
	r.Record("render cycle", map[string]any{"input": "# hi"})
	if entries := r.Entries(); len(entries) != 0 {
		t.Errorf("disabled recorder kept %d entries", len(entries))
	}
	if r.Enabled() {
		t.Error("Enabled() = true for disabled recorder")
	}
}

func TestRecorder_NilReceiver(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.Record("ignored", nil)
	if r.Entries() != nil {
		t.Error("nil recorder returned entries")
	}
	if r.Enabled() {
		t.Error("nil recorder reports enabled")
	}
}

func TestRecorder_RecordsInOrder(t *testing.T) {
	t.Parallel()

	r := NewRecorder(true)
	r.Record("first", nil)
	r.Record("second", map[string]any{"n": 2})
	r.Record("third", "detail")

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].Message != want {
			t.Errorf("entries[%d].Message = %q, want %q", i, entries[i].Message, want)
		}
	}
}

func TestRecorder_EntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	r := NewRecorder(true)
	r.Record("one", nil)

	entries := r.Entries()
	entries[0].Message = "mutated"

	if got := r.Entries()[0].Message; got != "one" {
		t.Errorf("internal log mutated through copy: %q", got)
	}
}

func TestRecorder_UnmarshallableDetails(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := NewRecorder(true, WithLogger(logger))
	r.Record("bad details", func() {}) // functions cannot marshal to JSON

	if len(r.Entries()) != 1 {
		t.Fatal("entry was dropped")
	}
	if !strings.Contains(buf.String(), "unprintable details") {
		t.Errorf("log output = %q, want unprintable placeholder", buf.String())
	}
}

func TestRecorder_MirrorsToLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := NewRecorder(true, WithLogger(logger))
	r.Record("render cycle", map[string]any{"failed": false})

	out := buf.String()
	if !strings.Contains(out, "render cycle") {
		t.Errorf("log output = %q, want the message", out)
	}
}

func TestRecorder_ConcurrentRecord(t *testing.T) {
	t.Parallel()

	r := NewRecorder(true)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				r.Record("tick", nil)
			}
		}()
	}
	wg.Wait()

	if got := len(r.Entries()); got != 200 {
		t.Errorf("got %d entries, want 200", got)
	}
}
