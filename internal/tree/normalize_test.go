package tree

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestTrimTrailingNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single newline", "step one\n", "step one"},
		{"run of newlines", "step one\n\n\n", "step one"},
		{"no newline", "step one", "step one"},
		{"interior newline kept", "line a\nline b\n", "line a\nline b"},
		{"other trailing whitespace kept", "padded \t\n", "padded \t"},
		{"leading whitespace kept", "  indented\n", "  indented"},
		{"only newlines", "\n\n", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimTrailingNewlines(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestApply_PreservesShape(t *testing.T) {
	nz := NewNormalizer(discardLogger())

	in := MapOf(
		EntryOf("title", ScalarOf("Cleaning Procedure\n")),
		EntryOf("steps", SeqOf(
			ScalarOf("wipe down\n"),
			ScalarOf("rinse"),
			SeqOf(ScalarOf("nested\n\n")),
		)),
	)
	got := nz.Apply(in)

	want := MapOf(
		EntryOf("title", ScalarOf("Cleaning Procedure")),
		EntryOf("steps", SeqOf(
			ScalarOf("wipe down"),
			ScalarOf("rinse"),
			SeqOf(ScalarOf("nested")),
		)),
	)
	if !Equal(got, want) {
		t.Errorf("expected %+v, got %+v", want.ToGo(), got.ToGo())
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	nz := NewNormalizer(discardLogger())

	in := SeqOf(ScalarOf("a\n"), ScalarOf("b\n"))
	_ = nz.Apply(in)

	if v, _ := in.Items[0].StringValue(); v != "a\n" {
		t.Errorf("input mutated: expected %q, got %q", "a\n", v)
	}
}

func TestApply_Idempotent(t *testing.T) {
	nz := NewNormalizer(discardLogger())

	in := MapOf(
		EntryOf("a", ScalarOf("one\n")),
		EntryOf("b", SeqOf(ScalarOf("two\n\n"), ScalarOf(int64(3)))),
	)
	once := nz.Apply(in)
	twice := nz.Apply(once)

	if !Equal(once, twice) {
		t.Errorf("second pass changed the tree: %+v vs %+v", once.ToGo(), twice.ToGo())
	}
}

func TestApply_NonStringScalarsPassThrough(t *testing.T) {
	nz := NewNormalizer(discardLogger())

	in := SeqOf(
		ScalarOf(int64(42)),
		ScalarOf(3.14),
		ScalarOf(true),
		ScalarOf(nil),
	)
	got := nz.Apply(in)

	if !Equal(got, in) {
		t.Errorf("expected non-string scalars unchanged, got %+v", got.ToGo())
	}
}

func TestApply_NonStringScalarsLogAdvisory(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	nz := NewNormalizer(log)

	nz.Apply(SeqOf(
		ScalarOf("text"),
		ScalarOf(int64(1)),
		ScalarOf(nil),
	))

	out := buf.String()
	// One advisory per non-string leaf, null included. Strings are silent.
	if got := strings.Count(out, "no string transformation applied"); got != 2 {
		t.Errorf("expected 2 advisory entries, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "type=int64") {
		t.Errorf("expected int64 advisory, got:\n%s", out)
	}
	if !strings.Contains(out, "type=<nil>") {
		t.Errorf("expected nil advisory, got:\n%s", out)
	}
}

func TestApply_CustomRule(t *testing.T) {
	nz := Normalizer{Rule: strings.ToUpper, Log: discardLogger()}

	got := nz.Apply(MapOf(EntryOf("key", ScalarOf("value"))))

	// The rule applies to keys as well as values.
	if k, _ := got.Entries[0].Key.StringValue(); k != "KEY" {
		t.Errorf("expected key %q, got %q", "KEY", k)
	}
	if v, _ := got.Entries[0].Value.StringValue(); v != "VALUE" {
		t.Errorf("expected value %q, got %q", "VALUE", v)
	}
}

func TestApply_NilRuleUsesDefault(t *testing.T) {
	nz := Normalizer{Log: discardLogger()}

	got := nz.Apply(ScalarOf("text\n"))
	if v, _ := got.StringValue(); v != "text" {
		t.Errorf("expected %q, got %q", "text", v)
	}
}

func TestApply_KeyCollisionKeepsFirstPositionLastValue(t *testing.T) {
	nz := NewNormalizer(discardLogger())

	// "dup\n" and "dup" collide after normalization.
	in := MapOf(
		EntryOf("dup\n", ScalarOf("first")),
		EntryOf("other", ScalarOf("x")),
		EntryOf("dup", ScalarOf("second")),
	)
	got := nz.Apply(in)

	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries after collision, got %d", len(got.Entries))
	}
	if k, _ := got.Entries[0].Key.StringValue(); k != "dup" {
		t.Errorf("expected first entry key %q, got %q", "dup", k)
	}
	if v, _ := got.Entries[0].Value.StringValue(); v != "second" {
		t.Errorf("expected later value to win, got %q", v)
	}
	if k, _ := got.Entries[1].Key.StringValue(); k != "other" {
		t.Errorf("expected second entry key %q, got %q", "other", k)
	}
}

func TestApply_Nil(t *testing.T) {
	nz := NewNormalizer(discardLogger())
	if got := nz.Apply(nil); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
