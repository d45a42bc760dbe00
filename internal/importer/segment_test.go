package importer

import (
	"reflect"
	"strings"
	"testing"
)

func TestParagraphs(t *testing.T) {
	got := Paragraphs("first block\n\n\n\nsecond block\n\n  \n\nthird")
	want := []string{"first block", "second block", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestItems_ShortParagraphStaysWhole(t *testing.T) {
	got := Items("Check the gauge. Record the reading.")
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d: %v", len(got), got)
	}
}

func TestItems_LongParagraphSplitsIntoSentences(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("This sentence pads the paragraph well past the limit. ", 10))
	got := Items(long)
	if len(got) < 2 {
		t.Fatalf("expected sentence split for long paragraph, got %d items", len(got))
	}
	for i, item := range got {
		if len(item) > maxItemChars {
			t.Errorf("item %d still exceeds %d chars", i, maxItemChars)
		}
	}
}

func TestItems_MixedParagraphs(t *testing.T) {
	text := "Short step.\n\n" + strings.TrimSpace(strings.Repeat("A much longer paragraph sentence goes here for padding purposes. ", 8))
	got := Items(text)
	if len(got) < 3 {
		t.Fatalf("expected short item plus sentence splits, got %d: %v", len(got), got)
	}
	if got[0] != "Short step." {
		t.Errorf("expected first item intact, got %q", got[0])
	}
}
