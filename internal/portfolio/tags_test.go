package portfolio

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeTagsDedupesCaseInsensitively(t *testing.T) {
	tags, err := NormalizeTags([]string{" Tech ", "tech", "  Long   Term ", "TECH", "dividend"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Tech", "Long Term", "dividend"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
}

func TestNormalizeTagsDropsEmpties(t *testing.T) {
	tags, err := NormalizeTags([]string{"", "  ", "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"a"}) {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestNormalizeTagsTooLong(t *testing.T) {
	if _, err := NormalizeTags([]string{"abcdefghijklmnopqrstu"}); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestNormalizeTagsTooMany(t *testing.T) {
	tags := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	if _, err := NormalizeTags(tags); err != nil {
		t.Fatalf("8 tags should pass: %v", err)
	}
	if _, err := NormalizeTags(append(tags, "i")); !errors.Is(err, ErrTooManyTags) {
		t.Fatalf("expected ErrTooManyTags, got %v", err)
	}
}

func TestTagRoundTrip(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{"Tech", "tech", " Long  Term ", "价值"},
		{"a", "", "b"},
	}
	for _, input := range inputs {
		normalized, err := NormalizeTags(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		decoded := DecodeTags(EncodeTags(normalized))
		if len(normalized) == 0 {
			if len(decoded) != 0 {
				t.Fatalf("expected empty decode, got %v", decoded)
			}
			continue
		}
		if !reflect.DeepEqual(decoded, normalized) {
			t.Fatalf("round trip mismatch: %v != %v", decoded, normalized)
		}
	}
}

func TestDecodeTagsLegacyCommaFormat(t *testing.T) {
	raw := "tech, long term , ,dividend"
	decoded := DecodeTags(&raw)
	want := []string{"tech", "long term", "dividend"}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("expected %v, got %v", want, decoded)
	}
}

func TestMergeTagsExistingCasingWins(t *testing.T) {
	merged := MergeTags([]string{"Tech", "Dividend"}, []string{"tech", "Growth"})
	want := []string{"Tech", "Dividend", "Growth"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
}
