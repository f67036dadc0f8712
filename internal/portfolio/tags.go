package portfolio

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// NormalizeTags cleans each tag the way NormalizeName cleans names, drops
// empties, and de-duplicates case-insensitively while preserving first-seen
// casing and input order.
func NormalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		cleaned := strings.Join(strings.Fields(tag), " ")
		if cleaned == "" {
			continue
		}
		if utf8.RuneCountInString(cleaned) > MaxTagLength {
			return nil, ErrInvalidTag
		}
		key := strings.ToLower(cleaned)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, cleaned)
		if len(normalized) > MaxTags {
			return nil, ErrTooManyTags
		}
	}
	return normalized, nil
}

// MergeTags unions incoming tags into existing ones. Existing casing wins on
// a case-insensitive collision; newly seen tags are appended in input order.
func MergeTags(existing, incoming []string) []string {
	merged := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, tag := range existing {
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, tag)
	}
	for _, tag := range incoming {
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, tag)
	}
	return merged
}

// EncodeTags serializes a tag list for the storage column. Empty lists are
// stored as NULL.
func EncodeTags(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	encoded := string(raw)
	return &encoded
}

// DecodeTags restores the ordered tag list from its stored form. Rows written
// before the JSON encoding carried comma-separated text; those still decode.
func DecodeTags(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}
	var parsed []string
	if err := json.Unmarshal([]byte(*raw), &parsed); err == nil {
		tags := make([]string, 0, len(parsed))
		for _, tag := range parsed {
			if strings.TrimSpace(tag) != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	}
	tags := make([]string, 0)
	for _, tag := range strings.Split(*raw, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
