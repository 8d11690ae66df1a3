package ai

import "testing"

func TestParseResponse_SkipsMalformedElements(t *testing.T) {
	raw := `[
		{"rule_id": "AI001", "message": "ok finding", "severity": "high"},
		{"rule_id": "AI002", "message": "broken", "severity": ["not", "a", "string"]},
		{"rule_id": "AI003", "message": "also ok", "severity": "low"}
	]`

	vs := parseResponse(raw, "main.go", false)
	if len(vs) != 2 {
		t.Fatalf("len(vs) = %d, want 2 (malformed element dropped): %+v", len(vs), vs)
	}
	if vs[0].RuleID != "AI001" || vs[1].RuleID != "AI003" {
		t.Errorf("unexpected rule IDs: %s, %s", vs[0].RuleID, vs[1].RuleID)
	}
}

func TestParseResponse_NoJSONArrayReturnsNil(t *testing.T) {
	vs := parseResponse("I found no issues in this file.", "main.go", false)
	if vs != nil {
		t.Errorf("vs = %+v, want nil", vs)
	}
}

func TestParseResponse_EmptyArray(t *testing.T) {
	vs := parseResponse("[]", "main.go", false)
	if len(vs) != 0 {
		t.Errorf("len(vs) = %d, want 0", len(vs))
	}
}

func TestCleanFixSuggestion_UnwrapsFencedBlock(t *testing.T) {
	raw := "```go\nvalidate the input before using it here\n```"
	got := cleanFixSuggestion(raw)
	want := "validate the input before using it here"
	if got != want {
		t.Errorf("cleanFixSuggestion() = %q, want %q", got, want)
	}
}

func TestCleanFixSuggestion_StripsGenericPrefix(t *testing.T) {
	raw := "Here's the fix: validate the input before using it"
	got := cleanFixSuggestion(raw)
	if got == raw || got == "" {
		t.Fatalf("cleanFixSuggestion() = %q, want prefix stripped", got)
	}
	if got != "validate the input before using it" {
		t.Errorf("cleanFixSuggestion() = %q", got)
	}
}

func TestCleanFixSuggestion_TruncatesTo500(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	got := cleanFixSuggestion(string(long))
	if len(got) != maxFixSuggestionChars {
		t.Errorf("len(got) = %d, want %d", len(got), maxFixSuggestionChars)
	}
}

func TestCleanFixSuggestion_RejectsTooShort(t *testing.T) {
	got := cleanFixSuggestion("do it")
	if got != "" {
		t.Errorf("cleanFixSuggestion() = %q, want empty for too-short result", got)
	}
}

func TestNeedsFixSuggestion(t *testing.T) {
	cases := []struct {
		existing string
		want     bool
	}{
		{"", true},
		{"   ", true},
		{"TODO", true},
		{"fix the issue", true},
		{"See Above", true},
		{"validate user input before the database call", false},
	}
	for _, c := range cases {
		if got := NeedsFixSuggestion(c.existing); got != c.want {
			t.Errorf("NeedsFixSuggestion(%q) = %v, want %v", c.existing, got, c.want)
		}
	}
}
