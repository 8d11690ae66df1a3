package copilot

import "testing"

func TestDetect_MarkerComment(t *testing.T) {
	content := "// Generated by GitHub Copilot\nfunc foo() {}\n"
	if !New().Detect(content, nil) {
		t.Fatal("expected marker comment to be detected")
	}
}

func TestDetect_MetadataHint(t *testing.T) {
	if !New().Detect("func foo() {}", map[string]string{"generator": "copilot-cli"}) {
		t.Fatal("expected metadata generator field to be detected")
	}
}

func TestDetect_NoFalsePositiveOnOrdinaryCode(t *testing.T) {
	if New().Detect("func add(a, b int) int { return a + b }", nil) {
		t.Fatal("expected ordinary code not to be flagged as AI-generated")
	}
}
