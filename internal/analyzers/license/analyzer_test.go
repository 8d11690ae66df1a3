package license

import "testing"

func TestAnalyzer_RestrictedLicenseHeader(t *testing.T) {
	a := New()
	content := "# Licensed under the GNU General Public License version 3\n\nimport os\n"

	vs := a.CheckFile("mod.py", content)
	found := false
	for _, v := range vs {
		if v.RuleID == "LIC001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LIC001 violation, got %+v", vs)
	}
}

func TestAnalyzer_PermissiveLicenseNoViolation(t *testing.T) {
	a := New()
	content := "# MIT License\n\nimport os\n"

	vs := a.CheckFile("mod.py", content)
	for _, v := range vs {
		if v.RuleID == "LIC001" {
			t.Errorf("unexpected LIC001 for MIT-licensed file: %+v", v)
		}
	}
}

func TestAnalyzer_MissingAttribution(t *testing.T) {
	a := New()
	content := "import requests\n\ndef fetch():\n    return requests.get('https://example.com')\n"

	vs := a.CheckFile("client.py", content)
	found := false
	for _, v := range vs {
		if v.RuleID == "LIC002" {
			found = true
			if v.Location.LineNumber != 1 {
				t.Errorf("LineNumber = %d, want 1", v.Location.LineNumber)
			}
		}
	}
	if !found {
		t.Fatalf("expected LIC002 violation, got %+v", vs)
	}
}
