package standards

import "testing"

func TestAnalyzer_FunctionNamingViolation(t *testing.T) {
	a := New()
	content := []byte("def GetUserData():\n    return None\n")

	vs := a.AnalyzeFile("svc.py", content, false, nil)

	found := false
	for _, v := range vs {
		if v.RuleID == "STD005" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected STD005 violation, got %+v", vs)
	}
}

func TestAnalyzer_ClassNamingOK(t *testing.T) {
	a := New()
	content := []byte("class UserService:\n    pass\n")

	vs := a.AnalyzeFile("svc.py", content, false, nil)
	for _, v := range vs {
		if v.RuleID == "STD006" {
			t.Errorf("unexpected STD006 violation for well-named class: %+v", v)
		}
	}
}

func TestAnalyzer_BareExcept(t *testing.T) {
	a := New()
	content := []byte("try:\n    do_thing()\nexcept:\n    pass\n")

	vs := a.AnalyzeFile("m.py", content, false, nil)
	found := false
	for _, v := range vs {
		if v.RuleID == "STD003" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected STD003 violation, got %+v", vs)
	}
}

func TestAnalyzer_SilentExceptionHandling(t *testing.T) {
	a := New()
	content := []byte("try:\n    risky()\nexcept Exception:\n    pass\n")

	vs := a.AnalyzeFile("m.py", content, false, nil)
	found := false
	for _, v := range vs {
		if v.RuleID == "STD004" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected STD004 violation, got %+v", vs)
	}
}
