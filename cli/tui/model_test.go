package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nox-hq/codeguard/internal/catalog"
	"github.com/nox-hq/codeguard/internal/violations"
)

func testViolations() []violations.Violation {
	conf := 0.9
	return []violations.Violation{
		{
			RuleID: "SEC-001", RuleName: "Hardcoded AWS Key",
			Category: violations.CategorySecurity, Severity: violations.SeverityCritical,
			Location: violations.Location{FilePath: "config.env", LineNumber: 5},
			Message:  "AWS Access Key ID detected",
		},
		{
			RuleID: "STD001", RuleName: "Missing Function Logging",
			Category: violations.CategoryStandard, Severity: violations.SeverityLow,
			Location: violations.Location{FilePath: "main.go", LineNumber: 12},
			Message:  "exported function has no logging",
		},
		{
			RuleID: "DUP001", RuleName: "Duplicate Code Detected",
			Category: violations.CategoryCodeQuality, Severity: violations.SeverityMedium,
			Location:           violations.Location{FilePath: "utils.go", LineNumber: 40},
			Message:            "duplicate of handler.go:10",
			IsCopilotGenerated: true,
			AIConfidence:       &conf,
		},
	}
}

func testContents() map[string]string {
	return map[string]string{
		"config.env": "A=1\nB=2\nC=3\nD=4\nKEY=AKIAEXAMPLE\nF=6\nG=7\n",
		"main.go":    strings.Repeat("line\n", 20),
	}
}

func testCatalog() map[string]catalog.RuleMeta {
	return catalog.Rules()
}

func newTestModel() *Model {
	return New(testViolations(), testContents(), testCatalog())
}

func TestNew_AppliesNoFilterByDefault(t *testing.T) {
	m := newTestModel()
	if len(m.filtered) != len(m.all) {
		t.Fatalf("filtered = %d, want %d", len(m.filtered), len(m.all))
	}
}

func TestUpdate_WindowSizeMsgSetsDimensions(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	mm := updated.(*Model)
	if mm.width != 100 || mm.height != 40 {
		t.Fatalf("dimensions = (%d,%d), want (100,40)", mm.width, mm.height)
	}
}

func TestHandleListKey_DownMovesCursor(t *testing.T) {
	m := newTestModel()
	m.handleListKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
}

func TestHandleListKey_UpStaysAtZero(t *testing.T) {
	m := newTestModel()
	m.handleListKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestHandleListKey_EnterSwitchesToDetailView(t *testing.T) {
	m := newTestModel()
	m.handleListKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != detailView {
		t.Fatalf("state = %v, want detailView", m.state)
	}
}

func TestHandleListKey_QuitReturnsQuitCmd(t *testing.T) {
	m := newTestModel()
	_, cmd := m.handleListKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
}

func TestHandleDetailKey_BackReturnsToList(t *testing.T) {
	m := newTestModel()
	m.state = detailView
	m.handleDetailKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != listView {
		t.Fatalf("state = %v, want listView", m.state)
	}
}

func TestHandleSearchKey_AppendsCharacter(t *testing.T) {
	m := newTestModel()
	m.filter.searching = true
	m.handleSearchKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.filter.search != "s" {
		t.Fatalf("search = %q, want %q", m.filter.search, "s")
	}
}

func TestHandleSearchKey_BackspaceRemovesCharacter(t *testing.T) {
	m := newTestModel()
	m.filter.searching = true
	m.filter.search = "sec"
	m.handleSearchKey(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.filter.search != "se" {
		t.Fatalf("search = %q, want %q", m.filter.search, "se")
	}
}

func TestApplyFilter_ClampsCursorWhenListShrinks(t *testing.T) {
	m := newTestModel()
	m.cursor = len(m.all) - 1
	m.filter.severityIdx = 0 // critical only
	m.applyFilter()
	if m.cursor >= len(m.filtered) {
		t.Fatalf("cursor %d out of range for %d filtered items", m.cursor, len(m.filtered))
	}
}

func TestView_RendersListByDefault(t *testing.T) {
	m := newTestModel()
	out := m.View()
	if !strings.Contains(out, "violations") {
		t.Fatalf("expected list view output, got %q", out)
	}
}

func TestView_RendersDetailWhenSelected(t *testing.T) {
	m := newTestModel()
	m.state = detailView
	out := m.View()
	if !strings.Contains(out, m.filtered[0].RuleID) {
		t.Fatalf("expected detail view to mention %s, got %q", m.filtered[0].RuleID, out)
	}
}
