package main

import "testing"

func TestExtractInterspersedArgs_HoistsVersionFlag(t *testing.T) {
	got := extractInterspersedArgs([]string{"scan", ".", "--version"})
	want := []string{"--version", "scan", "."}

	if len(got) != len(want) {
		t.Fatalf("extractInterspersedArgs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("extractInterspersedArgs() = %v, want %v", got, want)
		}
	}
}

func TestExtractInterspersedArgs_LeavesSubcommandFlagsInPlace(t *testing.T) {
	got := extractInterspersedArgs([]string{"show", ".", "--severity", "high"})
	want := []string{"show", ".", "--severity", "high"}

	if len(got) != len(want) {
		t.Fatalf("extractInterspersedArgs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("extractInterspersedArgs() = %v, want %v", got, want)
		}
	}
}

func TestRun_UnknownCommandReturnsUsageError(t *testing.T) {
	if code := run([]string{"bogus"}); code != 2 {
		t.Errorf("run([bogus]) = %d, want 2", code)
	}
}

func TestRun_NoArgsReturnsUsageError(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Errorf("run(nil) = %d, want 2", code)
	}
}

func TestRun_VersionFlagPrintsAndExits(t *testing.T) {
	if code := run([]string{"--version"}); code != 0 {
		t.Errorf("run([--version]) = %d, want 0", code)
	}
}
