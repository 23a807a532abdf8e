package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProblemFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "problem.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write problem file: %v", err)
	}
	return path
}

func TestRunTextOutput(t *testing.T) {
	path := writeProblemFile(t, "10\n2:3 3:4 4:5 5:6\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}
	want := "Optimal value: 13\nSelected indices (3): 0 1 3\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunJSONOutput(t *testing.T) {
	path := writeProblemFile(t, "9\n4:6 5:9 6:12 3:5\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--json", path}, strings.NewReader(""), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}
	want := `{"status":"ok","optimal_value":17,"selected_indices":[2,3]}` + "\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunReadsStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-"}, strings.NewReader("5\n5:9\n"), &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}
	want := "Optimal value: 9\nSelected indices (1): 0\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunParseFailure(t *testing.T) {
	path := writeProblemFile(t, "not-a-number\n1:1\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected error message on stderr")
	}
}

func TestRunJSONParseFailure(t *testing.T) {
	path := writeProblemFile(t, "10\nbroken\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--json", path}, strings.NewReader(""), &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	want := `{"status":"error","code":"parse"}` + "\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunSolverFailureCode(t *testing.T) {
	path := writeProblemFile(t, "10\n0:5\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--json", path}, strings.NewReader(""), &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	want := `{"status":"error","code":"invalid_item"}` + "\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunBoundOverrides(t *testing.T) {
	path := writeProblemFile(t, "10\n1:1 1:1 1:1\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--json", "--max-items", "2", path}, strings.NewReader(""), &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	want := `{"status":"error","code":"too_many_items"}` + "\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "missing.txt")}, strings.NewReader(""), &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
