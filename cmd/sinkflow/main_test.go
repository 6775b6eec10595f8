package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const program = `class Main {
  public static void main(String[] args) {
    int x;
    x = 5;
    if (c) {
      x = 2;
    }
    System.out.println(x);
  }
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	src := writeFile(t, "main.java", program)
	cfg := writeFile(t, "sinkflow.yaml", "order: ascending\n")
	bad := writeFile(t, "bad.java", "class Main {\n  void main() {\n    x int;\n  }\n}\n")
	gap := writeFile(t, "gap.java", "class Main { void main() { x = 1; # } }")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "list", args: []string{src}, wantCode: exitOK, wantStdout: "[5, 2]\n"},
		{name: "json", args: []string{"-format", "json", src}, wantCode: exitOK, wantStdout: "{\"values\":[5,2]}\n"},
		{name: "config file", args: []string{"-config", cfg, src}, wantCode: exitOK, wantStdout: "[2, 5]\n"},
		{name: "flag beats config", args: []string{"-config", cfg, "-order", "discovery", src}, wantCode: exitOK, wantStdout: "[5, 2]\n"},
		{name: "trailing debug", args: []string{src, "--debug"}, wantCode: exitOK, wantStdout: "[5, 2]\n", wantStderr: "[DEBUG]"},
		{name: "no file", args: nil, wantCode: exitUsage, wantStderr: "You need to specify source file"},
		{name: "missing file", args: []string{filepath.Join(t.TempDir(), "nope.java")}, wantCode: exitFile, wantStderr: "The file could not be read:"},
		{name: "parse error", args: []string{"-color", "never", bad}, wantCode: exitParse, wantStderr: "Unexpected token."},
		{name: "lenient gap", args: []string{gap}, wantCode: exitOK, wantStdout: "[1]\n", wantStderr: "[WARN]"},
		{name: "strict gap", args: []string{"-strict", gap}, wantCode: exitLex, wantStderr: `Unrecognized character "#".`},
		{name: "bad format", args: []string{"-format", "xml", src}, wantCode: exitUsage, wantStderr: "unknown format"},
		{name: "bad color", args: []string{"-color", "sometimes", src}, wantCode: exitUsage, wantStderr: "unknown color mode"},
		{name: "bad backend", args: []string{"-backend", "z3", src}, wantCode: exitUsage, wantStderr: "unknown solver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstderr:\n%s", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && stdout.String() != tt.wantStdout {
				t.Fatalf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Fatalf("stderr lacks %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}
