package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckFile(t *testing.T) {
	type tc struct {
		doc        string
		wantCycles int
		wantOut    string
		wantErr    bool
	}

	tests := map[string]tc{
		"acyclic": {
			doc: `
templates:
  - name: app
    attrs:
      x: {compute: center, sources: [.w]}
`,
		},
		"cycle": {
			doc: `
templates:
  - name: app
    attrs:
      x: {from: .y}
      y: {from: .x}
`,
			wantCycles: 1,
			wantOut:    "loop detected under app",
		},
		"unknown kind": {
			doc:     "templates: [{name: app, kind: widget}]",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("WEBAPP_DEBUG", "")
			path := filepath.Join(t.TempDir(), "app.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			cycles, err := checkFile(path, false, &out)
			if tt.wantErr {
				if err == nil {
					t.Error("checkFile() returned no error")
				}
				return
			}
			if err != nil {
				t.Fatalf("checkFile() error: %v", err)
			}
			if cycles != tt.wantCycles {
				t.Errorf("cycles = %d, want %d\n%s", cycles, tt.wantCycles, out.String())
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output %q missing %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestCheckFile_Missing(t *testing.T) {
	if _, err := checkFile(filepath.Join(t.TempDir(), "nope.yaml"), false, &bytes.Buffer{}); err == nil {
		t.Error("checkFile() on a missing file returned no error")
	}
}
