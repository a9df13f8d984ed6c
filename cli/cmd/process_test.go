package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ardnew/mergeconfig/lang"
)

func testOptions(output string) *Options {
	return &Options{
		Output:       output,
		MaxDepth:     100,
		ShellTimeout: time.Second,
	}
}

func readOutput(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}

func TestProcess_Run(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.conf", "# top\nA=y\n%(include 'sub/b.conf')\n")
	writeFile(t, dir, "sub/b.conf", "B=2\nA=n\n")

	out := filepath.Join(dir, "build", "merged.config")

	tests := []struct {
		name    string
		opts    func(*Options)
		want    []string
		notWant []string
	}{
		{
			name: "default",
			want: []string{
				lang.GeneratedHeader + "\n",
				"# Files include structure:\n# * a.conf ( from cmd line )\n#   * sub/b.conf\n\n",
				"# top\n",
				"# Previously y on a.conf:2\n# A is not set\n",
				"B=2\n",
			},
			notWant: []string{lang.LocalPrefix},
		},
		{
			name:    "no header",
			opts:    func(o *Options) { o.NoHeader = true },
			want:    []string{lang.GeneratedHeader + "\n# top\n"},
			notWant: []string{"include structure"},
		},
		{
			name:    "strip history",
			opts:    func(o *Options) { o.StripHistory = true },
			want:    []string{"# A is not set\n"},
			notWant: []string{"Previously"},
		},
		{
			name: "prepend and append",
			opts: func(o *Options) {
				o.Prepend = "P=1"
				o.Append = "B=3"
			},
			want: []string{
				"# * prepend data\n# * a.conf ( from cmd line )\n#   * sub/b.conf\n# * append data\n",
				"P=1\n",
				"# Previously 2 on sub/b.conf:1\nB=3\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(out)
			if tt.opts != nil {
				tt.opts(opts)
			}

			if err := (&Process{Files: []string{a}}).Run(context.Background(), opts); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			got := readOutput(t, out)

			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}

			for _, bad := range tt.notWant {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestProcess_OutputVariables(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.conf",
		"D=%("+lang.VarOutputDir+")\nN=%("+lang.VarOutputName+")\nT=%("+lang.VarTmp+")\n")

	out := filepath.Join(dir, "build", "merged.config")

	opts := testOptions(out)
	opts.TmpDir = filepath.Join(dir, "scratch")

	if err := (&Process{Files: []string{a}}).Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := readOutput(t, out)

	for _, want := range []string{
		`D="` + filepath.Join(dir, "build") + `"`,
		`N="merged.config"`,
		`T="` + filepath.Join(dir, "scratch") + `"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestProcess_Degraded(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.conf", "%(include 'missing.conf')\nA=y\n")

	out := filepath.Join(dir, "merged.config")

	err := (&Process{Files: []string{a}}).Run(context.Background(), testOptions(out))
	if !errors.Is(err, ErrDegraded) {
		t.Fatalf("Run() error = %v, want %v", err, ErrDegraded)
	}

	if got := readOutput(t, out); !strings.Contains(got, "A=y\n") {
		t.Errorf("output missing assignment:\n%s", got)
	}
}

func TestProcess_NoInput(t *testing.T) {
	err := (&Process{}).Run(context.Background(), testOptions(stdio))
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoInput)
	}
}

func TestProcess_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.conf")

	err := (&Process{Files: []string{missing}}).Run(context.Background(), testOptions(stdio))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("Run() error = %v, want %v", err, ErrReadInput)
	}
}

func TestProcess_Canceled(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.conf", "A=y\n")
	out := filepath.Join(dir, "merged.config")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := (&Process{Files: []string{a}}).Run(ctx, testOptions(out)); err == nil {
		t.Fatal("Run() expected error")
	}

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written after failure: %v", err)
	}
}

func TestDeps_Run(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.conf", "%(include 'sub/b.conf')\n%(include 'c.conf')\n")
	writeFile(t, dir, "sub/b.conf", "%(include '../c.conf')\n")
	writeFile(t, dir, "c.conf", "C=y\n")
	d := writeFile(t, dir, "d.conf", "D=y\n")

	out := filepath.Join(dir, "deps.txt")

	opts := testOptions(out)
	opts.Prepend = "P=y"

	if err := (&Deps{Files: []string{a, d}}).Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "a.conf sub/b.conf c.conf c.conf d.conf\n"
	if got := readOutput(t, out); got != want {
		t.Errorf("deps = %q, want %q", got, want)
	}
}

func TestDump_Batch(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.conf", "A=y\n%(ifeq %(A), 'y')\nB=2\n%(endif)\n")

	tests := []struct {
		name string
		run  func(context.Context, *Options) error
		want string
	}{
		{
			name: "tokens text",
			run:  (&Tokens{DumpFlags{Format: string(lang.DumpText), Indent: 2, Files: []string{a}}}).Run,
			want: `"A"`,
		},
		{
			name: "tokens json",
			run:  (&Tokens{DumpFlags{Format: string(lang.DumpJSON), Indent: 2, Files: []string{a}}}).Run,
			want: `"value": "A"`,
		},
		{
			name: "tree yaml",
			run:  (&Tree{DumpFlags{Format: string(lang.DumpYAML), Indent: 2, Files: []string{a}}}).Run,
			want: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "dump.out")

			if err := tt.run(context.Background(), testOptions(out)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := readOutput(t, out); !strings.Contains(got, tt.want) {
				t.Errorf("dump missing %q:\n%s", tt.want, got)
			}
		})
	}
}
