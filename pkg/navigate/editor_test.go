package navigate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pcranleigh/lintview/pkg/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLineForOffset(t *testing.T) {
	path := writeFile(t, "a.go", "package a\n\nfunc f() {\n}\n")

	cases := []struct {
		offset int
		want   int
	}{
		{0, 1},
		{5, 1},
		{10, 2},  // first byte after "package a\n"
		{11, 3},  // after the blank line
		{100, 5}, // past EOF clamps to last line
		{-3, 1},  // negative clamps to start
	}
	for _, c := range cases {
		got, err := LineForOffset(path, c.offset)
		if err != nil {
			t.Fatalf("offset %d: %v", c.offset, err)
		}
		if got != c.want {
			t.Errorf("offset %d: line %d, want %d", c.offset, got, c.want)
		}
	}
}

func TestLineForOffsetBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	if err := os.WriteFile(path, []byte{0x7f, 0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LineForOffset(path, 2); err == nil {
		t.Error("binary file should refuse line addressing")
	}
}

func TestLineForOffsetMissingFile(t *testing.T) {
	if _, err := LineForOffset("/nonexistent/file.go", 0); err == nil {
		t.Error("missing file should report an error")
	}
}

func TestEditorCmdLineAddressable(t *testing.T) {
	path := writeFile(t, "b.go", "one\ntwo\nthree\n")
	e := &EditorOpener{Command: "vim"}

	cmd, err := e.Cmd(&model.ScannedFile{Path: path}, 5) // inside line 2
	if err != nil {
		t.Fatal(err)
	}
	args := strings.Join(cmd.Args[1:], " ")
	if args != "+2 "+path {
		t.Errorf("unexpected vim args %q", args)
	}
}

func TestEditorCmdVSCodeStyle(t *testing.T) {
	path := writeFile(t, "c.go", "one\ntwo\n")
	e := &EditorOpener{Command: "code --wait"}

	cmd, err := e.Cmd(&model.ScannedFile{Path: path}, 4)
	if err != nil {
		t.Fatal(err)
	}
	args := strings.Join(cmd.Args[1:], " ")
	if args != "--wait -g "+path+":2" {
		t.Errorf("unexpected code args %q", args)
	}
}

func TestEditorCmdUnknownEditorSkipsCaret(t *testing.T) {
	path := writeFile(t, "d.go", "one\ntwo\n")
	e := &EditorOpener{Command: "someviewer"}

	cmd, err := e.Cmd(&model.ScannedFile{Path: path}, 4)
	if err != nil {
		t.Fatal(err)
	}
	// No line-capable flags for unknown editors: bare file open.
	if len(cmd.Args) != 2 || cmd.Args[1] != path {
		t.Errorf("unexpected args %v", cmd.Args)
	}
}

func TestEditorCmdMissingFileStillOpens(t *testing.T) {
	e := &EditorOpener{Command: "vim"}
	cmd, err := e.Cmd(&model.ScannedFile{Path: "/gone/file.go"}, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Offset cannot be translated, so the caret step is dropped.
	if len(cmd.Args) != 2 || cmd.Args[1] != "/gone/file.go" {
		t.Errorf("unexpected args %v", cmd.Args)
	}
}

func TestEditorCmdNilFile(t *testing.T) {
	e := &EditorOpener{Command: "vim"}
	if _, err := e.Cmd(nil, 0); err == nil {
		t.Error("nil file should be an error for the navigator to absorb")
	}
}

func TestEditorCommandFallback(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")
	e := &EditorOpener{}
	argv := e.editorCommand()
	if len(argv) != 1 || argv[0] != "nano" {
		t.Errorf("expected $EDITOR fallback, got %v", argv)
	}

	t.Setenv("EDITOR", "")
	argv = e.editorCommand()
	if len(argv) != 1 || argv[0] != "vi" {
		t.Errorf("expected vi fallback, got %v", argv)
	}
}
