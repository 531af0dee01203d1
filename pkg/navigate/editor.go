package navigate

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pcranleigh/lintview/pkg/model"
)

// lineAddressable lists editor binaries known to accept a "+line" argument.
// Editors outside this set get the bare file: the caret/scroll step is
// silently skipped, mirroring a non-text-capable editor target.
var lineAddressable = map[string]bool{
	"vi": true, "vim": true, "nvim": true, "nano": true,
	"emacs": true, "emacsclient": true, "kak": true, "hx": true,
	"micro": true, "mcedit": true,
}

// vscodeLike lists editors using the "-g file:line" convention.
var vscodeLike = map[string]bool{
	"code": true, "code-insiders": true, "codium": true, "cursor": true,
}

// EditorOpener opens files in an external editor process. The zero value
// falls back to $VISUAL, then $EDITOR, then vi.
type EditorOpener struct {
	// Command is the editor executable, optionally with leading arguments
	// ("emacsclient -n"). Empty means use the environment.
	Command string
}

// editorCommand resolves the configured editor into argv form.
func (e *EditorOpener) editorCommand() []string {
	cmd := e.Command
	if cmd == "" {
		cmd = os.Getenv("VISUAL")
	}
	if cmd == "" {
		cmd = os.Getenv("EDITOR")
	}
	if cmd == "" {
		cmd = "vi"
	}
	return strings.Fields(cmd)
}

// Cmd builds the editor invocation for a file and byte offset without
// running it. The offset is translated to a line number by scanning the
// file; when the file cannot be read or looks binary, the line argument is
// dropped and the editor just opens the file.
func (e *EditorOpener) Cmd(file *model.ScannedFile, offset int) (*exec.Cmd, error) {
	if file == nil || file.Path == "" {
		return nil, fmt.Errorf("no file to open")
	}
	argv := e.editorCommand()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}

	line := 0
	if l, err := LineForOffset(file.Path, offset); err == nil {
		line = l
	}

	base := filepath.Base(argv[0])
	args := argv[1:]
	switch {
	case line > 0 && vscodeLike[base]:
		args = append(args, "-g", fmt.Sprintf("%s:%d", file.Path, line))
	case line > 0 && lineAddressable[base]:
		args = append(args, fmt.Sprintf("+%d", line), file.Path)
	default:
		args = append(args, file.Path)
	}

	cmd := exec.Command(argv[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// OpenAndScrollTo launches the editor and waits for it to exit. Errors are
// returned for the navigator to absorb; they never reach the user as a
// failure.
func (e *EditorOpener) OpenAndScrollTo(file *model.ScannedFile, offset int) error {
	cmd, err := e.Cmd(file, offset)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", cmd.Path, err)
	}
	return nil
}

// LineForOffset converts a byte offset into a 1-based line number by
// counting newlines in the file up to the offset. Offsets past the end of
// the file clamp to the last line. Binary files (NUL in the first block)
// report an error so callers skip line addressing.
func LineForOffset(path string, offset int) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	probe := data
	if len(probe) > 8192 {
		probe = probe[:8192]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return 0, fmt.Errorf("%s: not a text file", path)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	return 1 + bytes.Count(data[:offset], []byte{'\n'}), nil
}
