package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// location is a 1-based position in a file handed to an external editor.
type location struct {
	Path string
	Line int
	Col  int
}

func (l location) String() string {
	return l.Path + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Col)
}

// expand substitutes {file}, {line}, {col} and {target} in one argument.
func (l location) expand(arg string) string {
	return strings.NewReplacer(
		"{file}", l.Path,
		"{line}", strconv.Itoa(l.Line),
		"{col}", strconv.Itoa(l.Col),
		"{target}", l.String(),
	).Replace(arg)
}

// openLocation starts the configured editor on loc without waiting for it.
// With no editor configured the platform opener gets the file.
func openLocation(loc location, editorCmd string) error {
	var argv []string
	if strings.TrimSpace(editorCmd) != "" {
		name, args, err := buildEditorCommand(editorCmd, loc)
		if err != nil {
			return err
		}
		argv = append([]string{name}, args...)
	} else {
		opener, err := platformOpener(loc.Path)
		if err != nil {
			return err
		}
		argv = opener
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("editor command not found: %s", argv[0])
	}
	return exec.Command(argv[0], argv[1:]...).Start()
}

func buildEditorCommand(template string, loc location) (string, []string, error) {
	argv, err := splitCommandLine(template)
	if err != nil {
		return "", nil, err
	}
	if len(argv) == 0 {
		return "", nil, fmt.Errorf("editor command is empty")
	}
	for i, arg := range argv {
		argv[i] = loc.expand(arg)
	}
	return argv[0], argv[1:], nil
}

// splitCommandLine splits on unquoted whitespace. Single and double quotes
// group words and are removed; a quote of the other kind inside is literal.
func splitCommandLine(input string) ([]string, error) {
	var (
		argv  []string
		word  strings.Builder
		quote rune
		inArg bool
	)
	for _, r := range strings.TrimSpace(input) {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			word.WriteRune(r)
		case r == '\'' || r == '"':
			quote, inArg = r, true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inArg {
				argv = append(argv, word.String())
				word.Reset()
				inArg = false
			}
		default:
			word.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("editor command has unclosed quote")
	}
	if inArg {
		argv = append(argv, word.String())
	}
	return argv, nil
}

func platformOpener(path string) ([]string, error) {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open", path}, nil
	case "linux":
		return []string{"xdg-open", path}, nil
	case "windows":
		return []string{"explorer.exe", path}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func copyToClipboard(s string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found (install wl-copy, xclip, or xsel)")
	}
	return clipboard.WriteAll(s)
}
