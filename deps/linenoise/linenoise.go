package linenoise

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/peterh/liner"
)

// ErrAborted is returned by Prompt when the user presses Ctrl-C.
var ErrAborted = liner.ErrPromptAborted

type LineNoise struct {
	*liner.State
}

// New takes over the terminal. Close must be called to restore it.
func New() *LineNoise {
	ln := &LineNoise{liner.NewLiner()}
	ln.SetCtrlCAborts(true)
	return ln
}

// HistoryLoad reads history from filepath. A missing file is not an error.
func (ln *LineNoise) HistoryLoad(filepath string) error {
	content, err := os.ReadFile(filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = ln.ReadHistory(bytes.NewReader(content))
	return err
}

func (ln *LineNoise) HistorySave(filepath string) error {
	var buf bytes.Buffer
	_, err := ln.WriteHistory(&buf)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, buf.Bytes(), 0644)
}

func (ln *LineNoise) ClearScreen(w io.Writer) error {
	clearSeq := "\x1b[H\x1b[2J"
	_, err := fmt.Fprint(w, clearSeq)
	return err
}

// SetCommands enables tab completion over the given command names.
func (ln *LineNoise) SetCommands(names []string) {
	ln.SetCompleter(func(line string) []string {
		var out []string
		for _, n := range names {
			if len(line) <= len(n) && n[:len(line)] == line {
				out = append(out, n)
			}
		}
		return out
	})
}
