package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fzft/go-hashset/deps/linenoise"
	"github.com/fzft/go-hashset/log"
)

// repl runs an interactive session on the terminal until quit, Ctrl-C or EOF.
func repl(sh executor, cfg Config, out io.Writer) error {
	line := linenoise.New()
	defer line.Close()

	line.SetCommands(sh.Commands())
	if cfg.HistFile != "" {
		if err := line.HistoryLoad(cfg.HistFile); err != nil {
			log.Logger.Warn("load history", zap.String("file", cfg.HistFile), zap.Error(err))
		}
	}

	for {
		input, err := line.Prompt(sh.Prompt())
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, linenoise.ErrAborted) {
				return err
			}
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.EqualFold(strings.TrimSpace(input), "cls") {
			line.ClearScreen(out)
			continue
		}

		err = sh.Execute(input)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(out, "(error) ERR %s\n", err)
		}
	}

	if cfg.HistFile != "" {
		if err := line.HistorySave(cfg.HistFile); err != nil {
			log.Logger.Warn("save history", zap.String("file", cfg.HistFile), zap.Error(err))
		}
	}
	return nil
}

// runScript executes every line of r. Failing lines are reported to out and
// collected; execution continues with the next line. A quit command stops
// the script.
func runScript(sh executor, r io.Reader, out io.Writer) error {
	var errs MultiError

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		err := sh.Execute(text)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(out, "(error) ERR %s\n", err)
			log.Logger.Debug("script line failed", zap.Int("line", n), zap.Error(err))
			errs = append(errs, fmt.Errorf("line %d: %w", n, err))
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
