package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fzft/go-hashset/log"
	"github.com/fzft/go-hashset/set"
)

var HashsetVersion = "0.1.0"

// Version returns the release version, with the git commit and dirty marker
// appended when they were stamped at build time.
func Version(gitSHA1, gitDirty string) string {
	version := HashsetVersion
	if sha1Int, err := strconv.ParseInt(gitSHA1, 16, 64); err == nil && sha1Int != 0 {
		version = fmt.Sprintf("%s (git:%s", version, gitSHA1)
		if dirtyInt, err := strconv.ParseInt(gitDirty, 10, 64); err == nil && dirtyInt != 0 {
			version = fmt.Sprintf("%s-dirty", version)
		}
		version = fmt.Sprintf("%s)", version)
	}
	return version
}

func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "hashset",
		Short: "Interactive shell for a chained hash set",
		Long: `hashset keeps one set in memory and runs commands against it.

It is interactive when stdin is a terminal. Otherwise, or with --file,
commands are read one per line and every failing line is reported.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          run,
	}

	flags := root.Flags()
	flags.Int("capacity", set.DefaultCapacity, "initial number of buckets")
	flags.Int("max-load", set.DefaultMaxLoadFactor, "load factor percentage that triggers growth")
	flags.String("keys", string(KeysInt), "key type: int or string")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.StringP("file", "f", "", "read commands from file instead of stdin")

	return root
}

func run(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.Flags())
	if err != nil {
		return err
	}
	if err := log.InitLogger(cfg.LogLevel); err != nil {
		return err
	}
	defer log.Logger.Sync()

	out := c.OutOrStdout()
	sh, err := newExecutor(cfg, out, log.Logger.Named("set"))
	if err != nil {
		return err
	}
	log.Logger.Info("session started",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("max_load", cfg.MaxLoad),
		zap.String("keys", string(cfg.Keys)))

	switch {
	case cfg.File != "":
		f, err := os.Open(cfg.File)
		if err != nil {
			return err
		}
		defer f.Close()
		err = runScript(sh, f, out)
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		err = repl(sh, cfg, out)
	default:
		err = runScript(sh, c.InOrStdin(), out)
	}

	log.Logger.Info("session finished", zap.Error(err))
	return err
}

// Execute runs the root command and reports a failure on stderr.
func Execute(version string) error {
	err := NewRootCommand(version).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
