package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/fzft/go-hashset/set"
)

// executor runs shell command lines against one set.
type executor interface {
	Execute(line string) error
	Prompt() string
	Commands() []string
}

type shellCommand struct {
	name    string
	args    string
	summary string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(argv []string) error
}

type shell[K comparable] struct {
	set      *set.Set[K]
	parse    func(string) (K, error)
	out      io.Writer
	commands map[string]*shellCommand
}

func newExecutor(cfg Config, out io.Writer, logger *zap.Logger) (executor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	switch cfg.Keys {
	case KeysString:
		return newShell(cfg, out, logger, func(s string) (string, error) { return s, nil }), nil
	default:
		return newShell(cfg, out, logger, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		}), nil
	}
}

func newShell[K comparable](cfg Config, out io.Writer, logger *zap.Logger, parse func(string) (K, error)) *shell[K] {
	sh := &shell[K]{
		set: set.New(
			set.WithCapacity[K](cfg.Capacity),
			set.WithMaxLoadFactor[K](cfg.MaxLoad),
			set.WithLogger[K](logger),
		),
		parse: parse,
		out:   out,
	}
	sh.commands = map[string]*shellCommand{}
	for _, c := range []*shellCommand{
		{name: "add", args: "key [key ...]", summary: "insert keys, reply with the number inserted", minArgs: 1, maxArgs: -1, run: sh.add},
		{name: "del", args: "key [key ...]", summary: "erase keys, reply with the number erased", minArgs: 1, maxArgs: -1, run: sh.del},
		{name: "has", args: "key", summary: "reply 1 if key is a member, 0 otherwise", minArgs: 1, maxArgs: 1, run: sh.has},
		{name: "find", args: "key", summary: "show the bucket holding key", minArgs: 1, maxArgs: 1, run: sh.find},
		{name: "size", summary: "number of keys", run: sh.size},
		{name: "empty", summary: "reply 1 if the set is empty", run: sh.empty},
		{name: "clear", summary: "remove every key, keep the capacity", run: sh.clear},
		{name: "dump", summary: "print keys in iteration order", run: sh.dump},
		{name: "layout", summary: "print every bucket and its chain", run: sh.layout},
		{name: "stats", summary: "print table statistics", run: sh.stats},
		{name: "inspect", summary: "print a structural snapshot of the table", run: sh.inspect},
		{name: "help", summary: "list commands", run: sh.help},
	} {
		sh.commands[c.name] = c
	}
	return sh
}

func (sh *shell[K]) Prompt() string {
	return fmt.Sprintf("hashset[%d/%d]> ", sh.set.Len(), sh.set.Capacity())
}

func (sh *shell[K]) Commands() []string {
	names := make([]string, 0, len(sh.commands)+2)
	for name := range sh.commands {
		names = append(names, name)
	}
	names = append(names, "quit", "exit")
	sort.Strings(names)
	return names
}

// Execute runs one command line. A leading integer repeats the command, as in
// "3 add 1".
func (sh *shell[K]) Execute(line string) error {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return nil
	}

	repeat := 1
	if n, err := strconv.Atoi(argv[0]); err == nil && len(argv) > 1 {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidRepeat, n)
		}
		repeat = n
		argv = argv[1:]
	}

	name := strings.ToLower(argv[0])
	if name == "quit" || name == "exit" {
		return ErrQuit
	}
	c, ok := sh.commands[name]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownCommand, argv[0])
	}
	args := argv[1:]
	if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
		return fmt.Errorf("%w for '%s'", ErrArity, c.name)
	}

	for i := 0; i < repeat; i++ {
		if err := c.run(args); err != nil {
			return err
		}
	}
	return nil
}

func (sh *shell[K]) keys(args []string) ([]K, error) {
	keys := make([]K, 0, len(args))
	for _, a := range args {
		k, err := sh.parse(a)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", a, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (sh *shell[K]) integer(n int) error {
	_, err := fmt.Fprintf(sh.out, "(integer) %d\n", n)
	return err
}

func (sh *shell[K]) add(args []string) error {
	keys, err := sh.keys(args)
	if err != nil {
		return err
	}
	inserted := 0
	for _, k := range keys {
		if _, ok := sh.set.Insert(k); ok {
			inserted++
		}
	}
	return sh.integer(inserted)
}

func (sh *shell[K]) del(args []string) error {
	keys, err := sh.keys(args)
	if err != nil {
		return err
	}
	erased := 0
	for _, k := range keys {
		erased += sh.set.Erase(k)
	}
	return sh.integer(erased)
}

func (sh *shell[K]) has(args []string) error {
	k, err := sh.parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid key %q: %w", args[0], err)
	}
	return sh.integer(sh.set.Count(k))
}

func (sh *shell[K]) find(args []string) error {
	k, err := sh.parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid key %q: %w", args[0], err)
	}
	it := sh.set.Find(k)
	if it.Done() {
		_, err = fmt.Fprintln(sh.out, "(nil)")
		return err
	}
	_, err = fmt.Fprintf(sh.out, "%v in bucket %d\n", it.Key(), it.Bucket())
	return err
}

func (sh *shell[K]) size([]string) error {
	return sh.integer(sh.set.Len())
}

func (sh *shell[K]) empty([]string) error {
	if sh.set.Empty() {
		return sh.integer(1)
	}
	return sh.integer(0)
}

func (sh *shell[K]) clear([]string) error {
	sh.set.Clear()
	_, err := fmt.Fprintln(sh.out, "OK")
	return err
}

func (sh *shell[K]) dump([]string) error {
	return sh.set.Dump(sh.out)
}

func (sh *shell[K]) layout([]string) error {
	return sh.set.DumpLayout(sh.out)
}

func (sh *shell[K]) stats([]string) error {
	st := sh.set.Stats()
	_, err := fmt.Fprintf(sh.out,
		"size:%d\ncapacity:%d\nload_factor:%d\nmax_load_factor:%d\nrehashes:%d\nempty_buckets:%d\nlongest_chain:%d\n",
		st.Size, st.Capacity, st.LoadFactor, st.MaxLoadFactor, st.Rehashes, st.EmptyBuckets, st.LongestChain)
	return err
}

func (sh *shell[K]) inspect([]string) error {
	spew.Fdump(sh.out, sh.set.Snapshot())
	return nil
}

func (sh *shell[K]) help([]string) error {
	names := make([]string, 0, len(sh.commands))
	for name := range sh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := sh.commands[name]
		usage := strings.TrimSpace(c.name + " " + c.args)
		if _, err := fmt.Fprintf(sh.out, "%-24s %s\n", usage, c.summary); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(sh.out, "%-24s %s\n", "quit", "leave the shell")
	return err
}
