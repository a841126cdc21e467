package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done

	Store  *store.Store
	Logger *log.Logger
	Out    io.Writer
	Err    io.Writer

	// Interactive runs the TUI; defaults to tui.Run.
	Interactive func(*todolist.Collection) (changed bool, err error)
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Store == nil {
		o.Store = store.New(".", store.DefaultName, o.Logger)
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Interactive == nil {
		o.Interactive = tui.Run
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.setDefaults()
	if len(args) == 0 {
		PrintHelp(opt.Out)
		return 2
	}
	cmd, a := args[0], args[1:]
	opt.Logger.Debug("dispatch", "command", cmd, "args", a)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "show":
		return doShow(opt)

	case "ls":
		return doList(opt)

	case "tui":
		return doInteractive(opt)

	case "add":
		desc := strings.TrimSpace(strings.Join(a, " "))
		if desc == "" {
			ui.Fail(opt.Err, "usage: todo add <description...>")
			return 2
		}
		return doAdd(opt, desc)

	case "remove", "rm":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: todo remove <id|description>")
			return 2
		}
		return doRemove(opt, strings.Join(a, " "))

	case "update", "done":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: todo update <id|description>")
			return 2
		}
		return doUpdate(opt, strings.Join(a, " "))

	case "export":
		if len(a) > 1 {
			ui.Fail(opt.Err, "usage: todo export [file.csv]")
			return 2
		}
		return doExport(opt, optionalArg(a))

	case "import":
		if len(a) > 1 {
			ui.Fail(opt.Err, "usage: todo import [file.csv]")
			return 2
		}
		return doImport(opt, optionalArg(a))
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - a tiny CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <description...>       Add a new item (description can be multiple words)
  remove <id|description>    Remove an item (alias: rm)
  update <id|description>    Toggle done for an item (alias: done)
  show                       Print the list as JSON
  ls                         List items
  tui                        Interactive list
  export [file.csv]          Write the list as CSV (default <file>.csv)
  import [file.csv]          Replace the list with a CSV file

Flags:
  -file <name>    storage base name (default todo_list)
  -dir <path>     directory holding <name>.json
  -config <path>  TOML config file (default ./todo.toml)
  -group          group ls output by pending/done
  -theme <name>   classic, neon or mono
  -v              debug logging

Examples:
  todo add "Buy milk"
  todo update 0
  todo rm "buy milk"
  todo show
`)
}

// parseID reports whether arg names an item by id. Anything that is not
// an unsigned 32-bit integer is a description.
func parseID(arg string) (uint32, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func optionalArg(a []string) string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// -------------- subcommand impls ----------------

func load(opt Options) (*todolist.Collection, bool) {
	c, err := opt.Store.Load()
	if err != nil {
		opt.Logger.Error("load failed", "path", opt.Store.JSONPath(), "err", err)
		ui.Fail(opt.Err, "load: "+err.Error())
		return nil, false
	}
	return c, true
}

func save(opt Options, c *todolist.Collection) bool {
	if err := opt.Store.Save(c); err != nil {
		opt.Logger.Error("save failed", "path", opt.Store.JSONPath(), "err", err)
		ui.Fail(opt.Err, "save: "+err.Error())
		return false
	}
	return true
}

func doAdd(opt Options, desc string) int {
	c, ok := load(opt)
	if !ok {
		return 1
	}
	if !c.Insert(desc) {
		if _, dup := c.FindByDescription(desc); dup {
			ui.Fail(opt.Err, "todo item already exists: "+todolist.Normalize(desc))
		} else {
			ui.Fail(opt.Err, "no ids left, export to CSV and import it to renumber")
		}
		return 1
	}
	if !save(opt, c) {
		return 1
	}
	it, _ := c.FindByDescription(desc)
	ui.OK(opt.Out, fmt.Sprintf("todo item saved -> %d : %s", it.ID, it.Description))
	return 0
}

func doRemove(opt Options, arg string) int {
	c, ok := load(opt)
	if !ok {
		return 1
	}
	var (
		it    model.Item
		found bool
	)
	id, byID := parseID(arg)
	if byID {
		it, found = c.RemoveByID(id)
	} else {
		opt.Logger.Debug("argument is not an id, matching description", "arg", arg)
		it, found = c.RemoveByDescription(arg)
	}
	if !found {
		notFound(opt, arg, byID)
		return 1
	}
	if !save(opt, c) {
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("todo item deleted -> %d : %s", it.ID, it.Description))
	return 0
}

func doUpdate(opt Options, arg string) int {
	c, ok := load(opt)
	if !ok {
		return 1
	}
	var (
		it    model.Item
		found bool
	)
	id, byID := parseID(arg)
	if byID {
		_, found = c.UpdateByID(id)
		it, _ = c.FindByID(id)
	} else {
		opt.Logger.Debug("argument is not an id, matching description", "arg", arg)
		_, found = c.UpdateByDescription(arg)
		it, _ = c.FindByDescription(arg)
	}
	if !found {
		notFound(opt, arg, byID)
		return 1
	}
	if !save(opt, c) {
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("todo item updated -> %d : %s : done=%t", it.ID, it.Description, it.Done))
	return 0
}

func notFound(opt Options, arg string, byID bool) {
	if byID {
		ui.Fail(opt.Err, fmt.Sprintf("there is no item with the given id: %s", strings.TrimSpace(arg)))
	} else {
		ui.Fail(opt.Err, fmt.Sprintf("there is no item with the given description: %s", arg))
	}
	ui.Hint(opt.Err, "Hint: run `todo ls` to see ids and descriptions")
}

func doShow(opt Options) int {
	c, ok := load(opt)
	if !ok {
		return 1
	}
	b, err := c.JSONPretty()
	if err != nil {
		ui.Fail(opt.Err, "show: "+err.Error())
		return 1
	}
	fmt.Fprintln(opt.Out, string(b))
	return 0
}

func doList(opt Options) int {
	c, ok := load(opt)
	if !ok {
		return 1
	}
	t := ui.Current()
	items := c.Items()

	// Header + progress
	d, p := c.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(opt.Out, lines)
	return 0
}

func doInteractive(opt Options) int {
	c, ok := load(opt)
	if !ok {
		return 1
	}
	changed, err := opt.Interactive(c)
	if err != nil {
		ui.Fail(opt.Err, "tui: "+err.Error())
		return 1
	}
	if !changed {
		return 0
	}
	if !save(opt, c) {
		return 1
	}
	ui.OK(opt.Out, "saved")
	return 0
}

func doExport(opt Options, path string) int {
	c, ok := load(opt)
	if !ok {
		return 1
	}
	written, err := opt.Store.ExportCSV(c, path)
	if err != nil {
		ui.Fail(opt.Err, "export: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("exported %d items to %s", c.Len(), written))
	return 0
}

func doImport(opt Options, path string) int {
	c, err := opt.Store.ImportCSV(path)
	if err != nil {
		ui.Fail(opt.Err, "import: "+err.Error())
		return 1
	}
	if !save(opt, c) {
		return 1
	}
	ui.OK(opt.Out, fmt.Sprintf("imported %d items into %s", c.Len(), opt.Store.JSONPath()))
	return 0
}

// -------------- rendering helpers --------------

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := t.Muted.Render(t.BoxUnchecked)
		desc := ansi.Truncate(it.Description, 80, "...")
		if it.Done {
			box = t.Success.Render(t.BoxChecked)
			desc = t.Done.Render(desc)
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%3d", it.ID)), box, desc))
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.Done {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
