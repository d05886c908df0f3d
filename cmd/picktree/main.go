package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Root    string `arg:"-C,--root" default:"." help:"project directory"`
	Verbose bool   `arg:"-v,--verbose" help:"log debug messages to stderr"`
	NoGit   bool   `arg:"--no-gitignore" help:"do not apply .gitignore rules"`

	Tree    *TreeCmd    `arg:"subcommand:tree" help:"Print the project tree with selection marks"`
	Pick    *PickCmd    `arg:"subcommand:pick" help:"Select files interactively"`
	Ls      *LsCmd      `arg:"subcommand:ls" help:"List selected files"`
	Out     *OutCmd     `arg:"subcommand:out" help:"Print the contents of selected files"`
	Summary *SummaryCmd `arg:"subcommand:summary" help:"Summarize the selection by size"`
	Ignore  *IgnoreCmd  `arg:"subcommand:ignore" help:"Show or edit ignore rules"`
	Reset   *ResetCmd   `arg:"subcommand:reset" help:"Forget the saved selection of the project"`
	Roots   *RootsCmd   `arg:"subcommand:roots" help:"List projects with a saved selection"`
}

func (Args) Description() string {
	return "picktree selects files from a project tree and remembers the selection.\n"
}

// Run dispatches to the subcommand.
func Run(args Args) error {
	app, cleanup, err := InitApp(args)
	if err != nil {
		return err
	}
	defer cleanup()

	switch {
	case args.Tree != nil:
		return app.RunTree(*args.Tree, os.Stdout)
	case args.Pick != nil:
		return app.RunPick(*args.Pick)
	case args.Ls != nil:
		return app.RunLs(*args.Ls, os.Stdout)
	case args.Out != nil:
		return app.RunOut(*args.Out, os.Stdout, os.Stderr)
	case args.Summary != nil:
		return app.RunSummary(*args.Summary, os.Stdout)
	case args.Ignore != nil:
		return app.RunIgnore(*args.Ignore, os.Stdout)
	case args.Reset != nil:
		return app.RunReset(os.Stdout)
	case args.Roots != nil:
		return app.RunRoots(os.Stdout)
	default:
		return fmt.Errorf("no subcommand specified")
	}
}

func main() {
	var args Args
	parser := arg.MustParse(&args)

	if parser.Subcommand() == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if err := Run(args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
