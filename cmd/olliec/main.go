// Command olliec is the Ollie front-end's CLI driver: it reads a
// lexer-produced token stream (internal/token's one JSON file format,
// see internal/token/decode.go), runs the macro preprocessor and parser,
// and reports diagnostics and (optionally) the intermediate
// representations. CLI option parsing is explicitly out of scope of the
// front end itself (spec.md §1); this file is the ambient wrapper every
// repo in this shape needs, built the way the teacher's cmd/funxy/main.go
// hand-parses os.Args rather than reaching for the flag package.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/ollie-front/internal/driver"
	"github.com/funvibe/ollie-front/internal/irprint"
	"github.com/funvibe/ollie-front/internal/token"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [options] <tokens-file>

options:
  -o <file>             output file for IR dumps (default: stdout)
  --print-irs            print the AST and CFG after a successful parse
  --time-execution        print per-stage timings
  --debug-printing         same output as --print-irs (also records enable_debug_printing, which adds no output)
  --go-to-assembly         accepted and recorded, hands off to a back end (no-op here)
  --show-summary           print a humanized run summary
  -help, --help, help      show this message
`, os.Args[0])
}

func parseArgs(args []string) (driver.Options, bool) {
	var opts driver.Options
	var positional []string

	i := 1
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-help", "--help", "help":
			return opts, false
		case "-o":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "error: -o requires a file name")
				return opts, false
			}
			opts.OutputFile = args[i]
		case "--print-irs":
			opts.PrintIRs = true
		case "--time-execution":
			opts.TimeExecution = true
		case "--debug-printing":
			opts.PrintIRs = true
			opts.EnableDebugPrinting = true
		case "--go-to-assembly":
			opts.GoToAssembly = true
		case "--show-summary":
			opts.ShowSummary = true
		default:
			positional = append(positional, arg)
		}
		i++
	}

	if len(positional) != 1 {
		return opts, false
	}
	opts.InputFile = positional[0]
	return opts, true
}

func main() {
	opts, ok := parseArgs(os.Args)
	if !ok {
		usage()
		os.Exit(1)
	}

	in, err := os.Open(opts.InputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	stream, err := token.Decode(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	result := driver.Run(opts, stream)

	printDiagnostics(result)

	out := os.Stdout
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if opts.PrintIRs {
		fmt.Fprintln(out, "=== CFG ===")
		fmt.Fprint(out, irprint.PrintCFG(result.Arena, result.CFG))
		fmt.Fprintln(out, "=== functions ===")
		for name, fn := range result.Tables.Functions.All() {
			fmt.Fprintf(out, "func %s entrance=%s defined=%v\n", name, fn.EntranceBlock, fn.Defined)
		}
	}

	if opts.TimeExecution {
		fmt.Fprintf(os.Stderr, "preprocess: %s, parse: %s\n", result.Times.Preprocess, result.Times.Parse)
	}

	if opts.GoToAssembly {
		fmt.Fprintln(os.Stderr, "note: --go-to-assembly recorded, no back end is wired into this build")
	}

	if opts.ShowSummary {
		printSummary(result)
	}

	if result.Diagnostics.HasErrors() {
		os.Exit(1)
	}
}

func printDiagnostics(result *driver.Result) {
	colorize := isatty.IsTerminal(os.Stdout.Fd())
	for _, d := range result.Diagnostics.Diagnostics {
		if !colorize {
			fmt.Println(d.Error())
			continue
		}
		color := "\x1b[33m" // warning: yellow
		if d.Severity == "ERROR" {
			color = "\x1b[31m"
		}
		fmt.Printf("%s%s\x1b[0m\n", color, d.Error())
	}
}

func printSummary(result *driver.Result) {
	c := result.Diagnostics
	status := "ok"
	if c.HasErrors() {
		status = "failed"
	}
	fmt.Fprintf(os.Stderr, "%s: %s lines processed, %s error(s), %s warning(s), main function %s\n",
		status,
		humanize.Comma(int64(c.LinesProcessed)),
		humanize.Comma(int64(c.NumErrors)),
		humanize.Comma(int64(c.NumWarnings)),
		mainStatus(c.FoundMainFunction))
}

func mainStatus(found bool) string {
	if found {
		return "found"
	}
	return "not found"
}
