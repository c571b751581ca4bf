// Command nesvm runs NES ROMs headlessly against the nesvm core, or
// prints information about a ROM image.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nesvm/internal/log"
)

type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run a ROM headlessly for a fixed number of frames."`
	RomInfo RomInfoCmd `cmd:"" help:"Show ROM header information." name:"rom-info"`
	Version VersionCmd `cmd:"" help:"Show nesvm version."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

var vars = kong.Vars{
	"log_help": "Enable debug logging for the given comma-separated modules (or \"all\"/\"no\").",
}

func main() {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nesvm"),
		kong.Description("Cycle-driven NES core. github.com/nesvm"),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	checkf(err, "failed to parse command line")
	checkf(ctx.Run(), "command failed")
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s
  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}
		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module
// mask, enabling debug logging as a side effect.
//
// Implements kong.MapperValue.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}
	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": "+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
