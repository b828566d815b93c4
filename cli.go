package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"mosey/log"
)

type mode byte

const (
	runMode     mode = iota // run a program image
	monitorMode             // interactive monitor
	versionMode             // show mosey version
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run a program image."`
		Monitor Monitor `cmd:"" help:"Run a program image under the interactive monitor."`
		Version Version `cmd:"" help:"Show mosey version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		ImagePath string `arg:"" name:"/path/to/image" help:"${image_help}" required:"true" type:"existingfile"`

		Addr     hexword  `name:"addr" help:"Load address of the image." default:"${addr_default}"`
		Entry    *hexword `name:"entry" help:"Entry point. Defaults to the load address."`
		Cycles   int64    `name:"cycles" help:"Stop after that many cycles. 0 runs until the CPU halts."`
		Illegal  string   `name:"illegal" help:"Undocumented opcode policy." enum:"stop,nop,emulate" default:"${illegal_default}"`
		Trace    *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		SaveTo   string   `name:"save" help:"Write a machine snapshot on exit." type:"path"`
		LoadFrom string   `name:"load" help:"Resume from a machine snapshot." type:"existingfile"`
	}

	Monitor struct {
		ImagePath string `arg:"" name:"/path/to/image" help:"${image_help}" required:"true" type:"existingfile"`

		Addr    hexword  `name:"addr" help:"Load address of the image." default:"${addr_default}"`
		Entry   *hexword `name:"entry" help:"Entry point. Defaults to the load address."`
		Illegal string   `name:"illegal" help:"Undocumented opcode policy." enum:"stop,nop,emulate" default:"${illegal_default}"`
	}

	Version struct{}
)

func cliVars(cfg Config) kong.Vars {
	return kong.Vars{
		"image_help":      "Raw binary program image to load and run.",
		"log_help":        "Enable logging for specified modules.",
		"illegal_default": cfg.Run.Illegal,
		"addr_default":    cfg.Run.Addr,
	}
}

func parseArgs(args []string, defaults Config) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("mosey"),
		kong.Description("MOS 6502/6510 emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		cliVars(defaults))
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch {
	case ctx.Command() == "version":
		cfg.mode = versionMode
	case strings.HasPrefix(ctx.Command(), "monitor"):
		cfg.mode = monitorMode
	default:
		cfg.mode = runMode
	}
	return cfg
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

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
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

// hexword is a 16-bit address flag accepting 0x/0o/0b prefixes as well
// as plain decimal.
type hexword uint16

// Decode implements kong.MapperValue interface.
func (h *hexword) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	v, err := strconv.ParseUint(tok.Value.(string), 0, 16)
	if err != nil {
		return fmt.Errorf("invalid address %q", tok.Value)
	}
	*h = hexword(v)
	return nil
}

func (h hexword) String() string { return fmt.Sprintf("$%04X", uint16(h)) }

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
