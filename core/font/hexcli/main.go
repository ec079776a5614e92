/*
Command hexcli is an interactive inspector for HEX bitmap fonts.

Usage:

	hexcli [-trace level] [-font name-or-file] [-env file]

Commands are entered at the prompt; multiple commands may be given on one
line, separated by spaces. Arguments follow a command name, separated by ':'.

	info                  show the current font
	glyph:<cp>            draw the glyph for codepoint cp
	name:<cp>             show the Unicode name of cp
	png:<cp>:<file>       export the glyph for cp as PNG
	sheet:<file>          export all glyphs of the font as a PNG sheet
	ramp                  show the luminosity ramp
	help                  show this overview
	quit                  leave the REPL (or <ctrl>D)

Configuration may be given in a .env file with keys HEXGLYPH_TRACE and
HEXGLYPH_FONT_PATH.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/npillmayer/hexglyph/core"
	"github.com/npillmayer/hexglyph/core/font"
	"github.com/npillmayer/hexglyph/core/font/fontregistry"
	"github.com/npillmayer/hexglyph/core/font/hexfont"
	"github.com/npillmayer/hexglyph/core/locate/resources"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

// tracer traces with key 'hexglyph.cli'
func tracer() tracing.Trace {
	return tracing.Select("hexglyph.cli")
}

// pixel enlargement for PNG export
const pngScale = 4

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load, by name or file path")
	envfile := flag.String("env", ".env", "File with environment settings")
	flag.Parse()

	// configuration from environment
	if err := godotenv.Load(*envfile); err != nil && *envfile != ".env" {
		pterm.Error.Printfln("cannot read environment file %s", *envfile)
		os.Exit(2)
	}
	if *tlevel == "" {
		if *tlevel = os.Getenv("HEXGLYPH_TRACE"); *tlevel == "" {
			*tlevel = "Error"
		}
	}

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.hexglyph.cli":       *tlevel,
		"trace.hexglyph.font":      *tlevel,
		"trace.hexglyph.resources": *tlevel,
		resources.FontPathKey:      os.Getenv("HEXGLYPH_FONT_PATH"),
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	gconf.Initialize(conf)
	pterm.Info.Println("Welcome to the HEX font inspector")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.New("hex > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		core.UserError(err)
		if intp.font == nil {
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                              // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font *hexfont.Font
	repl *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	defer intp.repl.Close()
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single command with its arguments.
type Op struct {
	code int
	args []string
}

// Command is a line of input.
type Command struct {
	ops []Op
}

const (
	QUIT int = iota
	HELP
	INFO
	GLYPH
	NAME
	PNG
	SHEET
	RAMP
)

var opcodes = map[string]int{
	"quit":  QUIT,
	"exit":  QUIT,
	"help":  HELP,
	"info":  INFO,
	"glyph": GLYPH,
	"name":  NAME,
	"png":   PNG,
	"sheet": SHEET,
	"ramp":  RAMP,
}

// argument count for each op
var arity = map[int]int{
	GLYPH: 1,
	NAME:  1,
	PNG:   2,
	SHEET: 1,
}

func parseCommand(line string) (*Command, error) {
	command := &Command{}
	for _, step := range strings.Fields(line) {
		c := strings.SplitN(step, ":", 3) // e.g.  "glyph:0041" or "png:0041:a.png"
		tracer().Debugf("parse command = %v", c)
		code, ok := opcodes[strings.ToLower(c[0])]
		if !ok {
			return nil, core.Error(core.EINVALID, "unknown command %q, try 'help'", c[0])
		}
		op := Op{code: code, args: c[1:]}
		if len(op.args) < arity[code] {
			return nil, core.Error(core.EINVALID, "command %q needs %d argument(s)", c[0], arity[code])
		}
		command.ops = append(command.ops, op)
	}
	return command, nil
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	for _, op := range cmd.ops {
		switch op.code {
		case QUIT:
			return true, nil
		case HELP:
			help()
		case INFO:
			intp.info()
		case GLYPH:
			cp, err := parseCodepoint(op.args[0])
			if err != nil {
				return false, err
			}
			bm, err := intp.font.Render(cp)
			if err != nil {
				return false, err
			}
			pterm.Printfln("U+%04X %s, advance %d", cp, runenames.Name(cp), intp.font.Advance(cp))
			for _, line := range asciiGlyph(bm) {
				pterm.Println(colorize(line))
			}
		case NAME:
			cp, err := parseCodepoint(op.args[0])
			if err != nil {
				return false, err
			}
			g, inTable := intp.font.Glyph(cp)
			pterm.Printfln("U+%04X %s (in table: %v, has glyph: %v)", cp, runenames.Name(cp),
				inTable, g.Present())
		case PNG:
			cp, err := parseCodepoint(op.args[0])
			if err != nil {
				return false, err
			}
			if err = intp.writeFile(op.args[1], func(f *os.File) error {
				return writeGlyphPNG(f, intp.font, cp, pngScale)
			}); err != nil {
				return false, err
			}
			pterm.Success.Printfln("glyph U+%04X written to %s", cp, op.args[1])
		case SHEET:
			sheet := newGlyphSheet(32)
			n := intp.font.Register(sheet)
			if err := intp.writeFile(op.args[0], func(f *os.File) error {
				return sheet.WritePNG(f, pngScale)
			}); err != nil {
				return false, err
			}
			pterm.Success.Printfln("%d glyphs written to %s", n, op.args[0])
		case RAMP:
			if err := pterm.DefaultTable.WithHasHeader().WithData(rampRows()).Render(); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}

func (intp *Intp) info() {
	f := intp.font
	pterm.Printfln("font %s", f.Name)
	if f.NumChars() == 0 {
		pterm.Println("  no glyphs")
	} else {
		pterm.Printfln("  character table U+%04X … U+%04X (%d entries)", f.FirstChar(), f.LastChar(),
			f.NumChars())
	}
	pterm.Printfln("  %d glyph bitmaps, line height %d", f.Database().Len(), f.Height())
	pterm.Printfln("  registered fonts: %v", fontregistry.GlobalRegistry().Names())
	pterm.Printfln("  packaged fonts: %v", font.PackagedFontNames())
}

func (intp *Intp) writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot create file %s", name)
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// loadFont loads a font by file path, or resolves it by name. Without a name
// the fallback font is used. If resolving fails, intp.font is set to the
// fallback font and an error is returned.
func (intp *Intp) loadFont(fontname string) (err error) {
	if fontname == "" {
		intp.font = font.FallbackFont()
	} else if info, statErr := os.Stat(fontname); statErr == nil && !info.IsDir() {
		if intp.font, err = font.LoadHexFontFile(fontname); err != nil {
			return err
		}
		fontregistry.GlobalRegistry().StoreFont(intp.font)
	} else {
		intp.font, err = resources.ResolveFont(fontname).Font()
	}
	if intp.font != nil {
		tracer().Infof("using font %s", intp.font.Name)
		pterm.Info.Printfln("using font %s with %d glyphs", intp.font.Name, intp.font.Database().Len())
	}
	return
}

// colorize renders shadow pixels of an ASCII glyph in gray.
func colorize(line string) string {
	var sb strings.Builder
	for _, c := range line {
		switch c {
		case '#':
			sb.WriteString(pterm.FgLightWhite.Sprint("█"))
		case '+':
			sb.WriteString(pterm.FgGray.Sprint("░"))
		default:
			sb.WriteString(pterm.FgDarkGray.Sprint("·"))
		}
	}
	return sb.String()
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	info                  show the current font
	glyph:<cp>            draw the glyph for codepoint cp, e.g. glyph:0041 or glyph:'A'
	name:<cp>             show the Unicode name of cp
	png:<cp>:<file>       export the glyph for cp as PNG
	sheet:<file>          export all glyphs of the font as a PNG sheet
	ramp                  show the luminosity ramp
	quit                  leave the REPL
	`)
}
