package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/hexglyph/core"
	"github.com/npillmayer/hexglyph/core/font"
	"github.com/npillmayer/hexglyph/core/font/fontregistry"
	"github.com/npillmayer/hexglyph/core/font/hexfont"
	"github.com/npillmayer/schuko/gconf"
)

// FontPathKey is the configuration key for a list of HEX font locations,
// separated by the OS-specific path list separator. Entries may be font files
// or directories containing files with extension ".hex".
const FontPathKey = "hexfont-path"

// NotFound returns an application error for a missing font.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "font not found: %s", name)
}

// --- Fonts -----------------------------------------------------------------

type fontPlusErr struct {
	font *hexfont.Font
	err  error
}

// FontPromise is returned by ResolveFont. Calling Font() blocks until the
// font has been loaded.
type FontPromise interface {
	Font() (*hexfont.Font, error)
	FontContext(ctx context.Context) (*hexfont.Font, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*hexfont.Font, error)
}

func (loader fontLoader) Font() (*hexfont.Font, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) FontContext(ctx context.Context) (*hexfont.Font, error) {
	return loader.await(ctx)
}

// ResolveFont resolves a HEX font by name. Fonts found outside of the global
// registry will be stored there.
//
// If the font cannot be found, the promise returns the fallback font together
// with an error of code core.EMISSING.
func ResolveFont(name string) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		defer close(ch)
		ch <- resolveFont(name)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*hexfont.Font, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func resolveFont(name string) (result fontPlusErr) {
	registry := fontregistry.GlobalRegistry()
	if registry.Contains(name) {
		result.font, result.err = registry.Font(name)
		return
	}
	var f *hexfont.Font
	var err error
	if f, err = font.PackagedFont(name); err == nil {
		tracer().Debugf("%s is a packaged font", name)
	} else if core.Code(err) != core.EMISSING {
		result.err = err
	} else if f, err = findFontInPath(name, gconf.GetString(FontPathKey)); err != nil {
		result.err = err
	}
	if f == nil {
		tracer().Infof("cannot resolve font %s, using fallback font", name)
		result.font, _ = registry.Font(name)
		if result.err == nil {
			result.err = NotFound(name)
		}
		return
	}
	if !registry.StoreFont(f) {
		tracer().Debugf("font %s has been registered concurrently", f.Name)
	}
	result.font, result.err = registry.Font(f.Name)
	return
}

// findFontInPath searches the entries of a path list for a HEX font file with
// a name matching fontname. It returns a nil font if no file matches.
func findFontInPath(fontname string, pathlist string) (*hexfont.Font, error) {
	fontname = font.NormalizeFontname(fontname)
	for _, entry := range filepath.SplitList(pathlist) {
		if entry = strings.TrimSpace(entry); entry == "" {
			continue
		}
		info, err := os.Stat(entry)
		if err != nil {
			tracer().Infof("ignoring font location %s: %v", entry, err)
			continue
		}
		if !info.IsDir() {
			if font.NormalizeFontname(entry) == fontname {
				return font.LoadHexFontFile(entry)
			}
			continue
		}
		files, err := filepath.Glob(filepath.Join(entry, "*.[hH][eE][xX]"))
		if err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "cannot scan font directory %s", entry)
		}
		for _, file := range files {
			if font.NormalizeFontname(file) == fontname {
				tracer().Debugf("found font %s as %s", fontname, file)
				return font.LoadHexFontFile(file)
			}
		}
	}
	return nil, nil
}
