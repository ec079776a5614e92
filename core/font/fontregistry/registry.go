package fontregistry

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/hexglyph/core"
	"github.com/npillmayer/hexglyph/core/font"
	"github.com/npillmayer/hexglyph/core/font/hexfont"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding the HEX fonts loaded by an application.
type Registry struct {
	sync.Mutex
	fonts *treemap.Map // normalized name → *hexfont.Font, ordered by name
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts: treemap.NewWithStringComparator(),
	}
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using its normalized name as a key. If this
// key is already associated with a font, that font will not be overridden;
// StoreFont then returns false.
func (fr *Registry) StoreFont(f *hexfont.Font) bool {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return false
	}
	name := font.NormalizeFontname(f.Name)
	fr.Lock()
	defer fr.Unlock()
	if _, found := fr.fonts.Get(name); found {
		tracer().Debugf("registry already contains font %s", name)
		return false
	}
	tracer().Debugf("registry stores font %s as %s", f.Name, name)
	fr.fonts.Put(name, f)
	return true
}

// Unregister removes the font stored under name. It returns the removed font,
// or nil if there was none.
func (fr *Registry) Unregister(name string) *hexfont.Font {
	name = font.NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	v, found := fr.fonts.Get(name)
	if !found {
		return nil
	}
	fr.fonts.Remove(name)
	tracer().Debugf("registry removed font %s", name)
	return v.(*hexfont.Font)
}

// Contains is a predicate: is a font stored under name?
func (fr *Registry) Contains(name string) bool {
	fr.Lock()
	defer fr.Unlock()
	_, found := fr.fonts.Get(font.NormalizeFontname(name))
	return found
}

// Font returns the font stored under name.
//
// If no such font is registered, Font will return the fallback font, together
// with an error.
func (fr *Registry) Font(name string) (*hexfont.Font, error) {
	fname := font.NormalizeFontname(name)
	tracer().Debugf("registry searches for font %s", fname)
	fr.Lock()
	defer fr.Unlock()
	if f, found := fr.fonts.Get(fname); found {
		return f.(*hexfont.Font), nil
	}
	tracer().Infof("registry does not contain font %s", fname)
	err := core.Error(core.EMISSING, "font %s not found in registry", name)
	if f, found := fr.fonts.Get(font.FallbackFontName); found {
		return f.(*hexfont.Font), err
	}
	f := font.FallbackFont()
	tracer().Infof("font registry caches fallback font %s", font.FallbackFontName)
	fr.fonts.Put(font.FallbackFontName, f)
	return f, err
}

// Names returns the names of all registered fonts in ascending order.
func (fr *Registry) Names() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, fr.fonts.Size())
	for _, k := range fr.fonts.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	fr.Lock()
	it := fr.fonts.Iterator()
	for it.Next() {
		f := it.Value().(*hexfont.Font)
		tracer().Infof("font [%s] = %s, %d glyphs", it.Key(), f.Name, f.Database().Len())
	}
	fr.Unlock()
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}
