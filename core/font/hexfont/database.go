package hexfont

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/npillmayer/hexglyph/core"
)

// Font geometry shared by all HEX fonts.
const (
	GlyphHeight   = 16          // scanlines per glyph
	FontHeight    = GlyphHeight // line height in pixels
	SpaceWidth    = 9           // advance for codepoints without a glyph
	CellWidth     = 9           // pixel columns per bitmap byte, including room for the shadow
	GlobalKerning = 0           // HEX fonts are not kerned
	MaxCodepoint  = 0xffff      // HEX fonts cover the Basic Multilingual Plane only
)

// emptyGlyph is the bitmap of an all-blank 8×16 glyph. Entries with this
// bitmap are not stored.
const emptyGlyph = "00000000000000000000000000000000"

// maxRunLength is the largest byte count which fits the run's length prefix.
const maxRunLength = math.MaxUint8

// Offset is a position in a Database's glyph arena. Offset 0 never starts
// a glyph run and denotes "no glyph".
type Offset uint32

// GlyphRun describes the stored bitmap of a glyph. The arena holds the run as
// a length byte followed by ByteCount bitmap bytes, starting at Offset.
type GlyphRun struct {
	Offset      Offset
	ByteCount   int // number of bitmap bytes
	SourceWidth int // bitmap bytes per scanline
}

// Database holds the glyph bitmaps of a HEX font.
//
// A Database is filled by Parse and must not be parsed into while other
// goroutines render from it.
type Database struct {
	arena  []byte
	glyphs map[rune]GlyphRun
	first  rune
	last   rune
}

// NewDatabase creates an empty glyph database.
func NewDatabase() *Database {
	return &Database{
		arena:  []byte{0}, // index 0 is reserved for 'not present'
		glyphs: make(map[rune]GlyphRun),
		first:  math.MaxInt32,
		last:   math.MinInt32,
	}
}

// StreamError is reported by Parse if the input ends prematurely or lacks
// the ':' separator between codepoint and bitmap.
type StreamError struct {
	Entry    int    // number of the entry in the input, starting at 1
	Token    string // offending token, empty at end of input
	Expected string
}

var _ core.AppError = (*StreamError)(nil)

func (e *StreamError) Error() string {
	return fmt.Sprintf("[%d] %s", e.ErrorCode(), e.UserMessage())
}

// ErrorCode returns core.EINVALID.
func (e *StreamError) ErrorCode() int {
	return core.EINVALID
}

// UserMessage describes the location of the error.
func (e *StreamError) UserMessage() string {
	if e.Token == "" {
		return fmt.Sprintf("HEX font entry #%d: unexpected end of input, expected %s", e.Entry, e.Expected)
	}
	return fmt.Sprintf("HEX font entry #%d: expected %s, found %q", e.Entry, e.Expected, e.Token)
}

// Parse reads glyph definitions from r and adds them to the database.
//
// Codepoints and bitmaps are parsed leniently: parsing of a number stops at the
// first character which is not a hex digit. Codepoints beyond MaxCodepoint are
// ignored, as are blank 8×16 glyphs. A missing separator or an entry cut short
// by the end of input aborts parsing with a *StreamError.
func (db *Database) Parse(r io.Reader) error {
	sc := newTokenScanner(r)
	next := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}
	entry := 0
	for {
		cp, ok := next()
		if !ok {
			break
		}
		entry++
		sep, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return core.WrapError(err, core.EINTERNAL, "reading HEX font")
			}
			return &StreamError{Entry: entry, Expected: "':'"}
		}
		if sep != ":" {
			return &StreamError{Entry: entry, Token: sep, Expected: "':'"}
		}
		bits, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return core.WrapError(err, core.EINTERNAL, "reading HEX font")
			}
			return &StreamError{Entry: entry, Expected: "glyph bitmap"}
		}
		if bits == ":" {
			return &StreamError{Entry: entry, Token: bits, Expected: "glyph bitmap"}
		}
		db.store(parseHex(cp), bits)
	}
	if err := sc.Err(); err != nil {
		return core.WrapError(err, core.EINTERNAL, "reading HEX font")
	}
	tracer().Infof("HEX font database holds %d glyphs in %d bytes", len(db.glyphs), len(db.arena))
	return nil
}

// store appends the bitmap bits for codepoint cp to the arena.
func (db *Database) store(cp uint64, bits string) {
	if cp > MaxCodepoint {
		tracer().Debugf("ignoring glyph for codepoint %#x beyond %#x", cp, MaxCodepoint)
		return
	}
	if bits == emptyGlyph {
		return
	}
	count := len(bits) / 2
	if count > maxRunLength {
		tracer().Errorf("glyph U+%04X has %d bitmap bytes, maximum is %d; ignored", cp, count, maxRunLength)
		return
	}
	offset := Offset(len(db.arena))
	db.arena = append(db.arena, byte(count))
	for i := 0; i+1 < len(bits); i += 2 {
		db.arena = append(db.arena, byte(parseHex(bits[i:i+2])))
	}
	r := rune(cp)
	if prev, ok := db.glyphs[r]; ok {
		tracer().Debugf("glyph U+%04X redefined, dropping run at %d", cp, prev.Offset)
	}
	db.glyphs[r] = GlyphRun{
		Offset:      offset,
		ByteCount:   count,
		SourceWidth: sourceWidth(count),
	}
	if r < db.first {
		db.first = r
	}
	if r > db.last {
		db.last = r
	}
}

// sourceWidth is the number of bitmap bytes per scanline of a run with count
// bytes. Runs too short for a single column of bytes count as one byte wide,
// the width of the blank bitmap substituted when rendering them.
func sourceWidth(count int) int {
	if w := count / GlyphHeight; w > 0 {
		return w
	}
	return 1
}

// FirstChar is the smallest codepoint with a stored glyph. For an empty
// database FirstChar is greater than LastChar.
func (db *Database) FirstChar() rune {
	return db.first
}

// LastChar is the largest codepoint with a stored glyph.
func (db *Database) LastChar() rune {
	return db.last
}

// Empty is true if no glyph has been stored.
func (db *Database) Empty() bool {
	return db.first > db.last
}

// Len returns the number of codepoints with a stored glyph.
func (db *Database) Len() int {
	return len(db.glyphs)
}

// Lookup returns the arena offset of the glyph for cp, or 0 if there is none.
func (db *Database) Lookup(cp rune) Offset {
	return db.glyphs[cp].Offset
}

// Run returns the glyph run header for cp.
func (db *Database) Run(cp rune) (GlyphRun, bool) {
	run, ok := db.glyphs[cp]
	return run, ok
}

// Codepoints returns all codepoints with a stored glyph in ascending order.
func (db *Database) Codepoints() []rune {
	cps := make([]rune, 0, len(db.glyphs))
	for cp := range db.glyphs {
		cps = append(cps, cp)
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })
	return cps
}

// Arena returns a read-only view of the glyph byte arena. Byte 0 is the
// sentinel for absent glyphs; every run starts with its length byte.
func (db *Database) Arena() []byte {
	return db.arena[:len(db.arena):len(db.arena)]
}

// ByteCount reads the length prefix of the glyph run starting at off.
func (db *Database) ByteCount(off Offset) (int, error) {
	if off == 0 || int(off) >= len(db.arena) {
		return 0, core.Error(core.EMISSING, "no glyph run at arena offset %d", off)
	}
	return int(db.arena[off]), nil
}

// runBytes returns the bitmap bytes of the run starting at off.
func (db *Database) runBytes(off Offset, count int) ([]byte, bool) {
	start := int(off) + 1
	end := start + count
	if off == 0 || end > len(db.arena) {
		return nil, false
	}
	return db.arena[start:end:end], true
}
