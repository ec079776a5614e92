/*
Package fontregistry manages a registry for loaded HEX fonts.

Fonts are registered and unregistered explicitly by the application. Lookups
for fonts not present in the registry resolve to a fallback font, which is
packaged with this module.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'hexglyph.font'
func tracer() tracing.Trace {
	return tracing.Select("hexglyph.font")
}
