/*
Package resources resolves HEX fonts for an application.

As font loading may be a time-consuming task, functions in this
package work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

Fonts are searched for in the global font registry, then among the fonts
packaged with this module, and finally in the locations listed by the
configuration key "hexfont-path".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'hexglyph.resources'.
func tracer() tracing.Trace {
	return tracing.Select("hexglyph.resources")
}
