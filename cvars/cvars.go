// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"hlbsp/cvar"
)

var (
	Developer      *cvar.Cvar
	FSBaseDir      *cvar.Cvar
	FSGame         *cvar.Cvar
	RDedupFaces    *cvar.Cvar
	RSkipSky       *cvar.Cvar
	TraceHull      *cvar.Cvar
	TraceMaxSlides *cvar.Cvar
	WadPath        *cvar.Cvar
)

func init() {
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	FSBaseDir = cvar.MustRegister("fs_basedir", ".", cvar.ARCHIVE)
	FSGame = cvar.MustRegister("fs_game", "valve", cvar.ARCHIVE)
	RDedupFaces = cvar.MustRegister("r_dedupfaces", "1", cvar.ARCHIVE)
	RSkipSky = cvar.MustRegister("r_skipsky", "0", cvar.ARCHIVE)
	TraceHull = cvar.MustRegister("trace_hull", "0", cvar.NONE)
	TraceMaxSlides = cvar.MustRegister("trace_maxslides", "4", cvar.ARCHIVE)
	WadPath = cvar.MustRegister("wad_path", "", cvar.ARCHIVE)
}
