// SPDX-License-Identifier: GPL-2.0-or-later

package maps

import (
	"strings"
)

type Chapter struct {
	// Prefix of the map names belonging to the chapter.
	Prefix string
	Name   string
}

// Chapters of the Half-Life campaign. Longer prefixes come first.
var Chapters = []Chapter{
	{"c2a4d", "Questionable Ethics"},
	{"c2a4e", "Questionable Ethics"},
	{"c2a4f", "Questionable Ethics"},
	{"c2a4g", "Questionable Ethics"},
	{"c4a1a", "Interloper"},
	{"c4a1b", "Interloper"},
	{"c4a1c", "Interloper"},
	{"c4a1d", "Interloper"},
	{"c4a1e", "Interloper"},
	{"c4a1f", "Interloper"},
	{"t0a0", "Hazard Course"},
	{"c0a0", "Black Mesa Inbound"},
	{"c1a0", "Anomalous Materials"},
	{"c1a1", "Unforeseen Consequences"},
	{"c1a2", "Office Complex"},
	{"c1a3", "We've Got Hostiles"},
	{"c1a4", "Blast Pit"},
	{"c2a1", "Power Up"},
	{"c2a2", "On A Rail"},
	{"c2a3", "Apprehension"},
	{"c2a4", "Residue Processing"},
	{"c2a5", "Surface Tension"},
	{"c3a1", "Forget About Freeman!"},
	{"c3a2", "Lambda Core"},
	{"c4a1", "Xen"},
	{"c4a2", "Gonarch's Lair"},
	{"c4a3", "Nihilanth"},
	{"c5a1", "Endgame"},
}

// ChapterOf finds the chapter of a map name like "maps/c1a0d.bsp".
func ChapterOf(name string) (string, bool) {
	name = strings.ToLower(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	for _, c := range Chapters {
		if strings.HasPrefix(name, c.Prefix) {
			return c.Name, true
		}
	}
	return "", false
}
