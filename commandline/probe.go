// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"hlbsp/bsp"
	"hlbsp/cvars"
	"hlbsp/rand"
)

var (
	probeCount int
	probeSeed  uint32
	probeHull  int
)

// ProbeResult sums up random traces through the world.
type ProbeResult struct {
	Traces     int
	Hits       int
	StartSolid int
	AllSolid   int
	// Stuck counts traces starting in the open but ending inside a solid.
	Stuck    int
	Contents map[bsp.Contents]int
}

// probe fires n traces between random points of the world bounds.
func probe(m *bsp.Map, hull int, n int, seed uint32) (ProbeResult, error) {
	r := ProbeResult{Contents: make(map[bsp.Contents]int)}
	h, err := m.Hull(0, hull)
	if err != nil {
		return r, err
	}
	w := &m.Models[0]
	g := rand.New(seed)
	for i := 0; i < n; i++ {
		start := g.InBox(w.Mins, w.Maxs)
		end := g.InBox(w.Mins, w.Maxs)
		c := h.PointContents(h.Root, start)
		r.Contents[c]++
		t := h.Trace(start, end)
		r.Traces++
		if t.Hit {
			r.Hits++
		}
		if t.StartSolid {
			r.StartSolid++
		}
		if t.AllSolid {
			r.AllSolid++
		}
		if c != bsp.ContentsSolid {
			if h.PointContents(h.Root, h.TraceLine(start, end)) == bsp.ContentsSolid {
				r.Stuck++
			}
		}
	}
	return r, nil
}

var probeCmd = &cobra.Command{
	Use:   "probe <map>",
	Short: "Trace between random points of the world",
	Long: `Fires traces between random points inside the world bounds and
prints how many hit a plane, started or stayed in a solid, and the
contents found at the start points. The same seed repeats a run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		hull := int(cvars.TraceHull.Value())
		if cmd.Flags().Changed("hull") {
			hull = probeHull
		}
		r, err := probe(m, hull, probeCount, probeSeed)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "traces %d hits %d startsolid %d allsolid %d stuck %d\n",
			r.Traces, r.Hits, r.StartSolid, r.AllSolid, r.Stuck)
		cs := make([]bsp.Contents, 0, len(r.Contents))
		for c := range r.Contents {
			cs = append(cs, c)
		}
		sort.Slice(cs, func(i, j int) bool { return cs[i] > cs[j] })
		for _, c := range cs {
			fmt.Fprintf(w, "  %-12v %d\n", c, r.Contents[c])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVarP(&probeCount, "count", "n", 1000, "number of traces")
	probeCmd.Flags().Uint32Var(&probeSeed, "seed", 1, "random seed")
	probeCmd.Flags().IntVar(&probeHull, "hull", 0, "clip hull 0-3 (trace_hull)")
}
