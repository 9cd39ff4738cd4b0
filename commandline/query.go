// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"fmt"

	"github.com/spf13/cobra"

	"hlbsp/cvars"
)

var leafCmd = &cobra.Command{
	Use:   "leaf <map> x y z",
	Short: "Find the leaf containing a point",
	Args:  pointArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, p, err := mapAndPoint(args)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if l, ok := m.LocateLeaf(p); ok {
			leaf := &m.Leaves[l]
			var faces []int
			m.LeafFaces(l, func(f int) { faces = append(faces, f) })
			fmt.Fprintf(w, "leaf %d contents %v faces %v\n", l, leaf.Contents, faces)
			if _, err := m.LeafPVS(l); err != nil {
				fmt.Fprintf(w, "pvs: %v\n", err)
			}
		} else {
			fmt.Fprintln(w, "no leaf")
		}
		h, err := m.Hull(0, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "point contents %v\n", h.PointContents(h.Root, p))
		return nil
	},
}

var (
	orderFaces bool
	orderModel int
)

var orderCmd = &cobra.Command{
	Use:   "order <map> x y z",
	Short: "Print leaves or faces in back to front order",
	Long: `Prints the leaves of a model as seen from a camera position, farthest
first: at every split the side holding the camera comes last. With
--faces the draw list of the world and all brush entities is printed
instead.`,
	Args: pointArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, p, err := mapAndPoint(args)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if orderFaces {
			fmt.Fprintln(w, m.DrawList(p))
			return nil
		}
		root, err := modelRoot(m, orderModel)
		if err != nil {
			return err
		}
		var leaves []int
		m.RenderOrder(root, p, func(l int) { leaves = append(leaves, l) })
		fmt.Fprintln(w, leaves)
		return nil
	},
}

var (
	traceHull  int
	traceModel int
)

var traceCmd = &cobra.Command{
	Use:   "trace <map> x0 y0 z0 x1 y1 z1",
	Short: "Move a box through a clip hull",
	Long: `Sweeps from the start to the end point through a clip hull and
slides along the planes it hits, at most trace_maxslides times.
Hull 0 is a point, 1 a standing, 2 a large and 3 a crouching player.`,
	Args: cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseVec(args[1:4])
		if err != nil {
			return err
		}
		end, err := parseVec(args[4:7])
		if err != nil {
			return err
		}
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		hull := int(cvars.TraceHull.Value())
		if cmd.Flags().Changed("hull") {
			hull = traceHull
		}
		h, err := m.Hull(traceModel, hull)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		t := h.Trace(start, end)
		fmt.Fprintf(w, "fraction %v end %s\n", t.Fraction, fmtVec(t.EndPos))
		fmt.Fprintf(w, "allsolid %v startsolid %v inopen %v inwater %v\n", t.AllSolid, t.StartSolid, t.InOpen, t.InWater)
		if t.Hit {
			fmt.Fprintf(w, "plane %s dist %v\n", fmtVec(t.Plane.Normal), t.Plane.Distance)
		}
		fmt.Fprintf(w, "result %s\n", fmtVec(h.TraceLine(start, end)))
		return nil
	},
}

var lightCmd = &cobra.Command{
	Use:   "light <map> x y z",
	Short: "Sample the light of the floor below a point",
	Args:  pointArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, p, err := mapAndPoint(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "light %s\n", fmtVec(m.LightAt(p)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leafCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(lightCmd)
	orderCmd.Flags().BoolVar(&orderFaces, "faces", false, "print the face draw list")
	orderCmd.Flags().IntVarP(&orderModel, "model", "m", 0, "model to traverse")
	traceCmd.Flags().IntVar(&traceHull, "hull", 0, "clip hull 0-3 (trace_hull)")
	traceCmd.Flags().IntVarP(&traceModel, "model", "m", 0, "model to trace against")
}
