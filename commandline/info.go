// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hlbsp/bsp"
	"hlbsp/cvar"
	"hlbsp/maps"
)

var infoCmd = &cobra.Command{
	Use:   "info <map>",
	Short: "Print lumps, record counts and textures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Version: %d\n", m.Version)
		if ws, ok := m.WorldSpawn(); ok {
			if msg, ok := ws.Property("message"); ok {
				fmt.Fprintf(w, "Title: %s\n", msg)
			}
		}
		if c, ok := maps.ChapterOf(args[0]); ok {
			fmt.Fprintf(w, "Chapter: %s\n", c)
		}
		fmt.Fprintf(w, "Checksum: %08x\n", m.Checksum)
		fmt.Fprintf(w, "Load ID: %v\n", m.LoadID)
		fmt.Fprintln(w, "Lumps:")
		for l := bsp.Lump(0); l < bsp.NumLumps; l++ {
			ofs, length := m.LumpInfo(l)
			fmt.Fprintf(w, "  %-14s %8.1f kB @ %8d ofs\n", l, float64(length)/1024, ofs)
		}
		s := m.Stats()
		fmt.Fprintln(w, "Records:")
		for _, c := range []struct {
			name string
			n    int
		}{
			{"entities", s.Entities},
			{"planes", s.Planes},
			{"textures", s.Textures},
			{"vertices", s.Vertices},
			{"nodes", s.Nodes},
			{"texinfos", s.TexInfos},
			{"faces", s.Faces},
			{"clipnodes", s.ClipNodes},
			{"leaves", s.Leaves},
			{"marksurfaces", s.MarkSurfaces},
			{"edges", s.Edges},
			{"surfedges", s.SurfEdges},
			{"models", s.Models},
			{"lighting bytes", s.LightingBytes},
			{"visibility bytes", s.VisibilityBytes},
		} {
			fmt.Fprintf(w, "  %-16s %d\n", c.name, c.n)
		}
		fmt.Fprintln(w, "Textures:")
		for i, t := range m.MipTextures {
			where := "external"
			if t.Embedded() {
				where = "embedded"
			}
			fmt.Fprintf(w, "  %3d %-16s %4dx%-4d %s\n", i, t.Name, t.Width, t.Height, where)
		}
		if wads := m.WadFiles(); len(wads) > 0 {
			fmt.Fprintf(w, "WADs: %s\n", strings.Join(wads, " "))
		}
		return nil
	},
}

var cvarsCmd = &cobra.Command{
	Use:   "cvars",
	Short: "List all cvars with their current values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cvar.List(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(cvarsCmd)
}
