// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hlbsp/bsp"
	"hlbsp/conlog"
	"hlbsp/cvars"
	"hlbsp/filesystem"
	"hlbsp/image"
	"hlbsp/texture"
	"hlbsp/wad"
)

var (
	exportDir    string
	exportFormat string
	exportWads   []string
)

// fileName maps texture names to something every filesystem accepts.
var fileName = strings.NewReplacer("*", "#", "/", "_", "\\", "_")

// wadNames lists the archives to search: those of the map, wad_path and
// the command line, each once.
func wadNames(m *bsp.Map, extra []string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(n string) {
		n = strings.TrimSpace(n)
		if n == "" || seen[strings.ToLower(n)] {
			return
		}
		seen[strings.ToLower(n)] = true
		names = append(names, n)
	}
	for _, n := range m.WadFiles() {
		add(n)
	}
	for _, n := range strings.Split(cvars.WadPath.String(), ";") {
		add(n)
	}
	for _, n := range extra {
		add(n)
	}
	return names
}

func loadWads(tm *texture.Manager, names []string) {
	for _, n := range names {
		data, err := filesystem.ReadFile(n)
		if err != nil {
			conlog.Warnf("wad %s: %v", n, err)
			continue
		}
		w, err := wad.Parse(filesystem.Base(n), data)
		if err != nil {
			conlog.Warnf("%v", err)
			continue
		}
		tm.AddWad(w)
	}
}

// resolveTextures loads the archives before resolving so that WAD
// textures are found on the first lookup.
func resolveTextures(m *bsp.Map, extra []string) (*texture.Manager, []*texture.Handle) {
	tm := texture.NewManager()
	loadWads(tm, wadNames(m, extra))
	return tm, tm.Resolve(m)
}

func prepareExport() (image.Format, error) {
	f, err := image.ParseFormat(exportFormat)
	if err != nil {
		return f, err
	}
	if exportDir == "" {
		return f, errors.New("--out is required")
	}
	return f, os.MkdirAll(exportDir, 0o755)
}

var texturesCmd = &cobra.Command{
	Use:   "textures <map>",
	Short: "Export the textures used by a map",
	Long: `Decodes the textures of a map, embedded ones from the map itself,
the others from the WAD files named in worldspawn, wad_path and --wad.
Textures found nowhere are exported as a white placeholder and listed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := prepareExport()
		if err != nil {
			return err
		}
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		tm, handles := resolveTextures(m, exportWads)

		w := cmd.OutOrStdout()
		written := make(map[string]bool)
		for i := range handles {
			h, _ := tm.Handle(i)
			name := h.Name
			if name == "" {
				name = fmt.Sprintf("texture%d", i)
			}
			name = fileName.Replace(strings.ToLower(name))
			if written[name] {
				continue
			}
			written[name] = true
			if err := image.Write(filepath.Join(exportDir, name+f.Ext()), h.Image); err != nil {
				return err
			}
			fmt.Fprintf(w, "%-16s %4dx%-4d %s %s\n", name, h.Width, h.Height, h.Source, h.Wad)
		}
		if missing := tm.Missing(); len(missing) > 0 {
			fmt.Fprintf(w, "missing: %s\n", strings.Join(missing, " "))
		}
		return nil
	},
}

var lightmapsCmd = &cobra.Command{
	Use:   "lightmaps <map>",
	Short: "Export the lightmap of every lit face",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := prepareExport()
		if err != nil {
			return err
		}
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		n := 0
		for i := range m.Faces {
			lm := m.LightmapCoords(i)
			data := m.LightmapSamples(i)
			if data == nil {
				continue
			}
			img, err := image.FromRGB(data, lm.Width, lm.Height)
			if err != nil {
				return errors.Wrapf(err, "face %d", i)
			}
			if err := image.Write(filepath.Join(exportDir, fmt.Sprintf("face%d%s", i, f.Ext())), img); err != nil {
				return err
			}
			n++
		}
		conlog.Printf("%d lightmaps written\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(texturesCmd)
	rootCmd.AddCommand(lightmapsCmd)
	for _, c := range []*cobra.Command{texturesCmd, lightmapsCmd} {
		c.Flags().StringVarP(&exportDir, "out", "o", "", "output directory")
		c.Flags().StringVarP(&exportFormat, "format", "f", "tga", "image format (tga/qoi/png)")
	}
	texturesCmd.Flags().StringArrayVarP(&exportWads, "wad", "w", nil, "additional wad file")
}
