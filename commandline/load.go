// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hlbsp/bsp"
	"hlbsp/conlog"
	"hlbsp/filesystem"
	"hlbsp/math/vec"
)

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// loadMap reads name through the filesystem. A bare map name like c1a0 is
// looked up as maps/c1a0.bsp.
func loadMap(name string) (*bsp.Map, error) {
	if filesystem.Ext(name) == "" {
		name = "maps/" + name + ".bsp"
	}
	data, err := filesystem.ReadFile(name)
	if err != nil {
		return nil, err
	}
	m, err := bsp.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	conlog.DPrintf("loaded %s (%d bytes)", name, len(data))
	return m, nil
}

func parseVec(args []string) (vec.Vec3, error) {
	var v vec.Vec3
	if len(args) != 3 {
		return v, errors.Errorf("expected 3 coordinates, got %d", len(args))
	}
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return v, errors.Wrapf(err, "coordinate %d", i)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// mapAndPoint is the common "<map> x y z" argument list.
func mapAndPoint(args []string) (*bsp.Map, vec.Vec3, error) {
	p, err := parseVec(args[1:])
	if err != nil {
		return nil, p, err
	}
	m, err := loadMap(args[0])
	return m, p, err
}

func fmtVec(v vec.Vec3) string {
	return strconv.FormatFloat(float64(v[0]), 'g', -1, 32) + " " +
		strconv.FormatFloat(float64(v[1]), 'g', -1, 32) + " " +
		strconv.FormatFloat(float64(v[2]), 'g', -1, 32)
}

func modelRoot(m *bsp.Map, model int) (int, error) {
	if model < 0 || model >= len(m.Models) {
		return 0, errors.Wrapf(bsp.ErrNoSuchModel, "model %d of %d", model, len(m.Models))
	}
	root := int(m.Models[model].HeadNodes[0])
	if root < 0 || root >= len(m.Nodes) {
		return 0, errors.Errorf("model %d has no render nodes", model)
	}
	return root, nil
}

var pointArgs = cobra.ExactArgs(4)
