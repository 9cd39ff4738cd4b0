// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadYAML reads a mapping of cvar name to scalar value and applies it.
//
//	developer: 1
//	trace_maxslides: 8
//	wad_path: [halflife.wad, decals.wad]
//
// Sequences are joined with ';' which is the separator wad_path expects.
func LoadYAML(r io.Reader) error {
	var values map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, "cvar config")
	}
	for name, n := range values {
		v, err := scalar(&n)
		if err != nil {
			return errors.Wrapf(err, "cvar config: %s", name)
		}
		Set(name, v)
	}
	return nil
}

func scalar(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		s := ""
		for i, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("line %d: nested values are not supported", c.Line)
			}
			if i > 0 {
				s += ";"
			}
			s += c.Value
		}
		return s, nil
	}
	return "", fmt.Errorf("line %d: expected a scalar", n.Line)
}
