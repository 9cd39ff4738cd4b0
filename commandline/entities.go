// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"hlbsp/bsp"
)

var entitiesFormat string

var entitiesCmd = &cobra.Command{
	Use:   "entities <map>",
	Short: "Print the entity lump",
	Long: `Prints the entities of a map. The text format matches the entity
lump, json prints a list of objects of the key value pairs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(args[0])
		if err != nil {
			return err
		}
		switch entitiesFormat {
		case "text":
			return writeEntities(cmd.OutOrStdout(), m.Entities)
		case "json":
			b, err := entitiesJSON(m.Entities)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		}
		return errors.Errorf("unknown format %q", entitiesFormat)
	},
}

func writeEntities(w io.Writer, ents []*bsp.Entity) error {
	for _, e := range ents {
		if _, err := fmt.Fprintln(w, "{"); err != nil {
			return err
		}
		for _, k := range e.PropertyNames() {
			v, _ := e.Property(k)
			fmt.Fprintf(w, "%q %q\n", k, v)
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}
	return nil
}

// entitiesJSON keeps all values as strings, the entity lump has no types.
func entitiesJSON(ents []*bsp.Entity) ([]byte, error) {
	list := &structpb.ListValue{}
	for _, e := range ents {
		s := &structpb.Struct{Fields: make(map[string]*structpb.Value)}
		for _, k := range e.PropertyNames() {
			v, _ := e.Property(k)
			s.Fields[k] = structpb.NewStringValue(v)
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(list)
	if err != nil {
		return nil, errors.Wrap(err, "entities")
	}
	return b, nil
}

func init() {
	rootCmd.AddCommand(entitiesCmd)
	entitiesCmd.Flags().StringVarP(&entitiesFormat, "format", "f", "text", "output format (text/json)")
}
