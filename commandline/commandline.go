// SPDX-License-Identifier: GPL-2.0-or-later

// Package commandline is the hlbsp command tree.
package commandline

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hlbsp/conlog"
	"hlbsp/cvar"
	"hlbsp/cvars"
	"hlbsp/filesystem"
)

var (
	configFile string
	basedir    string
	game       string
	developer  bool
	sets       []string
)

var rootCmd = &cobra.Command{
	Use:   "hlbsp",
	Short: "Inspect Half-Life BSP v30 maps",
	Long: `hlbsp loads Half-Life maps and answers questions about them:
lump statistics, entities, leaves, render order, collision traces,
light samples, and texture or lightmap export.

Maps and WADs are looked up as plain paths first, then in the game
directories below --basedir and their pak files.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&configFile, "config", "c", "", "yaml file of cvar values")
	f.StringVar(&basedir, "basedir", "", "directory containing the game directories (fs_basedir)")
	f.StringVar(&game, "game", "", "mod directory searched before valve (fs_game)")
	f.BoolVarP(&developer, "developer", "d", false, "print debug output")
	f.StringArrayVarP(&sets, "set", "s", nil, "set a cvar, name=value")
}

// setup applies the config file first, flags override it.
func setup(cmd *cobra.Command) error {
	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return err
		}
		err = cvar.LoadYAML(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return errors.Errorf("--set %q: expected name=value", s)
		}
		cvar.Set(name, value)
	}
	flags := cmd.Flags()
	if flags.Changed("developer") {
		cvars.Developer.SetByString(fmt.Sprint(boolInt(developer)))
	}
	if flags.Changed("basedir") {
		cvars.FSBaseDir.SetByString(basedir)
	}
	if flags.Changed("game") {
		cvars.FSGame.SetByString(game)
	}
	conlog.SetOutput(cmd.ErrOrStderr())
	conlog.SetDeveloper(cvars.Developer.Bool())
	out := cmd.OutOrStdout()
	conlog.SetPrintf(func(format string, v ...any) {
		fmt.Fprintf(out, format, v...)
	})

	filesystem.UseBaseDir(cvars.FSBaseDir.String())
	filesystem.UseGameDir(cvars.FSGame.String())
	conlog.Logger().Debug("search path", "dirs", filesystem.SearchPath())
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
