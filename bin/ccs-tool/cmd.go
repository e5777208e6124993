// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"strings"

	"github.com/linuxdeepin/dde-compizconfig/backends/ini"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/dde-compizconfig/metadata"
	"github.com/linuxdeepin/go-lib/log"
	"github.com/spf13/cobra"
)

var logger = log.NewLogger("compizconfig/ccs-tool")

var (
	metaDir    string
	profileDir string
	profile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "ccs-tool",
	Short:        "Inspect and edit compiz settings profiles",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		pri := log.LevelWarning
		if verbose {
			pri = log.LevelDebug
		}
		logger.SetLogLevel(pri)
		ccs.SetLogLevel(pri)
		ini.SetLogLevel(pri)
		metadata.SetLogLevel(pri)
	},
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List known plugins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(false, func(ctx *ccs.Context) error {
			for _, p := range ccs.PluginListOps.ToSlice(ctx.Plugins()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Name(), p.ShortDesc())
			}
			return nil
		})
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings <plugin>",
	Short: "List the settings of a plugin with their values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(true, func(ctx *ccs.Context) error {
			p := ctx.FindPlugin(args[0])
			if p == nil {
				return fmt.Errorf("%s: %w", args[0], ccs.ErrPluginNotFound)
			}
			for _, s := range ccs.SettingListOps.ToSlice(p.Settings()) {
				if s.Type() == ccs.TypeAction {
					continue
				}
				text, err := settingText(s)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Name(), s.Type(), text)
			}
			return nil
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get <plugin> <setting>",
	Short: "Print the value of a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(true, func(ctx *ccs.Context) error {
			s, err := ctx.FindSetting(args[0], args[1])
			if err != nil {
				return err
			}
			text, err := settingText(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set <plugin> <setting> <value>",
	Short: "Change a setting and save the profile",
	Long:  "Change a setting and save the profile. List items are separated by commas.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(true, func(ctx *ccs.Context) error {
			s, err := ctx.FindSetting(args[0], args[1])
			if err != nil {
				return err
			}
			if s.IsReadOnly() {
				return fmt.Errorf("%s/%s is read-only", args[0], args[1])
			}
			v, err := parseText(s, args[2])
			if err != nil {
				return err
			}
			if s.SetValue(ccs.NewSettingValue(v), true) == ccs.SetFailed {
				return fmt.Errorf("%q rejected by %s/%s", args[2], args[0], args[1])
			}
			return ctx.WriteChangedSettings()
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <plugin> <setting>",
	Short: "Restore the default of a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(true, func(ctx *ccs.Context) error {
			s, err := ctx.FindSetting(args[0], args[1])
			if err != nil {
				return err
			}
			s.ResetToDefault(true)
			return ctx.WriteChangedSettings()
		})
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(false, func(ctx *ccs.Context) error {
			profiles, err := ctx.ExistingProfiles()
			if err != nil {
				return err
			}
			for _, name := range profiles {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <profile>",
	Short: "Remove a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContext(false, func(ctx *ccs.Context) error {
			return ctx.DeleteProfile(args[0])
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&metaDir, "meta", metadata.DefaultDir, "directory of the plugin descriptions")
	flags.StringVar(&profileDir, "dir", "", "directory of the profiles")
	flags.StringVarP(&profile, "profile", "p", ccs.DefaultProfile, "profile to work on")
	flags.BoolVarP(&verbose, "verbose", "v", false, "show debug messages")

	rootCmd.AddCommand(pluginsCmd, settingsCmd, getCmd, setCmd, resetCmd, profilesCmd, deleteProfileCmd)
}

// withContext loads the plugins and the profile backend, then calls fn. The
// profile is read first when read is true.
func withContext(read bool, fn func(ctx *ccs.Context) error) error {
	ccs.RegisterBackend(ini.NewBackend(ini.Name, profileDir))

	ctx := ccs.NewContext(0)
	_, err := metadata.LoadDir(ctx, metaDir)
	if err != nil {
		return err
	}
	ctx.SetProfile(profile)
	err = ctx.SetBackend(ini.Name)
	if err != nil {
		return err
	}
	defer ctx.Close()

	if read {
		err = ctx.ReadSettings()
		if err != nil {
			return err
		}
		ctx.ClearChangedSettings()
	}
	return fn(ctx)
}

func settingText(s *ccs.Setting) (string, error) {
	v := s.Value().Value()
	if list, ok := v.(ccs.ListValue); ok {
		items, err := ccs.ValueListToStrings(list.List)
		if err != nil {
			return "", err
		}
		return strings.Join(items, ","), nil
	}
	return ccs.ValueToString(v)
}

func parseText(s *ccs.Setting, text string) (ccs.Value, error) {
	if s.Type() != ccs.TypeList {
		return ccs.ParseValue(s.Type(), text)
	}
	var items []string
	if text != "" {
		items = strings.Split(text, ",")
	}
	list, err := ccs.ParseValueList(s.Info().List.ListType, items, s)
	if err != nil {
		return nil, err
	}
	return ccs.ListValue{List: list}, nil
}
