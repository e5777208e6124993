// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package gnome

import (
	"fmt"
	"strings"

	"github.com/linuxdeepin/dde-compizconfig/ccs"
)

const (
	schemaWMPreferences = "org.gnome.desktop.wm.preferences"
	schemaWMKeybindings = "org.gnome.desktop.wm.keybindings"
	schemaTerminal      = "org.gnome.desktop.default-applications.terminal"
)

// SpecialOptionType tells how a native key maps onto its setting.
type SpecialOptionType int

const (
	// OptionInt and the other plain types copy the value unchanged.
	OptionInt SpecialOptionType = iota
	OptionBool
	OptionKey
	OptionString
	// OptionSpecial needs a conversion between the two stores.
	OptionSpecial
)

const (
	gnomeFocusMode             = "focus_mode"
	gnomeNumWorkspaces         = "num_workspaces"
	gnomeMouseButtonModifier   = "mouse_button_modifier"
	gnomeResizeWithRightButton = "resize_with_right_button"
	gnomeVisualBellType        = "visual_bell_type"
)

type integratedSettingEntry struct {
	pluginName  string
	settingName string
	schema      string
	gnomeName   string
	special     SpecialOptionType
	// nativeType is the type of the native value.
	nativeType ccs.SettingType
}

var integratedSettings = buildIntegratedSettings()

func plainEntry(plugin, setting, schema, gnomeName string, special SpecialOptionType) integratedSettingEntry {
	var t ccs.SettingType
	switch special {
	case OptionInt:
		t = ccs.TypeInt
	case OptionBool:
		t = ccs.TypeBool
	case OptionKey:
		t = ccs.TypeKey
	case OptionString:
		t = ccs.TypeString
	}
	return integratedSettingEntry{plugin, setting, schema, gnomeName, special, t}
}

func keyEntry(plugin, setting, gnomeName string) integratedSettingEntry {
	return plainEntry(plugin, setting, schemaWMKeybindings, gnomeName, OptionKey)
}

func buildIntegratedSettings() []integratedSettingEntry {
	entries := []integratedSettingEntry{
		plainEntry("core", "audible_bell", schemaWMPreferences, "audible_bell", OptionBool),
		plainEntry("core", "raise_on_click", schemaWMPreferences, "raise_on_click", OptionBool),
		plainEntry("core", "autoraise", schemaWMPreferences, "auto_raise", OptionBool),
		plainEntry("core", "autoraise_delay", schemaWMPreferences, "auto_raise_delay", OptionInt),
		plainEntry("fade", "visual_bell", schemaWMPreferences, "visual_bell", OptionBool),
		plainEntry("gnomecompat", "command_terminal", schemaTerminal, "exec", OptionString),

		{"core", "click_to_focus", schemaWMPreferences, gnomeFocusMode, OptionSpecial, ccs.TypeString},
		{"core", "hsize", schemaWMPreferences, gnomeNumWorkspaces, OptionSpecial, ccs.TypeInt},
		{"fade", "fullscreen_visual_bell", schemaWMPreferences, gnomeVisualBellType, OptionSpecial, ccs.TypeString},
		{"move", "initiate_button", schemaWMPreferences, gnomeMouseButtonModifier, OptionSpecial, ccs.TypeString},
		{"resize", "initiate_button", schemaWMPreferences, gnomeMouseButtonModifier, OptionSpecial, ccs.TypeString},
		{"core", "window_menu_button", schemaWMPreferences, gnomeMouseButtonModifier, OptionSpecial, ccs.TypeString},
		// shares the identity of resize/initiate_button, looked up by GNOME name
		{"resize", "initiate_button", schemaWMPreferences, gnomeResizeWithRightButton, OptionSpecial, ccs.TypeBool},

		keyEntry("core", "show_desktop_key", "show_desktop"),
		keyEntry("core", "window_menu_key", "activate_window_menu"),
		keyEntry("core", "minimize_window_key", "minimize"),
		keyEntry("core", "maximize_window_key", "maximize"),
		keyEntry("core", "unmaximize_window_key", "unmaximize"),
		keyEntry("core", "close_window_key", "close"),
		keyEntry("core", "toggle_window_maximized_key", "toggle_maximized"),
		keyEntry("core", "toggle_window_shaded_key", "toggle_shaded"),
		keyEntry("core", "toggle_window_maximized_vertically_key", "maximize_vertically"),
		keyEntry("core", "toggle_window_maximized_horizontally_key", "maximize_horizontally"),
		keyEntry("extrawm", "toggle_fullscreen_key", "toggle_fullscreen"),
		keyEntry("move", "initiate_key", "begin_move"),
		keyEntry("resize", "initiate_key", "begin_resize"),
		keyEntry("gnomecompat", "main_menu_key", "panel_main_menu"),
		keyEntry("gnomecompat", "run_key", "panel_run_dialog"),
		keyEntry("staticswitcher", "next_key", "switch_windows"),
		keyEntry("staticswitcher", "prev_key", "switch_windows_backward"),
		keyEntry("rotate", "rotate_left_key", "switch_to_workspace_left"),
		keyEntry("rotate", "rotate_right_key", "switch_to_workspace_right"),
		keyEntry("rotate", "rotate_left_window_key", "move_to_workspace_left"),
		keyEntry("rotate", "rotate_right_window_key", "move_to_workspace_right"),
	}
	for i := 1; i <= 12; i++ {
		entries = append(entries,
			keyEntry("rotate", fmt.Sprintf("rotate_to_%d_key", i), fmt.Sprintf("switch_to_workspace_%d", i)),
			keyEntry("put", fmt.Sprintf("put_viewport_%d_key", i), fmt.Sprintf("move_to_workspace_%d", i)))
	}
	return entries
}

// findEntries returns the table entries for an identity in table order.
func findEntries(pluginName, settingName string) []integratedSettingEntry {
	var result []integratedSettingEntry
	for _, e := range integratedSettings {
		if e.pluginName == pluginName && e.settingName == settingName {
			result = append(result, e)
		}
	}
	return result
}

// schemaKeyTypes maps the GSettings keys of schema to their GVariant type.
func schemaKeyTypes(schema string) map[string]string {
	types := make(map[string]string)
	for _, e := range integratedSettings {
		if e.schema == schema {
			types[translateKeyForGSettings(e.gnomeName)] = nativeSignature(e.nativeType)
		}
	}
	return types
}

func nativeSignature(t ccs.SettingType) string {
	switch t {
	case ccs.TypeInt:
		return "i"
	case ccs.TypeBool:
		return "b"
	case ccs.TypeString:
		return "s"
	case ccs.TypeKey:
		return "as"
	case ccs.TypeFloat:
		return "d"
	}
	return ""
}

// translateKeyForGSettings turns an old style name into a GSettings key.
func translateKeyForGSettings(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
