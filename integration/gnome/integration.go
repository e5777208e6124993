// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gnome integrates compiz settings with the GNOME window manager
// settings stored in GSettings.
package gnome

import (
	"sync"

	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("compizconfig/gnome")

func SetLogLevel(pri log.Priority) {
	logger.SetLogLevel(pri)
}

const (
	focusModeClick        = "click"
	focusModeSloppy       = "sloppy"
	visualBellFullscreen  = "fullscreen"
	visualBellFrameFlash  = "frame_flash"
	defaultButtonModifier = "<Alt>"
	buttonLeft            = 1
	buttonMiddle          = 2
	buttonRight           = 3
)

type nativeChange struct {
	schema string
	key    string
}

type wrapperSource interface {
	Wrappers() []GSettingsWrapper
}

// GNOMEIntegration keeps the integrated settings of a context in sync with
// GSettings. Change notifications may arrive on any goroutine; they are
// queued and applied by ProcessEvents.
type GNOMEIntegration struct {
	factory ccs.IntegratedSettingFactory
	storage ccs.IntegratedSettingsStorage

	writesDisallowed bool

	mu      sync.Mutex
	pending []nativeChange
}

// NewGNOMEIntegration fills storage with every mapped setting the factory
// can create and subscribes to changes of the opened schemas.
func NewGNOMEIntegration(factory ccs.IntegratedSettingFactory, storage ccs.IntegratedSettingsStorage) *GNOMEIntegration {
	g := &GNOMEIntegration{
		factory: factory,
		storage: storage,
	}
	for _, e := range integratedSettings {
		s := factory.CreateIntegratedSettingForCCSNameAndType(g, e.pluginName, e.settingName, e.nativeType)
		if s != nil {
			storage.AddSetting(s)
		}
	}

	if ws, ok := factory.(wrapperSource); ok {
		for _, w := range ws.Wrappers() {
			schema := w.SchemaName()
			w.ConnectChanged(func(key string) {
				g.queueChange(schema, key)
			})
		}
	}
	return g
}

func (g *GNOMEIntegration) Storage() ccs.IntegratedSettingsStorage {
	return g.storage
}

func (g *GNOMEIntegration) GetIntegratedOptionIndex(pluginName, settingName string) ccs.IntegratedSetting {
	found := g.storage.FindMatchingSettingsByPluginAndSettingName(pluginName, settingName)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func gnomeInfo(option ccs.IntegratedSetting) (GNOMEIntegratedSettingInfo, bool) {
	info, ok := option.(GNOMEIntegratedSettingInfo)
	return info, ok
}

func byGNOMEName(option ccs.IntegratedSetting, data interface{}) bool {
	info, ok := gnomeInfo(option)
	return ok && info.GNOMEName() == data.(string)
}

func (g *GNOMEIntegration) findByGNOMEName(name string) []ccs.IntegratedSetting {
	return g.storage.FindMatchingSettingsByPredicate(byGNOMEName, name)
}

// ReadOptionIntoSetting copies the native value of option into setting and
// reports whether a value was applied.
func (g *GNOMEIntegration) ReadOptionIntoSetting(ctx *ccs.Context, setting *ccs.Setting, option ccs.IntegratedSetting) bool {
	info, ok := gnomeInfo(option)
	if !ok {
		return false
	}

	switch info.SpecialOptionType() {
	case OptionInt, OptionBool, OptionString:
		v := option.ReadValue(option.Type())
		if v == nil {
			return false
		}
		return setting.SetValue(v, true) != ccs.SetFailed
	case OptionKey:
		v := option.ReadValue(ccs.TypeKey)
		str, ok := v.AsString()
		if !ok {
			return false
		}
		binding, err := ccs.StringToKeyBinding(str)
		if err != nil {
			logger.Warningf("bad binding %q of %s: %v", str, info.GNOMEName(), err)
			return false
		}
		return setting.SetKey(binding, true) != ccs.SetFailed
	}

	switch info.GNOMEName() {
	case gnomeFocusMode:
		str, ok := option.ReadValue(ccs.TypeString).AsString()
		if !ok {
			return false
		}
		return setting.SetBool(str == focusModeClick, true) != ccs.SetFailed
	case gnomeNumWorkspaces:
		n, ok := option.ReadValue(ccs.TypeInt).AsInt()
		if !ok {
			return false
		}
		return setting.SetInt(n, true) != ccs.SetFailed
	case gnomeVisualBellType:
		str, ok := option.ReadValue(ccs.TypeString).AsString()
		if !ok {
			return false
		}
		return setting.SetBool(str == visualBellFullscreen, true) != ccs.SetFailed
	case gnomeMouseButtonModifier:
		return g.readButtonSetting(setting, option)
	case gnomeResizeWithRightButton:
		// affects every button setting, not only the one it is stored under
		applied := false
		for _, o := range g.findByGNOMEName(gnomeMouseButtonModifier) {
			s, err := ctx.FindSetting(o.PluginName(), o.SettingName())
			if err != nil {
				continue
			}
			if g.readButtonSetting(s, o) {
				applied = true
			}
		}
		return applied
	}
	return false
}

func (g *GNOMEIntegration) resizeWithRightButton() bool {
	for _, o := range g.findByGNOMEName(gnomeResizeWithRightButton) {
		if b, ok := o.ReadValue(ccs.TypeBool).AsBool(); ok {
			return b
		}
	}
	return false
}

func (g *GNOMEIntegration) buttonFor(setting ccs.IntegratedSettingInfo) int32 {
	rightResizes := g.resizeWithRightButton()
	switch setting.PluginName() + "/" + setting.SettingName() {
	case "resize/initiate_button":
		if rightResizes {
			return buttonRight
		}
		return buttonMiddle
	case "core/window_menu_button":
		if rightResizes {
			return buttonMiddle
		}
		return buttonRight
	}
	return buttonLeft
}

func (g *GNOMEIntegration) readButtonSetting(setting *ccs.Setting, option ccs.IntegratedSetting) bool {
	modifier, ok := option.ReadValue(ccs.TypeString).AsString()
	if !ok {
		return false
	}
	binding, _ := setting.GetButton()
	binding.ButtonModMask = ccs.StringToModifiers(modifier)
	binding.Button = g.buttonFor(option)
	return setting.SetButton(binding, true) != ccs.SetFailed
}

// WriteSettingIntoOption stores the value of setting in GSettings unless
// integrated writes are disallowed.
func (g *GNOMEIntegration) WriteSettingIntoOption(ctx *ccs.Context, setting *ccs.Setting, option ccs.IntegratedSetting) {
	if g.writesDisallowed {
		return
	}
	info, ok := gnomeInfo(option)
	if !ok {
		return
	}

	switch info.SpecialOptionType() {
	case OptionInt, OptionBool, OptionString, OptionKey:
		option.WriteValue(setting.Value(), setting.Type())
		return
	}

	switch info.GNOMEName() {
	case gnomeFocusMode:
		b, _ := setting.GetBool()
		mode := focusModeSloppy
		if b {
			mode = focusModeClick
		}
		option.WriteValue(ccs.NewSettingValue(ccs.StringValue(mode)), ccs.TypeString)
	case gnomeNumWorkspaces:
		n, _ := setting.GetInt()
		option.WriteValue(ccs.NewSettingValue(ccs.IntValue(n)), ccs.TypeInt)
	case gnomeVisualBellType:
		b, _ := setting.GetBool()
		bell := visualBellFrameFlash
		if b {
			bell = visualBellFullscreen
		}
		option.WriteValue(ccs.NewSettingValue(ccs.StringValue(bell)), ccs.TypeString)
	case gnomeMouseButtonModifier:
		g.writeButtonSetting(setting, option)
	}
}

func (g *GNOMEIntegration) writeButtonSetting(setting *ccs.Setting, option ccs.IntegratedSetting) {
	binding, ok := setting.GetButton()
	if !ok {
		return
	}
	modifier := ccs.ModifiersToString(binding.ButtonModMask)
	if modifier == "" {
		modifier = defaultButtonModifier
	}
	option.WriteValue(ccs.NewSettingValue(ccs.StringValue(modifier)), ccs.TypeString)

	var rightResizes, known bool
	switch option.PluginName() + "/" + option.SettingName() {
	case "resize/initiate_button":
		rightResizes, known = binding.Button == buttonRight, binding.Button == buttonRight || binding.Button == buttonMiddle
	case "core/window_menu_button":
		rightResizes, known = binding.Button == buttonMiddle, binding.Button == buttonRight || binding.Button == buttonMiddle
	}
	if !known {
		return
	}
	for _, o := range g.findByGNOMEName(gnomeResizeWithRightButton) {
		o.WriteValue(ccs.NewSettingValue(ccs.BoolValue(rightResizes)), ccs.TypeBool)
	}
}

// UpdateIntegratedSettings reads options into the matching settings of ctx.
func (g *GNOMEIntegration) UpdateIntegratedSettings(ctx *ccs.Context, options []ccs.IntegratedSetting) {
	for _, option := range options {
		setting, err := ctx.FindSetting(option.PluginName(), option.SettingName())
		if err != nil {
			logger.Debug(err)
			continue
		}
		g.ReadOptionIntoSetting(ctx, setting, option)
	}
}

func (g *GNOMEIntegration) DisallowIntegratedWrites() {
	g.writesDisallowed = true
}

func (g *GNOMEIntegration) AllowIntegratedWrites() {
	g.writesDisallowed = false
}

func (g *GNOMEIntegration) queueChange(schema, key string) {
	g.mu.Lock()
	g.pending = append(g.pending, nativeChange{schema: schema, key: key})
	g.mu.Unlock()
}

type gsettingsBacked interface {
	SchemaName() string
	GSettingsKey() string
}

func byNativeKey(option ccs.IntegratedSetting, data interface{}) bool {
	b, ok := option.(gsettingsBacked)
	if !ok {
		return false
	}
	change := data.(nativeChange)
	return b.SchemaName() == change.schema && b.GSettingsKey() == change.key
}

// ProcessEvents applies the queued GSettings changes to ctx with integrated
// writes disallowed.
func (g *GNOMEIntegration) ProcessEvents(ctx *ccs.Context) bool {
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()
	if len(pending) == 0 {
		return false
	}

	var options []ccs.IntegratedSetting
	for _, change := range pending {
		options = append(options, g.storage.FindMatchingSettingsByPredicate(byNativeKey, change)...)
	}
	if len(options) == 0 {
		return false
	}

	g.DisallowIntegratedWrites()
	g.UpdateIntegratedSettings(ctx, options)
	g.AllowIntegratedWrites()
	return true
}

// Free releases the stored settings and the factory.
func (g *GNOMEIntegration) Free() {
	if g.storage != nil {
		g.storage.Free()
		g.storage = nil
	}
	if g.factory != nil {
		g.factory.Free()
		g.factory = nil
	}
}
