// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package gnome

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWrappers struct {
	opened map[string]*mockWrapper
	order  []string
}

func (m *mockWrappers) newWrapper(schema string, keyTypes map[string]string) GSettingsWrapper {
	w := newMockWrapper(schema, keyTypes)
	if m.opened == nil {
		m.opened = make(map[string]*mockWrapper)
	}
	m.opened[schema] = w
	m.order = append(m.order, schema)
	return w
}

func TestFactoryCachesWrappers(t *testing.T) {
	var m mockWrappers
	f := NewGSettingsIntegratedSettingFactory(m.newWrapper)

	a := f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "core", "audible_bell", ccs.TypeBool)
	b := f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "core", "autoraise_delay", ccs.TypeInt)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, []string{schemaWMPreferences}, m.order)
	assert.Equal(t, "b", m.opened[schemaWMPreferences].keyTypes["audible-bell"])
	assert.Equal(t, "i", m.opened[schemaWMPreferences].keyTypes["auto-raise-delay"])

	k := f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "core", "close_window_key", ccs.TypeKey)
	require.NotNil(t, k)
	assert.Equal(t, []string{schemaWMPreferences, schemaWMKeybindings}, m.order)
	assert.Len(t, f.Wrappers(), 2)

	f.Free()
	assert.Equal(t, 1, m.opened[schemaWMPreferences].unrefs)
	assert.Equal(t, 1, m.opened[schemaWMKeybindings].unrefs)
	assert.Empty(t, f.Wrappers())
}

func TestFactoryUnknownIdentity(t *testing.T) {
	var m mockWrappers
	f := NewGSettingsIntegratedSettingFactory(m.newWrapper)
	assert.Nil(t, f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "core", "no_such_setting", ccs.TypeInt))
	assert.Empty(t, m.order)
}

func TestFactoryMissingSchema(t *testing.T) {
	var m mockWrappers
	opens := 0
	f := NewGSettingsIntegratedSettingFactory(func(schema string, keyTypes map[string]string) GSettingsWrapper {
		if schema == schemaWMKeybindings {
			opens++
			return nil
		}
		return m.newWrapper(schema, keyTypes)
	})

	assert.NotPanics(t, func() {
		assert.Nil(t, f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "core", "close_window_key", ccs.TypeKey))
		assert.Nil(t, f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "core", "close_window_key", ccs.TypeKey))
	})
	assert.Equal(t, 1, opens)
	assert.NotNil(t, f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "core", "audible_bell", ccs.TypeBool))
	assert.Len(t, f.Wrappers(), 1)

	assert.NotPanics(t, f.Free)
	assert.Equal(t, 1, m.opened[schemaWMPreferences].unrefs)
}

func TestIntegrationWithoutSchemas(t *testing.T) {
	f := NewGSettingsIntegratedSettingFactory(func(string, map[string]string) GSettingsWrapper {
		return nil
	})
	storage := ccs.NewIntegratedSettingsStorageDefault(ccsobject.DefaultAllocator)
	require.NotNil(t, storage)

	var g *GNOMEIntegration
	require.NotPanics(t, func() {
		g = NewGNOMEIntegration(f, storage)
	})
	assert.True(t, g.Storage().Empty())
	assert.Nil(t, g.GetIntegratedOptionIndex("core", "click_to_focus"))
	g.Free()
}

func TestFactoryPicksMappingByType(t *testing.T) {
	var m mockWrappers
	f := NewGSettingsIntegratedSettingFactory(m.newWrapper)

	s := f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "resize", "initiate_button", ccs.TypeBool)
	require.NotNil(t, s)
	info := s.(GNOMEIntegratedSettingInfo)
	assert.Equal(t, gnomeResizeWithRightButton, info.GNOMEName())
	assert.Equal(t, ccs.TypeBool, s.Type())

	s = f.CreateIntegratedSettingForCCSNameAndType(ccs.NullIntegration{}, "resize", "initiate_button", ccs.TypeString)
	require.NotNil(t, s)
	assert.Equal(t, gnomeMouseButtonModifier, s.(GNOMEIntegratedSettingInfo).GNOMEName())
}

type integrationFixture struct {
	ctx     *ccs.Context
	g       *GNOMEIntegration
	prefs   *mockWrapper
	keys    *mockWrapper
	core    *ccs.Plugin
	resize  *ccs.Plugin
	move    *ccs.Plugin
	wrapped *mockWrappers
}

func newIntegrationFixture(t *testing.T) *integrationFixture {
	fx := &integrationFixture{wrapped: &mockWrappers{}}
	fx.ctx = ccs.NewContext(0)

	fx.core = ccs.NewPlugin(ccs.PluginDefinition{Name: "core"})
	ccs.NewSetting(fx.core, ccs.SettingDefinition{Name: "click_to_focus", Type: ccs.TypeBool, Default: ccs.BoolValue(true)})
	ccs.NewSetting(fx.core, ccs.SettingDefinition{
		Name:    "hsize",
		Type:    ccs.TypeInt,
		Info:    ccs.SettingInfo{Int: ccs.IntInfo{Min: 1, Max: 32}},
		Default: ccs.IntValue(4),
	})
	ccs.NewSetting(fx.core, ccs.SettingDefinition{Name: "audible_bell", Type: ccs.TypeBool, Default: ccs.BoolValue(true)})
	ccs.NewSetting(fx.core, ccs.SettingDefinition{Name: "close_window_key", Type: ccs.TypeKey})
	ccs.NewSetting(fx.core, ccs.SettingDefinition{
		Name:    "window_menu_button",
		Type:    ccs.TypeButton,
		Default: ccs.ButtonValue{Button: 3, ButtonModMask: ccs.CompAltMask},
	})
	fx.move = ccs.NewPlugin(ccs.PluginDefinition{Name: "move"})
	ccs.NewSetting(fx.move, ccs.SettingDefinition{
		Name:    "initiate_button",
		Type:    ccs.TypeButton,
		Default: ccs.ButtonValue{Button: 1, ButtonModMask: ccs.CompAltMask},
	})
	fx.resize = ccs.NewPlugin(ccs.PluginDefinition{Name: "resize"})
	ccs.NewSetting(fx.resize, ccs.SettingDefinition{
		Name:    "initiate_button",
		Type:    ccs.TypeButton,
		Default: ccs.ButtonValue{Button: 2, ButtonModMask: ccs.CompAltMask},
	})
	for _, p := range []*ccs.Plugin{fx.core, fx.move, fx.resize} {
		require.NoError(t, fx.ctx.AddPlugin(p))
	}

	factory := NewGSettingsIntegratedSettingFactory(fx.wrapped.newWrapper)
	storage := ccs.NewIntegratedSettingsStorageDefault(ccsobject.DefaultAllocator)
	require.NotNil(t, storage)
	fx.g = NewGNOMEIntegration(factory, storage)
	fx.ctx.SetIntegration(fx.g)
	fx.ctx.SetIntegrationEnabled(true)

	fx.prefs = fx.wrapped.opened[schemaWMPreferences]
	fx.keys = fx.wrapped.opened[schemaWMKeybindings]
	require.NotNil(t, fx.prefs)
	require.NotNil(t, fx.keys)
	fx.prefs.values["focus-mode"] = dbus.MakeVariant("sloppy")
	fx.prefs.values["num-workspaces"] = dbus.MakeVariant(int32(4))
	fx.prefs.values["audible-bell"] = dbus.MakeVariant(true)
	fx.prefs.values["mouse-button-modifier"] = dbus.MakeVariant("<Alt>")
	fx.prefs.values["resize-with-right-button"] = dbus.MakeVariant(false)
	fx.keys.values["close"] = dbus.MakeVariant([]string{"<Alt>F4"})
	return fx
}

func (fx *integrationFixture) read(t *testing.T, plugin *ccs.Plugin, name string) *ccs.Setting {
	s := plugin.FindSetting(name)
	require.NotNil(t, s)
	option := fx.g.GetIntegratedOptionIndex(plugin.Name(), name)
	require.NotNil(t, option)
	fx.g.ReadOptionIntoSetting(fx.ctx, s, option)
	return s
}

func (fx *integrationFixture) write(t *testing.T, plugin *ccs.Plugin, name string) {
	s := plugin.FindSetting(name)
	require.NotNil(t, s)
	option := fx.g.GetIntegratedOptionIndex(plugin.Name(), name)
	require.NotNil(t, option)
	fx.g.WriteSettingIntoOption(fx.ctx, s, option)
}

func TestIntegrationPopulatesStorage(t *testing.T) {
	fx := newIntegrationFixture(t)
	defer fx.ctx.Close()

	all := fx.g.Storage().FindMatchingSettingsByPluginAndSettingName("resize", "initiate_button")
	require.Len(t, all, 2)
	assert.Equal(t, gnomeMouseButtonModifier, all[0].(GNOMEIntegratedSettingInfo).GNOMEName())
	assert.Equal(t, gnomeResizeWithRightButton, all[1].(GNOMEIntegratedSettingInfo).GNOMEName())

	assert.Nil(t, fx.g.GetIntegratedOptionIndex("core", "active_plugins"))
	assert.True(t, fx.core.FindSetting("hsize").IsIntegrated())
}

func TestReadPlainOptions(t *testing.T) {
	fx := newIntegrationFixture(t)
	defer fx.ctx.Close()

	fx.prefs.values["audible-bell"] = dbus.MakeVariant(false)
	s := fx.read(t, fx.core, "audible_bell")
	b, _ := s.GetBool()
	assert.False(t, b)

	s = fx.read(t, fx.core, "close_window_key")
	k, _ := s.GetKey()
	assert.Equal(t, ccs.CompAltMask, k.ModMask)
	assert.Equal(t, "<Alt>F4", ccs.KeyBindingToString(k))
}

func TestReadSpecialOptions(t *testing.T) {
	fx := newIntegrationFixture(t)
	defer fx.ctx.Close()

	s := fx.read(t, fx.core, "click_to_focus")
	b, _ := s.GetBool()
	assert.False(t, b)

	fx.prefs.values["focus-mode"] = dbus.MakeVariant("click")
	s = fx.read(t, fx.core, "click_to_focus")
	b, _ = s.GetBool()
	assert.True(t, b)

	fx.prefs.values["num-workspaces"] = dbus.MakeVariant(int32(6))
	s = fx.read(t, fx.core, "hsize")
	n, _ := s.GetInt()
	assert.Equal(t, int32(6), n)
}

func TestReadMouseButtons(t *testing.T) {
	fx := newIntegrationFixture(t)
	defer fx.ctx.Close()

	fx.prefs.values["mouse-button-modifier"] = dbus.MakeVariant("<Super>")
	s := fx.read(t, fx.move, "initiate_button")
	btn, _ := s.GetButton()
	assert.Equal(t, ccs.ButtonBinding{Button: 1, ButtonModMask: ccs.CompSuperMask}, btn)

	s = fx.read(t, fx.resize, "initiate_button")
	btn, _ = s.GetButton()
	assert.Equal(t, int32(2), btn.Button)

	fx.prefs.values["resize-with-right-button"] = dbus.MakeVariant(true)
	right := fx.g.Storage().FindMatchingSettingsByPredicate(byGNOMEName, gnomeResizeWithRightButton)
	require.Len(t, right, 1)
	assert.True(t, fx.g.ReadOptionIntoSetting(fx.ctx, fx.resize.FindSetting("initiate_button"), right[0]))

	btn, _ = fx.resize.FindSetting("initiate_button").GetButton()
	assert.Equal(t, int32(3), btn.Button)
	btn, _ = fx.core.FindSetting("window_menu_button").GetButton()
	assert.Equal(t, int32(2), btn.Button)
	assert.Equal(t, ccs.CompSuperMask, btn.ButtonModMask)
}

func TestWriteSpecialOptions(t *testing.T) {
	fx := newIntegrationFixture(t)
	defer fx.ctx.Close()

	fx.write(t, fx.core, "click_to_focus")
	assert.Equal(t, dbus.MakeVariant("click"), fx.prefs.values["focus-mode"])

	fx.core.FindSetting("hsize").SetInt(8, false)
	fx.write(t, fx.core, "hsize")
	assert.Equal(t, dbus.MakeVariant(int32(8)), fx.prefs.values["num-workspaces"])

	fx.resize.FindSetting("initiate_button").SetButton(ccs.ButtonBinding{Button: 3, ButtonModMask: ccs.ControlMask}, false)
	fx.write(t, fx.resize, "initiate_button")
	assert.Equal(t, dbus.MakeVariant("<Control>"), fx.prefs.values["mouse-button-modifier"])
	assert.Equal(t, dbus.MakeVariant(true), fx.prefs.values["resize-with-right-button"])
}

func TestWritesDisallowed(t *testing.T) {
	fx := newIntegrationFixture(t)
	defer fx.ctx.Close()

	fx.g.DisallowIntegratedWrites()
	fx.write(t, fx.core, "click_to_focus")
	assert.Empty(t, fx.prefs.setCalls)

	fx.g.AllowIntegratedWrites()
	fx.write(t, fx.core, "click_to_focus")
	assert.Equal(t, []string{"focus-mode"}, fx.prefs.setCalls)
}

func TestProcessEventsAppliesNativeChanges(t *testing.T) {
	fx := newIntegrationFixture(t)
	defer fx.ctx.Close()

	assert.False(t, fx.ctx.ProcessEvents())

	fx.prefs.emit("num-workspaces", dbus.MakeVariant(int32(9)))
	fx.prefs.emit("unrelated-key", dbus.MakeVariant(true))
	assert.True(t, fx.ctx.ProcessEvents())

	n, _ := fx.core.FindSetting("hsize").GetInt()
	assert.Equal(t, int32(9), n)
	assert.Empty(t, fx.prefs.setCalls)
	assert.False(t, fx.ctx.ProcessEvents())
}

func TestFreeReleasesWrappers(t *testing.T) {
	fx := newIntegrationFixture(t)
	fx.ctx.Close()
	for _, w := range fx.wrapped.opened {
		assert.Equal(t, 1, w.unrefs, w.schema)
	}
}
