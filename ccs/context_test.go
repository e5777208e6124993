// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"errors"
	"testing"

	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	name     string
	store    map[string]int32
	profiles []string
	events   chan Event

	inits, finis    int
	read, written   []string
	updated         []string
	refuseRead      bool
	readOnlySetting string
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{
		name:     name,
		store:    make(map[string]int32),
		profiles: []string{"Default", "Work"},
		events:   make(chan Event, 4),
	}
}

func key(s *Setting) string {
	return s.Plugin().Name() + "/" + s.Name()
}

func (b *mockBackend) Name() string               { return b.name }
func (b *mockBackend) Init(ctx *Context) error    { b.inits++; return nil }
func (b *mockBackend) Fini(ctx *Context)          { b.finis++ }
func (b *mockBackend) ReadInit(ctx *Context) bool { return !b.refuseRead }
func (b *mockBackend) ReadDone(ctx *Context)      {}
func (b *mockBackend) WriteInit(ctx *Context) bool {
	return true
}
func (b *mockBackend) WriteDone(ctx *Context) {}

func (b *mockBackend) ReadSetting(ctx *Context, s *Setting) {
	b.read = append(b.read, key(s))
	if v, ok := b.store[key(s)]; ok {
		s.SetInt(v, false)
	}
}

func (b *mockBackend) WriteSetting(ctx *Context, s *Setting) {
	b.written = append(b.written, key(s))
	if v, ok := s.GetInt(); ok {
		b.store[key(s)] = v
	}
}

func (b *mockBackend) UpdateSetting(ctx *Context, p *Plugin, s *Setting) {
	b.updated = append(b.updated, key(s))
	b.ReadSetting(ctx, s)
}

func (b *mockBackend) ExistingProfiles(ctx *Context) ([]string, error) {
	return b.profiles, nil
}

func (b *mockBackend) DeleteProfile(ctx *Context, name string) error {
	b.profiles = StringListOps.ToSlice(StringListOps.Remove(StringListOps.FromSlice(b.profiles), name, false))
	return nil
}

func (b *mockBackend) Events() <-chan Event {
	return b.events
}

func (b *mockBackend) SettingIsReadOnly(s *Setting) bool {
	return s.Name() == b.readOnlySetting
}

type mockIntegratedSetting struct {
	IntegratedSettingInfo
	value  *SettingValue
	writes int
	resets int
	freed  bool
}

func (m *mockIntegratedSetting) ReadValue(t SettingType) *SettingValue {
	if t != m.Type() {
		return nil
	}
	c, _ := CopyValue(m.value, t)
	return c
}

func (m *mockIntegratedSetting) WriteValue(v *SettingValue, t SettingType) {
	if t != m.Type() {
		m.resets++
		return
	}
	m.writes++
	m.value, _ = CopyValue(v, t)
}

func (m *mockIntegratedSetting) Free() {
	m.freed = true
}

type mockIntegration struct {
	NullIntegration
	options map[string]*mockIntegratedSetting
	pending bool
	freed   bool
}

func (i *mockIntegration) GetIntegratedOptionIndex(pluginName, settingName string) IntegratedSetting {
	if o, ok := i.options[pluginName+"/"+settingName]; ok {
		return o
	}
	return nil
}

func (i *mockIntegration) ReadOptionIntoSetting(ctx *Context, s *Setting, option IntegratedSetting) bool {
	v := option.ReadValue(s.Type())
	if v == nil {
		return false
	}
	s.SetValue(v, true)
	return true
}

func (i *mockIntegration) WriteSettingIntoOption(ctx *Context, s *Setting, option IntegratedSetting) {
	option.WriteValue(s.Value(), s.Type())
}

func (i *mockIntegration) ProcessEvents(ctx *Context) bool {
	p := i.pending
	i.pending = false
	return p
}

func (i *mockIntegration) Free() {
	i.freed = true
}

func newContextWithBackend(t *testing.T, b Backend) *Context {
	require.True(t, RegisterBackend(b))
	t.Cleanup(func() { unregisterBackend(b.Name()) })
	ctx := NewContext(0)
	newTestPlugin(ctx)
	require.NoError(t, ctx.SetBackend(b.Name()))
	return ctx
}

func TestBackendRegistry(t *testing.T) {
	b := newMockBackend("mock-registry")
	require.True(t, RegisterBackend(b))
	defer unregisterBackend(b.Name())

	obj := LookupBackend("mock-registry")
	require.NotNil(t, obj)
	assert.Same(t, b, BackendFromObject(obj))
	assert.NotNil(t, obj.GetInterface(ProfileBackendKind.Type()))
	assert.NotNil(t, obj.GetInterface(EventSourceKind.Type()))
	assert.Contains(t, ListBackends(), "mock-registry")

	assert.Nil(t, LookupBackend("missing"))
	ctx := NewContext(0)
	assert.True(t, errors.Is(ctx.SetBackend("missing"), ErrBackendNotFound))
}

func TestNewBackendObjectAllocationFailure(t *testing.T) {
	alloc := &ccsobject.FailingAllocator{FailReallocAt: 3}
	assert.Nil(t, NewBackendObject(newMockBackend("fail"), alloc))
}

func TestReadWriteSettings(t *testing.T) {
	b := newMockBackend("mock-rw")
	b.store["core/hsize"] = 6
	ctx := newContextWithBackend(t, b)
	assert.Equal(t, 1, b.inits)

	require.NoError(t, ctx.ReadSettings())
	s, err := ctx.FindSetting("core", "hsize")
	require.NoError(t, err)
	v, _ := s.GetInt()
	assert.Equal(t, int32(6), v)
	assert.Len(t, b.read, 4)

	s.SetInt(3, true)
	require.NoError(t, ctx.WriteChangedSettings())
	assert.Equal(t, []string{"core/hsize"}, b.written)
	assert.Equal(t, int32(3), b.store["core/hsize"])
	assert.Nil(t, ctx.ChangedSettings())

	b.written = nil
	require.NoError(t, ctx.WriteSettings())
	assert.Len(t, b.written, 4)

	b.refuseRead = true
	assert.Error(t, ctx.ReadSettings())

	ctx.Close()
	assert.Equal(t, 1, b.finis)
	assert.Nil(t, ctx.Plugins())
}

func TestNoBackend(t *testing.T) {
	ctx := NewContext(0)
	assert.Equal(t, ErrNoBackend, ctx.ReadSettings())
	assert.Equal(t, ErrNoBackend, ctx.WriteSettings())
	_, err := ctx.ExistingProfiles()
	assert.Equal(t, ErrNoBackend, err)
	assert.False(t, ctx.ProcessEvents())
}

func TestFindSettingErrors(t *testing.T) {
	ctx := NewContext(0)
	newTestPlugin(ctx)
	_, err := ctx.FindSetting("missing", "hsize")
	assert.True(t, errors.Is(err, ErrPluginNotFound))
	_, err = ctx.FindSetting("core", "missing")
	assert.True(t, errors.Is(err, ErrSettingNotFound))
	assert.Error(t, ctx.AddPlugin(NewPlugin(PluginDefinition{Name: "core"})))
}

func TestProfiles(t *testing.T) {
	b := newMockBackend("mock-profiles")
	ctx := newContextWithBackend(t, b)

	assert.Equal(t, DefaultProfile, ctx.Profile())
	ctx.SetProfile("Work")
	assert.Equal(t, "Work", ctx.Profile())
	ctx.SetProfile("")
	assert.Equal(t, DefaultProfile, ctx.Profile())

	profiles, err := ctx.ExistingProfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "Work"}, profiles)

	require.NoError(t, ctx.DeleteProfile("Work"))
	profiles, _ = ctx.ExistingProfiles()
	assert.Equal(t, []string{"Default"}, profiles)
}

func TestReadOnly(t *testing.T) {
	b := newMockBackend("mock-readonly")
	b.readOnlySetting = "hsize"
	ctx := newContextWithBackend(t, b)

	s, _ := ctx.FindSetting("core", "hsize")
	assert.True(t, s.IsReadOnly())
	s, _ = ctx.FindSetting("core", "click_to_focus")
	assert.False(t, s.IsReadOnly())
}

func TestProcessBackendEvents(t *testing.T) {
	b := newMockBackend("mock-events")
	ctx := newContextWithBackend(t, b)

	b.store["core/hsize"] = 9
	b.events <- Event{Kind: EventSettingChanged, Plugin: "core", Setting: "hsize"}
	b.events <- Event{Kind: EventSettingChanged, Plugin: "core", Setting: "missing"}
	assert.True(t, ctx.ProcessEvents())
	assert.Equal(t, []string{"core/hsize"}, b.updated)
	s, _ := ctx.FindSetting("core", "hsize")
	v, _ := s.GetInt()
	assert.Equal(t, int32(9), v)

	b.events <- Event{Kind: EventProfileChanged}
	assert.True(t, ctx.ProcessEvents())
	assert.Len(t, b.read, 5)

	assert.False(t, ctx.ProcessEvents())
}

func TestIntegratedSettingsBypassBackend(t *testing.T) {
	b := newMockBackend("mock-integration")
	ctx := newContextWithBackend(t, b)

	option := &mockIntegratedSetting{
		IntegratedSettingInfo: NewSharedIntegratedSettingInfo("core", "hsize", TypeInt),
		value:                 NewSettingValue(IntValue(2)),
	}
	integration := &mockIntegration{
		options: map[string]*mockIntegratedSetting{"core/hsize": option},
		pending: true,
	}
	ctx.SetIntegration(integration)

	s, _ := ctx.FindSetting("core", "hsize")
	assert.False(t, s.IsIntegrated())

	ctx.SetIntegrationEnabled(true)
	assert.True(t, s.IsIntegrated())

	require.NoError(t, ctx.ReadSettings())
	assert.NotContains(t, b.read, "core/hsize")
	v, _ := s.GetInt()
	assert.Equal(t, int32(2), v)

	s.SetInt(5, true)
	require.NoError(t, ctx.WriteChangedSettings())
	assert.NotContains(t, b.written, "core/hsize")
	assert.Equal(t, 1, option.writes)
	assert.Equal(t, IntValue(5), option.value.Value())

	assert.True(t, ctx.ProcessEvents())
	assert.False(t, ctx.ProcessEvents())

	ctx.SetIntegration(nil)
	assert.True(t, integration.freed)
	assert.IsType(t, NullIntegration{}, ctx.Integration())
}

func TestNewBackendObjectNeedsAllocator(t *testing.T) {
	assert.Nil(t, NewBackendObject(newMockBackend("no-alloc"), nil))

	obj := NewBackendObject(newMockBackend("alloc"), ccsobject.DefaultAllocator)
	require.NotNil(t, obj)
	assert.Equal(t, 1, obj.RefCount())
	assert.Equal(t, 4, obj.NumInterfaces())
}
