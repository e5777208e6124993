// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"testing"

	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockIntegratedSetting(plugin, name string, t SettingType) *mockIntegratedSetting {
	return &mockIntegratedSetting{
		IntegratedSettingInfo: NewSharedIntegratedSettingInfo(plugin, name, t),
	}
}

func TestStorageFindByName(t *testing.T) {
	storage := NewIntegratedSettingsStorageDefault(nil)
	require.NotNil(t, storage)
	assert.True(t, storage.Empty())

	a := newMockIntegratedSetting("core", "hsize", TypeInt)
	b := newMockIntegratedSetting("core", "click_to_focus", TypeBool)
	dup := newMockIntegratedSetting("core", "hsize", TypeInt)
	storage.AddSetting(a)
	storage.AddSetting(b)
	storage.AddSetting(dup)
	assert.False(t, storage.Empty())

	found := storage.FindMatchingSettingsByPluginAndSettingName("core", "hsize")
	require.Len(t, found, 2)
	assert.Same(t, a, found[0])
	assert.Same(t, dup, found[1])

	assert.Empty(t, storage.FindMatchingSettingsByPluginAndSettingName("move", "hsize"))
	assert.Empty(t, storage.FindMatchingSettingsByPluginAndSettingName("core", "vsize"))
}

func TestStorageFindByPredicate(t *testing.T) {
	storage := NewIntegratedSettingsStorageDefault(nil)
	settings := []*mockIntegratedSetting{
		newMockIntegratedSetting("core", "hsize", TypeInt),
		newMockIntegratedSetting("move", "initiate_button", TypeButton),
		newMockIntegratedSetting("core", "click_to_focus", TypeBool),
	}
	for _, s := range settings {
		storage.AddSetting(s)
	}

	var seen []interface{}
	byPlugin := func(s IntegratedSetting, data interface{}) bool {
		seen = append(seen, data)
		return s.PluginName() == data.(string)
	}
	found := storage.FindMatchingSettingsByPredicate(byPlugin, "core")
	require.Len(t, found, 2)
	assert.Same(t, settings[0], found[0])
	assert.Same(t, settings[2], found[1])
	assert.Equal(t, []interface{}{"core", "core", "core"}, seen)
	assert.Len(t, storage.Settings(), 3)
}

func TestStorageFreeReleasesSettings(t *testing.T) {
	alloc := &ccsobject.FailingAllocator{}
	storage := NewIntegratedSettingsStorageDefault(alloc)
	require.NotNil(t, storage)
	a := newMockIntegratedSetting("core", "hsize", TypeInt)
	storage.AddSetting(a)

	storage.Unref()
	assert.True(t, a.freed)
	assert.True(t, storage.Empty())
}

func TestStorageAllocationFailure(t *testing.T) {
	assert.Nil(t, NewIntegratedSettingsStorageDefault(&ccsobject.FailingAllocator{FailCallocAt: 1}))

	storage := NewIntegratedSettingsStorageDefault(&ccsobject.FailingAllocator{FailCallocAt: 2})
	require.NotNil(t, storage)
	storage.AddSetting(newMockIntegratedSetting("core", "hsize", TypeInt))
	assert.True(t, storage.Empty())
}

func TestSharedIntegratedSettingInfo(t *testing.T) {
	info := NewSharedIntegratedSettingInfo("core", "hsize", TypeInt)
	assert.Equal(t, "core", info.PluginName())
	assert.Equal(t, "hsize", info.SettingName())
	assert.Equal(t, TypeInt, info.Type())
}

func TestNullIntegration(t *testing.T) {
	var i Integration = NullIntegration{}
	assert.Nil(t, i.GetIntegratedOptionIndex("core", "hsize"))
	assert.False(t, i.ReadOptionIntoSetting(nil, nil, nil))
}
