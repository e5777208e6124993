// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
)

var IntegratedSettingsStorageKind = ccsobject.InterfaceKind{Name: "IntegratedSettingsStorage"}

type integratedSettingList = *List[IntegratedSetting]

// IntegratedSettingsStorageDefault keeps settings in insertion order and
// does not deduplicate them.
type IntegratedSettingsStorageDefault struct {
	ccsobject.Object

	settings integratedSettingList
	ops      ListOps[IntegratedSetting]
}

func NewIntegratedSettingsStorageDefault(alloc ccsobject.Allocator) *IntegratedSettingsStorageDefault {
	if alloc == nil {
		alloc = ccsobject.DefaultAllocator
	}
	if !alloc.Calloc(1, 1) {
		logger.Warning("failed to allocate integrated settings storage")
		return nil
	}
	s := &IntegratedSettingsStorageDefault{
		ops: ListOps[IntegratedSetting]{
			Destroy: func(is IntegratedSetting) {
				if is != nil {
					is.Free()
				}
			},
			Alloc: alloc,
		},
	}
	s.Object.Init(alloc)
	if !s.AddInterface(IntegratedSettingsStorage(s), IntegratedSettingsStorageKind.Type()) {
		alloc.Free()
		return nil
	}
	s.Object.Ref()
	return s
}

func (s *IntegratedSettingsStorageDefault) FindMatchingSettingsByPluginAndSettingName(pluginName, settingName string) []IntegratedSetting {
	return s.FindMatchingSettingsByPredicate(func(is IntegratedSetting, _ interface{}) bool {
		return is.PluginName() == pluginName && is.SettingName() == settingName
	}, nil)
}

func (s *IntegratedSettingsStorageDefault) FindMatchingSettingsByPredicate(pred IntegratedSettingPredicate, data interface{}) []IntegratedSetting {
	var result []IntegratedSetting
	for l := s.settings; l != nil; l = l.Next {
		if pred(l.Data, data) {
			result = append(result, l.Data)
		}
	}
	return result
}

// AddSetting takes ownership of setting.
func (s *IntegratedSettingsStorageDefault) AddSetting(setting IntegratedSetting) {
	n := s.ops.Length(s.settings)
	s.settings = s.ops.Append(s.settings, setting)
	if s.ops.Length(s.settings) == n {
		logger.Warningf("failed to store integrated setting %s/%s",
			setting.PluginName(), setting.SettingName())
	}
}

func (s *IntegratedSettingsStorageDefault) Empty() bool {
	return s.settings == nil
}

// Settings returns every stored setting in insertion order.
func (s *IntegratedSettingsStorageDefault) Settings() []IntegratedSetting {
	return s.ops.ToSlice(s.settings)
}

// Free releases the stored settings and the storage itself.
func (s *IntegratedSettingsStorageDefault) Free() {
	s.settings = s.ops.Free(s.settings, true)
	alloc := s.Allocator()
	s.Finalize()
	if alloc != nil {
		alloc.Free()
	}
}

// Unref frees the storage with its last reference.
func (s *IntegratedSettingsStorageDefault) Unref() {
	s.Object.Unref(func(*ccsobject.Object) {
		s.Free()
	})
}
