// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package gnome

import (
	"github.com/linuxdeepin/dde-compizconfig/ccs"
)

// GSettingsIntegratedSettingFactory creates GSettings backed integrated
// settings. Wrappers are opened once per schema and shared.
type GSettingsIntegratedSettingFactory struct {
	newWrapper WrapperConstructor
	wrappers   map[string]GSettingsWrapper
	schemas    []string
}

// NewGSettingsIntegratedSettingFactory opens schemas with newWrapper, or
// with GIO when it is nil.
func NewGSettingsIntegratedSettingFactory(newWrapper WrapperConstructor) *GSettingsIntegratedSettingFactory {
	if newWrapper == nil {
		newWrapper = NewGioWrapper
	}
	return &GSettingsIntegratedSettingFactory{
		newWrapper: newWrapper,
		wrappers:   make(map[string]GSettingsWrapper),
	}
}

func (f *GSettingsIntegratedSettingFactory) wrapperForSchema(schema string) GSettingsWrapper {
	if w, ok := f.wrappers[schema]; ok {
		return w
	}
	w := f.newWrapper(schema, schemaKeyTypes(schema))
	if w == nil {
		// remembered so an absent schema is looked up once
		f.wrappers[schema] = nil
		return nil
	}
	f.wrappers[schema] = w
	f.schemas = append(f.schemas, schema)
	return w
}

// CreateIntegratedSettingForCCSNameAndType returns nil when the identity
// has no GNOME counterpart. An identity mapped more than once resolves to
// the mapping whose native type is t.
func (f *GSettingsIntegratedSettingFactory) CreateIntegratedSettingForCCSNameAndType(integration ccs.Integration,
	pluginName, settingName string, t ccs.SettingType) ccs.IntegratedSetting {
	entries := findEntries(pluginName, settingName)
	if len(entries) == 0 {
		return nil
	}
	entry := entries[0]
	for _, e := range entries {
		if e.nativeType == t {
			entry = e
			break
		}
	}

	wrapper := f.wrapperForSchema(entry.schema)
	if wrapper == nil {
		logger.Debug("schema not available:", entry.schema)
		return nil
	}
	info := NewGNOMEIntegratedSettingInfo(
		ccs.NewSharedIntegratedSettingInfo(pluginName, settingName, t),
		entry.special, entry.gnomeName)
	return NewGSettingsIntegratedSetting(info, wrapper)
}

// Wrappers returns the opened wrappers in opening order.
func (f *GSettingsIntegratedSettingFactory) Wrappers() []GSettingsWrapper {
	wrappers := make([]GSettingsWrapper, 0, len(f.schemas))
	for _, schema := range f.schemas {
		wrappers = append(wrappers, f.wrappers[schema])
	}
	return wrappers
}

func (f *GSettingsIntegratedSettingFactory) Free() {
	for _, schema := range f.schemas {
		f.wrappers[schema].Unref()
	}
	f.wrappers = make(map[string]GSettingsWrapper)
	f.schemas = nil
}
