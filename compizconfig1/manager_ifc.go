// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package compizconfig

import (
	"fmt"

	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

func (m *Manager) ListPlugins() ([]string, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := []string{}
	for _, p := range ccs.PluginListOps.ToSlice(m.ctx.Plugins()) {
		names = append(names, p.Name())
	}
	return names, nil
}

func (m *Manager) ListSettings(plugin string) ([]string, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.ctx.FindPlugin(plugin)
	if p == nil {
		return nil, dbusutil.ToError(fmt.Errorf("%s: %w", plugin, ccs.ErrPluginNotFound))
	}
	names := []string{}
	for _, s := range ccs.SettingListOps.ToSlice(p.Settings()) {
		names = append(names, s.Name())
	}
	return names, nil
}

// GetSettingType returns the type name of a setting and, for lists, the
// type name of its elements.
func (m *Manager) GetSettingType(plugin, setting string) (string, string, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.ctx.FindSetting(plugin, setting)
	if err != nil {
		return "", "", dbusutil.ToError(err)
	}
	var elemType string
	if s.Type() == ccs.TypeList {
		elemType = s.Info().List.ListType.String()
	}
	return s.Type().String(), elemType, nil
}

func (m *Manager) GetSetting(plugin, setting string) (dbus.Variant, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.ctx.FindSetting(plugin, setting)
	if err != nil {
		return dbus.Variant{}, dbusutil.ToError(err)
	}
	v, err := valueToVariant(s.Value().Value(), s.Info().List.ListType)
	if err != nil {
		return dbus.Variant{}, dbusutil.ToError(err)
	}
	return v, nil
}

func (m *Manager) SetSetting(plugin, setting string, value dbus.Variant) *dbus.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.setSetting(plugin, setting, value)
	return dbusutil.ToError(err)
}

func (m *Manager) setSetting(plugin, setting string, value dbus.Variant) error {
	s, err := m.ctx.FindSetting(plugin, setting)
	if err != nil {
		return err
	}
	if s.IsReadOnly() {
		return fmt.Errorf("%s/%s is read-only", plugin, setting)
	}
	v, err := variantToValue(value, s)
	if err != nil {
		return err
	}
	if s.SetValue(ccs.NewSettingValue(v), true) == ccs.SetFailed {
		return fmt.Errorf("%v rejected by %s/%s", value, plugin, setting)
	}
	return m.commit()
}

func (m *Manager) ResetSetting(plugin, setting string) *dbus.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.ctx.FindSetting(plugin, setting)
	if err != nil {
		return dbusutil.ToError(err)
	}
	s.ResetToDefault(true)
	return dbusutil.ToError(m.commit())
}

// Write stores every setting, not only the changed ones.
func (m *Manager) Write() *dbus.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return dbusutil.ToError(m.ctx.WriteSettings())
}

func (m *Manager) Reload() *dbus.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.ctx.ReadSettings()
	if err != nil {
		return dbusutil.ToError(err)
	}
	m.flushChanged()
	return nil
}

func (m *Manager) GetProfile() (string, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx.Profile(), nil
}

// SetProfile switches to profile and loads it.
func (m *Manager) SetProfile(profile string) *dbus.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if profile == "" {
		profile = ccs.DefaultProfile
	}
	if profile == m.ctx.Profile() {
		return nil
	}
	m.ctx.SetProfile(profile)
	err := m.ctx.ReadSettings()
	if err != nil {
		return dbusutil.ToError(err)
	}
	m.emitProfileChanged(profile)
	m.flushChanged()
	return nil
}

func (m *Manager) ListProfiles() ([]string, *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profiles, err := m.ctx.ExistingProfiles()
	if err != nil {
		return nil, dbusutil.ToError(err)
	}
	if profiles == nil {
		profiles = []string{}
	}
	return profiles, nil
}

func (m *Manager) DeleteProfile(profile string) *dbus.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if profile == m.ctx.Profile() {
		return dbusutil.ToError(fmt.Errorf("profile %s is in use", profile))
	}
	return dbusutil.ToError(m.ctx.DeleteProfile(profile))
}
