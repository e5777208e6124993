// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

// IntegratedSettingInfo is the identity of an integrated setting.
type IntegratedSettingInfo interface {
	PluginName() string
	SettingName() string
	Type() SettingType
}

// IntegratedSetting bridges a setting to a key of the desktop store.
// ReadValue returns nil when t is not the declared type or the native value
// cannot be decoded. WriteValue resets the native key instead of writing
// when t is not the declared type.
type IntegratedSetting interface {
	IntegratedSettingInfo
	ReadValue(t SettingType) *SettingValue
	WriteValue(v *SettingValue, t SettingType)
	Free()
}

type sharedIntegratedSettingInfo struct {
	pluginName  string
	settingName string
	typ         SettingType
}

func NewSharedIntegratedSettingInfo(pluginName, settingName string, t SettingType) IntegratedSettingInfo {
	return &sharedIntegratedSettingInfo{
		pluginName:  pluginName,
		settingName: settingName,
		typ:         t,
	}
}

func (i *sharedIntegratedSettingInfo) PluginName() string {
	return i.pluginName
}

func (i *sharedIntegratedSettingInfo) SettingName() string {
	return i.settingName
}

func (i *sharedIntegratedSettingInfo) Type() SettingType {
	return i.typ
}

// IntegratedSettingPredicate selects settings for
// FindMatchingSettingsByPredicate. data is passed through unchanged.
type IntegratedSettingPredicate func(setting IntegratedSetting, data interface{}) bool

type IntegratedSettingsStorage interface {
	FindMatchingSettingsByPluginAndSettingName(pluginName, settingName string) []IntegratedSetting
	FindMatchingSettingsByPredicate(pred IntegratedSettingPredicate, data interface{}) []IntegratedSetting
	AddSetting(setting IntegratedSetting)
	Empty() bool
	Free()
}

// IntegratedSettingFactory creates the store specific integrated setting
// for an identity, or nil when the identity is not integrated.
type IntegratedSettingFactory interface {
	CreateIntegratedSettingForCCSNameAndType(integration Integration,
		pluginName, settingName string, t SettingType) IntegratedSetting
	Free()
}

// Integration moves the values of integrated settings between a context
// and the desktop store.
type Integration interface {
	GetIntegratedOptionIndex(pluginName, settingName string) IntegratedSetting
	ReadOptionIntoSetting(ctx *Context, setting *Setting, option IntegratedSetting) bool
	WriteSettingIntoOption(ctx *Context, setting *Setting, option IntegratedSetting)
	UpdateIntegratedSettings(ctx *Context, options []IntegratedSetting)
	DisallowIntegratedWrites()
	AllowIntegratedWrites()
	Free()
}

// IntegrationEventProcessor is implemented by integrations that queue
// changes of the desktop store.
type IntegrationEventProcessor interface {
	ProcessEvents(ctx *Context) bool
}

// NullIntegration integrates nothing.
type NullIntegration struct{}

func (NullIntegration) GetIntegratedOptionIndex(pluginName, settingName string) IntegratedSetting {
	return nil
}

func (NullIntegration) ReadOptionIntoSetting(ctx *Context, setting *Setting, option IntegratedSetting) bool {
	return false
}

func (NullIntegration) WriteSettingIntoOption(ctx *Context, setting *Setting, option IntegratedSetting) {
}

func (NullIntegration) UpdateIntegratedSettings(ctx *Context, options []IntegratedSetting) {
}

func (NullIntegration) DisallowIntegratedWrites() {}

func (NullIntegration) AllowIntegratedWrites() {}

func (NullIntegration) Free() {}
