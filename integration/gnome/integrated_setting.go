// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package gnome

import (
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/go-lib/strv"
)

// GNOMEIntegratedSettingInfo adds the GNOME side of the mapping to an
// integrated setting identity.
type GNOMEIntegratedSettingInfo interface {
	ccs.IntegratedSettingInfo
	SpecialOptionType() SpecialOptionType
	GNOMEName() string
}

type gnomeIntegratedSettingInfo struct {
	ccs.IntegratedSettingInfo
	special   SpecialOptionType
	gnomeName string
}

func NewGNOMEIntegratedSettingInfo(base ccs.IntegratedSettingInfo, special SpecialOptionType,
	gnomeName string) GNOMEIntegratedSettingInfo {
	return &gnomeIntegratedSettingInfo{
		IntegratedSettingInfo: base,
		special:               special,
		gnomeName:             gnomeName,
	}
}

func (i *gnomeIntegratedSettingInfo) SpecialOptionType() SpecialOptionType {
	return i.special
}

func (i *gnomeIntegratedSettingInfo) GNOMEName() string {
	return i.gnomeName
}

// GSettingsIntegratedSetting reads and writes one GSettings key. Key
// bindings travel in their textual form: ReadValue(TypeKey) returns a string
// payload and WriteValue accepts a string or a key payload.
type GSettingsIntegratedSetting struct {
	GNOMEIntegratedSettingInfo
	wrapper GSettingsWrapper
}

func NewGSettingsIntegratedSetting(info GNOMEIntegratedSettingInfo, wrapper GSettingsWrapper) *GSettingsIntegratedSetting {
	return &GSettingsIntegratedSetting{
		GNOMEIntegratedSettingInfo: info,
		wrapper:                    wrapper,
	}
}

func (s *GSettingsIntegratedSetting) SchemaName() string {
	return s.wrapper.SchemaName()
}

// GSettingsKey is the GSettings form of the GNOME name.
func (s *GSettingsIntegratedSetting) GSettingsKey() string {
	return translateKeyForGSettings(s.GNOMEName())
}

func (s *GSettingsIntegratedSetting) ReadValue(t ccs.SettingType) *ccs.SettingValue {
	if t != s.Type() {
		logger.Debugf("read %s/%s as %s, declared %s", s.PluginName(), s.SettingName(), t, s.Type())
		return nil
	}

	key := s.GSettingsKey()
	variant, ok := s.wrapper.GetValue(key)
	if !ok {
		logger.Warningf("no value for %s in %s", key, s.SchemaName())
		return nil
	}

	var value ccs.Value
	switch native := variant.Value().(type) {
	case int32:
		if t == ccs.TypeInt {
			value = ccs.IntValue(native)
		}
	case bool:
		if t == ccs.TypeBool {
			value = ccs.BoolValue(native)
		}
	case string:
		if t == ccs.TypeString {
			value = ccs.StringValue(native)
		}
	case []string:
		if t == ccs.TypeKey {
			value = ccs.StringValue(decodeKeyList(native))
		}
	}
	if value == nil {
		logger.Warningf("expected %s for %s/%s, got %s", nativeSignature(t), s.SchemaName(), key, variant.Signature())
		return nil
	}
	logger.Debugf("read %s/%s = %v", s.SchemaName(), key, value)
	return ccs.NewSettingValue(value)
}

func (s *GSettingsIntegratedSetting) WriteValue(v *ccs.SettingValue, t ccs.SettingType) {
	key := s.GSettingsKey()
	if t != s.Type() {
		logger.Debugf("write %s/%s as %s, declared %s: reset", s.PluginName(), s.SettingName(), t, s.Type())
		s.wrapper.ResetKey(key)
		return
	}

	current, ok := s.wrapper.GetValue(key)
	newValue, encoded := encodeValue(v, t)
	if !ok || !encoded || current.Signature() != newValue.Signature() {
		logger.Warningf("cannot write %v to %s/%s: reset", v, s.SchemaName(), key)
		s.wrapper.ResetKey(key)
		return
	}
	if variantsEqual(current, newValue) {
		return
	}
	logger.Debugf("write %s/%s = %v", s.SchemaName(), key, newValue)
	s.wrapper.SetValue(key, newValue)
}

// Free leaves the wrapper to the factory that created it.
func (s *GSettingsIntegratedSetting) Free() {}

func decodeKeyList(keys []string) string {
	if len(keys) == 0 {
		return ccs.DisabledBinding
	}
	str := keys[0]
	if str == "disabled" {
		str = strings.ToUpper(str[:1]) + str[1:]
	}
	return str
}

func encodeKey(str string) []string {
	if str == ccs.DisabledBinding {
		str = strings.ToLower(str[:1]) + str[1:]
	}
	return []string{str}
}

func encodeValue(v *ccs.SettingValue, t ccs.SettingType) (dbus.Variant, bool) {
	switch payload := v.Value().(type) {
	case ccs.IntValue:
		if t == ccs.TypeInt {
			return dbus.MakeVariant(int32(payload)), true
		}
	case ccs.BoolValue:
		if t == ccs.TypeBool {
			return dbus.MakeVariant(bool(payload)), true
		}
	case ccs.StringValue:
		switch t {
		case ccs.TypeString:
			return dbus.MakeVariant(string(payload)), true
		case ccs.TypeKey:
			return dbus.MakeVariant(encodeKey(string(payload))), true
		}
	case ccs.KeyValue:
		if t == ccs.TypeKey {
			return dbus.MakeVariant(encodeKey(ccs.KeyBindingToString(ccs.KeyBinding(payload)))), true
		}
	}
	return dbus.Variant{}, false
}

func variantsEqual(a, b dbus.Variant) bool {
	if la, ok := a.Value().([]string); ok {
		lb, ok := b.Value().([]string)
		return ok && strv.Strv(la).Equal(lb)
	}
	return a.Value() == b.Value()
}
