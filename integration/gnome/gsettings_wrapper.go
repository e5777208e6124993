// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package gnome

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-gir/gio-2.0"
	"github.com/linuxdeepin/go-lib/gsettings"
	"github.com/linuxdeepin/go-lib/strv"
	dutils "github.com/linuxdeepin/go-lib/utils"
)

// GSettingsWrapper is the native store of one schema. Values are variants
// whose signature is the GVariant type of the key.
type GSettingsWrapper interface {
	GetValue(key string) (dbus.Variant, bool)
	SetValue(key string, value dbus.Variant) bool
	ResetKey(key string)
	ListKeys() []string
	SchemaName() string
	ConnectChanged(cb func(key string))
	Unref()
}

// WrapperConstructor opens schema. keyTypes holds the GVariant type of
// every key the integration uses.
type WrapperConstructor func(schema string, keyTypes map[string]string) GSettingsWrapper

type gioWrapper struct {
	schema   string
	gs       *gio.Settings
	keyList  []string
	keyTypes map[string]string
}

// NewGioWrapper returns nil when schema is not installed.
func NewGioWrapper(schema string, keyTypes map[string]string) GSettingsWrapper {
	gs, err := dutils.CheckAndNewGSettings(schema)
	if err != nil {
		logger.Debug("failed to new gsettings:", err)
		return nil
	}
	return &gioWrapper{
		schema:   schema,
		gs:       gs,
		keyList:  gs.ListKeys(),
		keyTypes: keyTypes,
	}
}

func (w *gioWrapper) hasKey(key string) bool {
	if !strv.Strv(w.keyList).Contains(key) {
		logger.Warningf("key %v not found in %s", key, w.schema)
		return false
	}
	return true
}

func (w *gioWrapper) GetValue(key string) (dbus.Variant, bool) {
	if !w.hasKey(key) {
		return dbus.Variant{}, false
	}
	switch w.keyTypes[key] {
	case "i":
		return dbus.MakeVariant(w.gs.GetInt(key)), true
	case "b":
		return dbus.MakeVariant(w.gs.GetBoolean(key)), true
	case "s":
		return dbus.MakeVariant(w.gs.GetString(key)), true
	case "as":
		return dbus.MakeVariant(w.gs.GetStrv(key)), true
	case "d":
		return dbus.MakeVariant(w.gs.GetDouble(key)), true
	}
	logger.Warningf("unsupported type %q of %s/%s", w.keyTypes[key], w.schema, key)
	return dbus.Variant{}, false
}

func (w *gioWrapper) SetValue(key string, value dbus.Variant) bool {
	if !w.hasKey(key) {
		return false
	}
	switch v := value.Value().(type) {
	case int32:
		return w.gs.SetInt(key, v)
	case bool:
		return w.gs.SetBoolean(key, v)
	case string:
		return w.gs.SetString(key, v)
	case []string:
		return w.gs.SetStrv(key, v)
	case float64:
		return w.gs.SetDouble(key, v)
	}
	logger.Warningf("unsupported value %v for %s/%s", value, w.schema, key)
	return false
}

func (w *gioWrapper) ResetKey(key string) {
	if !w.hasKey(key) {
		return
	}
	w.gs.Reset(key)
}

func (w *gioWrapper) ListKeys() []string {
	return w.keyList
}

func (w *gioWrapper) SchemaName() string {
	return w.schema
}

func (w *gioWrapper) ConnectChanged(cb func(key string)) {
	gsettings.ConnectChanged(w.schema, "*", cb)
}

func (w *gioWrapper) Unref() {
	w.gs.Unref()
}
