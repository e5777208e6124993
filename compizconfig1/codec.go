// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package compizconfig

import (
	"errors"
	"fmt"

	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
)

var errActionValue = errors.New("action settings have no value")

// valueToVariant encodes a setting value for the bus. Bool, int and float
// values keep their type; everything else travels in its textual form.
func valueToVariant(v ccs.Value, elemType ccs.SettingType) (dbus.Variant, error) {
	switch value := v.(type) {
	case ccs.BoolValue:
		return dbus.MakeVariant(bool(value)), nil
	case ccs.BellValue:
		return dbus.MakeVariant(bool(value)), nil
	case ccs.IntValue:
		return dbus.MakeVariant(int32(value)), nil
	case ccs.FloatValue:
		return dbus.MakeVariant(float64(value)), nil
	case ccs.StringValue:
		return dbus.MakeVariant(string(value)), nil
	case ccs.MatchValue:
		return dbus.MakeVariant(string(value)), nil
	case ccs.ActionValue:
		return dbus.Variant{}, errActionValue
	case ccs.ListValue:
		return listToVariant(value.List, elemType)
	}

	str, err := ccs.ValueToString(v)
	if err != nil {
		return dbus.Variant{}, err
	}
	return dbus.MakeVariant(str), nil
}

func listToVariant(list ccs.SettingValueList, elemType ccs.SettingType) (dbus.Variant, error) {
	switch elemType {
	case ccs.TypeBool:
		return dbus.MakeVariant(append([]bool{}, ccs.GetBoolArrayFromValueList(list)...)), nil
	case ccs.TypeInt:
		return dbus.MakeVariant(append([]int32{}, ccs.GetIntArrayFromValueList(list)...)), nil
	case ccs.TypeFloat:
		floats := ccs.GetFloatArrayFromValueList(list)
		result := make([]float64, len(floats))
		for i, f := range floats {
			result[i] = float64(f)
		}
		return dbus.MakeVariant(result), nil
	}
	items, err := ccs.ValueListToStrings(list)
	if err != nil {
		return dbus.Variant{}, err
	}
	return dbus.MakeVariant(items), nil
}

// variantToValue decodes a bus value for setting.
func variantToValue(variant dbus.Variant, setting *ccs.Setting) (ccs.Value, error) {
	t := setting.Type()
	if t == ccs.TypeList {
		list, err := variantToList(variant, setting)
		if err != nil {
			return nil, err
		}
		return ccs.ListValue{List: list}, nil
	}

	switch native := variant.Value().(type) {
	case bool:
		switch t {
		case ccs.TypeBool:
			return ccs.BoolValue(native), nil
		case ccs.TypeBell:
			return ccs.BellValue(native), nil
		}
	case int32:
		if t == ccs.TypeInt {
			return ccs.IntValue(native), nil
		}
	case float64:
		if t == ccs.TypeFloat {
			return ccs.FloatValue(native), nil
		}
	case string:
		if t != ccs.TypeAction {
			return ccs.ParseValue(t, native)
		}
	}
	return nil, fmt.Errorf("%s value for a %s setting: %w", variant.Signature(), t, ccs.ErrTypeMismatch)
}

func variantToList(variant dbus.Variant, setting *ccs.Setting) (ccs.SettingValueList, error) {
	elemType := setting.Info().List.ListType
	switch native := variant.Value().(type) {
	case []bool:
		if elemType == ccs.TypeBool {
			return ccs.GetValueListFromBoolArray(native, setting), nil
		}
	case []int32:
		if elemType == ccs.TypeInt {
			return ccs.GetValueListFromIntArray(native, setting), nil
		}
	case []float64:
		if elemType == ccs.TypeFloat {
			floats := make([]float32, len(native))
			for i, f := range native {
				floats[i] = float32(f)
			}
			return ccs.GetValueListFromFloatArray(floats, setting), nil
		}
	case []string:
		return ccs.ParseValueList(elemType, native, setting)
	}
	return nil, fmt.Errorf("%s value for a list of %s: %w", variant.Signature(), elemType, ccs.ErrTypeMismatch)
}
