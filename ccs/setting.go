// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

// SettingDefinition describes a setting as read from plugin metadata.
type SettingDefinition struct {
	Name      string
	ShortDesc string
	LongDesc  string
	Group     string
	SubGroup  string
	Hints     string
	Type      SettingType
	Info      SettingInfo
	// Default is the zero value of Type when nil.
	Default Value
}

// Setting is one typed option of a plugin. Until it is set, the current
// value is the default value itself.
type Setting struct {
	name      string
	shortDesc string
	longDesc  string
	group     string
	subGroup  string
	hints     string
	typ       SettingType
	info      SettingInfo

	defaultValue *SettingValue
	value        *SettingValue
	isDefault    bool

	parent *Plugin
}

// NewSetting creates a setting of plugin and adds it to the plugin. A
// default of the wrong type is replaced by the zero value.
func NewSetting(plugin *Plugin, def SettingDefinition) *Setting {
	s := &Setting{
		name:      def.Name,
		shortDesc: def.ShortDesc,
		longDesc:  def.LongDesc,
		group:     def.Group,
		subGroup:  def.SubGroup,
		hints:     def.Hints,
		typ:       def.Type,
		info:      def.Info,
		parent:    plugin,
	}

	defValue := def.Default
	if defValue == nil || defValue.Type() != def.Type {
		if defValue != nil {
			logger.Warningf("default of %s is %s, want %s", def.Name, defValue.Type(), def.Type)
		}
		defValue = ZeroValue(def.Type)
	}
	s.defaultValue = NewSettingValue(copyPayload(defValue, s))
	s.defaultValue.parent = s
	s.value = s.defaultValue
	s.isDefault = true

	if plugin != nil {
		plugin.addSetting(s)
	}
	return s
}

func (s *Setting) Name() string {
	return s.name
}

func (s *Setting) ShortDesc() string {
	return s.shortDesc
}

func (s *Setting) LongDesc() string {
	return s.longDesc
}

func (s *Setting) Group() string {
	return s.group
}

func (s *Setting) SubGroup() string {
	return s.subGroup
}

func (s *Setting) Hints() string {
	return s.hints
}

func (s *Setting) Type() SettingType {
	return s.typ
}

func (s *Setting) Info() *SettingInfo {
	return &s.info
}

func (s *Setting) Plugin() *Plugin {
	return s.parent
}

func (s *Setting) context() *Context {
	if s.parent == nil {
		return nil
	}
	return s.parent.context
}

// Value returns the current value. It stays owned by the setting.
func (s *Setting) Value() *SettingValue {
	return s.value
}

// CloneValue returns a copy of the current value owned by the caller.
func (s *Setting) CloneValue() *SettingValue {
	c, err := CopyValue(s.value, s.typ)
	if err != nil {
		logger.Warning(err)
		return nil
	}
	return c
}

func (s *Setting) DefaultValue() *SettingValue {
	return s.defaultValue
}

func (s *Setting) IsDefault() bool {
	return s.isDefault
}

// IsIntegrated reports whether the value lives in the desktop store.
func (s *Setting) IsIntegrated() bool {
	ctx := s.context()
	if ctx == nil || !ctx.integrationEnabled || s.parent == nil {
		return false
	}
	return ctx.Integration().GetIntegratedOptionIndex(s.parent.name, s.name) != nil
}

func (s *Setting) IsReadOnly() bool {
	ctx := s.context()
	if ctx == nil || ctx.backendObj == nil {
		return false
	}
	checker, ok := ctx.backendObj.GetInterface(ReadOnlyCheckerKind.Type()).(ReadOnlyChecker)
	if !ok {
		return false
	}
	return checker.SettingIsReadOnly(s)
}

func (s *Setting) GetBool() (bool, bool) {
	if s.typ != TypeBool {
		return false, false
	}
	return s.value.AsBool()
}

func (s *Setting) GetInt() (int32, bool) {
	return s.value.AsInt()
}

func (s *Setting) GetFloat() (float32, bool) {
	return s.value.AsFloat()
}

func (s *Setting) GetString() (string, bool) {
	if s.typ != TypeString {
		return "", false
	}
	return s.value.AsString()
}

func (s *Setting) GetColor() (Color, bool) {
	return s.value.AsColor()
}

func (s *Setting) GetKey() (KeyBinding, bool) {
	return s.value.AsKey()
}

func (s *Setting) GetButton() (ButtonBinding, bool) {
	return s.value.AsButton()
}

func (s *Setting) GetEdge() (uint32, bool) {
	return s.value.AsEdge()
}

func (s *Setting) GetBell() (bool, bool) {
	if s.typ != TypeBell {
		return false, false
	}
	return s.value.AsBool()
}

func (s *Setting) GetMatch() (string, bool) {
	if s.typ != TypeMatch {
		return "", false
	}
	return s.value.AsString()
}

// GetList returns the current list. It stays owned by the setting.
func (s *Setting) GetList() (SettingValueList, bool) {
	return s.value.AsList()
}

func (s *Setting) SetBool(data bool, processChanged bool) SetStatus {
	return s.set(BoolValue(data), processChanged)
}

func (s *Setting) SetInt(data int32, processChanged bool) SetStatus {
	return s.set(IntValue(data), processChanged)
}

func (s *Setting) SetFloat(data float32, processChanged bool) SetStatus {
	return s.set(FloatValue(data), processChanged)
}

func (s *Setting) SetString(data string, processChanged bool) SetStatus {
	return s.set(StringValue(data), processChanged)
}

func (s *Setting) SetColor(data Color, processChanged bool) SetStatus {
	return s.set(ColorValue(data), processChanged)
}

func (s *Setting) SetKey(data KeyBinding, processChanged bool) SetStatus {
	return s.set(KeyValue(data), processChanged)
}

func (s *Setting) SetButton(data ButtonBinding, processChanged bool) SetStatus {
	return s.set(ButtonValue(data), processChanged)
}

func (s *Setting) SetEdge(data uint32, processChanged bool) SetStatus {
	return s.set(EdgeValue(data), processChanged)
}

func (s *Setting) SetBell(data bool, processChanged bool) SetStatus {
	return s.set(BellValue(data), processChanged)
}

func (s *Setting) SetMatch(data string, processChanged bool) SetStatus {
	return s.set(MatchValue(data), processChanged)
}

// SetList copies data into the setting. Every element must be of the list
// type declared in the setting info.
func (s *Setting) SetList(data SettingValueList, processChanged bool) SetStatus {
	if s.typ != TypeList {
		return SetFailed
	}
	for l := data; l != nil; l = l.Next {
		if l.Data.Type() != s.info.List.ListType {
			logger.Debugf("list element %s does not fit %s/%s", l.Data.Type(), s.name, s.info.List.ListType)
			return SetFailed
		}
	}
	return s.set(ListValue{List: data}, processChanged)
}

// SetValue copies the payload of v into the setting.
func (s *Setting) SetValue(v *SettingValue, processChanged bool) SetStatus {
	if lv, ok := v.Value().(ListValue); ok {
		return s.SetList(lv.List, processChanged)
	}
	return s.set(v.Value(), processChanged)
}

func (s *Setting) set(data Value, processChanged bool) SetStatus {
	if data == nil || data.Type() != s.typ {
		return SetFailed
	}

	if s.isDefault && payloadEqual(s.defaultValue.value, data) {
		return SetIsDefault
	}
	if !s.isDefault && payloadEqual(s.defaultValue.value, data) {
		s.ResetToDefault(processChanged)
		return SetToDefault
	}
	if payloadEqual(s.value.value, data) {
		return SetToSameValue
	}
	if !s.inRange(data) {
		return SetFailed
	}

	if !s.isDefault {
		_ = FreeSettingValue(s.value, s.typ)
	}
	s.value = NewSettingValue(copyPayload(data, s))
	s.value.parent = s
	s.isDefault = false

	if processChanged {
		s.changed()
	}
	return SetToNewValue
}

func (s *Setting) inRange(data Value) bool {
	switch v := data.(type) {
	case IntValue:
		return s.info.Int.inRange(int32(v))
	case FloatValue:
		return s.info.Float.inRange(float32(v))
	}
	return true
}

// ResetToDefault drops the current value in favour of the default.
func (s *Setting) ResetToDefault(processChanged bool) {
	if s.isDefault {
		return
	}
	_ = FreeSettingValue(s.value, s.typ)
	s.value = s.defaultValue
	s.isDefault = true

	if processChanged {
		s.changed()
	}
}

func (s *Setting) changed() {
	if ctx := s.context(); ctx != nil {
		ctx.AddChangedSetting(s)
	}
}

// Free releases the current and default values.
func (s *Setting) Free() {
	if !s.isDefault {
		_ = FreeSettingValue(s.value, s.typ)
	}
	s.value = nil
	_ = FreeSettingValue(s.defaultValue, s.typ)
	s.defaultValue = nil
	s.isDefault = true
}
