// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"fmt"
)

// Value is the payload of a setting value. Its dynamic type is the type
// tag, so a payload can never be read as another type.
type Value interface {
	Type() SettingType
}

type (
	BoolValue   bool
	IntValue    int32
	FloatValue  float32
	StringValue string
	ColorValue  Color
	ActionValue struct{}
	KeyValue    KeyBinding
	ButtonValue ButtonBinding
	EdgeValue   uint32
	BellValue   bool
	MatchValue  string
	ListValue   struct {
		List SettingValueList
	}
)

func (BoolValue) Type() SettingType   { return TypeBool }
func (IntValue) Type() SettingType    { return TypeInt }
func (FloatValue) Type() SettingType  { return TypeFloat }
func (StringValue) Type() SettingType { return TypeString }
func (ColorValue) Type() SettingType  { return TypeColor }
func (ActionValue) Type() SettingType { return TypeAction }
func (KeyValue) Type() SettingType    { return TypeKey }
func (ButtonValue) Type() SettingType { return TypeButton }
func (EdgeValue) Type() SettingType   { return TypeEdge }
func (BellValue) Type() SettingType   { return TypeBell }
func (MatchValue) Type() SettingType  { return TypeMatch }
func (ListValue) Type() SettingType   { return TypeList }

// ZeroValue returns the empty payload of t.
func ZeroValue(t SettingType) Value {
	switch t {
	case TypeBool:
		return BoolValue(false)
	case TypeInt:
		return IntValue(0)
	case TypeFloat:
		return FloatValue(0)
	case TypeString:
		return StringValue("")
	case TypeColor:
		return ColorValue{}
	case TypeAction:
		return ActionValue{}
	case TypeKey:
		return KeyValue{}
	case TypeButton:
		return ButtonValue{}
	case TypeEdge:
		return EdgeValue(0)
	case TypeBell:
		return BellValue(false)
	case TypeMatch:
		return MatchValue("")
	case TypeList:
		return ListValue{}
	}
	return nil
}

// SettingValue holds one value of a setting or one element of a list
// setting. A list child is owned by its list. The reference count only
// tracks sharing of default values.
type SettingValue struct {
	value       Value
	parent      *Setting
	isListChild bool
	refCount    int
}

func NewSettingValue(v Value) *SettingValue {
	return &SettingValue{
		value:    v,
		refCount: 1,
	}
}

// NewListChildValue creates an element of a list belonging to parent.
func NewListChildValue(v Value, parent *Setting) *SettingValue {
	sv := NewSettingValue(v)
	sv.isListChild = true
	sv.parent = parent
	return sv
}

func (sv *SettingValue) Value() Value {
	if sv == nil {
		return nil
	}
	return sv.value
}

// Type is TypeNum for a nil or released value.
func (sv *SettingValue) Type() SettingType {
	if sv == nil || sv.value == nil {
		return TypeNum
	}
	return sv.value.Type()
}

func (sv *SettingValue) Parent() *Setting {
	return sv.parent
}

func (sv *SettingValue) SetParent(parent *Setting) {
	sv.parent = parent
}

func (sv *SettingValue) IsListChild() bool {
	return sv.isListChild
}

func (sv *SettingValue) RefCount() int {
	return sv.refCount
}

func (sv *SettingValue) Ref() {
	sv.refCount++
}

func (sv *SettingValue) String() string {
	if sv == nil || sv.value == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%v)", sv.value.Type(), sv.value)
}

func (sv *SettingValue) AsBool() (bool, bool) {
	switch v := sv.Value().(type) {
	case BoolValue:
		return bool(v), true
	case BellValue:
		return bool(v), true
	}
	return false, false
}

func (sv *SettingValue) AsInt() (int32, bool) {
	v, ok := sv.Value().(IntValue)
	return int32(v), ok
}

func (sv *SettingValue) AsFloat() (float32, bool) {
	v, ok := sv.Value().(FloatValue)
	return float32(v), ok
}

func (sv *SettingValue) AsString() (string, bool) {
	switch v := sv.Value().(type) {
	case StringValue:
		return string(v), true
	case MatchValue:
		return string(v), true
	}
	return "", false
}

func (sv *SettingValue) AsColor() (Color, bool) {
	v, ok := sv.Value().(ColorValue)
	return Color(v), ok
}

func (sv *SettingValue) AsKey() (KeyBinding, bool) {
	v, ok := sv.Value().(KeyValue)
	return KeyBinding(v), ok
}

func (sv *SettingValue) AsButton() (ButtonBinding, bool) {
	v, ok := sv.Value().(ButtonValue)
	return ButtonBinding(v), ok
}

func (sv *SettingValue) AsEdge() (uint32, bool) {
	v, ok := sv.Value().(EdgeValue)
	return uint32(v), ok
}

func (sv *SettingValue) AsList() (SettingValueList, bool) {
	v, ok := sv.Value().(ListValue)
	return v.List, ok
}

// FreeSettingValue drops a reference to sv and releases its payload, and
// the elements of a list payload, once none are left. A tag that does not
// match the payload is rejected without touching sv.
func FreeSettingValue(sv *SettingValue, t SettingType) error {
	if sv == nil {
		return nil
	}
	if sv.Type() != t {
		return fmt.Errorf("free %s value as %s: %w", sv.Type(), t, ErrTypeMismatch)
	}
	if sv.refCount > 1 {
		sv.refCount--
		return nil
	}
	sv.refCount = 0
	if lv, ok := sv.value.(ListValue); ok {
		freeListChildren(lv.List)
	}
	sv.value = nil
	sv.parent = nil
	return nil
}

func freeListChildren(list SettingValueList) {
	for list != nil {
		next := list.Next
		if child := list.Data; child != nil {
			_ = FreeSettingValue(child, child.Type())
		}
		list.Next = nil
		list = next
	}
}

// CopyValue returns a deep copy of sv. List elements are copied as children
// of the same parent.
func CopyValue(sv *SettingValue, t SettingType) (*SettingValue, error) {
	if sv == nil {
		return nil, nil
	}
	if sv.Type() != t {
		return nil, fmt.Errorf("copy %s value as %s: %w", sv.Type(), t, ErrTypeMismatch)
	}
	c := NewSettingValue(copyPayload(sv.value, sv.parent))
	c.parent = sv.parent
	c.isListChild = sv.isListChild
	return c, nil
}

func copyPayload(v Value, parent *Setting) Value {
	lv, ok := v.(ListValue)
	if !ok {
		// every other payload is a plain value type
		return v
	}
	return ListValue{List: copyValueList(lv.List, parent)}
}

func copyValueList(list SettingValueList, parent *Setting) SettingValueList {
	var head, tail SettingValueList
	for l := list; l != nil; l = l.Next {
		if l.Data == nil {
			continue
		}
		child := NewListChildValue(copyPayload(l.Data.value, parent), parent)
		node := &List[*SettingValue]{Data: child}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
	return head
}

// CheckValueEq compares two values of the given types. Lists compare
// element by element.
func CheckValueEq(a *SettingValue, ta SettingType, b *SettingValue, tb SettingType) bool {
	if ta != tb {
		return false
	}
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != ta || b.Type() != tb {
		return false
	}
	return payloadEqual(a.value, b.value)
}

func payloadEqual(a, b Value) bool {
	la, ok := a.(ListValue)
	if !ok {
		return a == b
	}
	lb := b.(ListValue)
	l1, l2 := la.List, lb.List
	for l1 != nil && l2 != nil {
		if !CheckValueEq(l1.Data, l1.Data.Type(), l2.Data, l2.Data.Type()) {
			return false
		}
		l1, l2 = l1.Next, l2.Next
	}
	return l1 == nil && l2 == nil
}
