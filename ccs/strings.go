// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	x "github.com/linuxdeepin/go-x11-client"
	"github.com/linuxdeepin/go-x11-client/util/keysyms"
)

// DisabledBinding is the text of a key or button binding that is unset.
const DisabledBinding = "Disabled"

type modifierName struct {
	name string
	mask uint32
}

var modifierNames = []modifierName{
	{"Shift", ShiftMask},
	{"Control", ControlMask},
	{"Mod1", Mod1Mask},
	{"Mod2", Mod2Mask},
	{"Mod3", Mod3Mask},
	{"Mod4", Mod4Mask},
	{"Mod5", Mod5Mask},
	{"Alt", CompAltMask},
	{"Meta", CompMetaMask},
	{"Super", CompSuperMask},
	{"Hyper", CompHyperMask},
	{"ModeSwitch", CompModeSwitchMask},
}

var edgeNames = []modifierName{
	{"Left", EdgeLeft},
	{"Right", EdgeRight},
	{"Top", EdgeTop},
	{"Bottom", EdgeBottom},
	{"TopLeft", EdgeTopLeft},
	{"TopRight", EdgeTopRight},
	{"BottomLeft", EdgeBottomLeft},
	{"BottomRight", EdgeBottomRight},
}

// ModifiersToString renders mods as "<Shift><Control>".
func ModifiersToString(mods uint32) string {
	var buf bytes.Buffer
	for _, m := range modifierNames {
		if mods&m.mask != 0 {
			buf.WriteString("<" + m.name + ">")
		}
	}
	return buf.String()
}

// StringToModifiers collects every known "<Name>" in str. Unknown names are
// ignored.
func StringToModifiers(str string) uint32 {
	var mods uint32
	parts, _ := splitBinding(str)
	for _, part := range parts {
		if mask, ok := lookupModifier(part); ok {
			mods |= mask
		}
	}
	return mods
}

func lookupModifier(name string) (uint32, bool) {
	if strings.EqualFold(name, "Primary") {
		return ControlMask, true
	}
	for _, m := range modifierNames {
		if strings.EqualFold(m.name, name) {
			return m.mask, true
		}
	}
	return 0, false
}

// EdgesToString renders an edge mask as "Left | TopRight".
func EdgesToString(edges uint32) string {
	var names []string
	for _, e := range edgeNames {
		if edges&e.mask != 0 {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, " | ")
}

func StringToEdges(str string) uint32 {
	var edges uint32
	for _, part := range strings.Split(str, "|") {
		part = strings.TrimSpace(part)
		for _, e := range edgeNames {
			if part == e.name {
				edges |= e.mask
			}
		}
	}
	return edges
}

// KeyBindingToString renders "<Control><Alt>t". An empty binding is
// DisabledBinding.
func KeyBindingToString(binding KeyBinding) string {
	str := ModifiersToString(binding.ModMask)
	if binding.Keysym != 0 {
		name, ok := keysyms.KeysymToString(x.Keysym(binding.Keysym))
		if ok {
			str += name
		}
	}
	if str == "" {
		return DisabledBinding
	}
	return str
}

func StringToKeyBinding(str string) (KeyBinding, error) {
	str = strings.TrimSpace(str)
	if str == "" || strings.EqualFold(str, DisabledBinding) {
		return KeyBinding{}, nil
	}

	parts, err := splitBinding(str)
	if err != nil {
		return KeyBinding{}, err
	}
	var binding KeyBinding
	for i, part := range parts {
		last := i == len(parts)-1
		if mask, ok := lookupModifier(part); ok && (!last || isModifierPart(str)) {
			binding.ModMask |= mask
			continue
		}
		if !last {
			return KeyBinding{}, errors.New("unknown modifier " + part)
		}
		sym, ok := keysyms.StringToKeysym(part)
		if !ok {
			return KeyBinding{}, errors.New("bad key " + part)
		}
		binding.Keysym = uint32(sym)
	}
	return binding, nil
}

// isModifierPart reports whether the last part of str is written as a
// modifier, as in "<Super>".
func isModifierPart(str string) bool {
	return strings.HasSuffix(str, ">")
}

// ButtonBindingToString renders "<TopLeftEdge><Control>Button1".
func ButtonBindingToString(binding ButtonBinding) string {
	var buf bytes.Buffer
	for _, e := range edgeNames {
		if binding.EdgeMask&e.mask != 0 {
			buf.WriteString("<" + e.name + "Edge>")
		}
	}
	buf.WriteString(ModifiersToString(binding.ButtonModMask))
	if binding.Button != 0 {
		buf.WriteString("Button" + strconv.Itoa(int(binding.Button)))
	}
	if buf.Len() == 0 {
		return DisabledBinding
	}
	return buf.String()
}

func StringToButtonBinding(str string) (ButtonBinding, error) {
	str = strings.TrimSpace(str)
	if str == "" || strings.EqualFold(str, DisabledBinding) {
		return ButtonBinding{}, nil
	}

	parts, err := splitBinding(str)
	if err != nil {
		return ButtonBinding{}, err
	}
	var binding ButtonBinding
parts:
	for _, part := range parts {
		if strings.HasSuffix(part, "Edge") {
			name := strings.TrimSuffix(part, "Edge")
			for _, e := range edgeNames {
				if name == e.name {
					binding.EdgeMask |= e.mask
					continue parts
				}
			}
		}
		if mask, ok := lookupModifier(part); ok {
			binding.ButtonModMask |= mask
			continue
		}
		if strings.HasPrefix(part, "Button") {
			n, err := strconv.Atoi(strings.TrimPrefix(part, "Button"))
			if err != nil {
				return ButtonBinding{}, fmt.Errorf("bad button %q: %w", part, err)
			}
			binding.Button = int32(n)
			continue
		}
		return ButtonBinding{}, errors.New("unknown button part " + part)
	}
	return binding, nil
}

// splitBinding splits "<A><B>rest" into A, B and rest.
func splitBinding(str string) ([]string, error) {
	var parts []string
	reader := strings.NewReader(str)
	for {
		ch, err := reader.ReadByte()
		if err != nil {
			break
		}
		if ch != '<' {
			_ = reader.UnreadByte()
			var rest bytes.Buffer
			for {
				ch, err := reader.ReadByte()
				if err != nil {
					break
				}
				if ch == '<' || ch == '>' {
					return nil, errors.New("unexpected < or > found")
				}
				rest.WriteByte(ch)
			}
			parts = append(parts, rest.String())
			break
		}

		var name bytes.Buffer
	loop:
		for {
			ch, err := reader.ReadByte()
			if err != nil {
				return nil, errors.New("> not found")
			}
			switch ch {
			case '>':
				break loop
			case '<':
				return nil, errors.New("unexpected < found")
			default:
				name.WriteByte(ch)
			}
		}
		if name.Len() == 0 {
			return nil, errors.New("empty modifier found")
		}
		parts = append(parts, name.String())
	}
	return parts, nil
}

// ColorToString renders "#rrggbbaa" from the high byte of each channel.
func ColorToString(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.Red>>8, c.Green>>8, c.Blue>>8, c.Alpha>>8)
}

// StringToColor parses "#rrggbb" or "#rrggbbaa". A missing alpha is opaque.
func StringToColor(str string) (Color, error) {
	str = strings.TrimSpace(str)
	if !strings.HasPrefix(str, "#") || (len(str) != 7 && len(str) != 9) {
		return Color{}, fmt.Errorf("bad color %q", str)
	}
	hex := str[1:]
	if len(hex) == 6 {
		hex += "ff"
	}
	var channels [4]uint16
	for i := range channels {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("bad color %q: %w", str, err)
		}
		channels[i] = uint16(v)<<8 | uint16(v)
	}
	return Color{
		Red:   channels[0],
		Green: channels[1],
		Blue:  channels[2],
		Alpha: channels[3],
	}, nil
}

// ValueToString renders a non-list payload in its textual form.
func ValueToString(v Value) (string, error) {
	switch vv := v.(type) {
	case BoolValue:
		return strconv.FormatBool(bool(vv)), nil
	case BellValue:
		return strconv.FormatBool(bool(vv)), nil
	case IntValue:
		return strconv.FormatInt(int64(vv), 10), nil
	case FloatValue:
		return strconv.FormatFloat(float64(vv), 'g', -1, 32), nil
	case StringValue:
		return string(vv), nil
	case MatchValue:
		return string(vv), nil
	case ColorValue:
		return ColorToString(Color(vv)), nil
	case KeyValue:
		return KeyBindingToString(KeyBinding(vv)), nil
	case ButtonValue:
		return ButtonBindingToString(ButtonBinding(vv)), nil
	case EdgeValue:
		return EdgesToString(uint32(vv)), nil
	case ActionValue:
		return "", nil
	}
	return "", fmt.Errorf("no text form for %T: %w", v, ErrNotSupported)
}

// ParseValue is the inverse of ValueToString for type t.
func ParseValue(t SettingType, str string) (Value, error) {
	switch t {
	case TypeBool, TypeBell:
		b, err := strconv.ParseBool(strings.TrimSpace(str))
		if err != nil {
			return nil, err
		}
		if t == TypeBell {
			return BellValue(b), nil
		}
		return BoolValue(b), nil
	case TypeInt:
		i, err := strconv.ParseInt(strings.TrimSpace(str), 10, 32)
		if err != nil {
			return nil, err
		}
		return IntValue(i), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 32)
		if err != nil {
			return nil, err
		}
		return FloatValue(f), nil
	case TypeString:
		return StringValue(str), nil
	case TypeMatch:
		return MatchValue(str), nil
	case TypeColor:
		c, err := StringToColor(str)
		if err != nil {
			return nil, err
		}
		return ColorValue(c), nil
	case TypeKey:
		k, err := StringToKeyBinding(str)
		if err != nil {
			return nil, err
		}
		return KeyValue(k), nil
	case TypeButton:
		b, err := StringToButtonBinding(str)
		if err != nil {
			return nil, err
		}
		return ButtonValue(b), nil
	case TypeEdge:
		return EdgeValue(StringToEdges(str)), nil
	case TypeAction:
		return ActionValue{}, nil
	}
	return nil, fmt.Errorf("parse %s: %w", t, ErrNotSupported)
}

// ParseValueList builds a list of element type t owned by parent.
func ParseValueList(t SettingType, items []string, parent *Setting) (SettingValueList, error) {
	var list SettingValueList
	for _, item := range items {
		v, err := ParseValue(t, item)
		if err != nil {
			SettingValueListOps.Free(list, true)
			return nil, err
		}
		list = SettingValueListOps.Append(list, NewListChildValue(v, parent))
	}
	return list, nil
}

// ValueListToStrings renders every element of list.
func ValueListToStrings(list SettingValueList) ([]string, error) {
	items := make([]string, 0, SettingValueListOps.Length(list))
	for l := list; l != nil; l = l.Next {
		str, err := ValueToString(l.Data.Value())
		if err != nil {
			return nil, err
		}
		items = append(items, str)
	}
	return items, nil
}
