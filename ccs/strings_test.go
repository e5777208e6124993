// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"testing"

	C "gopkg.in/check.v1"
)

type testWrapper struct{}

func init() {
	C.Suite(&testWrapper{})
}

func Test(t *testing.T) {
	C.TestingT(t)
}

const (
	xkT       = 0x0074
	xkF1      = 0xffbe
	xkSuperL  = 0xffeb
	xkSpace   = 0x0020
	xkPercent = 0x0025
)

func (*testWrapper) TestSplitBinding(c *C.C) {
	parts, err := splitBinding("<Control><Alt>t")
	c.Check(err, C.IsNil)
	c.Check(parts, C.DeepEquals, []string{"Control", "Alt", "t"})

	parts, err = splitBinding("<Super>")
	c.Check(err, C.IsNil)
	c.Check(parts, C.DeepEquals, []string{"Super"})

	_, err = splitBinding("<Super>>")
	c.Check(err, C.NotNil)
	_, err = splitBinding("<Super")
	c.Check(err, C.NotNil)
	_, err = splitBinding("<>t")
	c.Check(err, C.NotNil)
}

func (*testWrapper) TestKeyBinding(c *C.C) {
	var tests = []struct {
		str     string
		binding KeyBinding
	}{
		{"<Control><Alt>t", KeyBinding{Keysym: xkT, ModMask: ControlMask | CompAltMask}},
		{"<Super>F1", KeyBinding{Keysym: xkF1, ModMask: CompSuperMask}},
		{"Super_L", KeyBinding{Keysym: xkSuperL}},
		{"<Shift>space", KeyBinding{Keysym: xkSpace, ModMask: ShiftMask}},
		{"<Super>", KeyBinding{ModMask: CompSuperMask}},
	}
	for _, test := range tests {
		binding, err := StringToKeyBinding(test.str)
		c.Check(err, C.IsNil)
		c.Check(binding, C.Equals, test.binding)
		c.Check(KeyBindingToString(binding), C.Equals, test.str)
	}

	binding, err := StringToKeyBinding("<Primary>percent")
	c.Check(err, C.IsNil)
	c.Check(binding, C.Equals, KeyBinding{Keysym: xkPercent, ModMask: ControlMask})

	for _, str := range []string{"", "Disabled", "disabled"} {
		binding, err := StringToKeyBinding(str)
		c.Check(err, C.IsNil)
		c.Check(binding, C.Equals, KeyBinding{})
	}
	c.Check(KeyBindingToString(KeyBinding{}), C.Equals, DisabledBinding)

	_, err = StringToKeyBinding("<Foo>t")
	c.Check(err, C.NotNil)
	_, err = StringToKeyBinding("<Control>NoSuchKey")
	c.Check(err, C.NotNil)
}

func (*testWrapper) TestButtonBinding(c *C.C) {
	binding, err := StringToButtonBinding("<TopLeftEdge><Alt>Button1")
	c.Check(err, C.IsNil)
	c.Check(binding, C.Equals, ButtonBinding{Button: 1, ButtonModMask: CompAltMask, EdgeMask: EdgeTopLeft})
	c.Check(ButtonBindingToString(binding), C.Equals, "<TopLeftEdge><Alt>Button1")

	binding, err = StringToButtonBinding("<Super>Button3")
	c.Check(err, C.IsNil)
	c.Check(binding, C.Equals, ButtonBinding{Button: 3, ButtonModMask: CompSuperMask})

	binding, err = StringToButtonBinding("Disabled")
	c.Check(err, C.IsNil)
	c.Check(binding, C.Equals, ButtonBinding{})
	c.Check(ButtonBindingToString(binding), C.Equals, DisabledBinding)

	_, err = StringToButtonBinding("ButtonX")
	c.Check(err, C.NotNil)
	_, err = StringToButtonBinding("<Nowhere>Button1")
	c.Check(err, C.NotNil)
}

func (*testWrapper) TestModifiers(c *C.C) {
	mods := ShiftMask | Mod4Mask | CompHyperMask
	c.Check(ModifiersToString(mods), C.Equals, "<Shift><Mod4><Hyper>")
	c.Check(StringToModifiers("<Shift><Mod4><Hyper>"), C.Equals, mods)
	c.Check(StringToModifiers("<shift><Unknown>"), C.Equals, ShiftMask)
	c.Check(ModifiersToString(0), C.Equals, "")
}

func (*testWrapper) TestEdges(c *C.C) {
	edges := EdgeLeft | EdgeBottomRight
	c.Check(EdgesToString(edges), C.Equals, "Left | BottomRight")
	c.Check(StringToEdges("Left | BottomRight"), C.Equals, edges)
	c.Check(StringToEdges("Left|Top"), C.Equals, EdgeLeft|EdgeTop)
	c.Check(StringToEdges(""), C.Equals, uint32(0))
}

func (*testWrapper) TestColor(c *C.C) {
	color, err := StringToColor("#ff800040")
	c.Check(err, C.IsNil)
	c.Check(color, C.Equals, Color{Red: 0xffff, Green: 0x8080, Blue: 0, Alpha: 0x4040})
	c.Check(ColorToString(color), C.Equals, "#ff800040")

	color, err = StringToColor("#000000")
	c.Check(err, C.IsNil)
	c.Check(color.Alpha, C.Equals, uint16(0xffff))

	_, err = StringToColor("ff8000")
	c.Check(err, C.NotNil)
	_, err = StringToColor("#gg0000")
	c.Check(err, C.NotNil)
}

func (*testWrapper) TestParseValue(c *C.C) {
	var tests = []struct {
		t     SettingType
		str   string
		value Value
	}{
		{TypeBool, "true", BoolValue(true)},
		{TypeBell, "false", BellValue(false)},
		{TypeInt, "-3", IntValue(-3)},
		{TypeFloat, "0.5", FloatValue(0.5)},
		{TypeString, "Adwaita", StringValue("Adwaita")},
		{TypeMatch, "class=XTerm", MatchValue("class=XTerm")},
		{TypeColor, "#ff800040", ColorValue{Red: 0xffff, Green: 0x8080, Alpha: 0x4040}},
		{TypeEdge, "Top", EdgeValue(EdgeTop)},
		{TypeKey, "<Control>t", KeyValue{Keysym: xkT, ModMask: ControlMask}},
		{TypeButton, "<Alt>Button1", ButtonValue{Button: 1, ButtonModMask: CompAltMask}},
	}
	for _, test := range tests {
		v, err := ParseValue(test.t, test.str)
		c.Check(err, C.IsNil)
		c.Check(v, C.Equals, test.value)
		str, err := ValueToString(v)
		c.Check(err, C.IsNil)
		c.Check(str, C.Equals, test.str)
	}

	_, err := ParseValue(TypeInt, "many")
	c.Check(err, C.NotNil)
	_, err = ParseValue(TypeList, "")
	c.Check(err, C.NotNil)
	_, err = ValueToString(ListValue{})
	c.Check(err, C.NotNil)
}

func (*testWrapper) TestParseValueList(c *C.C) {
	parent := &Setting{name: "active_plugins"}
	list, err := ParseValueList(TypeString, []string{"core", "move"}, parent)
	c.Check(err, C.IsNil)
	c.Check(GetStringArrayFromValueList(list), C.DeepEquals, []string{"core", "move"})
	c.Check(list.Data.Parent(), C.Equals, parent)

	items, err := ValueListToStrings(list)
	c.Check(err, C.IsNil)
	c.Check(items, C.DeepEquals, []string{"core", "move"})

	_, err = ParseValueList(TypeInt, []string{"1", "x"}, parent)
	c.Check(err, C.NotNil)
}
