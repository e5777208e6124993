// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlugin(ctx *Context) *Plugin {
	p := NewPlugin(PluginDefinition{Name: "core", Category: "General"})
	NewSetting(p, SettingDefinition{
		Name:    "hsize",
		Type:    TypeInt,
		Info:    SettingInfo{Int: IntInfo{Min: 1, Max: 32}},
		Default: IntValue(4),
	})
	NewSetting(p, SettingDefinition{
		Name:    "click_to_focus",
		Type:    TypeBool,
		Default: BoolValue(true),
	})
	NewSetting(p, SettingDefinition{
		Name: "active_plugins",
		Type: TypeList,
		Info: SettingInfo{List: ListInfo{ListType: TypeString}},
		Default: ListValue{
			List: GetValueListFromStringArray([]string{"core", "move"}, nil),
		},
	})
	NewSetting(p, SettingDefinition{
		Name:    "opacity",
		Type:    TypeFloat,
		Info:    SettingInfo{Float: FloatInfo{Min: 0, Max: 1, Precision: 0.1}},
		Default: FloatValue(1),
	})
	if ctx != nil {
		_ = ctx.AddPlugin(p)
	}
	return p
}

func TestSetIntStatuses(t *testing.T) {
	ctx := NewContext(0)
	p := newTestPlugin(ctx)
	s := p.FindSetting("hsize")
	require.NotNil(t, s)

	assert.True(t, s.IsDefault())
	assert.Same(t, s.DefaultValue(), s.Value())

	assert.Equal(t, SetIsDefault, s.SetInt(4, true))
	assert.Nil(t, ctx.ChangedSettings())

	assert.Equal(t, SetToNewValue, s.SetInt(2, true))
	assert.False(t, s.IsDefault())
	v, ok := s.GetInt()
	assert.True(t, ok)
	assert.Equal(t, int32(2), v)
	assert.Equal(t, []*Setting{s}, SettingListOps.ToSlice(ctx.ChangedSettings()))

	assert.Equal(t, SetToSameValue, s.SetInt(2, true))
	assert.Equal(t, SetFailed, s.SetInt(64, true))
	assert.Equal(t, SetFailed, s.SetBool(true, true))

	assert.Equal(t, SetToDefault, s.SetInt(4, true))
	assert.True(t, s.IsDefault())
	assert.Equal(t, 1, SettingListOps.Length(ctx.ChangedSettings()))
}

func TestSetWithoutProcessChanged(t *testing.T) {
	ctx := NewContext(0)
	p := newTestPlugin(ctx)
	s := p.FindSetting("click_to_focus")

	assert.Equal(t, SetToNewValue, s.SetBool(false, false))
	assert.Nil(t, ctx.ChangedSettings())
}

func TestSetFloatRange(t *testing.T) {
	p := newTestPlugin(nil)
	s := p.FindSetting("opacity")

	assert.Equal(t, SetFailed, s.SetFloat(1.5, false))
	assert.Equal(t, SetToNewValue, s.SetFloat(0.5, false))
	f, ok := s.GetFloat()
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), f)
}

func TestSetList(t *testing.T) {
	p := newTestPlugin(nil)
	s := p.FindSetting("active_plugins")

	def, ok := s.GetList()
	require.True(t, ok)
	assert.Equal(t, []string{"core", "move"}, GetStringArrayFromValueList(def))
	assert.Same(t, s, def.Data.Parent())

	assert.Equal(t, SetFailed, s.SetList(GetValueListFromIntArray([]int32{1}, nil), false))
	assert.Equal(t, SetIsDefault,
		s.SetList(GetValueListFromStringArray([]string{"core", "move"}, nil), false))

	status := s.SetList(GetValueListFromStringArray([]string{"core", "move", "resize"}, nil), false)
	assert.Equal(t, SetToNewValue, status)
	cur, _ := s.GetList()
	assert.Equal(t, []string{"core", "move", "resize"}, GetStringArrayFromValueList(cur))
	assert.Same(t, s, cur.Data.Parent())

	clone := s.CloneValue()
	require.NotNil(t, clone)
	assert.NotSame(t, s.Value(), clone)
	assert.True(t, CheckValueEq(s.Value(), TypeList, clone, TypeList))
}

func TestSetValueAndReset(t *testing.T) {
	ctx := NewContext(0)
	p := newTestPlugin(ctx)
	s := p.FindSetting("hsize")

	assert.Equal(t, SetToNewValue, s.SetValue(NewSettingValue(IntValue(8)), false))
	s.ResetToDefault(true)
	assert.True(t, s.IsDefault())
	v, _ := s.GetInt()
	assert.Equal(t, int32(4), v)
	assert.Equal(t, 1, SettingListOps.Length(ctx.ChangedSettings()))

	// reset of a default setting is not a change
	ctx.ClearChangedSettings()
	s.ResetToDefault(true)
	assert.Nil(t, ctx.ChangedSettings())
}

func TestWrongDefaultFallsBackToZero(t *testing.T) {
	p := NewPlugin(PluginDefinition{Name: "p"})
	s := NewSetting(p, SettingDefinition{Name: "s", Type: TypeString, Default: IntValue(1)})
	str, ok := s.GetString()
	assert.True(t, ok)
	assert.Equal(t, "", str)
	assert.Same(t, s, p.FindSetting("s"))
	assert.Same(t, p, s.Plugin())
}

func TestCopyInfo(t *testing.T) {
	info := &SettingInfo{Int: IntInfo{Min: 0, Max: 2, Desc: []IntDesc{{0, "None"}, {1, "Fade"}}}}
	c := CopyInfo(info, TypeInt)
	c.Int.Desc[0].Name = "changed"
	assert.Equal(t, "None", info.Int.Desc[0].Name)

	name, ok := c.Int.DescForValue(1)
	assert.True(t, ok)
	assert.Equal(t, "Fade", name)

	list := &SettingInfo{List: ListInfo{ListType: TypeInt, ListInfo: info}}
	lc := CopyInfo(list, TypeList)
	require.NotNil(t, lc.List.ListInfo)
	assert.NotSame(t, info, lc.List.ListInfo)
	assert.Equal(t, int32(2), lc.List.ListInfo.Int.Max)
}
