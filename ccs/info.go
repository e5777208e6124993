// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

// IntDesc names one value of an enumerated int setting.
type IntDesc struct {
	Value int32
	Name  string
}

type IntInfo struct {
	Min  int32
	Max  int32
	Desc []IntDesc
}

type FloatInfo struct {
	Min       float32
	Max       float32
	Precision float32
}

type StringRestriction struct {
	Value string
	Name  string
}

type StringInfo struct {
	Restriction  []StringRestriction
	SortStartsAt int
	Extensible   bool
}

type ListInfo struct {
	ListType SettingType
	ListInfo *SettingInfo
}

type ActionInfo struct {
	Internal bool
}

// SettingInfo is the restriction payload of a setting. Which member is
// meaningful depends on the setting type.
type SettingInfo struct {
	Int    IntInfo
	Float  FloatInfo
	String StringInfo
	List   ListInfo
	Action ActionInfo
}

// CopyInfo deep copies the member of info relevant for t.
func CopyInfo(info *SettingInfo, t SettingType) *SettingInfo {
	if info == nil {
		return nil
	}
	c := new(SettingInfo)
	switch t {
	case TypeInt:
		c.Int = info.Int
		c.Int.Desc = append([]IntDesc(nil), info.Int.Desc...)
	case TypeFloat:
		c.Float = info.Float
	case TypeString:
		c.String = info.String
		c.String.Restriction = append([]StringRestriction(nil), info.String.Restriction...)
	case TypeList:
		c.List.ListType = info.List.ListType
		c.List.ListInfo = CopyInfo(info.List.ListInfo, info.List.ListType)
	case TypeAction, TypeKey, TypeButton, TypeEdge, TypeBell:
		c.Action = info.Action
	}
	return c
}

// DescForValue returns the name of an enumerated int value.
func (i *IntInfo) DescForValue(v int32) (string, bool) {
	for _, d := range i.Desc {
		if d.Value == v {
			return d.Name, true
		}
	}
	return "", false
}

func (i *IntInfo) inRange(v int32) bool {
	if i.Min == 0 && i.Max == 0 {
		return true
	}
	return v >= i.Min && v <= i.Max
}

func (f *FloatInfo) inRange(v float32) bool {
	if f.Min == 0 && f.Max == 0 {
		return true
	}
	return v >= f.Min && v <= f.Max
}
