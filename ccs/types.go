// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"errors"
	"strings"

	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("compizconfig/ccs")

// SetLogLevel changes the level of the package logger.
func SetLogLevel(pri log.Priority) {
	logger.SetLogLevel(pri)
}

type SettingType int

const (
	TypeBool SettingType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeColor
	TypeAction
	TypeKey
	TypeButton
	TypeEdge
	TypeBell
	TypeMatch
	TypeList
	TypeNum
)

var settingTypeNames = [...]string{
	TypeBool:   "Bool",
	TypeInt:    "Int",
	TypeFloat:  "Float",
	TypeString: "String",
	TypeColor:  "Color",
	TypeAction: "Action",
	TypeKey:    "Key",
	TypeButton: "Button",
	TypeEdge:   "Edge",
	TypeBell:   "Bell",
	TypeMatch:  "Match",
	TypeList:   "List",
}

func (t SettingType) String() string {
	if t >= 0 && t < TypeNum {
		return settingTypeNames[t]
	}
	return "Invalid"
}

// ParseSettingType accepts the names returned by SettingType.String,
// case-insensitively.
func ParseSettingType(name string) (SettingType, bool) {
	for i, n := range settingTypeNames {
		if strings.EqualFold(n, name) {
			return SettingType(i), true
		}
	}
	return TypeNum, false
}

// Color is RGBA with 16 bits per channel.
type Color struct {
	Red   uint16
	Green uint16
	Blue  uint16
	Alpha uint16
}

type KeyBinding struct {
	Keysym  uint32
	ModMask uint32
}

type ButtonBinding struct {
	Button        int32
	ButtonModMask uint32
	EdgeMask      uint32
}

// X modifier masks followed by the virtual modifiers compiz resolves at
// runtime.
const (
	ShiftMask          uint32 = 1 << 0
	LockMask           uint32 = 1 << 1
	ControlMask        uint32 = 1 << 2
	Mod1Mask           uint32 = 1 << 3
	Mod2Mask           uint32 = 1 << 4
	Mod3Mask           uint32 = 1 << 5
	Mod4Mask           uint32 = 1 << 6
	Mod5Mask           uint32 = 1 << 7
	CompAltMask        uint32 = 1 << 16
	CompMetaMask       uint32 = 1 << 17
	CompSuperMask      uint32 = 1 << 18
	CompHyperMask      uint32 = 1 << 19
	CompModeSwitchMask uint32 = 1 << 20
)

const (
	EdgeLeft uint32 = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
	EdgeTopLeft
	EdgeTopRight
	EdgeBottomLeft
	EdgeBottomRight

	EdgeAll = EdgeLeft | EdgeRight | EdgeTop | EdgeBottom |
		EdgeTopLeft | EdgeTopRight | EdgeBottomLeft | EdgeBottomRight
)

// SetStatus is the outcome of a setter.
type SetStatus int

const (
	SetFailed SetStatus = iota
	SetIsDefault
	SetToDefault
	SetToSameValue
	SetToNewValue
)

func (s SetStatus) String() string {
	switch s {
	case SetFailed:
		return "SetFailed"
	case SetIsDefault:
		return "SetIsDefault"
	case SetToDefault:
		return "SetToDefault"
	case SetToSameValue:
		return "SetToSameValue"
	case SetToNewValue:
		return "SetToNewValue"
	}
	return "SetUnknown"
}

// Changed reports whether the setting value moved.
func (s SetStatus) Changed() bool {
	return s == SetToDefault || s == SetToNewValue
}

var (
	ErrTypeMismatch     = errors.New("setting type mismatch")
	ErrNoBackend        = errors.New("no backend loaded")
	ErrBackendNotFound  = errors.New("backend not found")
	ErrPluginNotFound   = errors.New("plugin not found")
	ErrSettingNotFound  = errors.New("setting not found")
	ErrAllocationFailed = errors.New("allocation failed")
	ErrNotSupported     = errors.New("operation is not supported")
)
