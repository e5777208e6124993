// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"fmt"

	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
)

// ListStorageType decides whether a wrapper owns the list it wraps.
type ListStorageType int

const (
	// StorageShallow leaves the nodes to whoever created the list.
	StorageShallow ListStorageType = iota
	// StorageDeep frees nodes and payloads with the last reference.
	StorageDeep
)

var SettingValueListKind = ccsobject.InterfaceKind{Name: "SettingValueList"}

// SettingValueListWrapper shares a list of setting values between owners.
// Elements appended through the wrapper become children of its setting.
type SettingValueListWrapper struct {
	ccsobject.Object

	list     SettingValueList
	ops      ListOps[*SettingValue]
	storage  ListStorageType
	elemType SettingType
	info     *SettingInfo
	setting  *Setting
}

// NewSettingValueListWrapper returns a wrapper holding one reference, or nil
// when the allocator fails.
func NewSettingValueListWrapper(list SettingValueList, storage ListStorageType,
	elemType SettingType, info *SettingInfo, setting *Setting,
	alloc ccsobject.Allocator) *SettingValueListWrapper {
	if alloc == nil {
		alloc = ccsobject.DefaultAllocator
	}
	if !alloc.Calloc(1, 1) {
		logger.Warning("failed to allocate setting value list wrapper")
		return nil
	}

	w := &SettingValueListWrapper{
		list:     list,
		ops:      SettingValueListOps.WithAllocator(alloc),
		storage:  storage,
		elemType: elemType,
		info:     info,
		setting:  setting,
	}
	w.Object.Init(alloc)
	if !w.AddInterface(w, SettingValueListKind.Type()) {
		alloc.Free()
		return nil
	}
	w.Object.Ref()
	return w
}

// Append adds v at the end of the list. v must be of the element type.
func (w *SettingValueListWrapper) Append(v *SettingValue) error {
	if v.Type() != w.elemType {
		return fmt.Errorf("append %s to list of %s: %w", v.Type(), w.elemType, ErrTypeMismatch)
	}
	n := w.ops.Length(w.list)
	list := w.ops.Append(w.list, v)
	if w.ops.Length(list) == n {
		return ErrAllocationFailed
	}
	v.isListChild = true
	v.parent = w.setting
	w.list = list
	return nil
}

// Remove unlinks v, freeing it when freeObj is set.
func (w *SettingValueListWrapper) Remove(v *SettingValue, freeObj bool) {
	w.list = w.ops.Remove(w.list, v, freeObj)
}

func (w *SettingValueListWrapper) Len() int {
	return w.ops.Length(w.list)
}

// List returns the wrapped list. The wrapper keeps ownership.
func (w *SettingValueListWrapper) List() SettingValueList {
	return w.list
}

func (w *SettingValueListWrapper) Setting() *Setting {
	return w.setting
}

func (w *SettingValueListWrapper) Info() *SettingInfo {
	return w.info
}

func (w *SettingValueListWrapper) ElementType() SettingType {
	return w.elemType
}

func (w *SettingValueListWrapper) StorageType() ListStorageType {
	return w.storage
}

// Unref drops one reference. The last one releases the list when the
// storage is deep.
func (w *SettingValueListWrapper) Unref() {
	w.Object.Unref(func(o *ccsobject.Object) {
		if w.storage == StorageDeep {
			w.list = w.ops.Free(w.list, true)
		}
		w.list = nil
		alloc := o.Allocator()
		o.Finalize()
		alloc.Free()
	})
}
