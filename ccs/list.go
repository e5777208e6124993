// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
)

// List is a singly linked list node. The first node is the list itself and
// nil is the empty list, so operations that may replace the head return it.
type List[T comparable] struct {
	Data T
	Next *List[T]
}

// ListOps implements the list algorithms for one element type. Equal
// defaults to ==, which is pointer identity for pointer elements. Destroy
// releases a payload when an operation is asked to free objects. Node
// allocations go through Alloc; a failed allocation leaves the list
// unchanged.
type ListOps[T comparable] struct {
	Equal   func(a, b T) bool
	Destroy func(T)
	Alloc   ccsobject.Allocator
}

func (ops ListOps[T]) equal(a, b T) bool {
	if ops.Equal != nil {
		return ops.Equal(a, b)
	}
	return a == b
}

func (ops ListOps[T]) newNode(data T) *List[T] {
	alloc := ops.Alloc
	if alloc == nil {
		alloc = ccsobject.DefaultAllocator
	}
	if !alloc.Calloc(1, 1) {
		logger.Warning("failed to allocate list node")
		return nil
	}
	return &List[T]{Data: data}
}

func (ops ListOps[T]) freeNode() {
	if ops.Alloc != nil {
		ops.Alloc.Free()
	}
}

// WithAllocator returns a copy of ops allocating through alloc.
func (ops ListOps[T]) WithAllocator(alloc ccsobject.Allocator) ListOps[T] {
	ops.Alloc = alloc
	return ops
}

func (ops ListOps[T]) Append(list *List[T], data T) *List[T] {
	node := ops.newNode(data)
	if node == nil {
		return list
	}
	if list == nil {
		return node
	}
	last := list
	for last.Next != nil {
		last = last.Next
	}
	last.Next = node
	return list
}

func (ops ListOps[T]) Prepend(list *List[T], data T) *List[T] {
	node := ops.newNode(data)
	if node == nil {
		return list
	}
	node.Next = list
	return node
}

// Insert places data at the 0-based position, appending when position is
// past the end.
func (ops ListOps[T]) Insert(list *List[T], data T, position int) *List[T] {
	if position <= 0 {
		return ops.Prepend(list, data)
	}
	prev := list
	for i := 1; prev != nil && i < position; i++ {
		prev = prev.Next
	}
	if prev == nil {
		return ops.Append(list, data)
	}
	node := ops.newNode(data)
	if node == nil {
		return list
	}
	node.Next = prev.Next
	prev.Next = node
	return list
}

// InsertBefore places data in front of sibling, or appends when sibling is
// not a node of list.
func (ops ListOps[T]) InsertBefore(list *List[T], sibling *List[T], data T) *List[T] {
	if sibling == nil {
		return ops.Append(list, data)
	}
	if list == sibling {
		return ops.Prepend(list, data)
	}
	for l := list; l != nil; l = l.Next {
		if l.Next == sibling {
			node := ops.newNode(data)
			if node == nil {
				return list
			}
			node.Next = sibling
			l.Next = node
			return list
		}
	}
	return ops.Append(list, data)
}

func (ops ListOps[T]) Length(list *List[T]) int {
	n := 0
	for l := list; l != nil; l = l.Next {
		n++
	}
	return n
}

// Find returns the first node whose payload equals data.
func (ops ListOps[T]) Find(list *List[T], data T) *List[T] {
	for l := list; l != nil; l = l.Next {
		if ops.equal(l.Data, data) {
			return l
		}
	}
	return nil
}

func (ops ListOps[T]) GetItem(list *List[T], index int) *List[T] {
	if index < 0 {
		return nil
	}
	l := list
	for i := 0; l != nil && i < index; i++ {
		l = l.Next
	}
	return l
}

// Remove unlinks the first node matching data, freeing its payload when
// freeObj is set, and returns the new head.
func (ops ListOps[T]) Remove(list *List[T], data T, freeObj bool) *List[T] {
	var prev *List[T]
	for l := list; l != nil; l = l.Next {
		if !ops.equal(l.Data, data) {
			prev = l
			continue
		}
		if prev == nil {
			list = l.Next
		} else {
			prev.Next = l.Next
		}
		if freeObj && ops.Destroy != nil {
			ops.Destroy(l.Data)
		}
		l.Next = nil
		ops.freeNode()
		return list
	}
	return list
}

// Free releases every node, and every payload when freeObj is set. It
// always returns the empty list.
func (ops ListOps[T]) Free(list *List[T], freeObj bool) *List[T] {
	for list != nil {
		next := list.Next
		if freeObj && ops.Destroy != nil {
			ops.Destroy(list.Data)
		}
		list.Next = nil
		ops.freeNode()
		list = next
	}
	return nil
}

func (ops ListOps[T]) ToSlice(list *List[T]) []T {
	if list == nil {
		return nil
	}
	items := make([]T, 0, ops.Length(list))
	for l := list; l != nil; l = l.Next {
		items = append(items, l.Data)
	}
	return items
}

func (ops ListOps[T]) FromSlice(items []T) *List[T] {
	var head, tail *List[T]
	for _, item := range items {
		node := ops.newNode(item)
		if node == nil {
			ops.Free(head, false)
			return nil
		}
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
	return head
}

type (
	StringList       = *List[string]
	IntList          = *List[int32]
	BoolList         = *List[bool]
	FloatList        = *List[float32]
	ColorList        = *List[Color]
	KeyList          = *List[KeyBinding]
	ButtonList       = *List[ButtonBinding]
	MatchList        = *List[string]
	SettingValueList = *List[*SettingValue]
	SettingList      = *List[*Setting]
	PluginList       = *List[*Plugin]
)

var (
	StringListOps = ListOps[string]{}
	IntListOps    = ListOps[int32]{}
	BoolListOps   = ListOps[bool]{}
	FloatListOps  = ListOps[float32]{}
	ColorListOps  = ListOps[Color]{}
	KeyListOps    = ListOps[KeyBinding]{}
	ButtonListOps = ListOps[ButtonBinding]{}
	MatchListOps  = ListOps[string]{}

	SettingValueListOps = ListOps[*SettingValue]{
		Destroy: func(v *SettingValue) {
			if v != nil {
				_ = FreeSettingValue(v, v.Type())
			}
		},
	}
	SettingListOps = ListOps[*Setting]{}
	PluginListOps  = ListOps[*Plugin]{}
)

func valueListToSlice[T any](list SettingValueList, get func(Value) (T, bool)) []T {
	var items []T
	for l := list; l != nil; l = l.Next {
		if l.Data == nil {
			continue
		}
		if v, ok := get(l.Data.value); ok {
			items = append(items, v)
		}
	}
	return items
}

func GetStringArrayFromValueList(list SettingValueList) []string {
	return valueListToSlice(list, func(v Value) (string, bool) {
		switch vv := v.(type) {
		case StringValue:
			return string(vv), true
		case MatchValue:
			return string(vv), true
		}
		return "", false
	})
}

func GetIntArrayFromValueList(list SettingValueList) []int32 {
	return valueListToSlice(list, func(v Value) (int32, bool) {
		vv, ok := v.(IntValue)
		return int32(vv), ok
	})
}

func GetBoolArrayFromValueList(list SettingValueList) []bool {
	return valueListToSlice(list, func(v Value) (bool, bool) {
		vv, ok := v.(BoolValue)
		return bool(vv), ok
	})
}

func GetFloatArrayFromValueList(list SettingValueList) []float32 {
	return valueListToSlice(list, func(v Value) (float32, bool) {
		vv, ok := v.(FloatValue)
		return float32(vv), ok
	})
}

func GetColorArrayFromValueList(list SettingValueList) []Color {
	return valueListToSlice(list, func(v Value) (Color, bool) {
		vv, ok := v.(ColorValue)
		return Color(vv), ok
	})
}

func valueListFromSlice[T any](items []T, parent *Setting, wrap func(T) Value) SettingValueList {
	var list SettingValueList
	for _, item := range items {
		sv := NewSettingValue(wrap(item))
		sv.isListChild = true
		sv.parent = parent
		list = SettingValueListOps.Append(list, sv)
	}
	return list
}

func GetValueListFromStringArray(items []string, parent *Setting) SettingValueList {
	return valueListFromSlice(items, parent, func(s string) Value { return StringValue(s) })
}

func GetValueListFromMatchArray(items []string, parent *Setting) SettingValueList {
	return valueListFromSlice(items, parent, func(s string) Value { return MatchValue(s) })
}

func GetValueListFromIntArray(items []int32, parent *Setting) SettingValueList {
	return valueListFromSlice(items, parent, func(i int32) Value { return IntValue(i) })
}

func GetValueListFromBoolArray(items []bool, parent *Setting) SettingValueList {
	return valueListFromSlice(items, parent, func(b bool) Value { return BoolValue(b) })
}

func GetValueListFromFloatArray(items []float32, parent *Setting) SettingValueList {
	return valueListFromSlice(items, parent, func(f float32) Value { return FloatValue(f) })
}

func GetValueListFromColorArray(items []Color, parent *Setting) SettingValueList {
	return valueListFromSlice(items, parent, func(c Color) Value { return ColorValue(c) })
}
