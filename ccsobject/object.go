// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ccsobject is the base of every polymorphic compizconfig entity: an
// object carries a table of interfaces keyed by a process-wide interface
// type id, a reference count and the allocator it was created with.
package ccsobject

import (
	"sync"

	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("compizconfig/ccsobject")

// InterfaceType identifies an interface kind. Zero means unallocated.
type InterfaceType int

var (
	typeMu      sync.Mutex
	typeCounter InterfaceType
)

// AllocateType hands out the next interface type id. The first id is 1.
func AllocateType() InterfaceType {
	typeMu.Lock()
	defer typeMu.Unlock()
	typeCounter++
	return typeCounter
}

// InterfaceKind is declared once per interface kind as a package level
// variable; its id is allocated on first use and stays stable for the
// lifetime of the process.
type InterfaceKind struct {
	Name string

	once sync.Once
	id   InterfaceType
}

func (k *InterfaceKind) Type() InterfaceType {
	k.once.Do(func() {
		k.id = AllocateType()
		logger.Debugf("allocated interface type %d for %s", k.id, k.Name)
	})
	return k.id
}

// RefCounted is implemented by objects with shared ownership.
type RefCounted interface {
	Ref()
	Unref()
}

// Object is not safe for concurrent use.
type Object struct {
	priv interface{}

	interfaces           []interface{}
	interfaceTypes       []InterfaceType
	nInterfaces          int
	nAllocatedInterfaces int

	refCount int

	allocator Allocator
}

// Init records the allocator and clears interface and reference state. It
// fails and leaves the object untouched when alloc is nil.
func (o *Object) Init(alloc Allocator) bool {
	if alloc == nil {
		return false
	}
	o.priv = nil
	o.interfaces = nil
	o.interfaceTypes = nil
	o.nInterfaces = 0
	o.nAllocatedInterfaces = 0
	o.refCount = 0
	o.allocator = alloc
	return true
}

// New allocates an initialised object through alloc.
func New(alloc Allocator) *Object {
	if alloc == nil || !alloc.Calloc(1, 1) {
		return nil
	}
	o := new(Object)
	o.Init(alloc)
	return o
}

func (o *Object) Allocator() Allocator {
	return o.allocator
}

// AddInterface stores iface under interfaceType. The slot arrays grow by
// one through the object's allocator; on failure nothing changes.
func (o *Object) AddInterface(iface interface{}, interfaceType InterfaceType) bool {
	if o.nInterfaces+1 > o.nAllocatedInterfaces {
		n := o.nAllocatedInterfaces + 1
		if !o.allocator.Realloc(n) {
			logger.Warning("failed to grow interface table to", n)
			return false
		}
		if !o.allocator.Realloc(n) {
			logger.Warning("failed to grow interface type table to", n)
			return false
		}

		interfaces := make([]interface{}, n)
		copy(interfaces, o.interfaces)
		interfaceTypes := make([]InterfaceType, n)
		copy(interfaceTypes, o.interfaceTypes)

		o.interfaces = interfaces
		o.interfaceTypes = interfaceTypes
		o.nAllocatedInterfaces = n
	}

	o.interfaces[o.nInterfaces] = iface
	o.interfaceTypes[o.nInterfaces] = interfaceType
	o.nInterfaces++
	return true
}

// RemoveInterface drops the first slot registered for interfaceType. Later
// slots shift down; the backing store is released only once it is empty.
func (o *Object) RemoveInterface(interfaceType InterfaceType) {
	idx := -1
	for i := 0; i < o.nInterfaces; i++ {
		if o.interfaceTypes[i] == interfaceType {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	copy(o.interfaces[idx:o.nInterfaces], o.interfaces[idx+1:o.nInterfaces])
	copy(o.interfaceTypes[idx:o.nInterfaces], o.interfaceTypes[idx+1:o.nInterfaces])
	o.nInterfaces--
	o.interfaces[o.nInterfaces] = nil
	o.interfaceTypes[o.nInterfaces] = 0

	if o.nInterfaces == 0 {
		o.freeInterfaces()
	}
}

func (o *Object) freeInterfaces() {
	if o.interfaces != nil {
		o.allocator.Free()
	}
	if o.interfaceTypes != nil {
		o.allocator.Free()
	}
	o.interfaces = nil
	o.interfaceTypes = nil
	o.nInterfaces = 0
	o.nAllocatedInterfaces = 0
}

// GetInterface returns the interface stored for interfaceType, or nil.
func (o *Object) GetInterface(interfaceType InterfaceType) interface{} {
	for i := 0; i < o.nInterfaces; i++ {
		if o.interfaceTypes[i] == interfaceType {
			return o.interfaces[i]
		}
	}
	return nil
}

func (o *Object) NumInterfaces() int {
	return o.nInterfaces
}

func (o *Object) NumAllocatedInterfaces() int {
	return o.nAllocatedInterfaces
}

func (o *Object) InterfaceTypes() []InterfaceType {
	if o.nInterfaces == 0 {
		return nil
	}
	types := make([]InterfaceType, o.nInterfaces)
	copy(types, o.interfaceTypes)
	return types
}

func (o *Object) SetPrivate(priv interface{}) {
	o.priv = priv
}

func (o *Object) Private() interface{} {
	return o.priv
}

func (o *Object) RefCount() int {
	return o.refCount
}

func (o *Object) Ref() {
	o.refCount++
}

// Unref drops one reference and calls free when none are left. The object
// must not be used after free has run.
func (o *Object) Unref(free func(*Object)) {
	if o.refCount <= 0 {
		logger.Warning("unref of object without references")
		return
	}
	o.refCount--
	if o.refCount == 0 && free != nil {
		free(o)
	}
}

// Finalize releases the interface tables and clears the private pointer.
// The private data itself is the caller's to release first.
func (o *Object) Finalize() {
	o.freeInterfaces()
	o.priv = nil
}
