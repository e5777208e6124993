// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"sort"
	"sync"

	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
)

// Backend stores a whole profile. Reads and writes are bracketed by the
// Init and Done calls; a false Init skips the pass.
type Backend interface {
	Name() string
	Init(ctx *Context) error
	Fini(ctx *Context)

	ReadInit(ctx *Context) bool
	ReadSetting(ctx *Context, setting *Setting)
	ReadDone(ctx *Context)

	WriteInit(ctx *Context) bool
	WriteSetting(ctx *Context, setting *Setting)
	WriteDone(ctx *Context)

	UpdateSetting(ctx *Context, plugin *Plugin, setting *Setting)
}

type ProfileBackend interface {
	ExistingProfiles(ctx *Context) ([]string, error)
	DeleteProfile(ctx *Context, name string) error
}

type EventKind int

const (
	EventProfileChanged EventKind = iota
	EventSettingChanged
)

// Event reports a change made outside of the context.
type Event struct {
	Kind    EventKind
	Plugin  string
	Setting string
}

type EventSource interface {
	Events() <-chan Event
}

type ReadOnlyChecker interface {
	SettingIsReadOnly(setting *Setting) bool
}

var (
	BackendKind         = ccsobject.InterfaceKind{Name: "Backend"}
	ProfileBackendKind  = ccsobject.InterfaceKind{Name: "ProfileBackend"}
	EventSourceKind     = ccsobject.InterfaceKind{Name: "EventSource"}
	ReadOnlyCheckerKind = ccsobject.InterfaceKind{Name: "ReadOnlyChecker"}
)

// NewBackendObject wraps b in an object carrying every capability b
// implements.
func NewBackendObject(b Backend, alloc ccsobject.Allocator) *ccsobject.Object {
	obj := ccsobject.New(alloc)
	if obj == nil {
		return nil
	}
	ok := obj.AddInterface(b, BackendKind.Type())
	if pb, is := b.(ProfileBackend); ok && is {
		ok = obj.AddInterface(pb, ProfileBackendKind.Type())
	}
	if es, is := b.(EventSource); ok && is {
		ok = obj.AddInterface(es, EventSourceKind.Type())
	}
	if rc, is := b.(ReadOnlyChecker); ok && is {
		ok = obj.AddInterface(rc, ReadOnlyCheckerKind.Type())
	}
	if !ok {
		logger.Warning("failed to register capabilities of backend", b.Name())
		obj.Finalize()
		return nil
	}
	obj.Ref()
	return obj
}

func BackendFromObject(obj *ccsobject.Object) Backend {
	if obj == nil {
		return nil
	}
	b, _ := obj.GetInterface(BackendKind.Type()).(Backend)
	return b
}

type backendRegistry struct {
	mu       sync.Mutex
	backends map[string]*ccsobject.Object
}

var registryInitializer sync.Once
var _registry *backendRegistry

func getRegistry() *backendRegistry {
	registryInitializer.Do(func() {
		_registry = &backendRegistry{
			backends: make(map[string]*ccsobject.Object),
		}
	})
	return _registry
}

// RegisterBackend makes b available to SetBackend under its name. A later
// registration under the same name replaces the earlier one.
func RegisterBackend(b Backend) bool {
	obj := NewBackendObject(b, ccsobject.DefaultAllocator)
	if obj == nil {
		return false
	}
	r := getRegistry()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.backends[b.Name()]; ok {
		logger.Debug("replace backend", b.Name())
	}
	r.backends[b.Name()] = obj
	return true
}

func LookupBackend(name string) *ccsobject.Object {
	r := getRegistry()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backends[name]
}

// ListBackends returns the registered backend names in order.
func ListBackends() []string {
	r := getRegistry()
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unregisterBackend(name string) {
	r := getRegistry()
	r.mu.Lock()
	delete(r.backends, name)
	r.mu.Unlock()
}
