// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccsobject

// Allocator gates every allocation an object performs. The receiver is the
// allocator context. A false return means the allocation failed and the
// caller must unwind.
type Allocator interface {
	Realloc(size int) bool
	Malloc(size int) bool
	Calloc(n, size int) bool
	Free()
}

type defaultAllocator struct{}

func (defaultAllocator) Realloc(int) bool     { return true }
func (defaultAllocator) Malloc(int) bool      { return true }
func (defaultAllocator) Calloc(int, int) bool { return true }
func (defaultAllocator) Free()                {}

// DefaultAllocator never fails.
var DefaultAllocator Allocator = defaultAllocator{}

// FailingAllocator fails selected calls. A zero field disables failure for
// that method; otherwise the Nth call (1-based) of that method and every
// later one fails while Sticky is set, or only the Nth when it is not.
type FailingAllocator struct {
	FailReallocAt int
	FailMallocAt  int
	FailCallocAt  int
	Sticky        bool

	ReallocCalls int
	MallocCalls  int
	CallocCalls  int
	FreeCalls    int
}

func (a *FailingAllocator) check(calls, at int) bool {
	if at == 0 {
		return true
	}
	if a.Sticky {
		return calls < at
	}
	return calls != at
}

func (a *FailingAllocator) Realloc(int) bool {
	a.ReallocCalls++
	return a.check(a.ReallocCalls, a.FailReallocAt)
}

func (a *FailingAllocator) Malloc(int) bool {
	a.MallocCalls++
	return a.check(a.MallocCalls, a.FailMallocAt)
}

func (a *FailingAllocator) Calloc(int, int) bool {
	a.CallocCalls++
	return a.check(a.CallocCalls, a.FailCallocAt)
}

func (a *FailingAllocator) Free() {
	a.FreeCalls++
}
