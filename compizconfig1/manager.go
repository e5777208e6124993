// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package compizconfig exports a settings context on the session bus.
package compizconfig

import (
	"sync"
	"time"

	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

//go:generate dbusutil-gen em -type Manager

var logger = log.NewLogger("compizconfig/compizconfig1")

func SetLogLevel(pri log.Priority) {
	logger.SetLogLevel(pri)
}

// ServiceName is the bus name the manager is published under.
const ServiceName = dbusServiceName

const (
	dbusServiceName = "org.deepin.dde.CompizConfig1"
	dbusPath        = "/org/deepin/dde/CompizConfig1"
	dbusInterface   = dbusServiceName

	eventInterval = 500 * time.Millisecond
)

// Manager serves one context. Calls are serialised since the context is not
// safe for concurrent use.
type Manager struct {
	service *dbusutil.Service
	ctx     *ccs.Context

	mu       sync.Mutex
	quit     chan struct{}
	stopOnce sync.Once

	//nolint
	signals *struct {
		SettingChanged struct {
			plugin  string
			setting string
		}
		ProfileChanged struct {
			profile string
		}
	}
}

func NewManager(service *dbusutil.Service, ctx *ccs.Context) *Manager {
	return &Manager{
		service: service,
		ctx:     ctx,
		quit:    make(chan struct{}),
	}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

// Start exports m, requests the service name and begins applying changes
// made by other programs.
func (m *Manager) Start() error {
	err := m.service.Export(dbusPath, m)
	if err != nil {
		return err
	}
	err = m.service.RequestName(dbusServiceName)
	if err != nil {
		return err
	}
	go m.loop()
	return nil
}

// Stop may be called more than once, and before Start.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.quit)
		if m.service != nil {
			_ = m.service.StopExport(m)
		}
	})
}

func (m *Manager) loop() {
	ticker := time.NewTicker(eventInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			return
		case <-ticker.C:
			m.ProcessEvents()
		}
	}
}

// ProcessEvents applies pending external changes and announces the
// settings they touched.
func (m *Manager) ProcessEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx.ProcessEvents() {
		m.flushChanged()
	}
}

// flushChanged announces every changed setting and forgets them. Settings
// only become changed here through reads, so nothing needs writing.
func (m *Manager) flushChanged() {
	for _, s := range ccs.SettingListOps.ToSlice(m.ctx.ChangedSettings()) {
		m.emitSettingChanged(s)
	}
	m.ctx.ClearChangedSettings()
}

func (m *Manager) emitSettingChanged(s *ccs.Setting) {
	logger.Debugf("setting changed: %s/%s = %v", s.Plugin().Name(), s.Name(), s.Value())
	if m.service == nil {
		return
	}
	err := m.service.Emit(m, "SettingChanged", s.Plugin().Name(), s.Name())
	if err != nil {
		logger.Warning(err)
	}
}

func (m *Manager) emitProfileChanged(profile string) {
	if m.service == nil {
		return
	}
	err := m.service.Emit(m, "ProfileChanged", profile)
	if err != nil {
		logger.Warning(err)
	}
}

// commit stores the settings changed by a call and announces them.
func (m *Manager) commit() error {
	changed := ccs.SettingListOps.ToSlice(m.ctx.ChangedSettings())
	err := m.ctx.WriteChangedSettings()
	if err != nil {
		return err
	}
	for _, s := range changed {
		m.emitSettingChanged(s)
	}
	return nil
}
