// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

import (
	"fmt"

	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
)

const DefaultProfile = "Default"

// Context holds the plugins of one screen and connects them to a backend
// and an optional desktop integration. It is not safe for concurrent use.
type Context struct {
	screenNum uint

	plugins         PluginList
	changedSettings SettingList

	backendObj *ccsobject.Object
	profile    string

	integration        Integration
	integrationEnabled bool
}

func NewContext(screenNum uint) *Context {
	return &Context{
		screenNum:   screenNum,
		profile:     DefaultProfile,
		integration: NullIntegration{},
	}
}

func (c *Context) ScreenNum() uint {
	return c.screenNum
}

// AddPlugin attaches plugin to the context. Plugin names are unique.
func (c *Context) AddPlugin(plugin *Plugin) error {
	if c.FindPlugin(plugin.name) != nil {
		return fmt.Errorf("plugin %q already loaded", plugin.name)
	}
	plugin.context = c
	c.plugins = PluginListOps.Append(c.plugins, plugin)
	return nil
}

func (c *Context) FindPlugin(name string) *Plugin {
	for l := c.plugins; l != nil; l = l.Next {
		if l.Data.name == name {
			return l.Data
		}
	}
	return nil
}

func (c *Context) Plugins() PluginList {
	return c.plugins
}

// FindSetting looks a setting up by plugin and setting name.
func (c *Context) FindSetting(pluginName, settingName string) (*Setting, error) {
	plugin := c.FindPlugin(pluginName)
	if plugin == nil {
		return nil, fmt.Errorf("%s: %w", pluginName, ErrPluginNotFound)
	}
	setting := plugin.FindSetting(settingName)
	if setting == nil {
		return nil, fmt.Errorf("%s/%s: %w", pluginName, settingName, ErrSettingNotFound)
	}
	return setting, nil
}

// SetBackend switches to the registered backend called name.
func (c *Context) SetBackend(name string) error {
	obj := LookupBackend(name)
	if obj == nil {
		return fmt.Errorf("%s: %w", name, ErrBackendNotFound)
	}
	if obj == c.backendObj {
		return nil
	}
	backend := BackendFromObject(obj)
	if backend == nil {
		return fmt.Errorf("%s: %w", name, ErrBackendNotFound)
	}
	if err := backend.Init(c); err != nil {
		return fmt.Errorf("init backend %s: %w", name, err)
	}

	if old := BackendFromObject(c.backendObj); old != nil {
		old.Fini(c)
	}
	c.backendObj = obj
	logger.Info("backend loaded:", name)
	return nil
}

func (c *Context) Backend() Backend {
	return BackendFromObject(c.backendObj)
}

func (c *Context) BackendName() string {
	if b := c.Backend(); b != nil {
		return b.Name()
	}
	return ""
}

func (c *Context) SetProfile(name string) {
	if name == "" {
		name = DefaultProfile
	}
	if name == c.profile {
		return
	}
	logger.Info("profile switched to", name)
	c.profile = name
}

func (c *Context) Profile() string {
	return c.profile
}

// SetIntegration replaces the integration. nil installs NullIntegration.
func (c *Context) SetIntegration(integration Integration) {
	if c.integration != nil {
		c.integration.Free()
	}
	if integration == nil {
		integration = NullIntegration{}
	}
	c.integration = integration
}

func (c *Context) Integration() Integration {
	return c.integration
}

func (c *Context) SetIntegrationEnabled(enabled bool) {
	c.integrationEnabled = enabled
}

func (c *Context) IntegrationEnabled() bool {
	return c.integrationEnabled
}

func (c *Context) integratedOption(setting *Setting) IntegratedSetting {
	if !c.integrationEnabled || setting.parent == nil {
		return nil
	}
	return c.integration.GetIntegratedOptionIndex(setting.parent.name, setting.name)
}

// ReadSettings loads every setting of every plugin.
func (c *Context) ReadSettings() error {
	return c.read(func(read func(*Setting)) {
		for p := c.plugins; p != nil; p = p.Next {
			for s := p.Data.settings; s != nil; s = s.Next {
				read(s.Data)
			}
		}
	})
}

func (c *Context) ReadPluginSettings(plugin *Plugin) error {
	return c.read(func(read func(*Setting)) {
		for s := plugin.settings; s != nil; s = s.Next {
			read(s.Data)
		}
	})
}

func (c *Context) read(each func(read func(*Setting))) error {
	backend := c.Backend()
	if backend == nil {
		return ErrNoBackend
	}
	if !backend.ReadInit(c) {
		return fmt.Errorf("backend %s refused to read profile %s", backend.Name(), c.profile)
	}
	each(func(setting *Setting) {
		if option := c.integratedOption(setting); option != nil &&
			c.integration.ReadOptionIntoSetting(c, setting, option) {
			return
		}
		backend.ReadSetting(c, setting)
	})
	backend.ReadDone(c)
	return nil
}

func (c *Context) WriteSettings() error {
	var all []*Setting
	for p := c.plugins; p != nil; p = p.Next {
		all = append(all, SettingListOps.ToSlice(p.Data.settings)...)
	}
	return c.write(all)
}

// WriteChangedSettings writes and clears the changed list.
func (c *Context) WriteChangedSettings() error {
	err := c.write(SettingListOps.ToSlice(c.changedSettings))
	if err == nil {
		c.ClearChangedSettings()
	}
	return err
}

func (c *Context) write(settings []*Setting) error {
	backend := c.Backend()
	if backend == nil {
		return ErrNoBackend
	}
	if !backend.WriteInit(c) {
		return fmt.Errorf("backend %s refused to write profile %s", backend.Name(), c.profile)
	}
	for _, setting := range settings {
		if option := c.integratedOption(setting); option != nil {
			c.integration.WriteSettingIntoOption(c, setting, option)
			continue
		}
		backend.WriteSetting(c, setting)
	}
	backend.WriteDone(c)
	return nil
}

func (c *Context) ChangedSettings() SettingList {
	return c.changedSettings
}

// AddChangedSetting records setting once.
func (c *Context) AddChangedSetting(setting *Setting) {
	if SettingListOps.Find(c.changedSettings, setting) != nil {
		return
	}
	c.changedSettings = SettingListOps.Append(c.changedSettings, setting)
}

func (c *Context) ClearChangedSettings() {
	c.changedSettings = SettingListOps.Free(c.changedSettings, false)
}

func (c *Context) ExistingProfiles() ([]string, error) {
	pb, err := c.profileBackend()
	if err != nil {
		return nil, err
	}
	return pb.ExistingProfiles(c)
}

func (c *Context) DeleteProfile(name string) error {
	pb, err := c.profileBackend()
	if err != nil {
		return err
	}
	return pb.DeleteProfile(c, name)
}

func (c *Context) profileBackend() (ProfileBackend, error) {
	if c.backendObj == nil {
		return nil, ErrNoBackend
	}
	pb, ok := c.backendObj.GetInterface(ProfileBackendKind.Type()).(ProfileBackend)
	if !ok {
		return nil, fmt.Errorf("profiles of %s: %w", c.BackendName(), ErrNotSupported)
	}
	return pb, nil
}

// ProcessEvents applies pending changes of the backend and of the desktop
// store without blocking. It reports whether anything was applied.
func (c *Context) ProcessEvents() bool {
	changed := false
	if c.backendObj != nil {
		if es, ok := c.backendObj.GetInterface(EventSourceKind.Type()).(EventSource); ok {
			changed = c.drainBackendEvents(es.Events())
		}
	}
	if p, ok := c.integration.(IntegrationEventProcessor); ok && c.integrationEnabled {
		if p.ProcessEvents(c) {
			changed = true
		}
	}
	return changed
}

func (c *Context) drainBackendEvents(events <-chan Event) bool {
	changed := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return changed
			}
			changed = c.handleEvent(ev) || changed
		default:
			return changed
		}
	}
}

func (c *Context) handleEvent(ev Event) bool {
	switch ev.Kind {
	case EventProfileChanged:
		if err := c.ReadSettings(); err != nil {
			logger.Warning("failed to reload settings:", err)
			return false
		}
		return true
	case EventSettingChanged:
		setting, err := c.FindSetting(ev.Plugin, ev.Setting)
		if err != nil {
			logger.Debug(err)
			return false
		}
		c.Backend().UpdateSetting(c, setting.parent, setting)
		return true
	}
	return false
}

// Close releases the backend, the integration and every plugin.
func (c *Context) Close() {
	if b := c.Backend(); b != nil {
		b.Fini(c)
	}
	c.backendObj = nil
	c.SetIntegration(nil)
	c.ClearChangedSettings()
	for p := c.plugins; p != nil; p = p.Next {
		p.Data.free()
	}
	c.plugins = PluginListOps.Free(c.plugins, false)
}
