// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ccs

type PluginDefinition struct {
	Name             string
	ShortDesc        string
	LongDesc         string
	Category         string
	LoadAfter        []string
	LoadBefore       []string
	RequiresPlugins  []string
	ConflictPlugins  []string
	ProvidesFeatures []string
	RequiresFeatures []string
}

// Plugin groups the settings of one compiz plugin in declaration order.
type Plugin struct {
	def      PluginDefinition
	name     string
	settings SettingList
	context  *Context
}

func NewPlugin(def PluginDefinition) *Plugin {
	return &Plugin{
		def:  def,
		name: def.Name,
	}
}

func (p *Plugin) Name() string {
	return p.name
}

func (p *Plugin) ShortDesc() string {
	return p.def.ShortDesc
}

func (p *Plugin) LongDesc() string {
	return p.def.LongDesc
}

func (p *Plugin) Category() string {
	return p.def.Category
}

func (p *Plugin) LoadAfter() []string {
	return p.def.LoadAfter
}

func (p *Plugin) LoadBefore() []string {
	return p.def.LoadBefore
}

func (p *Plugin) RequiresPlugins() []string {
	return p.def.RequiresPlugins
}

func (p *Plugin) ConflictPlugins() []string {
	return p.def.ConflictPlugins
}

func (p *Plugin) ProvidesFeatures() []string {
	return p.def.ProvidesFeatures
}

func (p *Plugin) RequiresFeatures() []string {
	return p.def.RequiresFeatures
}

func (p *Plugin) Context() *Context {
	return p.context
}

func (p *Plugin) addSetting(s *Setting) {
	s.parent = p
	p.settings = SettingListOps.Append(p.settings, s)
}

// Settings returns the settings list owned by the plugin.
func (p *Plugin) Settings() SettingList {
	return p.settings
}

func (p *Plugin) FindSetting(name string) *Setting {
	for l := p.settings; l != nil; l = l.Next {
		if l.Data.name == name {
			return l.Data
		}
	}
	return nil
}

func (p *Plugin) free() {
	for l := p.settings; l != nil; l = l.Next {
		l.Data.Free()
	}
	p.settings = SettingListOps.Free(p.settings, false)
	p.context = nil
}
