// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metadata loads plugin descriptions from YAML documents.
package metadata

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/go-lib/gettext"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

var logger = log.NewLogger("compizconfig/metadata")

func SetLogLevel(pri log.Priority) {
	logger.SetLogLevel(pri)
}

// DefaultDir holds the plugin descriptions installed with compiz.
const DefaultDir = "/usr/share/compizconfig/meta"

type pluginDoc struct {
	Name      string `yaml:"name"`
	ShortDesc string `yaml:"short_desc"`
	LongDesc  string `yaml:"long_desc"`
	Category  string `yaml:"category"`

	Deps struct {
		LoadAfter  []string `yaml:"load_after"`
		LoadBefore []string `yaml:"load_before"`
		Requires   []string `yaml:"requires"`
		Conflicts  []string `yaml:"conflicts"`
	} `yaml:"deps"`
	Features         []string `yaml:"features"`
	RequiresFeatures []string `yaml:"requires_features"`

	Settings []settingDoc `yaml:"settings"`
}

type intDescDoc struct {
	Value int32  `yaml:"value"`
	Name  string `yaml:"name"`
}

type restrictionDoc struct {
	Value string `yaml:"value"`
	Name  string `yaml:"name"`
}

type settingDoc struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	ShortDesc string `yaml:"short_desc"`
	LongDesc  string `yaml:"long_desc"`
	Group     string `yaml:"group"`
	SubGroup  string `yaml:"subgroup"`
	Hints     string `yaml:"hints"`

	Default yaml.Node `yaml:"default"`

	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	Precision float64  `yaml:"precision"`

	Desc         []intDescDoc     `yaml:"desc"`
	Restrictions []restrictionDoc `yaml:"restrictions"`
	SortStartsAt int              `yaml:"sort_starts_at"`
	Extensible   bool             `yaml:"extensible"`

	ListType string `yaml:"list_type"`
	Internal bool   `yaml:"internal"`
}

// LoadDir loads every .yaml file of dir in name order. Files that fail to
// load are skipped with a warning.
func LoadDir(ctx *ccs.Context, dir string) ([]*ccs.Plugin, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("read metadata dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var plugins []*ccs.Plugin
	for _, name := range names {
		p, err := LoadFile(ctx, filepath.Join(dir, name))
		if err != nil {
			logger.Warning(err)
			continue
		}
		plugins = append(plugins, p)
	}
	logger.Infof("loaded %d plugins from %s", len(plugins), dir)
	return plugins, nil
}

func LoadFile(ctx *ccs.Context, file string) (*ccs.Plugin, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, xerrors.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	p, err := LoadPlugin(ctx, f)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", file, err)
	}
	return p, nil
}

// LoadPlugin decodes one plugin description and adds the plugin to ctx
// when ctx is not nil.
func LoadPlugin(ctx *ccs.Context, r io.Reader) (*ccs.Plugin, error) {
	var doc pluginDoc
	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, xerrors.Errorf("decode plugin: %w", err)
	}
	if doc.Name == "" {
		return nil, xerrors.New("plugin without name")
	}
	logger.Debug("load plugin:", spew.Sdump(doc))

	defs := make([]ccs.SettingDefinition, 0, len(doc.Settings))
	for i := range doc.Settings {
		def, err := settingDefinition(&doc.Settings[i])
		if err != nil {
			return nil, xerrors.Errorf("plugin %s: %w", doc.Name, err)
		}
		defs = append(defs, def)
	}

	p := ccs.NewPlugin(ccs.PluginDefinition{
		Name:             doc.Name,
		ShortDesc:        tr(doc.ShortDesc),
		LongDesc:         tr(doc.LongDesc),
		Category:         doc.Category,
		LoadAfter:        doc.Deps.LoadAfter,
		LoadBefore:       doc.Deps.LoadBefore,
		RequiresPlugins:  doc.Deps.Requires,
		ConflictPlugins:  doc.Deps.Conflicts,
		ProvidesFeatures: doc.Features,
		RequiresFeatures: doc.RequiresFeatures,
	})
	for _, def := range defs {
		ccs.NewSetting(p, def)
	}

	if ctx != nil {
		err = ctx.AddPlugin(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func tr(str string) string {
	if str == "" {
		return ""
	}
	return gettext.Tr(str)
}

func settingDefinition(doc *settingDoc) (ccs.SettingDefinition, error) {
	var def ccs.SettingDefinition
	if doc.Name == "" {
		return def, xerrors.New("setting without name")
	}
	t, ok := ccs.ParseSettingType(doc.Type)
	if !ok {
		return def, xerrors.Errorf("setting %s: unknown type %q", doc.Name, doc.Type)
	}

	def = ccs.SettingDefinition{
		Name:      doc.Name,
		ShortDesc: tr(doc.ShortDesc),
		LongDesc:  tr(doc.LongDesc),
		Group:     doc.Group,
		SubGroup:  doc.SubGroup,
		Hints:     doc.Hints,
		Type:      t,
	}

	elemType := ccs.TypeNum
	if t == ccs.TypeList {
		elemType, ok = ccs.ParseSettingType(doc.ListType)
		if !ok || elemType == ccs.TypeList {
			return def, xerrors.Errorf("setting %s: bad list type %q", doc.Name, doc.ListType)
		}
		def.Info.List.ListType = elemType
		def.Info.List.ListInfo = settingInfo(doc, elemType)
	} else {
		def.Info = *settingInfo(doc, t)
	}

	v, err := defaultValue(&doc.Default, t, elemType)
	if err != nil {
		return def, xerrors.Errorf("setting %s: %w", doc.Name, err)
	}
	def.Default = v
	return def, nil
}

func settingInfo(doc *settingDoc, t ccs.SettingType) *ccs.SettingInfo {
	info := new(ccs.SettingInfo)
	switch t {
	case ccs.TypeInt:
		if doc.Min != nil {
			info.Int.Min = int32(*doc.Min)
		}
		if doc.Max != nil {
			info.Int.Max = int32(*doc.Max)
		}
		for _, d := range doc.Desc {
			info.Int.Desc = append(info.Int.Desc, ccs.IntDesc{Value: d.Value, Name: tr(d.Name)})
		}
	case ccs.TypeFloat:
		if doc.Min != nil {
			info.Float.Min = float32(*doc.Min)
		}
		if doc.Max != nil {
			info.Float.Max = float32(*doc.Max)
		}
		info.Float.Precision = float32(doc.Precision)
	case ccs.TypeString:
		for _, r := range doc.Restrictions {
			info.String.Restriction = append(info.String.Restriction,
				ccs.StringRestriction{Value: r.Value, Name: tr(r.Name)})
		}
		info.String.SortStartsAt = doc.SortStartsAt
		info.String.Extensible = doc.Extensible
	case ccs.TypeAction, ccs.TypeKey, ccs.TypeButton, ccs.TypeEdge, ccs.TypeBell:
		info.Action.Internal = doc.Internal
	}
	return info
}

// defaultValue returns nil when node is absent so the type's zero value is
// used.
func defaultValue(node *yaml.Node, t, elemType ccs.SettingType) (ccs.Value, error) {
	if node.Kind == 0 || t == ccs.TypeAction {
		return nil, nil
	}

	if t == ccs.TypeList {
		var items []string
		if node.Kind == yaml.ScalarNode {
			if node.Value != "" {
				items = strings.Split(node.Value, ",")
			}
		} else if err := node.Decode(&items); err != nil {
			return nil, xerrors.Errorf("decode default: %w", err)
		}
		list, err := ccs.ParseValueList(elemType, items, nil)
		if err != nil {
			return nil, xerrors.Errorf("parse default: %w", err)
		}
		return ccs.ListValue{List: list}, nil
	}

	if node.Kind != yaml.ScalarNode {
		return nil, xerrors.Errorf("default of a %s must be a scalar", t)
	}
	v, err := ccs.ParseValue(t, node.Value)
	if err != nil {
		return nil, xerrors.Errorf("parse default: %w", err)
	}
	return v, nil
}
