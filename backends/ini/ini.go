// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ini stores profiles as key files, one section per plugin.
package ini

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/go-lib/keyfile"
	"github.com/linuxdeepin/go-lib/log"
	"github.com/linuxdeepin/go-lib/xdg/basedir"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("compizconfig/ini")

func SetLogLevel(pri log.Priority) {
	logger.SetLogLevel(pri)
}

const (
	Name       = "ini"
	profileExt = ".ini"
)

func init() {
	ccs.RegisterBackend(NewBackend(Name, ""))
}

// DefaultDir is where profiles live unless a backend is given a directory.
func DefaultDir() string {
	return filepath.Join(basedir.GetUserConfigDir(), "compiz-1", "compizconfig")
}

type Backend struct {
	name string
	dir  string

	mu      sync.Mutex
	kf      *keyfile.KeyFile
	file    string
	watcher *profileWatcher
	events  chan ccs.Event
}

// NewBackend returns a backend named name keeping its profiles in dir, or in
// DefaultDir when dir is empty.
func NewBackend(name, dir string) *Backend {
	return &Backend{
		name:   name,
		dir:    dir,
		events: make(chan ccs.Event, 16),
	}
}

func (b *Backend) Name() string {
	return b.name
}

func (b *Backend) profileDir() string {
	if b.dir == "" {
		b.dir = DefaultDir()
	}
	return b.dir
}

func (b *Backend) profileFile(profile string) string {
	if profile == "" {
		profile = ccs.DefaultProfile
	}
	return filepath.Join(b.profileDir(), profile+profileExt)
}

func (b *Backend) Init(ctx *ccs.Context) error {
	dir := b.profileDir()
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return xerrors.Errorf("create profile dir: %w", err)
	}

	w, err := newProfileWatcher(dir, b.events)
	if err != nil {
		// profiles still work, only changes by other programs go unnoticed
		logger.Warning("failed to watch profiles:", err)
		return nil
	}
	w.setProfileFile(b.profileFile(ctx.Profile()))
	b.watcher = w
	return nil
}

func (b *Backend) Fini(ctx *ccs.Context) {
	if b.watcher != nil {
		b.watcher.close()
		b.watcher = nil
	}
	b.mu.Lock()
	b.kf = nil
	b.mu.Unlock()
}

// load reads the profile file of ctx. A missing file is an empty profile.
func (b *Backend) load(ctx *ccs.Context) error {
	file := b.profileFile(ctx.Profile())
	kf := keyfile.NewKeyFile()
	err := kf.LoadFromFile(file)
	if err != nil && !os.IsNotExist(err) {
		return xerrors.Errorf("load profile %s: %w", file, err)
	}

	b.mu.Lock()
	b.kf = kf
	b.file = file
	b.mu.Unlock()
	if b.watcher != nil {
		b.watcher.setProfileFile(file)
	}
	return nil
}

func (b *Backend) ReadInit(ctx *ccs.Context) bool {
	err := b.load(ctx)
	if err != nil {
		logger.Warning(err)
		return false
	}
	return true
}

func (b *Backend) ReadSetting(ctx *ccs.Context, setting *ccs.Setting) {
	b.mu.Lock()
	kf := b.kf
	b.mu.Unlock()
	if kf == nil {
		return
	}
	readSetting(kf, setting)
}

func readSetting(kf *keyfile.KeyFile, setting *ccs.Setting) {
	section := setting.Plugin().Name()
	key := setting.Name()

	switch setting.Type() {
	case ccs.TypeAction:
		return
	case ccs.TypeList:
		items, err := kf.GetStringList(section, key)
		if err != nil {
			setting.ResetToDefault(true)
			return
		}
		list, err := ccs.ParseValueList(setting.Info().List.ListType, items, setting)
		if err != nil {
			logger.Warningf("bad value of %s/%s: %v", section, key, err)
			return
		}
		setting.SetList(list, true)
		return
	}

	str, err := kf.GetString(section, key)
	if err != nil {
		setting.ResetToDefault(true)
		return
	}
	v, err := ccs.ParseValue(setting.Type(), str)
	if err != nil {
		logger.Warningf("bad value of %s/%s: %v", section, key, err)
		return
	}
	if status := setting.SetValue(ccs.NewSettingValue(v), true); status == ccs.SetFailed {
		logger.Warningf("value %q of %s/%s rejected", str, section, key)
	}
}

func (b *Backend) ReadDone(ctx *ccs.Context) {}

// WriteInit reloads the profile so keys of unknown plugins survive the
// write.
func (b *Backend) WriteInit(ctx *ccs.Context) bool {
	return b.ReadInit(ctx)
}

func (b *Backend) WriteSetting(ctx *ccs.Context, setting *ccs.Setting) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.kf == nil {
		return
	}

	section := setting.Plugin().Name()
	key := setting.Name()
	if setting.IsDefault() {
		b.kf.DeleteKey(section, key)
		return
	}

	switch setting.Type() {
	case ccs.TypeAction:
	case ccs.TypeList:
		list, _ := setting.GetList()
		items, err := ccs.ValueListToStrings(list)
		if err != nil {
			logger.Warningf("cannot store %s/%s: %v", section, key, err)
			return
		}
		b.kf.SetStringList(section, key, items)
	default:
		str, err := ccs.ValueToString(setting.Value().Value())
		if err != nil {
			logger.Warningf("cannot store %s/%s: %v", section, key, err)
			return
		}
		b.kf.SetString(section, key, str)
	}
}

func (b *Backend) WriteDone(ctx *ccs.Context) {
	b.mu.Lock()
	kf, file := b.kf, b.file
	b.mu.Unlock()
	if kf == nil {
		return
	}
	if b.watcher != nil {
		b.watcher.ignoreOwnWrite()
	}
	err := saveProfile(kf, file)
	if err != nil {
		logger.Warning(err)
	}
}

func saveProfile(kf *keyfile.KeyFile, file string) error {
	err := os.MkdirAll(filepath.Dir(file), 0755)
	if err != nil {
		return xerrors.Errorf("create profile dir: %w", err)
	}
	tmpFile := file + ".tmp"
	err = kf.SaveToFile(tmpFile)
	if err != nil {
		return xerrors.Errorf("save profile %s: %w", file, err)
	}
	err = os.Rename(tmpFile, file)
	if err != nil {
		return xerrors.Errorf("save profile %s: %w", file, err)
	}
	return nil
}

// UpdateSetting rereads one setting from the profile file.
func (b *Backend) UpdateSetting(ctx *ccs.Context, plugin *ccs.Plugin, setting *ccs.Setting) {
	if !b.ReadInit(ctx) {
		return
	}
	b.ReadSetting(ctx, setting)
}

func (b *Backend) ExistingProfiles(ctx *ccs.Context) ([]string, error) {
	entries, err := os.ReadDir(b.profileDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, xerrors.Errorf("list profiles: %w", err)
	}
	var profiles []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, profileExt) {
			continue
		}
		profiles = append(profiles, strings.TrimSuffix(name, profileExt))
	}
	sort.Strings(profiles)
	return profiles, nil
}

func (b *Backend) DeleteProfile(ctx *ccs.Context, name string) error {
	if name == "" {
		return xerrors.New("empty profile name")
	}
	err := os.Remove(b.profileFile(name))
	if err != nil && !os.IsNotExist(err) {
		return xerrors.Errorf("delete profile %s: %w", name, err)
	}
	return nil
}

func (b *Backend) Events() <-chan ccs.Event {
	return b.events
}
