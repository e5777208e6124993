// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/linuxdeepin/dde-compizconfig/backends/ini"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"github.com/linuxdeepin/dde-compizconfig/ccsobject"
	compizconfig "github.com/linuxdeepin/dde-compizconfig/compizconfig1"
	"github.com/linuxdeepin/dde-compizconfig/integration/gnome"
	"github.com/linuxdeepin/dde-compizconfig/metadata"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	textDomain     = "compizconfig"
	profileEnv     = "COMPIZ_CONFIG_PROFILE"
	defaultBackend = ini.Name
)

func toLogLevel(name string) (log.Priority, error) {
	name = strings.ToLower(name)
	logLevel := log.LevelInfo
	var err error
	switch name {
	case "":
		logLevel = log.LevelInfo
	case "error":
		logLevel = log.LevelError
	case "warn":
		logLevel = log.LevelWarning
	case "info":
		logLevel = log.LevelInfo
	case "debug":
		logLevel = log.LevelDebug
	case "no":
		logLevel = log.LevelDisable
	default:
		err = fmt.Errorf("%s is not support", name)
	}

	return logLevel, err
}

func setLogLevel(pri log.Priority) {
	logger.SetLogLevel(pri)
	ccs.SetLogLevel(pri)
	ini.SetLogLevel(pri)
	gnome.SetLogLevel(pri)
	metadata.SetLogLevel(pri)
	compizconfig.SetLogLevel(pri)
}

// profileName prefers the flag, then the environment.
func profileName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(profileEnv); env != "" {
		return env
	}
	return ccs.DefaultProfile
}

// integrationEnabled resolves mode against the running desktop.
func integrationEnabled(mode, desktop string) (bool, error) {
	switch strings.ToLower(mode) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		for _, d := range strings.Split(desktop, ":") {
			if strings.EqualFold(d, "GNOME") || strings.EqualFold(d, "Deepin") {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("%s is not support", mode)
}

func enableIntegration(ctx *ccs.Context) {
	storage := ccs.NewIntegratedSettingsStorageDefault(ccsobject.DefaultAllocator)
	if storage == nil {
		logger.Warning("failed to allocate integrated settings storage")
		return
	}
	factory := gnome.NewGSettingsIntegratedSettingFactory(nil)
	ctx.SetIntegration(gnome.NewGNOMEIntegration(factory, storage))
	ctx.SetIntegrationEnabled(true)
	logger.Info("desktop integration enabled")
}
