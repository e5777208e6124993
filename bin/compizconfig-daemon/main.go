// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"os"

	"github.com/linuxdeepin/dde-compizconfig/ccs"
	compizconfig "github.com/linuxdeepin/dde-compizconfig/compizconfig1"
	"github.com/linuxdeepin/dde-compizconfig/metadata"
	"github.com/linuxdeepin/go-gir/glib-2.0"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/gettext"
	"github.com/linuxdeepin/go-lib/gsettings"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("compizconfig/daemon")

var _options struct {
	verbose     bool
	logLevel    string
	metaDir     string
	profile     string
	backend     string
	integration string
}

func init() {
	// -v | -verbose
	const verboseUsage = "Show much more message, shorthand for --loglevel debug."
	flag.BoolVar(&_options.verbose, "v", false, verboseUsage)
	flag.BoolVar(&_options.verbose, "verbose", false, verboseUsage)

	// -l | -loglevel
	const logLevelUsage = "Set log level, possible value is error/warn/info/debug/no, info is default"
	flag.StringVar(&_options.logLevel, "l", "", logLevelUsage)
	flag.StringVar(&_options.logLevel, "loglevel", "", logLevelUsage)

	flag.StringVar(&_options.metaDir, "meta", metadata.DefaultDir, "Directory of the plugin descriptions.")
	flag.StringVar(&_options.profile, "profile", "", "Profile to load, $"+profileEnv+" or Default when empty.")
	flag.StringVar(&_options.backend, "backend", defaultBackend, "Backend storing the profiles.")
	flag.StringVar(&_options.integration, "integration", "auto",
		"Keep settings in sync with the desktop, possible value is auto/on/off.")
}

func main() {
	flag.Parse()
	gettext.InitI18n()
	gettext.BindTextdomainCodeset(textDomain, "UTF-8")
	gettext.Textdomain(textDomain)

	if _options.verbose {
		_options.logLevel = "debug"
	}
	logLevel, err := toLogLevel(_options.logLevel)
	if err != nil {
		logger.Warning("failed to parse loglevel:", err)
		os.Exit(1)
	}
	setLogLevel(logLevel)

	ctx := ccs.NewContext(0)
	_, err = metadata.LoadDir(ctx, _options.metaDir)
	if err != nil {
		logger.Fatal("failed to load plugins:", err)
	}
	ctx.SetProfile(profileName(_options.profile))

	enabled, err := integrationEnabled(_options.integration, os.Getenv("XDG_CURRENT_DESKTOP"))
	if err != nil {
		logger.Fatal(err)
	}
	if enabled {
		enableIntegration(ctx)
	}

	err = ctx.SetBackend(_options.backend)
	if err != nil {
		logger.Fatal("failed to set backend:", err)
	}
	defer ctx.Close()
	err = ctx.ReadSettings()
	if err != nil {
		logger.Warning("failed to read settings:", err)
	}
	ctx.ClearChangedSettings()

	service, err := dbusutil.NewSessionService()
	if err != nil {
		logger.Fatal("failed to new session service:", err)
	}
	hasOwner, err := service.NameHasOwner(compizconfig.ServiceName)
	if err != nil {
		logger.Warning("failed to call NameHasOwner:", err)
	} else if hasOwner {
		logger.Warning("compizconfig daemon is running")
		return
	}
	m := compizconfig.NewManager(service, ctx)
	err = m.Start()
	if err != nil {
		logger.Fatal("failed to export:", err)
	}
	defer m.Stop()

	// GSettings notifications need the glib loop
	err = gsettings.StartMonitor()
	if err != nil {
		logger.Warning(err)
	}
	go glib.StartLoop()
	logger.Info("compizconfig daemon started, profile", ctx.Profile())
	service.Wait()
}
