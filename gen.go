// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package compizconfig

//go:generate go build -o target/ github.com/linuxdeepin/dde-compizconfig/bin/compizconfig-daemon
//go:generate go build -o target/ github.com/linuxdeepin/dde-compizconfig/bin/ccs-tool
