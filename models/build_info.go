// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const notAvailable = "N/A"

// BuildInfo is the build metadata injected by linker flags into the server
// and catalogadm binaries.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo reports empty values as "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	orNA := func(s string) string {
		if s == "" {
			return notAvailable
		}
		return s
	}
	return BuildInfo{Version: orNA(version), Date: orNA(date), Commit: orNA(commit)}
}

// Known reports whether a version was injected at build time.
func (b BuildInfo) Known() bool {
	return b.Version != "" && b.Version != notAvailable
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("version %s (commit %s, built %s)", b.Version, b.Commit, b.Date)
}

// AppInfo is served on /version.
type AppInfo struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
