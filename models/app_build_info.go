// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries immutable build-time metadata embedded into binaries
// through linker flags. Both binaries log it at startup and the server
// exposes it on the version endpoint.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }

func (a AppBuildInfo) BuildDate() string { return a.buildDate }

func (a AppBuildInfo) BuildCommit() string { return a.buildCommit }

// VersionInfo converts build metadata into its wire form. A configured
// application version takes precedence over the linker-provided one.
func (a AppBuildInfo) VersionInfo(configured string) VersionInfo {
	version := a.buildVersion
	if configured != "" {
		version = configured
	}
	return VersionInfo{Version: version, Date: a.buildDate, Commit: a.buildCommit}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
