// Package version carries the build version, overridable with
// -ldflags "-X gibbsmotif/internal/version.Version=...".
package version

var Version = "0.1.0-dev"
