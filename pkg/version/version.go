// Package version holds the build version string.
package version

// Version is the lintview release version, overridden at build time via
// -ldflags "-X github.com/pcranleigh/lintview/pkg/version.Version=...".
var Version = "dev"
