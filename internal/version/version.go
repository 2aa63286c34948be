// Package version carries the build version, overridable at link time.
package version

// Version is the application version reported by /api/system/version.
var Version = "1.2.0"
