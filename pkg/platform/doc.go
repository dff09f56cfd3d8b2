// Package platform evaluates os-constraint expressions against the
// operating system dotlink is running on.
//
// A constraint is a comma separated list of OS names. A name prefixed with
// "!" excludes that OS. Names are matched case-insensitively against
// runtime.GOOS; "macos", "osx" and "mac" are accepted for darwin and "win"
// for windows.
//
//	linux            only Linux
//	linux, darwin    Linux or macOS
//	!windows         anything but Windows
package platform
