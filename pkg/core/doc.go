// Package core exposes the location permission and device service checks
// that address verification depends on.
//
// The checks themselves live in the native core module. This package only
// forwards them over the "okhi/core" method channel and decodes the replies.
// Every request may show a system dialog and blocks until the user responds.
package core
