//go:build windows
// +build windows

package ui

import (
	"io"
)

// Select is responsible for determining the specific UI function given select user option, the current platform
// config values, and environment status (such as a TTY being present). On windows only the logger UI is supported.
func Select(_, _, _ bool, reportWriter io.Writer) (uis []UI) {
	return append(uis, NewLoggerUI(reportWriter))
}
