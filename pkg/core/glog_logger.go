package core

import (
	"strings"

	"github.com/golang/glog"
)

// GlogLogger writes log lines to glog at the given verbosity
type GlogLogger struct {
	Level glog.Level
}

// Printf implements Logger
func (l GlogLogger) Printf(format string, args ...interface{}) {
	glog.V(l.Level).Infof(strings.TrimSuffix(format, "\n"), args...)
}
