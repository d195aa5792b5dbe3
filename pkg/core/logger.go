package core

import "github.com/golang/glog"

// glogLogger implements Logger on top of glog's INFO stream
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(format, args...)
}

// NewDefaultLogger returns the Logger used when callers do not supply one
func NewDefaultLogger() Logger {
	return glogLogger{}
}
