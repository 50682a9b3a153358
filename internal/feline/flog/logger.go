// Package flog provides the package-level diagnostic logger shared
// across the feline trajectory-analytics packages. The core computation
// path never logs on success; this exists for solver fallbacks and
// clamped numerical anomalies that a caller may want visibility into.
package flog

import "log"

// Logf is the package-level diagnostic logger. It defaults to
// log.Printf but may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger, useful for quiet test runs.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
