// Package service holds the application use cases: claim calculation,
// document generation, saved profiles, drafts and distance lookup.
package service

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
