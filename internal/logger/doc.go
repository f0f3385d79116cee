// Package logger wraps a global zap sugared logger.
// Loggers can be carried in a context with extra key-value fields, the level can be
// changed at runtime, and output can be mirrored into a rotated log file.
package logger
