// Package logger configures the global zerolog logger.
//
// Output can go to the console (JSON or zerolog.ConsoleWriter) and to rolling files
// split by level (error, warn, info, trace) through lumberjack. Every log statement
// is counted per level in the log_statements_total prometheus counter.
package logger
