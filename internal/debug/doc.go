// Package debug provides optional leveled debug logging.
//
// When the WEBAPP_DEBUG environment variable is set to a file path, messages
// are appended to that file. Otherwise the default logger discards output.
// A Logger can also be pointed at any io.Writer, which is how tests capture
// diagnostics.
package debug
