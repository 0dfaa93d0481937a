// Package logging sets up the zerolog logger shared by every component.
//
// Output goes to stderr through a console writer and, when the XDG state
// directory is writable, to an append-only log file at
// $XDG_STATE_HOME/discpack/discpack.log.
package logging
