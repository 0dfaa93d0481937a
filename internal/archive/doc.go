// Package archive zips a finished pack tree into <dir>.zip.
package archive
