// Package catalog loads the ordered list of discs from a YAML file.
//
// Example file:
//
//	discs:
//	  - title: Intro Theme
//	    track: tracks/intro.ogg
//	    texture: textures/intro.png
//	  - id: boss
//	    title: Boss Fight
//	    track: tracks/boss.ogg
//	    texture: textures/boss.jpg
//	    length: 142.5
//
// Relative paths are resolved against the file's directory. Missing
// titles and lengths are read from the track's tags, and a missing id is
// derived from the title.
package catalog
