// Package ioutils provides file system and image utilities.
//
// This package contains functions for:
//   - File copying and writing on an afero filesystem
//   - Directory creation
//   - Transcoding disc textures and pack icons to PNG
//
// # File Operations
//
//	fsys := afero.NewOsFs()
//
//	// Copy a file
//	err := ioutils.CopyFile(fsys, "/music/alpha.ogg", "pack/assets/minecraft/sounds/records/alpha.ogg")
//
//	// Write data to file, creating parent directories
//	err := ioutils.WriteFile(fsys, "pack/pack.mcmeta", data)
//
// # Image Processing
//
// The ImageService copies PNG images verbatim and converts other decodable
// formats (JPEG, GIF, BMP, TIFF, WebP) to PNG:
//
//	svc := ioutils.NewImageService()
//	converted, err := svc.CopyAsPNG(fsys, "/art/alpha.jpg", "pack/.../music_disc_alpha.png")
package ioutils
