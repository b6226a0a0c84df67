// Package assets embeds the default asset set and its manifest.
package assets

import "embed"

// FS holds the manifest and every file it references.
//
//go:embed sources.yaml textures/*.png
var FS embed.FS

// Manifest is the raw static manifest.
//
//go:embed sources.yaml
var Manifest []byte
