package theme

import "embed"

// EmbeddedThemes holds the theme definitions that ship with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
