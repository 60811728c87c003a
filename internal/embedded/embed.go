// Package embedded bundles the static place snapshot used as the
// fallback-of-last-resort when both the local and remote sources are
// unavailable.
package embedded

import (
	"embed"
)

// FS embeds the static knowledge-base snapshot at build time.
//
//go:embed kb.json
var FS embed.FS
