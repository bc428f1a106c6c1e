package model

import "strings"

// ConfigDocument is an in-memory view over the project's nuxt.config.ts.
// It is parsed fresh from disk before every patch operation and written back
// immediately after, so each patch is independently re-runnable.
type ConfigDocument struct {
	Raw string
}

// HasKey reports whether keyName occurs anywhere in the document. The check
// is deliberately coarse: duplicating a block is worse than refusing to
// insert one because an unrelated mention exists.
func (d *ConfigDocument) HasKey(keyName string) bool {
	return strings.Contains(d.Raw, keyName)
}

// HasLine reports whether any line of the document contains text.
func (d *ConfigDocument) HasLine(text string) bool {
	for _, line := range strings.Split(d.Raw, "\n") {
		if strings.Contains(line, text) {
			return true
		}
	}

	return false
}
