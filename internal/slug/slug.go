// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings,
// used for seeded lesson slugs and uploaded asset names.
package slug

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// maxFilenameLen caps the slug part of an asset name.
const maxFilenameLen = 64

// Filename slugs the base name of an uploaded file, without its extension,
// for use inside an object key. It returns "" when nothing usable is left.
// Example: "My Diagram (final).PNG" → "my-diagram-final"
func Filename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	result := Generate(strings.NewReplacer("_", " ", ".", " ").Replace(base))
	if len(result) > maxFilenameLen {
		result = strings.TrimRight(result[:maxFilenameLen], "-")
	}
	return result
}
