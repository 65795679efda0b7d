package monitor

import (
	"fmt"
	"strings"
)

// maxLabelLen bounds the label part of a section file name.
const maxLabelLen = 64

// sanitizeLabel makes a run label safe to embed in a file name. Characters
// other than ASCII letters, digits, dot, underscore and dash become a single
// underscore per run; leading and trailing dots and underscores are trimmed.
func sanitizeLabel(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLabelLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "._")
}

// sectionFilename returns "<label>_<kind>_z<z>.<ext>", or "<kind>_z<z>.<ext>"
// when the sanitised label is empty.
func sectionFilename(label, kind string, z int, ext string) string {
	name := fmt.Sprintf("%s_z%03d.%s", kind, z, ext)
	if l := sanitizeLabel(label); l != "" {
		return l + "_" + name
	}
	return name
}
