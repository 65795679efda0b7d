// Package monitor renders diagnostic plots of computed masks.
//
// SectionPlotter draws constant-z sections of a mask grid as heat maps and
// writes them as PNG files through an fsutil.FileSystem, so runs can be
// inspected by eye and tests can render into memory.
//
// Dependency rule: monitor depends on masks and fsutil. Nothing in the
// engine depends on monitor.
package monitor
