// Package pagemd converts web pages into self-contained Markdown documents.
// It fetches a page, isolates its main content region, localizes the images
// that region references and writes the result as Markdown with a small
// provenance header.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout, plus the pure text functions of the conversion
// core. Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, http/, sqlite/).
package pagemd
