// Package htmlmd converts HTML to Markdown through a two-stage pipeline:
// the HTML element tree is first transformed into a Markdown document tree,
// which is then serialized to text under a configurable set of stylistic
// rules (bullet markers, emphasis markers, heading style, code fences, and
// so on).
//
// This package contains the domain types, the transformer, and the
// serializer. Implementations of auxiliary surfaces live in subdirectories
// named after their primary dependency (e.g., goquery/, slog/).
package htmlmd
