// Package sorting produces a deterministic total order over enriched tracks
// from an ordered list of (attribute, direction) levels.
//
// A flat registry maps each attribute tag to a pure key extractor; the
// composite key is each level's segment in level order, compared until the
// first difference. Direction is realized inside a single segment, by
// numeric negation or a reversed string comparison, never by reversing the
// whole key or the output, which would invert unrelated levels.
//
// Missing-value policy is per attribute: release dates use
// direction-specific boundary sentinels so unknown dates land last either
// way; unknown track numbers use the 9999 sentinel; artists absent from
// the favourite rankings get positive infinity and stay last in both
// directions. String attributes compare case-insensitively.
//
// The sort is stable: tracks equal on every level keep their input order.
// The package performs no I/O and does not validate level combinations;
// that is the request boundary's job.
package sorting
