// Package segmatch reconciles two independently produced segmentations of
// the same audio. Each reference segment is classified against the
// hypothesis list as one-to-one, text-diff-only, split, missing, or
// timeline-mismatch; a backward pass over unclaimed hypothesis segments
// detects merges. Interval overlap decides the unambiguous cases and text
// similarity breaks the rest, mirroring how ASR re-chunking moves boundaries
// without changing content.
package segmatch
