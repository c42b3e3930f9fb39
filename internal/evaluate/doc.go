// Package evaluate computes whole-file transcript metrics: overall
// similarity, WER, CER with operation breakdowns, and segment-structure
// statistics.
package evaluate
