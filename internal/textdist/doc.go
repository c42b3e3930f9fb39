// Package textdist implements edit-distance scoring for transcript
// comparison: Levenshtein distance with operation counts, word and character
// error rates, a normalized similarity ratio, and the text normalization
// applied before any comparison.
package textdist
