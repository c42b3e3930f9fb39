// Package maskalign time-aligns two independently produced speech masks by
// brute-force cross-correlation within a bounded shift window, then reports
// their agreement as IoU, precision, recall, and the longest one-sided runs.
package maskalign
