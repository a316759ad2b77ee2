// Package logtail reads the tail of the pokedex log file for the in-app log
// view.
//
// # Reading
//
// Read extracts the last maxLines lines with a ring buffer, so memory stays
// O(maxLines) however large the file grows. A non-positive maxLines reads the
// whole file. A missing file yields nil, nil.
//
//	lines, err := logtail.Read(cfg.Logging.File, 200)
//
// # Parsing
//
// The application logs through logrus with the JSON formatter. Parse turns
// one such line into an Entry with time, upper-cased level, message and the
// remaining fields as strings. Lines that are not JSON are kept verbatim in
// Message so nothing is hidden from the viewer.
//
// Styling is left to the UI.
package logtail
