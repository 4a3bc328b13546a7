// Package exporter persists generated reports and failure diagnostics.
//
// TextWriter writes finished report text to disk, by default with a
// UTF-8 BOM so Windows Notepad renders the flag emoji correctly.
//
// ErrorLog captures everything needed to diagnose a failed run: the
// workbook path, the error, the sheet names, and the header row of
// every sheet. Writing the log never fails loudly; a log that cannot
// be written must not mask the error it describes.
package exporter
