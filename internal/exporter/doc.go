// Package exporter persists assembled reports: SheetWriter writes the
// three report tables back into the workbook with red-font flagging of
// out-of-bounds cells, and CSVWriter exports the same tables as CSV.
// The core engine hands over records plus cell flags; all rendering
// and file I/O concerns live here.
package exporter
