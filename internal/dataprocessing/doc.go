// Package dataprocessing is the data-reduction core of the TOC report
// pipeline. It turns one sheet of raw instrument readings into the
// three derived report tables the lab files with a run: quality
// control, samples and reported results.
//
// # Architecture
//
// The package is a chain of small pure steps:
//
//  1. Parser: reads the instrument sheet via excelize into raw rows
//  2. Cleaner: trims identifiers and coerces numeric cells to nulls
//  3. Classifier: tags each identifier as a QC type or ordinary sample
//  4. Grouper: groups rows by identifier in first-seen order
//  5. Statistics: mean, %R, %RPD and ppm→umol/L per group
//  6. Assembler: lays out the three report tables and flags
//     out-of-bounds cells for the writer to color
//
// # Data flow
//
//	Workbook sheet → ParseSheet → Clean → Assemble → Report → exporter
//
// # Error handling
//
// Data-quality problems never produce errors: an unparseable cell, an
// unknown identifier or an empty group degrades to a null field in the
// output. Only structural failures, an unopenable workbook or a sheet
// with no header row, return an error, and only one.
//
// The package keeps no state between runs; every call works purely on
// its inputs.
package dataprocessing
