// Package dataset implements the data preparation pipeline for SINAN
// interpersonal-violence notification workbooks.
//
// The pipeline loads a single Excel workbook, restricts the population to
// female-coded records, normalizes the date columns, derives the
// notification year, the age at notification and an ordered age bracket,
// and decodes the SINAN categorical codes into display labels. The result
// is an immutable in-memory Dataset; presentation code only derives
// read-only views (year-filtered subsets) from it.
//
// Loading is memoized by Store: the workbook is read at most once per
// process, success and failure alike, and is never invalidated.
package dataset
