// Package sheets turns raw spreadsheet tabs into addressable columns.
//
// Headers are normalized before any lookup so that decorations editors add to
// a sheet (emoji, currency glyphs, parenthesised units, stray punctuation or
// case changes) do not break column matching. Schemas bind logical fields to
// header positions, and the Locator tries candidate tabs until one satisfies
// a dataset's column contract.
package sheets
