// Package core provides the record query engine.
//
// This package has no transport or storage dependencies. It can be driven by
// the web handlers, the recordctl CLI, or tests without modification.
//
// # Architecture
//
// The package is organized around four pieces:
//
//   - Catalog: an ordered registry of [ColumnDescriptor] values. Each column has
//     a name, a display label, a semantic [ColumnType] and a total accessor
//     that extracts a [Value] from a [Record].
//   - Engine: applies a normalized [Query] to a snapshot of records in a fixed
//     order: search, column filters, sort, paginate.
//   - Suggestions: [Engine.Suggest] lists the distinct values of one column
//     under every active constraint except the column's own filter.
//   - Exporter: renders records as fully quoted delimited text in catalog order.
//
// # Column Catalog
//
// Columns are data, not struct fields. The default catalog is built once:
//
//	cat := core.DefaultCatalog()
//	col, ok := cat.Resolve("updatedat") // lookup is case-insensitive
//	text := col.Render(record)          // "2024-03-01"
//
// # Query Lifecycle
//
// A [Query] is a value. [Query.Normalize] returns a sanitized copy and the
// With/Without helpers build derived queries without touching the original:
//
//	q := core.NewQuery().WithColumnFilter("Status", "active")
//	res, err := engine.Records(q)
//	if errors.Is(err, core.ErrInvalidDateRange) {
//	    // res is empty, show the message
//	}
//
// # Error Handling
//
// Malformed input degrades to defaults. Unknown columns are ignored, pages past
// the end are clamped. The only reported validation error is an inverted date
// range. Technical errors are mapped to user messages with [MapError].
package core
