// Package sqlite provides a SQLite-backed tower store.
//
// It persists computed coverings and their intermediate-cover rows, keeping
// symbolic quantities as text alongside nullable integer columns for
// numeric filtering.
package sqlite
