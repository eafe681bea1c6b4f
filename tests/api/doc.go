// Package api contains end-to-end tests that exercise the full stack in
// process: the real router and repositories over an in-memory SQLite
// database and a temporary local object store, driven through the
// collector client exactly as an application would.
package api
