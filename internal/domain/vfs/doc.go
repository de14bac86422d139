// Package vfs implements the in-memory virtual file system of a desktop.
//
// The tree is a flat list of items linked by parent id. Deletes go through
// a recycle bin first; cascades reach one level of children only. The
// clipboard holds snapshots taken at copy or cut time. Gated operations
// (delete, permanent delete, empty bin) take a dialog service per call and
// report a types.Outcome.
package vfs
