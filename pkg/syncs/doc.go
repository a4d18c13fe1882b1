// Package syncs provides per-key and per-path locking.
//
// [PathLock] serializes writers of the same file while letting writers of
// different files proceed concurrently.
package syncs
