// Package canvas implements the shared story canvas document.
//
// A Document holds global fields (title, description, story) and an ordered
// list of heterogeneous items. Every mutation validates its arguments first
// and applies either completely or not at all; a failed operation leaves the
// document untouched.
//
// The document itself is not goroutine-safe. The session layer serializes
// turns per conversation, so at most one mutator runs at a time; observers
// read through Snapshot(), which returns an independent deep copy.
package canvas
