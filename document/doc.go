// Package document provides a plain-text document subject with
// reversible Insert, Delete, and Replace operations.
//
// All offsets are rune offsets, so multi-byte UTF-8 text behaves the
// way a user counting characters expects. The document's mutators are
// unexported: the only way to change a document is through its
// operation types, which capture the pre-state they need to invert
// themselves and never expose it.
//
// Document implements the engine's Subject contract. State blobs are
// MessagePack-encoded and self-contained.
package document
