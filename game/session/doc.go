// Package session manages exploration session lifecycle.
//
// A Manager stores sessions in memory keyed by a case-insensitive ID
// and can be backed by a SessionPersistence layer that survives server
// restarts. FilePersistence stores one JSON file per session containing
// the serialized engine state; the grid itself is never written out
// because rebuilding it from the scenario seeds and replaying the
// recorded turns reproduces it exactly.
package session
