// Package config manages scenario files on disk.
//
// A Manager loads scenario JSON from a configuration directory,
// validates it through the engine, and caches parsed scenarios so
// repeated session creation does not reread the filesystem. The default
// scenario prefers classic.json, falls back to the first valid file in
// the directory, and finally to the engine's built-in scenario so a
// server with an empty config directory still starts.
package config
