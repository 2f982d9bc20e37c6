// Package core implements the element-addressed branch model: a forest of
// branch instances whose nodes are identified by stable element ids (EIDs)
// rather than by path. It provides the data model (families, siblings,
// branch instances, revision roots, element maps), the tree operations that
// run over it (path resolution, orphan purge, subtree extraction, copy and
// re-branch), and the primitives the editor façade (package editor) and the
// text serializer (package textfmt) build on.
//
// The core is single-threaded: no exported operation here blocks, retries,
// or spawns concurrent work. Callers that need concurrency (e.g. serving
// many repositories at once) own that above this package.
package core
