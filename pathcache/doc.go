// Package pathcache provides an optional lookup cache in front of
// eid_by_rrpath: resolving a path by linear scan (§4.3) is cheap for
// small branches, but an equivalent index is a valid substitute as long
// as it matches the scan's behavior. This package offers an in-process
// MRU cache and an optional Redis-backed tier for sharing that index
// across processes.
package pathcache
