// Package library is the data layer behind the browser: it lists a directory
// into file entries, computes sampled content identifiers in the background and
// watches the browsed directory for changes.
//
// Content identifiers are delivered as ContentReady events keyed by path. Hosts
// patch the matching row and invalidate it in the list view.
package library
