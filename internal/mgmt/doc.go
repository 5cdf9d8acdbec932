// Package mgmt implements an in-process management registry.
//
// Components register an entry under an ObjectName ("domain:key=value,...")
// together with a set of named attributes. Attributes are getter functions
// evaluated on every read, so a reader always sees the current value of a
// live counter.
//
// Readers locate entries with Query, using an ObjectName whose properties are
// matched as a subset (a trailing wildcard is implied), and then read single
// attributes with GetAttribute. A closed registry answers every call with
// ErrUnavailable.
package mgmt
