/*
Package registry holds the callback tables for foreign values.

A foreign value is an opaque payload whose clone, free, hash and equality
behaviour is supplied by the embedding program. Each foreign type tag
(the Tag of a types.ForeignType) maps to one ForeignType implementation.
The registry is safe for concurrent use; lookups take a read lock.
*/
package registry
