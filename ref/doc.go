// Package ref resolves "$ref" values to schema nodes.
//
// A Resolver knows a set of documents keyed by URI. References are parsed
// relative to the document they appear in and may address a node by JSON
// pointer ("#/$defs/item", "other.json#/properties/id") or by anchor
// ("#item"). Documents that are not registered can be supplied on demand
// by a Loader; the resolver itself never touches the network.
//
// A Session tracks which nodes are being compiled. Re-entering a node that
// is already on the stack signals a reference cycle, which the compiler
// breaks by deferring the reference until validation time.
package ref
