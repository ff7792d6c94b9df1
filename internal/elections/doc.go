// Package elections is the voter-facing command surface of the settlement
// elections system.
//
// It flattens the open elections of every settlement into a position-addressable
// index, checks citizenship before a vote is forwarded, and renders listings.
// Election lifecycle, tallying and citizenship storage belong to the authority
// behind SettlementRegistry, ElectionSource and Election; this package keeps no
// state between calls and re-reads everything on each command.
package elections
