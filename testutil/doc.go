// Package testutil provides deterministic fixture builders for tests.
//
// The builders emit byte-exact cache files in the formats the read path
// expects, standing in for the offline builder that produces them in
// production. The write side lives only here; the public API of the module
// stays read-only.
package testutil
