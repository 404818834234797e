// Package symbols defines the entry tables that drive audio fetching: each
// entry pairs an output key (a Bopomofo symbol or tone label) with a
// resolver-specific source descriptor. Entries are grouped into categories
// for display only.
package symbols
