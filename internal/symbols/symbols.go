package symbols

import "strings"

// Entry maps an output file key to the descriptor a resolver understands
type Entry struct {
	Key    string // Destination base name, e.g. "ㄅ" or "tone1"
	Source string // Remote folder fragment or text to synthesize
}

// Category is a named group of entries
type Category struct {
	Name    string
	Entries []Entry
}

// Table is an ordered list of categories
type Table []Category

// Entries flattens the table in order
func (t Table) Entries() []Entry {
	var entries []Entry
	for _, c := range t {
		entries = append(entries, c.Entries...)
	}
	return entries
}

// Len returns the total number of entries
func (t Table) Len() int {
	n := 0
	for _, c := range t {
		n += len(c.Entries)
	}
	return n
}

// Filter returns the categories whose names match one of names
// (case-insensitive). An empty names list returns the table unchanged.
func (t Table) Filter(names ...string) Table {
	if len(names) == 0 {
		return t
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var out Table
	for _, c := range t {
		if wanted[strings.ToLower(c.Name)] {
			out = append(out, c)
		}
	}
	return out
}

// Lookup finds the entry with the given key
func (t Table) Lookup(key string) (Entry, string, bool) {
	for _, c := range t {
		for _, e := range c.Entries {
			if e.Key == key {
				return e, c.Name, true
			}
		}
	}
	return Entry{}, "", false
}
