// Package processor contains the application logic behind the bopomofo
// commands. It picks the symbol table and the resolver (GCIN mirror or a
// text-to-speech provider), runs the fetch pipeline over every category,
// prints the summary, and exports Anki decks from the resulting clips.
package processor
