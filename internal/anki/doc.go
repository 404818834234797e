// Package anki exports Bopomofo flashcards for the Anki spaced repetition
// app. Cards are built from the clips of a populated output directory and
// written either as a CSV import file or as a self-contained .apkg package
// (a zip archive holding a SQLite collection and the media files).
//
// Every note yields two cards: one showing the symbol and asking for its
// sound, and a listening card playing the clip and asking for the symbol.
package anki
