package internal

// Version is the current bopomofo release.
const Version = "0.3.0"
