// Package audio synthesizes pronunciation clips through text-to-speech
// providers. Every provider returns the encoded clip as bytes so that the
// fetch pipeline can validate and store it.
package audio
