// Package remote downloads pre-recorded pronunciation clips from a static
// file mirror of the GCIN voice data, where each syllable is a folder that
// holds the recording under a fixed file name.
package remote
