// Package batch reads custom symbol tables from plain text files.
package batch
