// Package sizeunit converts between byte counts and human-readable size
// strings such as "1.5 MB". Units are 1024-based (B, KB, MB, GB).
//
// The conversion is lossy in the Format direction: values above 1 KB are
// rendered with two decimal places, so Parse(Format(n)) reproduces n only
// within the rounding error of that truncation.
package sizeunit
