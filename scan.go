package main

import "bytes"

// findAll returns the offset of every non-overlapping occurrence of needle in
// haystack, in scan order. After a match at position p the search resumes at
// p+len(needle). An empty needle, or one longer than the haystack, matches
// nothing.
func findAll(haystack, needle []byte) []int {
	var offsets []int
	if len(needle) == 0 || len(haystack) < len(needle) {
		return offsets
	}

	pos := 0
	for pos+len(needle) <= len(haystack) {
		i := bytes.Index(haystack[pos:], needle)
		if i < 0 {
			break
		}
		offsets = append(offsets, pos+i)
		pos += i + len(needle)
	}
	return offsets
}
