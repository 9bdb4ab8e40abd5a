package bytepattern

// NotFound is returned by Find when no match exists.
const NotFound = -1

// Find returns the first index i >= start such that haystack[i:i+len(p)]
// matches p token for token (wildcards match anything). It returns
// NotFound if p is empty, start is out of range, or no match exists.
// The scan is a plain forward scan: no Boyer-Moore-style skipping is
// required by contract, only first-hit semantics.
func Find(haystack []byte, p Pattern, start int) int {
	n := len(haystack)
	m := len(p)

	if m == 0 || start < 0 || start >= n || m > n {
		return NotFound
	}

	for i := start; i+m <= n; i++ {
		if matchesAt(haystack, p, i) {
			return i
		}
	}

	return NotFound
}

func matchesAt(haystack []byte, p Pattern, i int) bool {
	for k, t := range p {
		if t.Wildcard {
			continue
		}

		if haystack[i+k] != t.Literal {
			return false
		}
	}

	return true
}
