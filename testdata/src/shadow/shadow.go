package shadow

// z is stored before the comparison reads it.
func test(n int) int { // want `liveness: test: \d+ blocks, LIVEOUT\(0\.entry\)=\{\}`
	z := n
	if z > 0 {
		return 1
	}
	return 0
}
