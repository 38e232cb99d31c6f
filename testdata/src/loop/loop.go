package loop

// x is live around the back-edge and into the exit block.
func test(n int) int { // want `liveness: test: \d+ blocks, LIVEOUT\(0\.entry\)=\{n, x\}`
	x := 0
	for x < n {
		x = x + 1
	}
	return x * 2
}
