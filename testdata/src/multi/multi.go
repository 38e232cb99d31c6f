package multi

type counter struct{ n int }

type gauge struct{ v int }

// =============================================================================
// SHOULD REPORT - methods sharing the target name
// =============================================================================

func (c counter) test(d int) int { // want `liveness: test: 1 blocks, LIVEOUT\(0\.entry\)=\{\}`
	s := d
	return s + d
}

func (g gauge) test() int { // want `liveness: test: 1 blocks, LIVEOUT\(0\.entry\)=\{\}`
	var a, b int
	return a * b
}

// =============================================================================
// SHOULD NOT REPORT - anonymous functions are named outer$1
// =============================================================================

func outer() func() int {
	return func() int {
		var k int
		return k - 1
	}
}
