package ignored

type a struct{}

type b struct{}

type c struct{}

type d struct{}

// =============================================================================
// SHOULD NOT REPORT - function-level ignore
// =============================================================================

// test of a is skipped together with its closures.
//
//liveness:ignore
func (a) test() int {
	inner := func() int {
		var x int
		return x + 1
	}
	return inner()
}

// =============================================================================
// SHOULD REPORT - no directive
// =============================================================================

func (b) test() int { // want `liveness: test: 1 blocks, LIVEOUT\(0\.entry\)=\{\}`
	var k int
	return k + 1
}

// =============================================================================
// SHOULD REPORT - directive on a function that is not a target
// =============================================================================

//liveness:ignore // want `unused liveness:ignore directive`
func helper() int {
	return 0
}
