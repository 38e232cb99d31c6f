package none

// =============================================================================
// SHOULD NOT REPORT - no function is named test
// =============================================================================

func tester() int {
	x := 1
	return x + 1
}

func testHelper(n int) int {
	if n > 0 {
		return n - 1
	}
	return n
}
