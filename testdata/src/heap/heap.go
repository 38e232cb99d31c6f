package heap

// p escapes through its address, so it lives on the heap. It is read before
// any store, as is q.
func test() (*int, int) {
	var p, q int
	r := p + q
	return &p, r
}
