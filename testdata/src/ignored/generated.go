// Code generated by hand for tests. DO NOT EDIT.

package ignored

func (c) test() int {
	var g int
	return g * 2
}
