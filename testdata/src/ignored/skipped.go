// Package ignored exercises ignore directives and generated-file skipping.
//
//liveness:ignore
package ignored

func (d) test() int {
	var s int
	return s - 1
}
