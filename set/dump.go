package set

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the bucket occupancy of s to w, one line per bucket:
//
//	size = 3
//	capacity = 5
//	0: -
//	1: 11 -> 6 -> 1
//	...
func (s *Set[K]) Dump(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "size = %d\ncapacity = %d\n", s.Len(), s.Capacity())
	for i := range s.Capacity() {
		fmt.Fprintf(&b, "%d: ", i)
		sep := ""
		for k := range s.t.Chain(i) {
			b.WriteString(sep)
			fmt.Fprint(&b, k)
			sep = " -> "
		}
		if sep == "" {
			b.WriteByte('-')
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
