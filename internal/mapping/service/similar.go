package service

// ratio is a symmetric matching-blocks similarity in [0..1]:
// 2*M / (len(a)+len(b)), where M is the total length of the common blocks
// found by taking the longest common substring and recursing on both sides.
func ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	m := matchTotal(ra, rb)
	return 2 * float64(m) / float64(len(ra)+len(rb))
}

func matchTotal(a, b []rune) int {
	ai, bi, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matchTotal(a[:ai], b[:bi]) + matchTotal(a[ai+size:], b[bi+size:])
}

// longestBlock finds the longest common substring of a and b.
// Ties resolve to the earliest position in a, then in b.
func longestBlock(a, b []rune) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			cur[j+1] = prev[j] + 1
			if cur[j+1] > size {
				size = cur[j+1]
				ai = i + 1 - size
				bi = j + 1 - size
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
