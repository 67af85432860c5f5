package fourier

// ReverseBits reverses the lowest bits bits of i.
func ReverseBits(i, bits int) int {
	r := 0
	for range bits {
		r = r<<1 | i&1
		i >>= 1
	}
	return r
}

// BitReverseIndices returns the bit-reversal permutation for size n.
// indices[i] is the position sample i must occupy before an in-place
// radix-2 pass. n must be a power of two.
func BitReverseIndices(n int) []int {
	bits := Log2(n)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = ReverseBits(i, bits)
	}
	return indices
}

// permute applies the (self-inverse) bit-reversal permutation in place.
func permute(re, im []float64, indices []int) {
	for i, j := range indices {
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}
}
