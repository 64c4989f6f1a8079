package linsearch

// Unrolled kernels. Each block's comparisons are independent and are tested
// in increasing offset order, so the lowest matching offset wins. A scalar
// tail covers len(s) % K.

// UnrollFactors returns the unroll factors with a specialized kernel.
func UnrollFactors() []int {
	return []int{2, 4, 5, 8}
}

func unrolledKernel(k int) (func([]int32, int32) int, bool) {
	switch k {
	case 2:
		return indexUnrolled2, true
	case 4:
		return indexUnrolled4, true
	case 5:
		return indexUnrolled5, true
	case 8:
		return indexUnrolled8, true
	default:
		return nil, false
	}
}

func indexTail(s []int32, i int, target int32) int {
	for ; i < len(s); i++ {
		if s[i] == target {
			return i
		}
	}
	return NotFound
}

func indexUnrolled2(s []int32, target int32) int {
	i := 0
	for ; i+2 <= len(s); i += 2 {
		b := (*[2]int32)(s[i : i+2])
		if b[0] == target {
			return i
		}
		if b[1] == target {
			return i + 1
		}
	}
	return indexTail(s, i, target)
}

func indexUnrolled4(s []int32, target int32) int {
	i := 0
	for ; i+4 <= len(s); i += 4 {
		b := (*[4]int32)(s[i : i+4])
		if b[0] == target {
			return i
		}
		if b[1] == target {
			return i + 1
		}
		if b[2] == target {
			return i + 2
		}
		if b[3] == target {
			return i + 3
		}
	}
	return indexTail(s, i, target)
}

func indexUnrolled5(s []int32, target int32) int {
	i := 0
	for ; i+5 <= len(s); i += 5 {
		b := (*[5]int32)(s[i : i+5])
		if b[0] == target {
			return i
		}
		if b[1] == target {
			return i + 1
		}
		if b[2] == target {
			return i + 2
		}
		if b[3] == target {
			return i + 3
		}
		if b[4] == target {
			return i + 4
		}
	}
	return indexTail(s, i, target)
}

func indexUnrolled8(s []int32, target int32) int {
	i := 0
	for ; i+8 <= len(s); i += 8 {
		b := (*[8]int32)(s[i : i+8])
		if b[0] == target {
			return i
		}
		if b[1] == target {
			return i + 1
		}
		if b[2] == target {
			return i + 2
		}
		if b[3] == target {
			return i + 3
		}
		if b[4] == target {
			return i + 4
		}
		if b[5] == target {
			return i + 5
		}
		if b[6] == target {
			return i + 6
		}
		if b[7] == target {
			return i + 7
		}
	}
	return indexTail(s, i, target)
}
