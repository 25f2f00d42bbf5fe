package vision

// countBlobs counts 4-connected components of at least minSize set pixels
// in a w x h mask. The mask is consumed: visited pixels are cleared.
func countBlobs(mask []bool, w, h, minSize int) int {
	count := 0
	stack := make([]int, 0, 64)
	for start := range mask {
		if !mask[start] {
			continue
		}
		size := 0
		stack = append(stack[:0], start)
		mask[start] = false
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			x, y := idx%w, idx/w
			if x > 0 && mask[idx-1] {
				mask[idx-1] = false
				stack = append(stack, idx-1)
			}
			if x < w-1 && mask[idx+1] {
				mask[idx+1] = false
				stack = append(stack, idx+1)
			}
			if y > 0 && mask[idx-w] {
				mask[idx-w] = false
				stack = append(stack, idx-w)
			}
			if y < h-1 && mask[idx+w] {
				mask[idx+w] = false
				stack = append(stack, idx+w)
			}
		}
		if size >= minSize {
			count++
		}
	}
	return count
}
