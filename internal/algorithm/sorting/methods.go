package sorting

import (
	"github.com/kazumasamatsumoto/algo/internal/runner"
)

func (r *Sorter) bubble(tok *runner.Token, arr []int) {
	n := len(arr)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if tok.Stopped() {
				return
			}
			if !r.compare(tok, j, j+1, nil) {
				return
			}
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				if !r.exchanged(tok, arr, j, j+1) {
					return
				}
			}
		}
	}
}

func (r *Sorter) selection(tok *runner.Token, arr []int) {
	n := len(arr)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if tok.Stopped() {
				return
			}
			best := minIdx
			if !r.compare(tok, best, j, func(f *Frame) { f.Pivot = best }) {
				return
			}
			if arr[j] < arr[minIdx] {
				minIdx = j
			}
		}
		if tok.Stopped() {
			return
		}
		if minIdx != i {
			arr[i], arr[minIdx] = arr[minIdx], arr[i]
			if !r.exchanged(tok, arr, i, minIdx) {
				return
			}
		}
	}
}

// insertion moves each key left by adjacent exchanges so the array never
// holds a duplicated or missing element.
func (r *Sorter) insertion(tok *runner.Token, arr []int) {
	for i := 1; i < len(arr); i++ {
		if tok.Stopped() {
			return
		}
		key := i
		if !r.commit(tok, nil, func(f *Frame) { f.Highlighted = []int{key} }) {
			return
		}
		if !r.Pause(tok, 1) {
			return
		}

		for j := i; j > 0; j-- {
			if tok.Stopped() {
				return
			}
			if !r.compare(tok, j-1, j, nil) {
				return
			}
			if arr[j-1] <= arr[j] {
				break
			}
			arr[j-1], arr[j] = arr[j], arr[j-1]
			if !r.exchanged(tok, arr, j-1, j) {
				return
			}
		}

		sorted := make([]int, i+1)
		for k := range sorted {
			sorted[k] = k
		}
		if !r.commit(tok, arr, func(f *Frame) { f.Region = sorted }) {
			return
		}
		r.Step(tok)
		if !r.Pause(tok, 1) {
			return
		}
	}
}

func (r *Sorter) mergeSort(tok *runner.Token, arr []int, lo, hi int) {
	if lo >= hi || tok.Stopped() {
		return
	}
	mid := (lo + hi) / 2
	r.mergeSort(tok, arr, lo, mid)
	if tok.Stopped() {
		return
	}
	r.mergeSort(tok, arr, mid+1, hi)
	if tok.Stopped() {
		return
	}
	r.merge(tok, arr, lo, mid, hi)
}

// merge keeps arr[k+1..hi] filled with the not yet placed elements of both
// halves, so every published state is a permutation.
func (r *Sorter) merge(tok *runner.Token, arr []int, lo, mid, hi int) {
	left := append([]int(nil), arr[lo:mid+1]...)
	right := append([]int(nil), arr[mid+1:hi+1]...)
	region := make([]int, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		region = append(region, k)
	}

	i, j, k := 0, 0, lo
	place := func(v int) bool {
		arr[k] = v
		rest := append(append([]int(nil), left[i:]...), right[j:]...)
		copy(arr[k+1:hi+1], rest)
		at := k
		if !r.commit(tok, arr, func(f *Frame) {
			f.Highlighted = []int{at}
			f.Region = region
		}) {
			return false
		}
		r.Step(tok)
		k++
		return r.Pause(tok, 1)
	}

	for i < len(left) && j < len(right) {
		if tok.Stopped() {
			return
		}
		// positions of the two heads inside the published layout
		li, ri := k, k+len(left)-i
		if !r.compare(tok, li, ri, func(f *Frame) { f.Region = region }) {
			return
		}
		var v int
		if left[i] <= right[j] {
			v = left[i]
			i++
		} else {
			v = right[j]
			j++
		}
		if !place(v) {
			return
		}
	}
	for i < len(left) {
		if tok.Stopped() {
			return
		}
		v := left[i]
		i++
		if !place(v) {
			return
		}
	}
	for j < len(right) {
		if tok.Stopped() {
			return
		}
		v := right[j]
		j++
		if !place(v) {
			return
		}
	}
}

func (r *Sorter) quickSort(tok *runner.Token, arr []int, lo, hi int) {
	if lo >= hi || tok.Stopped() {
		return
	}
	p, ok := r.partition(tok, arr, lo, hi)
	if !ok {
		return
	}
	r.quickSort(tok, arr, lo, p-1)
	if tok.Stopped() {
		return
	}
	r.quickSort(tok, arr, p+1, hi)
}

// partition is Lomuto's scheme with the last element as pivot
func (r *Sorter) partition(tok *runner.Token, arr []int, lo, hi int) (int, bool) {
	pivot := arr[hi]
	i := lo - 1
	for j := lo; j < hi; j++ {
		if tok.Stopped() {
			return 0, false
		}
		if !r.compare(tok, j, hi, func(f *Frame) { f.Pivot = hi }) {
			return 0, false
		}
		if arr[j] < pivot {
			i++
			arr[i], arr[j] = arr[j], arr[i]
			if !r.exchanged(tok, arr, i, j) {
				return 0, false
			}
		}
	}
	arr[i+1], arr[hi] = arr[hi], arr[i+1]
	if !r.commit(tok, arr, func(f *Frame) { f.Highlighted = []int{i + 1, hi} }) {
		return 0, false
	}
	r.Swap(tok)
	return i + 1, r.Pause(tok, 1)
}

func (r *Sorter) heapSort(tok *runner.Token, arr []int) {
	n := len(arr)
	for i := n/2 - 1; i >= 0; i-- {
		if !r.heapify(tok, arr, n, i) {
			return
		}
	}
	for end := n - 1; end > 0; end-- {
		if tok.Stopped() {
			return
		}
		arr[0], arr[end] = arr[end], arr[0]
		if !r.exchanged(tok, arr, 0, end) {
			return
		}
		if !r.heapify(tok, arr, end, 0) {
			return
		}
	}
}

// heapify sifts arr[i] down within arr[:n]. It returns false once stopped.
func (r *Sorter) heapify(tok *runner.Token, arr []int, n, i int) bool {
	for {
		if tok.Stopped() {
			return false
		}
		largest := i
		left, right := 2*i+1, 2*i+2
		family := []int{i}
		if left < n {
			family = append(family, left)
		}
		if right < n {
			family = append(family, right)
		}
		if !r.commit(tok, nil, func(f *Frame) { f.Region = family }) {
			return false
		}
		if !r.Pause(tok, 1) {
			return false
		}

		if left < n {
			if !r.compare(tok, left, largest, nil) {
				return false
			}
			if arr[left] > arr[largest] {
				largest = left
			}
		}
		if right < n {
			if !r.compare(tok, right, largest, nil) {
				return false
			}
			if arr[right] > arr[largest] {
				largest = right
			}
		}
		if largest == i {
			return true
		}
		arr[i], arr[largest] = arr[largest], arr[i]
		if !r.exchanged(tok, arr, i, largest) {
			return false
		}
		i = largest
	}
}
