package network

// valIdx represents a value and its original index
type valIdx struct {
	Val   float64
	Index int
}

// TopKFinder finds the indices of the K largest elements of a slice using a
// min-heap of size K. Used to pick the highest-degree nodes for preferential
// trait assignment.
type TopKFinder struct {
	minHeap []valIdx
}

// NewTopKFinder creates a finder with preallocated capacity for maxK.
func NewTopKFinder(maxK int) *TopKFinder {
	return &TopKFinder{
		minHeap: make([]valIdx, 0, max(maxK, 0)),
	}
}

// FindTopK returns the indices of the k largest elements in nums.
func (f *TopKFinder) FindTopK(nums []float64, k int) []int {
	if k <= 0 || len(nums) == 0 {
		return []int{}
	}
	if k > len(nums) {
		k = len(nums)
	}

	f.minHeap = f.minHeap[:0]
	for i := 0; i < k; i++ {
		f.minHeap = append(f.minHeap, valIdx{nums[i], i})
	}
	for i := k/2 - 1; i >= 0; i-- {
		f.siftDown(i, k-1)
	}

	// keep the heap root as the smallest retained value; anything larger
	// displaces it
	for i := k; i < len(nums); i++ {
		if nums[i] > f.minHeap[0].Val {
			f.minHeap[0] = valIdx{nums[i], i}
			f.siftDown(0, k-1)
		}
	}

	indices := make([]int, k)
	for i := range f.minHeap {
		indices[i] = f.minHeap[i].Index
	}
	return indices
}

func (f *TopKFinder) siftDown(root, end int) {
	for {
		child := root*2 + 1
		if child > end {
			break
		}
		if child+1 <= end && f.minHeap[child].Val > f.minHeap[child+1].Val {
			child++
		}
		if f.minHeap[root].Val <= f.minHeap[child].Val {
			break
		}
		f.minHeap[root], f.minHeap[child] = f.minHeap[child], f.minHeap[root]
		root = child
	}
}
