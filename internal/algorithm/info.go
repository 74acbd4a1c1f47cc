package algorithm

// Category groups algorithms in menus and reports
type Category string

const (
	CategorySorting   Category = "sorting"
	CategorySearch    Category = "search"
	CategoryGraph     Category = "graph"
	CategoryDynamic   Category = "dynamic"
	CategoryGreedy    Category = "greedy"
	CategoryNumerical Category = "numerical"
)

// Categories lists every category in menu order
var Categories = []Category{
	CategorySorting, CategorySearch, CategoryGraph,
	CategoryDynamic, CategoryGreedy, CategoryNumerical,
}

// Details describes one algorithm for menus, reports and prompts
type Details struct {
	Kind            Kind     `json:"kind" yaml:"kind"`
	Name            string   `json:"name" yaml:"name"`
	Category        Category `json:"category" yaml:"category"`
	TimeComplexity  string   `json:"time_complexity" yaml:"time_complexity"`
	SpaceComplexity string   `json:"space_complexity" yaml:"space_complexity"`
	Description     string   `json:"description" yaml:"description"`
}

var catalogue = map[Kind]Details{
	BubbleSort: {
		Name: "Bubble sort", Category: CategorySorting,
		TimeComplexity: "O(n²)", SpaceComplexity: "O(1)",
		Description: "Repeatedly compares neighbours and swaps them when out of order. Easy to follow, slow in practice.",
	},
	SelectionSort: {
		Name: "Selection sort", Category: CategorySorting,
		TimeComplexity: "O(n²)", SpaceComplexity: "O(1)",
		Description: "Finds the smallest remaining value and moves it into place, one position at a time.",
	},
	InsertionSort: {
		Name: "Insertion sort", Category: CategorySorting,
		TimeComplexity: "best O(n), average O(n²)", SpaceComplexity: "O(1)",
		Description: "Inserts each value into the already sorted prefix. Efficient for small or nearly sorted data.",
	},
	MergeSort: {
		Name: "Merge sort", Category: CategorySorting,
		TimeComplexity: "O(n log n)", SpaceComplexity: "O(n)",
		Description: "Splits the array in halves, sorts them and merges the results. Stable with a guaranteed O(n log n).",
	},
	QuickSort: {
		Name: "Quick sort", Category: CategorySorting,
		TimeComplexity: "average O(n log n), worst O(n²)", SpaceComplexity: "O(log n)",
		Description: "Partitions around a pivot and recurses into both sides. One of the fastest sorts on average.",
	},
	HeapSort: {
		Name: "Heap sort", Category: CategorySorting,
		TimeComplexity: "O(n log n)", SpaceComplexity: "O(1)",
		Description: "Builds a max heap, then repeatedly moves the root behind the heap. Always O(n log n).",
	},
	LinearSearch: {
		Name: "Linear search", Category: CategorySearch,
		TimeComplexity: "O(n)", SpaceComplexity: "O(1)",
		Description: "Scans from the front until the target is found. Works on unsorted data.",
	},
	BinarySearch: {
		Name: "Binary search", Category: CategorySearch,
		TimeComplexity: "O(log n)", SpaceComplexity: "O(1)",
		Description: "Halves the search range of a sorted array by comparing against the middle element.",
	},
	BFS: {
		Name: "Breadth-first search", Category: CategoryGraph,
		TimeComplexity: "O(V + E)", SpaceComplexity: "O(V)",
		Description: "Explores the graph level by level with a queue. Finds the fewest-hop path from the start.",
	},
	DFS: {
		Name: "Depth-first search", Category: CategoryGraph,
		TimeComplexity: "O(V + E)", SpaceComplexity: "O(V)",
		Description: "Follows one branch as deep as it goes with a stack before backing up. Used for maze exploration.",
	},
	Dijkstra: {
		Name: "Dijkstra's algorithm", Category: CategoryGraph,
		TimeComplexity: "O((V + E) log V)", SpaceComplexity: "O(V)",
		Description: "Finds the shortest path from one node to every other node of a non-negatively weighted graph.",
	},
	Kruskal: {
		Name: "Kruskal's algorithm", Category: CategoryGraph,
		TimeComplexity: "O(E log E)", SpaceComplexity: "O(V)",
		Description: "Builds a minimum spanning tree by taking the lightest edge that does not close a cycle.",
	},
	FloydWarshall: {
		Name: "Floyd-Warshall", Category: CategoryGraph,
		TimeComplexity: "O(V³)", SpaceComplexity: "O(V²)",
		Description: "Solves all-pairs shortest paths by allowing one more intermediate node per round.",
	},
	Fibonacci: {
		Name: "Fibonacci", Category: CategoryDynamic,
		TimeComplexity: "O(n) with memo, O(2^n) naive", SpaceComplexity: "O(n)",
		Description: "Each number is the sum of the previous two. The classic example of memoisation.",
	},
	Knapsack: {
		Name: "0/1 knapsack", Category: CategoryDynamic,
		TimeComplexity: "O(nW)", SpaceComplexity: "O(nW)",
		Description: "Chooses the items that maximise value without exceeding the bag's capacity.",
	},
	LCS: {
		Name: "Longest common subsequence", Category: CategoryDynamic,
		TimeComplexity: "O(mn)", SpaceComplexity: "O(mn)",
		Description: "Finds the longest sequence of characters appearing in order in both strings.",
	},
	CoinChange: {
		Name: "Coin change", Category: CategoryGreedy,
		TimeComplexity: "O(n)", SpaceComplexity: "O(1)",
		Description: "Pays an amount with the fewest coins by always taking the largest coin that fits.",
	},
	EuclideanGCD: {
		Name: "Euclidean GCD", Category: CategoryNumerical,
		TimeComplexity: "O(log min(a, b))", SpaceComplexity: "O(1)",
		Description: "Replaces the pair (a, b) with (b, a mod b) until the remainder is zero.",
	},
	SieveOfEratosthenes: {
		Name: "Sieve of Eratosthenes", Category: CategoryNumerical,
		TimeComplexity: "O(n log log n)", SpaceComplexity: "O(n)",
		Description: "Crosses out the multiples of every prime; the numbers left standing are prime.",
	},
}

// Info returns the catalogue entry for kind
func Info(kind Kind) (Details, bool) {
	d, ok := catalogue[kind]
	if ok {
		d.Kind = kind
	}
	return d, ok
}

// ByCategory groups every kind by category, each group in menu order
func ByCategory() map[Category][]Kind {
	out := make(map[Category][]Kind, len(Categories))
	for _, k := range kinds {
		c := catalogue[k].Category
		out[c] = append(out[c], k)
	}
	return out
}

func inCategory(kind Kind, c Category) bool {
	d, ok := catalogue[kind]
	return ok && d.Category == c
}

// IsSort reports whether kind is one of the sorting algorithms
func IsSort(kind Kind) bool { return inCategory(kind, CategorySorting) }

// IsSearch reports whether kind is one of the search algorithms
func IsSearch(kind Kind) bool { return inCategory(kind, CategorySearch) }

// IsGraph reports whether kind works on a graph
func IsGraph(kind Kind) bool { return inCategory(kind, CategoryGraph) }

// IsDynamic reports whether kind is a dynamic programming algorithm
func IsDynamic(kind Kind) bool { return inCategory(kind, CategoryDynamic) }

// IsGreedy reports whether kind is a greedy algorithm
func IsGreedy(kind Kind) bool { return inCategory(kind, CategoryGreedy) }

// IsNumerical reports whether kind is a number theory algorithm
func IsNumerical(kind Kind) bool { return inCategory(kind, CategoryNumerical) }

// UsesArray reports whether kind animates the generated array, and so
// responds to the data type setting
func UsesArray(kind Kind) bool { return IsSort(kind) || IsSearch(kind) }
