// Package generator produces the input instances runners animate: arrays,
// graphs, knapsack items, word pairs and number pairs. A Generator wraps its
// own random source so tests can seed it.
package generator

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Generator produces runner inputs. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a generator seeded from the clock
func New() *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewSeeded(seed)
}

// NewSeeded returns a deterministic generator
func NewSeeded(seed uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// intN returns a value in [0, n)
func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.IntN(n)
}

func (g *Generator) float() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Float64()
}

// Array returns size values shaped by dataType. Values lie roughly in [10, 210].
func (g *Generator) Array(size int, dataType settings.DataType) []int {
	out := make([]int, size)
	switch dataType {
	case settings.DataSorted:
		for i := range out {
			out[i] = (i+1)*4 + 10
		}
	case settings.DataReverse:
		for i := range out {
			out[i] = (size-i)*4 + 10
		}
	case settings.DataNearlySorted:
		for i := range out {
			out[i] = (i+1)*4 + 10
			if g.float() > 0.8 {
				out[i] += g.intN(20) - 10
			}
		}
	default:
		for i := range out {
			out[i] = g.intN(80) + 10
		}
	}
	return out
}

// Pick returns a random element of data
func (g *Generator) Pick(data []int) int {
	return data[g.intN(len(data))]
}

// Item is one knapsack candidate
type Item struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Value  int    `json:"value"`
}

// Density is value per unit of weight
func (it Item) Density() float64 {
	return float64(it.Value) / float64(it.Weight)
}

var itemNames = []string{"Phone", "Laptop", "Watch", "Book", "Headphones", "Camera"}

// KnapsackCapacity derives the bag capacity from the array size
func KnapsackCapacity(arraySize int) int {
	return min(max(arraySize, 8), 15)
}

// KnapsackItems returns between 4 and 6 items ordered by density, highest first
func (g *Generator) KnapsackItems(arraySize int) []Item {
	count := min(6, max(4, arraySize/3))
	items := make([]Item, count)
	for i := range items {
		items[i] = Item{
			Name:   itemNames[i],
			Weight: g.intN(4) + 1,
			Value:  g.intN(8) + 2,
		}
	}
	slices.SortStableFunc(items, func(a, b Item) int {
		// a.v/a.w > b.v/b.w without floats
		return b.Value*a.Weight - a.Value*b.Weight
	})
	return items
}

var lcsPairs = [][2]string{
	{"ABCDGH", "AEDFHR"},
	{"AGGTAB", "GXTXAYB"},
	{"PROGRAMMING", "ALGORITHM"},
	{"DYNAMIC", "ECONOMIC"},
	{"HELLO", "WORLD"},
	{"COMPUTER", "SCIENCE"},
}

// LCSPair returns one of the built in word pairs, shortened for small sizes
func (g *Generator) LCSPair(arraySize int) (string, string) {
	pair := lcsPairs[g.intN(len(lcsPairs))]
	a, b := pair[0], pair[1]
	if arraySize < 15 {
		n := max(4, arraySize-2)
		a, b = truncate(a, n), truncate(b, n)
	}
	return a, b
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// CoinAmount returns an amount in [15, 109]
func (g *Generator) CoinAmount() int {
	return g.intN(95) + 15
}

// GCDPair returns a >= b, both drawn from a range that grows with arraySize
func (g *Generator) GCDPair(arraySize int) (int, int) {
	hi := max(20, arraySize*5)
	lo := max(5, hi/4)
	a := g.intN(hi-lo) + lo
	b := g.intN(hi-lo) + lo
	if a < b {
		a, b = b, a
	}
	return a, b
}

// SieveLimit derives the sieve's upper bound from the array size
func SieveLimit(arraySize int) int {
	return max(20, min(arraySize*2, 100))
}

// FibonacciN derives n from the array size
func FibonacciN(arraySize int) int {
	return min(arraySize, 20)
}
