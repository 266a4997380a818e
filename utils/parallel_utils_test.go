package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Partitions are contiguous and cover [0, MaxIndex)
		for maxIndex := 10; maxIndex < 500; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			assert.Equal(t, 0, pm.Partitions[0][0])
			for bn := 1; bn < pm.ParallelDegree; bn++ {
				kMin, _ := pm.GetBucketRange(bn)
				_, kMaxPrev := pm.GetBucketRange(bn - 1)
				assert.Equal(t, kMaxPrev, kMin)
			}
			assert.Equal(t, maxIndex, pm.Partitions[4][1])
		}
	}
	{ // A degree below one runs serially
		assert.Equal(t, 1, NewPartitionMap(0, 10).ParallelDegree)
	}
	{ // Every index is visited exactly once by Run
		for _, np := range []int{1, 3, 8} {
			var (
				pm     = NewPartitionMap(np, 101)
				visits = make([]int32, 101)
			)
			pm.Run(func(bn, kMin, kMax int) {
				for k := kMin; k < kMax; k++ {
					atomic.AddInt32(&visits[k], 1)
				}
			})
			for k := range visits {
				assert.Equal(t, int32(1), visits[k])
			}
		}
	}
}
