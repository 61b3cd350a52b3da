// Package entropy computes the information, in bits, carried by a histogram
// of outcome buckets.
//
// With N answers split into buckets of sizes n_i, the information is
//
//	H = log2(N) - sum(n_i * log2(n_i)) / N
//
// which is the Shannon entropy of the bucket-size distribution with only one
// division. An empty histogram or one where every answer falls in a single
// bucket carries no information.
package entropy

import (
	"math"
)

// MaxFastError bounds |FastInfo(h) - Info(h)| for every histogram whose total
// fits in a float32 mantissa.
const MaxFastError = 0.009

// Metric is an information measure over bucket histograms.
type Metric interface {
	Name() string
	Info(counts []int) float64
	// MaxError is the largest possible absolute difference from Info.
	MaxError() float64
}

// Exact computes information with a full-precision logarithm.
type Exact struct{}

func (Exact) Name() string              { return "exact" }
func (Exact) Info(counts []int) float64 { return Info(counts) }
func (Exact) MaxError() float64         { return 0 }

// Fast computes information with a cheap logarithm approximation.
type Fast struct{}

func (Fast) Name() string              { return "fast" }
func (Fast) Info(counts []int) float64 { return FastInfo(counts) }
func (Fast) MaxError() float64         { return MaxFastError }

// degenerate returns the total and whether the histogram has at most one
// non-empty bucket.
func degenerate(counts []int) (int, bool) {
	total, nonEmpty := 0, 0
	for _, c := range counts {
		if c > 0 {
			total += c
			nonEmpty++
		}
	}
	return total, nonEmpty <= 1
}

// Info is the exact information of a histogram.
func Info(counts []int) float64 {
	total, deg := degenerate(counts)
	if deg {
		return 0
	}
	var sum float64
	for _, c := range counts {
		if c > 1 {
			fc := float64(c)
			sum += fc * math.Log2(fc)
		}
	}
	n := float64(total)
	h := math.Log2(n) - sum/n
	if h < 0 {
		return 0
	}
	return h
}

// FastInfo approximates Info. The per-bucket logarithms are approximated;
// log2(N) is exact, so the error of the result is bounded by the error of
// log2Fast.
func FastInfo(counts []int) float64 {
	total, deg := degenerate(counts)
	if deg {
		return 0
	}
	var sum float64
	for _, c := range counts {
		if c > 1 {
			sum += float64(c) * float64(log2Fast(float32(c)))
		}
	}
	n := float64(total)
	h := math.Log2(n) - sum/n
	if h < 0 {
		return 0
	}
	return h
}

// log2Fast splits x into exponent and mantissa 1+f and approximates
// log2(1+f) with f*(a - b*f). Exact at f = 0 and f = 1.
func log2Fast(x float32) float32 {
	bits := math.Float32bits(x)
	exp := float32(int32(bits>>23&0xff) - 127)
	f := math.Float32frombits(bits&0x007fffff|0x3f800000) - 1
	return exp + f*(1.3466-0.3466*f)
}
