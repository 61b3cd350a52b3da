package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores   []int
		mean     float64
		stdev    float64
		min, max float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]int{1}, 1, 0, 1, 1},
		{[]int{}, 0, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestMerge(t *testing.T) {
	is := is.New(t)
	scores := []float64{3, 4, 4, 5, 3, 6, 2, 4, 4, 3, 5}
	var all, left, right Statistic
	for i, v := range scores {
		all.Push(v)
		if i%3 == 0 {
			left.Push(v)
		} else {
			right.Push(v)
		}
	}
	left.Merge(&right)
	is.Equal(left.Iterations(), all.Iterations())
	is.True(FuzzyEqual(left.Mean(), all.Mean()))
	is.True(FuzzyEqual(left.Variance(), all.Variance()))
	is.Equal(left.Min(), 2.0)
	is.Equal(left.Max(), 6.0)

	var empty Statistic
	empty.Merge(&all)
	is.True(FuzzyEqual(empty.Mean(), all.Mean()))
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489))

	var s Statistic
	for _, v := range []float64{3, 4, 5, 4} {
		s.Push(v)
	}
	is.True(FuzzyEqual(s.CI(95), ZVal(95)*s.StandardError()))
}
