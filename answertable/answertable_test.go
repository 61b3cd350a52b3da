package answertable

import (
	"testing"

	"github.com/matryer/is"
)

func TestTable(t *testing.T) {
	is := is.New(t)
	table := New([]string{"brass", "arose"}, 5)
	is.Equal(table.Len(), 2)
	is.Equal(table.WordLength(), 5)
	is.Equal(table.Bytes(), 5*26*2)

	// position 0
	a := table.Column(0, 'a')
	is.Equal(a[0], uint8(1))
	is.True(IsExact(a[1]))
	is.Equal(Count(a[1]), uint8(1))

	b := table.Column(0, 'b')
	is.True(IsExact(b[0]))
	is.Equal(Count(b[0]), uint8(1))
	is.Equal(b[1], uint8(0))

	s := table.Column(0, 's')
	is.Equal(s[0], uint8(2))
	is.Equal(s[1], uint8(1))

	c := table.Column(0, 'c')
	is.Equal(c[0], uint8(0))
	is.Equal(c[1], uint8(0))

	// the last s of brass
	s4 := table.Column(4, 's')
	is.True(IsExact(s4[0]))
	is.Equal(Count(s4[0]), uint8(2))
	is.True(!IsExact(s4[1]))
}

func TestEmptyTable(t *testing.T) {
	is := is.New(t)
	table := New(nil, 5)
	is.Equal(table.Len(), 0)
	is.Equal(len(table.Column(3, 'q')), 0)
}
