package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestRecord_EnsureChild(t *testing.T) {
	t.Run("CreatesMissingSiblings", TestRecord_EnsureChild_CreatesMissingSiblings)
	t.Run("ReusesExisting", TestRecord_EnsureChild_ReusesExisting)
	t.Run("IgnoresOtherFields", TestRecord_EnsureChild_IgnoresOtherFields)
}

func TestRecord_EnsureChild_CreatesMissingSiblings(t *testing.T) {
	t.Parallel()

	r := New()
	third := r.EnsureChild(Root, 7, 2)

	children := r.ChildrenWithID(Root, 7)
	require.Len(t, children, 3)
	assert.Equal(t, third, children[2])

	for _, c := range children {
		assert.True(t, r.IsObject(c))
		assert.Empty(t, r.Children(c))
	}
}

func TestRecord_EnsureChild_ReusesExisting(t *testing.T) {
	t.Parallel()

	r := New()
	first := r.EnsureChild(Root, 7, 0)
	second := r.EnsureChild(Root, 7, 1)

	assert.Equal(t, first, r.EnsureChild(Root, 7, 0))
	assert.Equal(t, second, r.EnsureChild(Root, 7, 1))
	assert.Len(t, r.ChildrenWithID(Root, 7), 2)
}

func TestRecord_EnsureChild_IgnoresOtherFields(t *testing.T) {
	t.Parallel()

	r := New()
	r.AddValue(Root, 1, String("x"))
	obj := r.EnsureChild(Root, 2, 0)
	r.AddValue(Root, 1, String("y"))

	assert.Equal(t, obj, r.EnsureChild(Root, 2, 0))
	assert.Equal(t, []uint32{1, 2}, r.FieldIDs(Root))
	assert.Equal(t, 4, r.Len())
}

func TestValue(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		kind  Kind
		str   string
	}{
		{"String", String("abc"), KindString, `"abc"`},
		{"UInt", UInt(42), KindUInt, "42"},
		{"BoolTrue", Bool(true), KindBool, "true"},
		{"BoolFalse", Bool(false), KindBool, "false"},
		{"Float", Float(1.5), KindFloat, "1.5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.kind, tt.value.Kind())
			assert.Equal(t, tt.str, tt.value.String())
			assert.True(t, tt.value.Equal(tt.value))
		})
	}

	assert.Equal(t, uint64(42), UInt(42).UInt())
	assert.Zero(t, String("42").UInt())
	assert.True(t, Bool(true).Bool())
	assert.Equal(t, 2.25, Float(2.25).Float())
	assert.False(t, Bool(false).Equal(UInt(0)))
	assert.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
}

func TestEqual(t *testing.T) {
	build := func(order []uint32) *Record {
		r := New()

		for _, fid := range order {
			switch fid {
			case 1:
				r.AddValue(Root, 1, String("a"))
			case 2:
				obj := r.AddObject(Root, 2)
				r.AddValue(obj, 3, UInt(1))
				r.AddValue(obj, 3, UInt(2))
			}
		}

		return r
	}

	t.Run("SiblingOrderIgnored", func(t *testing.T) {
		assert.True(t, Equal(build([]uint32{1, 2}), build([]uint32{2, 1})))
	})

	t.Run("RepeatedOrderMatters", func(t *testing.T) {
		a := New()
		a.AddValue(Root, 1, String("a"))
		a.AddValue(Root, 1, String("b"))

		b := New()
		b.AddValue(Root, 1, String("b"))
		b.AddValue(Root, 1, String("a"))

		assert.False(t, Equal(a, b))
	})

	t.Run("MissingChild", func(t *testing.T) {
		assert.False(t, Equal(build([]uint32{1, 2}), build([]uint32{1})))
	})

	t.Run("EmptyObjectIsNotAbsent", func(t *testing.T) {
		a := New()
		a.AddObject(Root, 2)

		assert.False(t, Equal(a, New()))
	})
}

func TestRecord_String(t *testing.T) {
	t.Parallel()

	r := New()
	obj := r.AddObject(Root, 2)
	r.AddValue(obj, 3, UInt(7))
	r.AddValue(Root, 1, String("a"))
	r.AddObject(Root, 2)

	assert.Equal(t, `{1: ["a"], 2: [{3: [7]}, {}]}`, r.String())
}
