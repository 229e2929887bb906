package orderedset

import (
	"cmp"
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	id    int
	label string
}

func sampleKey(s *sample) string { return strconv.Itoa(s.id) }

func compareSamples(a, b *sample) int { return cmp.Compare(a.id, b.id) }

func cloneSample(s *sample) *sample {
	c := *s
	return &c
}

func probeSample(key string) (*sample, bool) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return nil, false
	}
	return &sample{id: id}, true
}

func newSampleSet(ids ...int) *Set[*sample] {
	s := New(sampleKey, compareSamples, WithCloner(cloneSample), WithProbe(probeSample))
	for _, id := range ids {
		s.Add(&sample{id: id})
	}
	return s
}

func ids(items []*sample) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func TestSet_AddDeduplicatesByKey(t *testing.T) {
	s := newSampleSet()
	require.True(t, s.Add(&sample{id: 10, label: "first"}, &sample{id: 2}, &sample{id: 10, label: "second"}))
	require.False(t, s.Add(&sample{id: 2, label: "again"}), "duplicate insert must be a no-op")
	assert.Equal(t, 2, s.Len())

	got, ok := s.Get("10")
	require.True(t, ok)
	assert.Equal(t, "first", got.label)
	assert.Equal(t, []int{2, 10}, ids(s.Snapshot()))
	assert.Equal(t, []string{"2", "10"}, s.Keys(), "keys follow comparator order, not string order")
}

func TestSet_AddClonesOnInsert(t *testing.T) {
	s := newSampleSet()
	in := &sample{id: 1, label: "orig"}
	s.Add(in)
	in.label = "mutated"
	got, _ := s.Get("1")
	assert.Equal(t, "orig", got.label)
}

func TestSet_RemoveAndRetain(t *testing.T) {
	s := newSampleSet(1, 2, 3, 4, 5)

	assert.False(t, s.Remove(&sample{id: 9}))
	assert.True(t, s.Remove(&sample{id: 2}, &sample{id: 9}))
	assert.Equal(t, []int{1, 3, 4, 5}, ids(s.Snapshot()))

	assert.True(t, s.RetainKeys("3", "5", "42"))
	assert.Equal(t, []int{3, 5}, ids(s.Snapshot()))
	assert.False(t, s.Retain(&sample{id: 3}, &sample{id: 5}), "retaining every member changes nothing")
	assert.False(t, s.RemoveKeys("nope"))

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSet_ContainsAndGetItem(t *testing.T) {
	s := newSampleSet(7)
	assert.True(t, s.Contains(&sample{id: 7}))
	assert.True(t, s.ContainsKey("7"))
	assert.False(t, s.ContainsKey("8"))
	got, ok := s.GetItem(&sample{id: 7, label: "probe"})
	require.True(t, ok)
	assert.Equal(t, "", got.label)
	assert.Equal(t, "7", s.Key(got))
}

func TestSet_UniquenessAndOrderUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newSampleSet()
	distinct := map[int]struct{}{}
	for i := 0; i < 2000; i++ {
		id := rng.Intn(200)
		switch rng.Intn(4) {
		case 0, 1:
			s.Add(&sample{id: id})
			distinct[id] = struct{}{}
		case 2:
			s.Remove(&sample{id: id})
			delete(distinct, id)
		case 3:
			if rng.Intn(10) == 0 {
				keep := []string{strconv.Itoa(id), strconv.Itoa(id + 1)}
				s.RetainKeys(keep...)
				for k := range distinct {
					if k != id && k != id+1 {
						delete(distinct, k)
					}
				}
			}
		}
		require.Equal(t, len(distinct), s.Len())
		require.True(t, slices.IsSortedFunc(s.Snapshot(), compareSamples))
	}
}

func TestSet_OrderStatistics(t *testing.T) {
	s := newSampleSet(10, 20, 30)

	cases := []struct {
		name string
		fn   func(*sample) (*sample, bool)
		x    int
		want int
		ok   bool
	}{
		{"floor member", s.Floor, 20, 20, true},
		{"floor between", s.Floor, 25, 20, true},
		{"floor below least", s.Floor, 5, 0, false},
		{"ceiling member", s.Ceiling, 20, 20, true},
		{"ceiling between", s.Ceiling, 25, 30, true},
		{"ceiling above greatest", s.Ceiling, 35, 0, false},
		{"lower member", s.Lower, 20, 10, true},
		{"lower least", s.Lower, 10, 0, false},
		{"higher member", s.Higher, 20, 30, true},
		{"higher greatest", s.Higher, 30, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.fn(&sample{id: tc.x})
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got.id)
			}
		})
	}
}

func TestSet_FloorEqualsCeilingForMembers(t *testing.T) {
	s := newSampleSet(3, 1, 4, 15, 9, 26)
	for _, m := range s.Snapshot() {
		f, ok := s.Floor(m)
		require.True(t, ok)
		c, ok := s.Ceiling(m)
		require.True(t, ok)
		assert.Same(t, m, f)
		assert.Same(t, m, c)
	}
}

func TestSet_EmptyOrderStatistics(t *testing.T) {
	s := newSampleSet()
	_, ok := s.Floor(&sample{id: 1})
	assert.False(t, ok)
	_, ok = s.CeilingKey("1")
	assert.False(t, ok)
	_, ok = s.First()
	assert.False(t, ok)
	assert.Empty(t, s.Subrange(At[*sample](0), At[*sample](10)))
}

func TestSet_KeyStatisticsUseProbe(t *testing.T) {
	s := newSampleSet(10, 20, 30)
	got, ok := s.FloorKey("25")
	require.True(t, ok)
	assert.Equal(t, 20, got.id)
	got, ok = s.HigherKey("20")
	require.True(t, ok)
	assert.Equal(t, 30, got.id)
	got, ok = s.LowerKey("20")
	require.True(t, ok)
	assert.Equal(t, 10, got.id)
	got, ok = s.CeilingKey("11")
	require.True(t, ok)
	assert.Equal(t, 20, got.id)
	_, ok = s.FloorKey("not-a-number")
	assert.False(t, ok)

	noProbe := New(sampleKey, compareSamples)
	noProbe.Add(&sample{id: 1})
	_, ok = noProbe.FloorKey("2")
	assert.False(t, ok, "absent keys cannot be positioned without a probe")
	got, ok = noProbe.FloorKey("1")
	require.True(t, ok)
	assert.Equal(t, 1, got.id)
}

func TestSet_Subrange(t *testing.T) {
	s := newSampleSet(10, 20, 30, 40, 50)
	type S = *sample
	cases := []struct {
		name       string
		begin, end Bound[S]
		want       []int
	}{
		{"indexes", At[S](1), At[S](3), []int{20, 30, 40}},
		{"clamped indexes", At[S](-4), At[S](99), []int{10, 20, 30, 40, 50}},
		{"keys between members", ByKey[S]("15"), ByKey[S]("45"), []int{20, 30, 40}},
		{"member keys inclusive", ByKey[S]("20"), ByKey[S]("40"), []int{20, 30, 40}},
		{"items", ByItem[S](&sample{id: 30}), ByItem[S](&sample{id: 31}), []int{30}},
		{"mixed", At[S](0), ByKey[S]("25"), []int{10, 20}},
		{"begin past end", At[S](5), At[S](9), []int{}},
		{"end before first", At[S](0), ByKey[S]("5"), []int{}},
		{"inverted", At[S](3), At[S](1), []int{}},
		{"unresolvable key", ByKey[S]("x"), At[S](4), []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(s.Subrange(tc.begin, tc.end)))
		})
	}
}

func TestSet_CloneIsDeep(t *testing.T) {
	s := newSampleSet(1, 2)
	c := s.Clone()
	orig, _ := s.Get("1")
	orig.label = "changed"
	copied, _ := c.Get("1")
	assert.Equal(t, "", copied.label)
	c.Add(&sample{id: 3})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, c.Len())

	first, _ := c.First()
	last, _ := c.Last()
	assert.Equal(t, 1, first.id)
	assert.Equal(t, 3, last.id)
}
