package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roster/internal/record"
)

func draft(name string, age int) record.Draft {
	return record.Draft{Name: name, Age: age, Email: name + "@x.com", Course: "CS"}
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.NextID())
	assert.Empty(t, s.All())
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := New()
	var ids []int
	for i := 0; i < 10; i++ {
		r := s.Add(draft("s", 20))
		ids = append(ids, r.ID)
	}

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1], "ids must be strictly increasing")
	}
	assert.Equal(t, 1, ids[0])
	assert.Equal(t, 11, s.NextID())
}

func TestAddDefaultsBlankCourse(t *testing.T) {
	s := New()
	r := s.Add(record.Draft{Name: "Ann", Age: 20})
	assert.Equal(t, record.CourseNotSpecified, r.Course)
}

func TestAddDoesNotValidateAge(t *testing.T) {
	s := New()
	r := s.Add(record.Draft{Name: "Old", Age: 200})
	assert.Equal(t, 200, r.Age)
}

func TestDeleteThenAddNeverReusesID(t *testing.T) {
	s := New()
	s.Add(draft("a", 20))
	s.Add(draft("b", 21))
	last := s.Add(draft("c", 22))

	removed, err := s.Delete(last.ID, true)
	require.NoError(t, err)
	require.True(t, removed)

	next := s.Add(draft("d", 23))
	assert.NotEqual(t, last.ID, next.ID)
	assert.Equal(t, 4, next.ID)
}

func TestFind(t *testing.T) {
	s := New()
	s.Add(draft("a", 20))
	b := s.Add(draft("b", 21))

	got, err := s.Find(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = s.Find(99)
	require.Error(t, err)
	assert.True(t, record.IsNotFound(err))
}

func TestUpdateAppliesOnlyPresentFields(t *testing.T) {
	s := New()
	orig := s.Add(record.Draft{Name: "Ann", Age: 20, Email: "ann@x.com", Course: "CS"})

	got, err := s.Update(orig.ID, record.Patch{Age: record.Some(21)})
	require.NoError(t, err)

	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, 21, got.Age)
	assert.Equal(t, "ann@x.com", got.Email)
	assert.Equal(t, "CS", got.Course)

	stored, err := s.Find(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestUpdateKeepsPosition(t *testing.T) {
	s := New()
	s.Add(draft("a", 20))
	b := s.Add(draft("b", 21))
	s.Add(draft("c", 22))

	_, err := s.Update(b.ID, record.Patch{Name: record.Some("bee")})
	require.NoError(t, err)

	all := s.All()
	assert.Equal(t, []int{1, 2, 3}, record.IDs(all))
	assert.Equal(t, "bee", all[1].Name)
}

func TestUpdateNotFound(t *testing.T) {
	s := New()
	_, err := s.Update(1, record.Patch{Name: record.Some("x")})
	assert.True(t, record.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	s := New()
	s.Add(draft("a", 20))
	b := s.Add(draft("b", 21))
	s.Add(draft("c", 22))

	removed, err := s.Delete(b.ID, true)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []int{1, 3}, record.IDs(s.All()))

	removed, err = s.Delete(b.ID, true)
	assert.False(t, removed)
	assert.True(t, record.IsNotFound(err))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s := New()
	a := s.Add(draft("a", 20))

	removed, err := s.Delete(a.ID, false)
	assert.False(t, removed)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, 1, s.Len())
}

func TestAllReturnsCopy(t *testing.T) {
	s := New()
	s.Add(draft("a", 20))

	all := s.All()
	all[0].Name = "mutated"

	got, err := s.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestReplaceReassignsNextID(t *testing.T) {
	s := New()
	s.Replace([]record.Record{{ID: 5}, {ID: 3}, {ID: 9}, {ID: 4}})

	assert.Equal(t, 10, s.NextID())
	assert.Equal(t, []int{5, 3, 9, 4}, record.IDs(s.All()))

	r := s.Add(draft("new", 20))
	assert.Equal(t, 10, r.ID)
}

func TestReassignNextIDFrom(t *testing.T) {
	tests := []struct {
		name  string
		start int
		ids   []int
		want  int
	}{
		{"empty", 1, nil, 1},
		{"max plus one", 1, []int{2, 7, 3}, 8},
		{"never lowered", 20, []int{2, 7, 3}, 20},
		{"negative ids", 1, []int{-5, -2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Store{nextID: tt.start}
			s.ReassignNextIDFrom(tt.ids)
			assert.Equal(t, tt.want, s.NextID())
		})
	}
}

func TestSortStableFunc(t *testing.T) {
	s := New()
	s.Replace([]record.Record{
		{ID: 1, Age: 30},
		{ID: 2, Age: 20},
		{ID: 3, Age: 30},
		{ID: 4, Age: 20},
	})

	s.SortStableFunc(func(a, b record.Record) int { return a.Age - b.Age })

	assert.Equal(t, []int{2, 4, 1, 3}, record.IDs(s.All()))
}
