package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)

func iv(startMin, endMin int) TimeInterval {
	return TimeInterval{
		Start: base.Add(time.Duration(startMin) * time.Minute),
		End:   base.Add(time.Duration(endMin) * time.Minute),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeInterval
		want bool
	}{
		{"back to back", iv(0, 10), iv(10, 20), false},
		{"back to back reversed", iv(10, 20), iv(0, 10), false},
		{"containment", iv(0, 20), iv(5, 10), true},
		{"contained", iv(5, 10), iv(0, 20), true},
		{"disjoint", iv(0, 10), iv(20, 30), false},
		{"partial overlap", iv(0, 10), iv(5, 15), true},
		{"identical", iv(0, 10), iv(0, 10), true},
		{"shared start", iv(0, 10), iv(0, 5), true},
		{"shared end", iv(0, 10), iv(5, 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
		})
	}
}

func TestOverlapsSymmetricAndReflexive(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		s1 := r.Intn(500)
		s2 := r.Intn(500)
		a := iv(s1, s1+1+r.Intn(200))
		b := iv(s2, s2+1+r.Intn(200))

		assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "symmetry for %v %v", a, b)
		assert.True(t, Overlaps(a, a), "reflexive for %v", a)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, iv(0, 1).Validate())
	assert.ErrorIs(t, iv(10, 10).Validate(), ErrInvalidInterval)
	assert.ErrorIs(t, iv(10, 5).Validate(), ErrInvalidInterval)
}

func TestIsVenueFreeEmptySet(t *testing.T) {
	assert.True(t, IsVenueFree("A", iv(0, 60), nil))
	assert.True(t, IsVenueFree("A", iv(0, 60), VenueBookingSet{}))
}

func TestIsVenueFreeIgnoresOtherVenues(t *testing.T) {
	existing := VenueBookingSet{{ID: "1", VenueID: "B", Interval: iv(0, 60)}}
	assert.True(t, IsVenueFree("A", iv(0, 60), existing))
}

func TestIsVenueFreeAgreesWithFindConflicts(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	venues := []string{"A", "B"}
	for i := 0; i < 500; i++ {
		var existing VenueBookingSet
		for j := 0; j < 1+r.Intn(6); j++ {
			s := r.Intn(300)
			existing = append(existing, Booking{
				ID:       string(rune('a' + j)),
				VenueID:  venues[r.Intn(2)],
				Interval: iv(s, s+1+r.Intn(90)),
			})
		}
		s := r.Intn(300)
		candidate := iv(s, s+1+r.Intn(90))

		conflicts := FindConflicts(candidate, existing.ForVenue("A"))
		assert.Equal(t, len(conflicts) == 0, IsVenueFree("A", candidate, existing), "candidate %v set %v", candidate, existing)
		for _, c := range conflicts {
			assert.Equal(t, "A", c.VenueID)
		}
	}
}

func TestForVenue(t *testing.T) {
	existing := VenueBookingSet{
		{ID: "1", VenueID: "A", Interval: iv(0, 60)},
		{ID: "2", VenueID: "B", Interval: iv(0, 60)},
		{ID: "3", VenueID: "A", Interval: iv(60, 120)},
	}
	got := existing.ForVenue("A")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Empty(t, existing.ForVenue("C"))
	assert.Len(t, existing, 3)
}

func TestFindConflictsReturnsAll(t *testing.T) {
	existing := VenueBookingSet{
		{ID: "1", VenueID: "A", Interval: iv(0, 60)},
		{ID: "2", VenueID: "A", Interval: iv(60, 120)},
		{ID: "3", VenueID: "A", Interval: iv(200, 260)},
		{ID: "4", VenueID: "A", Interval: iv(110, 130)},
	}

	got := FindConflicts(iv(30, 115), existing)
	require.Len(t, got, 3)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.ElementsMatch(t, []string{"1", "2", "4"}, ids)
	assert.False(t, IsVenueFree("A", iv(30, 115), existing))

	assert.Nil(t, FindConflicts(iv(130, 200), existing))
	assert.True(t, IsVenueFree("A", iv(130, 200), existing))
}

func TestWithout(t *testing.T) {
	existing := VenueBookingSet{
		{ID: "1", VenueID: "A", Interval: iv(0, 60)},
		{ID: "2", VenueID: "A", Interval: iv(60, 120)},
	}
	rest := existing.Without("1")
	require.Len(t, rest, 1)
	assert.Equal(t, "2", rest[0].ID)
	assert.Len(t, existing, 2)
}

func TestScreeningScenario(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 9, 25, h, m, 0, 0, time.UTC) }
	existing := VenueBookingSet{
		{ID: "1", VenueID: "A", Interval: TimeInterval{Start: at(18, 0), End: at(20, 22)}},
	}

	backToBack := TimeInterval{Start: at(20, 22), End: at(22, 0)}
	assert.True(t, IsVenueFree("A", backToBack, existing))
	assert.Empty(t, FindConflicts(backToBack, existing))

	overlapping := TimeInterval{Start: at(19, 0), End: at(21, 0)}
	assert.False(t, IsVenueFree("A", overlapping, existing))
	conflicts := FindConflicts(overlapping, existing)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "1", conflicts[0].ID)
}
