package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSet_NormalizesInput(t *testing.T) {
	set := ParseSet(" 7,5 , 6,5,, ")

	assert.Equal(t, []string{"5", "6", "7"}, set.Labels())
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, "5,6,7", set.String())
}

func TestParseSet_Empty(t *testing.T) {
	assert.True(t, ParseSet("").IsEmpty())
	assert.True(t, ParseSet(" , ,").IsEmpty())
	assert.Equal(t, "", ParseSet("").String())
}

func TestParseSet_NumericOrdering(t *testing.T) {
	// "10" must sort after "9", not after "1"
	set := ParseSet("10,9,1,12")
	assert.Equal(t, []string{"1", "9", "10", "12"}, set.Labels())
}

func TestParseSet_MixedLabels(t *testing.T) {
	// numeric labels come first, the rest sort lexically
	set := ParseSet("KG,5,UKG,3")
	assert.Equal(t, []string{"3", "5", "KG", "UKG"}, set.Labels())
}

func TestStandard(t *testing.T) {
	labels := Standard()

	assert.Len(t, labels, 12)
	assert.Equal(t, "1", labels[0])
	assert.Equal(t, "12", labels[11])
	// already in teaching order
	assert.Equal(t, labels, ParseSet(NewSet(labels...).String()).Labels())
}

func TestSet_Contains(t *testing.T) {
	set := NewSet("5", "6")

	assert.True(t, set.Contains("5"))
	assert.True(t, set.Contains(" 5 "))
	assert.False(t, set.Contains("7"))
	assert.False(t, set.Contains(""))
}

func TestSet_Intersects(t *testing.T) {
	assert.True(t, NewSet("5", "6").Intersects(NewSet("6", "7")))
	assert.False(t, NewSet("5", "6").Intersects(NewSet("7", "8")))
	assert.False(t, NewSet("5").Intersects(NewSet()))
	assert.False(t, NewSet().Intersects(NewSet()))
}

func TestLess(t *testing.T) {
	assert.True(t, Less("9", "10"))
	assert.False(t, Less("10", "9"))
	assert.True(t, Less("5", "KG"))
	assert.False(t, Less("KG", "5"))
	assert.True(t, Less("KG", "UKG"))
}
