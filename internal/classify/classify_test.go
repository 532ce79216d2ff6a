package classify

import (
	"encoding/json"
	"testing"

	"github.com/threndash/talentmap/internal/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyWideRosterScenario(t *testing.T) {
	// Columns STAR, BIG with rows [Kenya, Chile], [Kenya, ""].
	facts := []roster.Fact{
		{Program: "STAR", Country: "Kenya"},
		{Program: "STAR", Country: "Chile"},
		{Program: "BIG", Country: "Kenya"},
	}

	records := Classify(facts)
	require.Len(t, records, 2)

	kenya := records["Kenya"]
	assert.Equal(t, []string{"BIG", "STAR"}, kenya.Programs)
	assert.Equal(t, 2, kenya.ProgramCount)
	assert.Equal(t, TierDouble, kenya.Tier)

	chile := records["Chile"]
	assert.Equal(t, 1, chile.ProgramCount)
	assert.Equal(t, TierSingle, chile.Tier)
}

func TestClassifyDuplicateFactsAreIdempotent(t *testing.T) {
	facts := []roster.Fact{
		{Program: "STAR", Country: "Kenya"},
		{Program: "BIG", Country: "Kenya"},
	}

	once := Classify(facts)
	twice := Classify(append(append([]roster.Fact{}, facts...), facts...))

	assert.Equal(t, once, twice)
}

func TestClassifyProgramsSortedAndUnique(t *testing.T) {
	facts := []roster.Fact{
		{Program: "STAR", Country: "Rwanda"},
		{Program: "EXCL", Country: "Rwanda"},
		{Program: "NATIONS", Country: "Rwanda"},
		{Program: "EXCL", Country: "Rwanda"},
	}

	r := Classify(facts)["Rwanda"]
	assert.Equal(t, []string{"EXCL", "NATIONS", "STAR"}, r.Programs)
	assert.Equal(t, TierTriplePlus, r.Tier)
}

func TestTierThresholdsAreFixed(t *testing.T) {
	assert.Equal(t, TierSingle, TierFor(1))
	assert.Equal(t, TierDouble, TierFor(2))
	assert.Equal(t, TierTriplePlus, TierFor(3))
	assert.Equal(t, TierTriplePlus, TierFor(10))
}

func TestTierIndependentAcrossCountries(t *testing.T) {
	base := []roster.Fact{{Program: "STAR", Country: "Chile"}}
	before := Classify(base)["Chile"].Tier

	loaded := append(base,
		roster.Fact{Program: "A", Country: "Germany"},
		roster.Fact{Program: "B", Country: "Germany"},
		roster.Fact{Program: "C", Country: "Germany"},
		roster.Fact{Program: "D", Country: "Germany"},
		roster.Fact{Program: "E", Country: "Germany"},
	)
	after := Classify(loaded)["Chile"].Tier

	assert.Equal(t, before, after)
}

func TestSlotAnglesMatchLayoutTable(t *testing.T) {
	two := Classify([]roster.Fact{
		{Program: "BIG", Country: "Kenya"},
		{Program: "STAR", Country: "Kenya"},
	})["Kenya"]
	require.Len(t, two.Slots, 2)
	assert.Equal(t, Slot{Program: "BIG", Angle: 320}, two.Slots[0])
	assert.Equal(t, Slot{Program: "STAR", Angle: 40}, two.Slots[1])

	three := Classify([]roster.Fact{
		{Program: "BIG", Country: "Rwanda"},
		{Program: "EXCL", Country: "Rwanda"},
		{Program: "STAR", Country: "Rwanda"},
	})["Rwanda"]
	assert.Equal(t, []Slot{
		{Program: "BIG", Angle: 300},
		{Program: "EXCL", Angle: 0},
		{Program: "STAR", Angle: 60},
	}, three.Slots)
}

func TestSlotAnglesEvenFallback(t *testing.T) {
	facts := []roster.Fact{
		{Program: "A", Country: "X"},
		{Program: "B", Country: "X"},
		{Program: "C", Country: "X"},
		{Program: "D", Country: "X"},
		{Program: "E", Country: "X"},
	}

	slots := Classify(facts)["X"].Slots
	require.Len(t, slots, 5)
	assert.Equal(t, 0.0, slots[0].Angle)
	assert.Equal(t, 72.0, slots[1].Angle)
	assert.Equal(t, 288.0, slots[4].Angle)
}

func TestClassifyEmptyFacts(t *testing.T) {
	assert.Empty(t, Classify(nil))
}

func TestTierJSONRoundTrip(t *testing.T) {
	record := Classify([]roster.Fact{
		{Program: "STAR", Country: "Kenya"},
		{Program: "BIG", Country: "Kenya"},
	})["Kenya"]

	raw, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tier":"DOUBLE"`)

	var back Record
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, record, back)
}

func TestTierUnmarshalRejectsUnknown(t *testing.T) {
	var tier Tier
	assert.Error(t, json.Unmarshal([]byte(`"QUAD"`), &tier))
	assert.Error(t, json.Unmarshal([]byte(`2`), &tier))

	require.NoError(t, json.Unmarshal([]byte(`"TRIPLE_PLUS"`), &tier))
	assert.Equal(t, TierTriplePlus, tier)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "SINGLE", TierSingle.String())
	assert.Equal(t, "DOUBLE", TierDouble.String())
	assert.Equal(t, "TRIPLE_PLUS", TierTriplePlus.String())
}
