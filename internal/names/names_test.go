package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultRosterSynonyms(), DefaultBoundarySynonyms())
	require.NoError(t, err)
	return r
}

func TestNormalizeRosterSynonyms(t *testing.T) {
	r := defaultResolver(t)

	assert.Equal(t, "Democratic Republic of the Congo", r.Normalize("DRC", SourceRoster))
	assert.Equal(t, "Bosnia and Herzegovina", r.Normalize("Bosnia", SourceRoster))
	assert.Equal(t, "Czechia", r.Normalize("Czech Republic", SourceRoster))
}

func TestNormalizeBoundarySynonyms(t *testing.T) {
	r := defaultResolver(t)

	assert.Equal(t, "Democratic Republic of the Congo", r.Normalize("Congo, Dem Rep of the", SourceBoundary))
	assert.Equal(t, "eSwatini", r.Normalize("Swaziland", SourceBoundary))
}

func TestNormalizeTablesAreIndependent(t *testing.T) {
	r := defaultResolver(t)

	// "Samoa" is only a boundary-side synonym.
	assert.Equal(t, "American Samoa", r.Normalize("Samoa", SourceBoundary))
	assert.Equal(t, "Samoa", r.Normalize("Samoa", SourceRoster))
}

func TestNormalizeIdentityFallthrough(t *testing.T) {
	r := defaultResolver(t)

	assert.Equal(t, "Kenya", r.Normalize("Kenya", SourceRoster))
	assert.Equal(t, "Kenya", r.Normalize("  Kenya ", SourceRoster))
}

func TestNormalizeIdempotent(t *testing.T) {
	r := defaultResolver(t)

	inputs := []string{"DRC", "Kenya", "Gaza Strip", "West Bank", "Serbia", "  Chile "}
	for _, raw := range inputs {
		for _, src := range []Source{SourceRoster, SourceBoundary} {
			once := r.Normalize(raw, src)
			assert.Equal(t, once, r.Normalize(once, src), "raw=%q source=%s", raw, src)
		}
	}
}

func TestDisputedTerritoriesMerge(t *testing.T) {
	r := defaultResolver(t)

	assert.Equal(t, "Palestine", r.Normalize("Gaza Strip", SourceBoundary))
	assert.Equal(t, "Palestine", r.Normalize("West Bank", SourceBoundary))
}

func TestNewResolverRejectsChains(t *testing.T) {
	_, err := NewResolver(map[string]string{
		"Burma":   "Myanmar",
		"Myanmar": "Republic of the Union of Myanmar",
	}, nil)

	var chainErr *ChainedSynonymError
	require.ErrorAs(t, err, &chainErr)
	assert.Equal(t, "Myanmar", chainErr.Canonical)
}
