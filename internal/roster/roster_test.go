package roster

import (
	"strings"
	"testing"

	"github.com/threndash/talentmap/internal/names"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver(t *testing.T) *names.Resolver {
	t.Helper()
	r, err := names.NewResolver(names.DefaultRosterSynonyms(), names.DefaultBoundarySynonyms())
	require.NoError(t, err)
	return r
}

func TestLoadUnpivotsWideTable(t *testing.T) {
	table, err := Parse(strings.NewReader("STAR,BIG\nKenya,Chile\nKenya,\n"))
	require.NoError(t, err)

	facts := Load(table, testResolver(t))

	assert.ElementsMatch(t, []Fact{
		{Program: "STAR", Country: "Kenya"},
		{Program: "BIG", Country: "Chile"},
		{Program: "STAR", Country: "Kenya"},
	}, facts)
}

func TestLoadNormalizesProgramAndCountry(t *testing.T) {
	table, err := Parse(strings.NewReader(" star ,BIG\nDRC, Bosnia \n"))
	require.NoError(t, err)

	facts := Load(table, testResolver(t))

	assert.ElementsMatch(t, []Fact{
		{Program: "STAR", Country: "Democratic Republic of the Congo"},
		{Program: "BIG", Country: "Bosnia and Herzegovina"},
	}, facts)
}

func TestLoadRaggedRows(t *testing.T) {
	table, err := Parse(strings.NewReader("STAR,BIG,EXCL\nKenya\n"))
	require.NoError(t, err)

	facts := Load(table, testResolver(t))

	assert.Equal(t, []Fact{{Program: "STAR", Country: "Kenya"}}, facts)
}

func TestParseHeaderOnlyTableIsNotAnError(t *testing.T) {
	table, err := Parse(strings.NewReader("STAR,BIG\n"))
	require.NoError(t, err)

	facts := Load(table, testResolver(t))
	assert.Empty(t, facts)
}

func TestParseEmptyInputIsMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader(""))

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
}

func TestParseBlankHeaderIsMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader(" , \nKenya,Chile\n"))

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
}

func TestParseWrapsCSVErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("STAR,\"BIG\nKenya"))

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Error(t, malformed.Cause)
}
