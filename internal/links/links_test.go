package links

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Country,Website_URL,Link_Type,Active
Kenya,https://www.globtalent.org/country-collection/kenya,globtalent,Yes
Chile,https://www.globtalent.org/country-collection/latin-america,globtalent,Yes
Atlantis,,placeholder,No
France,https://example.com/france,other,no
`

func TestLoadActiveLinksOnly(t *testing.T) {
	got, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Kenya": "https://www.globtalent.org/country-collection/kenya",
		"Chile": "https://www.globtalent.org/country-collection/latin-america",
	}, got)
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := Load(strings.NewReader("Country,URL\nKenya,x\n"))
	assert.ErrorContains(t, err, "Website_URL")
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	got, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	existing := map[string]string{"Kenya": "https://www.globtalent.org/country-collection/kenya"}

	require.NoError(t, WriteTemplate(&buf, []string{"Chile", "Kenya"}, existing))

	got, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}
