package names

// DefaultRosterSynonyms returns the synonym table for roster spellings.
// The roster tends to use short or legacy names.
func DefaultRosterSynonyms() map[string]string {
	return map[string]string{
		"Bosnia":         "Bosnia and Herzegovina",
		"Cameroun":       "Cameroon",
		"Côte d'Ivoire":  "Ivory Coast",
		"Czech Republic": "Czechia",
		"DRC":            "Democratic Republic of the Congo",
		"Eswatini":       "eSwatini",
		"Macedonia":      "North Macedonia",
		"Salvador":       "El Salvador",
		"Serbia":         "Republic of Serbia",
		"Tanzania":       "United Republic of Tanzania",
		"UK":             "United Kingdom",
	}
}

// DefaultBoundarySynonyms returns the synonym table for the boundary
// dataset. Gaza Strip and West Bank intentionally collapse to Palestine;
// the geography loader keeps one record per canonical name.
func DefaultBoundarySynonyms() map[string]string {
	return map[string]string{
		"Bosnia & Herzegovina":  "Bosnia and Herzegovina",
		"Samoa":                 "American Samoa",
		"Congo, Dem Rep of the": "Democratic Republic of the Congo",
		"Cote d'Ivoire":         "Ivory Coast",
		"Macedonia":             "North Macedonia",
		"Serbia":                "Republic of Serbia",
		"Tanzania":              "United Republic of Tanzania",
		"Swaziland":             "eSwatini",
		"Gaza Strip":            "Palestine",
		"West Bank":             "Palestine",
	}
}
