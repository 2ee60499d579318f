package roster

// countryCodes maps the supported market names to ISO alpha-2 codes used as
// the external id prefix. Names must match exactly; anything else yields an
// empty code and a per-row issue.
var countryCodes = map[string]string{
	"Egypt":                "EG",
	"United Arab Emirates": "AE",
	"Oman":                 "OM",
	"Bahrain":              "BH",
	"Qatar":                "QA",
	"Iraq":                 "IQ",
	"Jordan":               "JO",
	"Kuwait":               "KW",
}

// CountryCode returns the ISO alpha-2 code for a supported country name.
func CountryCode(country string) (string, bool) {
	code, ok := countryCodes[country]
	return code, ok
}
