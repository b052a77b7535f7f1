package edgar

import "fmt"

const (
	// CompanyFactsBaseURL is the base URL for the extracted-XBRL
	// companyfacts endpoint.
	CompanyFactsBaseURL = "https://data.sec.gov"

	// TickersURL is the official SEC file mapping CIK to ticker and name.
	TickersURL = "https://www.sec.gov/files/company_tickers.json"

	// CIKDigits is the canonical zero-padded width of a CIK.
	CIKDigits = 10
)

// PadCIK canonicalizes a numeric CIK to its 10-digit zero-padded form.
func PadCIK(cik int) string {
	return fmt.Sprintf("%0*d", CIKDigits, cik)
}

// CompanyFactsURL constructs the companyfacts URL for a canonical CIK under
// the given base URL.
func CompanyFactsURL(baseURL, cik10 string) string {
	return fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", baseURL, cik10)
}
