package sandbox

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vitalvas/binlookup/binlookup"
)

// sampleBINs is keyed by the six-digit BIN prefix.
var sampleBINs = map[string]binlookup.BINInfo{
	"545454": {
		IssuerName:       "Chase Bank",
		CountryCode:      "US",
		ProductType:      "CREDIT",
		CardType:         "MASTERCARD",
		LowAccountRange:  "5454540000000000",
		HighAccountRange: "5454549999999999",
		IssuerCountry:    "United States",
		ProductSubType:   "STANDARD",
	},
	"515555": {
		IssuerName:       "Citibank",
		CountryCode:      "US",
		ProductType:      "CREDIT",
		CardType:         "MASTERCARD",
		LowAccountRange:  "5155550000000000",
		HighAccountRange: "5155559999999999",
		IssuerCountry:    "United States",
		ProductSubType:   "WORLD",
	},
	"555555": {
		IssuerName:       "Bank of America",
		CountryCode:      "US",
		ProductType:      "CREDIT",
		CardType:         "MASTERCARD",
		LowAccountRange:  "5555550000000000",
		HighAccountRange: "5555559999999999",
		IssuerCountry:    "United States",
		ProductSubType:   "PLATINUM",
	},
	"424242": {
		IssuerName:       "HSBC Bank",
		CountryCode:      "GB",
		ProductType:      "DEBIT",
		CardType:         "VISA",
		LowAccountRange:  "4242420000000000",
		HighAccountRange: "4242429999999999",
		IssuerCountry:    "United Kingdom",
		ProductSubType:   "CLASSIC",
	},
	"411111": {
		IssuerName:       "Wells Fargo",
		CountryCode:      "US",
		ProductType:      "CREDIT",
		CardType:         "VISA",
		LowAccountRange:  "4111110000000000",
		HighAccountRange: "4111119999999999",
		IssuerCountry:    "United States",
		ProductSubType:   "SIGNATURE",
	},
	"378282": {
		IssuerName:       "American Express",
		CountryCode:      "US",
		ProductType:      "CREDIT",
		CardType:         "AMERICAN EXPRESS",
		LowAccountRange:  "378282000000000",
		HighAccountRange: "378282999999999",
		IssuerCountry:    "United States",
		ProductSubType:   "GOLD",
	},
}

var sampleRanges = []binlookup.AccountRange{
	{LowAccountRange: "5454540000000000", HighAccountRange: "5454549999999999", IssuerName: "Chase Bank", CountryCode: "US", ProductType: "CREDIT"},
	{LowAccountRange: "5155550000000000", HighAccountRange: "5155559999999999", IssuerName: "Citibank", CountryCode: "US", ProductType: "CREDIT"},
	{LowAccountRange: "5555550000000000", HighAccountRange: "5555559999999999", IssuerName: "Bank of America", CountryCode: "US", ProductType: "CREDIT"},
	{LowAccountRange: "4242420000000000", HighAccountRange: "4242429999999999", IssuerName: "HSBC Bank", CountryCode: "GB", ProductType: "DEBIT"},
	{LowAccountRange: "4111110000000000", HighAccountRange: "4111119999999999", IssuerName: "Wells Fargo", CountryCode: "US", ProductType: "CREDIT"},
	{LowAccountRange: "378282000000000", HighAccountRange: "378282999999999", IssuerName: "American Express", CountryCode: "US", ProductType: "CREDIT"},
	{LowAccountRange: "6011000000000000", HighAccountRange: "6011999999999999", IssuerName: "Discover Bank", CountryCode: "US", ProductType: "CREDIT"},
	{LowAccountRange: "5432100000000000", HighAccountRange: "5432109999999999", IssuerName: "Capital One", CountryCode: "US", ProductType: "CREDIT"},
}

// SampleBINs returns the BINs with curated data, sorted.
func SampleBINs() []string {
	bins := make([]string, 0, len(sampleBINs))
	for bin := range sampleBINs {
		bins = append(bins, bin)
	}

	slices.Sort(bins)

	return bins
}

var (
	generatedCountries = []string{"US", "GB", "CA", "DE", "FR"}
	generatedProducts  = []string{"CREDIT", "DEBIT", "PREPAID"}
	generatedCardTypes = []string{"MASTERCARD", "VISA"}
)

// lookupBIN resolves a BIN by its first six digits. Unknown prefixes get
// synthetic data derived from the prefix, so repeated lookups agree.
func lookupBIN(bin string) binlookup.BINInfo {
	prefix := bin[:6]
	if info, ok := sampleBINs[prefix]; ok {
		return info
	}

	n, _ := strconv.Atoi(prefix)

	return binlookup.BINInfo{
		IssuerName:       "Demo Bank " + prefix[:3],
		CountryCode:      generatedCountries[n%len(generatedCountries)],
		ProductType:      generatedProducts[n%len(generatedProducts)],
		CardType:         generatedCardTypes[n%len(generatedCardTypes)],
		LowAccountRange:  prefix + strings.Repeat("0", 16-len(prefix)),
		HighAccountRange: prefix + strings.Repeat("9", 16-len(prefix)),
		IssuerCountry:    "Demo Country",
		ProductSubType:   "STANDARD",
	}
}

// findRange returns the detailed record for an exact low/high pair.
func findRange(low, high string) (binlookup.BINInfo, bool) {
	for _, info := range sampleBINs {
		if info.LowAccountRange == low && info.HighAccountRange == high {
			return info, true
		}
	}

	for _, r := range sampleRanges {
		if r.LowAccountRange == low && r.HighAccountRange == high {
			return binlookup.BINInfo{
				IssuerName:       r.IssuerName,
				CountryCode:      r.CountryCode,
				ProductType:      r.ProductType,
				LowAccountRange:  r.LowAccountRange,
				HighAccountRange: r.HighAccountRange,
			}, true
		}
	}

	return binlookup.BINInfo{}, false
}

// compareDigits orders decimal strings numerically.
func compareDigits(a, b string) int {
	return cmp.Or(cmp.Compare(len(a), len(b)), strings.Compare(a, b))
}

var sortFields = map[string]func(a, b binlookup.AccountRange) int{
	"lowAccountRange": func(a, b binlookup.AccountRange) int {
		return compareDigits(a.LowAccountRange, b.LowAccountRange)
	},
	"highAccountRange": func(a, b binlookup.AccountRange) int {
		return compareDigits(a.HighAccountRange, b.HighAccountRange)
	},
	"issuerName": func(a, b binlookup.AccountRange) int {
		return strings.Compare(a.IssuerName, b.IssuerName)
	},
	"countryCode": func(a, b binlookup.AccountRange) int {
		return strings.Compare(a.CountryCode, b.CountryCode)
	},
	"productType": func(a, b binlookup.AccountRange) int {
		return strings.Compare(a.ProductType, b.ProductType)
	},
}

// sortRanges returns a sorted copy of ranges. A leading "-" sorts
// descending; an empty field keeps the original order.
func sortRanges(ranges []binlookup.AccountRange, sort string) ([]binlookup.AccountRange, error) {
	out := slices.Clone(ranges)
	if sort == "" {
		return out, nil
	}

	field, desc := strings.CutPrefix(sort, "-")

	compare, ok := sortFields[field]
	if !ok {
		return nil, fmt.Errorf("unknown sort field %q", field)
	}

	slices.SortStableFunc(out, func(a, b binlookup.AccountRange) int {
		if desc {
			return compare(b, a)
		}

		return compare(a, b)
	})

	return out, nil
}

// filterRanges applies case-insensitive issuer substring and exact country
// and product matches.
func filterRanges(ranges []binlookup.AccountRange, p binlookup.SearchParams) []binlookup.AccountRange {
	issuer := strings.ToLower(p.IssuerName)
	country := strings.ToUpper(p.CountryCode)
	product := strings.ToUpper(p.ProductType)

	var out []binlookup.AccountRange
	for _, r := range ranges {
		if issuer != "" && !strings.Contains(strings.ToLower(r.IssuerName), issuer) {
			continue
		}

		if country != "" && r.CountryCode != country {
			continue
		}

		if product != "" && r.ProductType != product {
			continue
		}

		out = append(out, r)
	}

	return out
}

const maxPageSize = 100

// paginate slices ranges into a one-based page. Out of range page and size
// values fall back to 1 and 25.
func paginate(ranges []binlookup.AccountRange, page, size int) binlookup.Page {
	if page < 1 {
		page = binlookup.DefaultPage
	}

	if size < 1 || size > maxPageSize {
		size = binlookup.DefaultSize
	}

	total := len(ranges)
	start := min((page-1)*size, total)
	end := min(start+size, total)

	content := slices.Clone(ranges[start:end])
	if content == nil {
		content = []binlookup.AccountRange{}
	}

	return binlookup.Page{
		Content:          content,
		TotalElements:    total,
		TotalPages:       (total + size - 1) / size,
		Number:           page - 1,
		NumberOfElements: len(content),
		First:            page == 1,
		Last:             (page-1)*size+size >= total,
	}
}
