package binlookup

// BINInfo describes the issuer and product of one BIN.
type BINInfo struct {
	IssuerName       string `json:"issuerName"`
	CountryCode      string `json:"countryCode"`
	ProductType      string `json:"productType"`
	CardType         string `json:"cardType,omitempty"`
	LowAccountRange  string `json:"lowAccountRange"`
	HighAccountRange string `json:"highAccountRange"`
	IssuerCountry    string `json:"issuerCountry,omitempty"`
	ProductSubType   string `json:"productSubType,omitempty"`
}

// AccountRange is one entry of a paged account range listing.
type AccountRange struct {
	LowAccountRange  string `json:"lowAccountRange"`
	HighAccountRange string `json:"highAccountRange"`
	IssuerName       string `json:"issuerName"`
	CountryCode      string `json:"countryCode"`
	ProductType      string `json:"productType"`
}

// Page is a page of account ranges. Number is zero-based.
type Page struct {
	Content          []AccountRange `json:"content"`
	TotalElements    int            `json:"totalElements"`
	TotalPages       int            `json:"totalPages"`
	Number           int            `json:"number"`
	NumberOfElements int            `json:"numberOfElements"`
	First            bool           `json:"first"`
	Last             bool           `json:"last"`
}

// SearchParams filters account ranges. Empty fields do not filter; Page
// and Size default to 1 and 25.
type SearchParams struct {
	IssuerName  string `json:"issuerName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	ProductType string `json:"productType,omitempty"`
	Page        int    `json:"page,omitempty"`
	Size        int    `json:"size,omitempty"`
}

// Default paging.
const (
	DefaultPage = 1
	DefaultSize = 25
	DefaultSort = "-lowAccountRange"
)

func (p SearchParams) withDefaults() SearchParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.Size < 1 {
		p.Size = DefaultSize
	}

	return p
}
