package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vitalvas/binlookup/binlookup"
)

const maxSearchBody = 1 << 20

type healthResponse struct {
	Status     string   `json:"status"`
	Message    string   `json:"message"`
	SampleBINs []string `json:"availableSampleBins"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "healthy",
		Message:    "Sandbox API is ready",
		SampleBINs: SampleBINs(),
	})
}

func handleLookup(w http.ResponseWriter, r *http.Request) {
	bin := mux.Vars(r)["bin"]
	if err := binlookup.ValidateBIN(bin); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BIN", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lookupBIN(bin))
}

func handleRanges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sort := binlookup.DefaultSort
	if q.Has("sort") {
		sort = q.Get("sort")
	}

	ranges, err := sortRanges(sampleRanges, sort)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_SORT", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, paginate(ranges, queryInt(q.Get("page"), binlookup.DefaultPage), queryInt(q.Get("size"), binlookup.DefaultSize)))
}

func handleDetails(w http.ResponseWriter, r *http.Request) {
	low := r.URL.Query().Get("accountRangeLow")
	high := r.URL.Query().Get("accountRangeHigh")

	if low == "" || high == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PARAMETER", "accountRangeLow and accountRangeHigh are required")
		return
	}

	info, ok := findRange(low, high)
	if !ok {
		writeError(w, http.StatusNotFound, "RANGE_NOT_FOUND", "no account range "+low+".."+high)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	search(w, binlookup.SearchParams{
		IssuerName:  q.Get("issuerName"),
		CountryCode: q.Get("countryCode"),
		ProductType: q.Get("productType"),
		Page:        queryInt(q.Get("page"), binlookup.DefaultPage),
		Size:        queryInt(q.Get("size"), binlookup.DefaultSize),
	})
}

func handleSearchBody(w http.ResponseWriter, r *http.Request) {
	var p binlookup.SearchParams

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSearchBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&p); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", err.Error())
			return
		}

		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	search(w, p)
}

func search(w http.ResponseWriter, p binlookup.SearchParams) {
	writeJSON(w, http.StatusOK, paginate(filterRanges(sampleRanges, p), p.Page, p.Size))
}

// queryInt parses s, returning def when s is empty or not an integer.
func queryInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}

	return n
}
