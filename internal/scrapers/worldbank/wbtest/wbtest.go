// Package wbtest serves a minimal stand-in for the World Bank site and REST
// API so that scraping and enrichment can be tested offline.
package wbtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
)

// Server is an httptest server that mimics the three World Bank endpoints.
type Server struct {
	*httptest.Server

	mutex           sync.Mutex
	listingHtml     string
	listingStatus   int
	directoryJson   string
	directoryStatus int
	// indicators maps "<country>/<indicator>" to a response body, missing
	// keys answer 404.
	indicators map[string]string
	lastQuery  map[string]string

	indicatorCalls int64
}

// NewServer starts a server with a small default dataset.
func NewServer() *Server {
	s := &Server{
		listingHtml:   DefaultListingHtml,
		directoryJson: DefaultDirectoryJson,
		indicators:    map[string]string{},
		lastQuery:     map[string]string{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// SiteUrl is the value to use as the html listing base url.
func (s *Server) SiteUrl() string {
	return s.URL
}

// ApiUrl is the value to use as the REST API base url.
func (s *Server) ApiUrl() string {
	return s.URL + "/v2"
}

// SetListing changes what /country answers, a zero status means 200.
func (s *Server) SetListing(status int, html string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.listingStatus = status
	s.listingHtml = html
}

// SetDirectory changes what /v2/country answers, a zero status means 200.
func (s *Server) SetDirectory(status int, body string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.directoryStatus = status
	s.directoryJson = body
}

// SetIndicator makes /v2/country/<country>/indicator/<indicator> answer body.
func (s *Server) SetIndicator(country, indicator, body string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.indicators[country+"/"+indicator] = body
}

// IndicatorCalls is the number of indicator requests served so far.
func (s *Server) IndicatorCalls() int64 {
	return atomic.LoadInt64(&s.indicatorCalls)
}

// LastQuery returns the raw query string of the last request made to path.
func (s *Server) LastQuery(path string) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastQuery[path]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	s.lastQuery[r.URL.Path] = r.URL.RawQuery
	listingStatus, listingHtml := s.listingStatus, s.listingHtml
	directoryStatus, directoryJson := s.directoryStatus, s.directoryJson
	s.mutex.Unlock()

	switch {
	case r.URL.Path == "/country":
		writeBody(w, listingStatus, "text/html", listingHtml)
	case r.URL.Path == "/v2/country":
		writeBody(w, directoryStatus, "application/json", directoryJson)
	case strings.HasPrefix(r.URL.Path, "/v2/country/") && strings.Contains(r.URL.Path, "/indicator/"):
		atomic.AddInt64(&s.indicatorCalls, 1)
		rest := strings.TrimPrefix(r.URL.Path, "/v2/country/")
		key := strings.Replace(rest, "/indicator/", "/", 1)

		s.mutex.Lock()
		body, ok := s.indicators[key]
		s.mutex.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeBody(w, 0, "application/json", body)
	default:
		http.NotFound(w, r)
	}
}

func writeBody(w http.ResponseWriter, status int, contentType, body string) {
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("content-type", contentType)
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

// IndicatorJson renders an mrv=1 response carrying one record.
func IndicatorJson(value string, year string) string {
	return fmt.Sprintf(
		`[{"page":1,"pages":1,"per_page":1,"total":1},[{"indicator":{"id":"X","value":"X"},"value":%s,"date":"%s"}]]`,
		value, year,
	)
}

// EmptyIndicatorJson is what the API answers when it has no record.
const EmptyIndicatorJson = `[{"page":0,"pages":0,"per_page":0,"total":0,"lastupdated":null},null]`

const DefaultListingHtml = `<!doctype html>
<html>
<body>
	<nav><a href="/about">About</a></nav>
	<ul>
		<li><a href="/country/france">France</a></li>
		<li><a href="/country/canada"> Canada </a></li>
		<li><a href="/country/france-again">France</a></li>
		<li><a href="/country/cote-divoire">Cote d'Ivoire</a></li>
		<li><a href="/country/korea-republic">Korea, Rep.</a></li>
		<li><a href="/country/empty"> </a></li>
		<li><a href="/indicator/SP.POP.TOTL">Population, total</a></li>
	</ul>
</body>
</html>`

const DefaultDirectoryJson = `[
	{"page":1,"pages":1,"per_page":"300","total":4},
	[
		{"id":"CAN","iso2Code":"CA","name":"Canada"},
		{"id":"FRA","iso2Code":"FR","name":"France"},
		{"id":"KOR","iso2Code":"KR","name":"Korea, Rep."},
		{"id":"CIV","iso2Code":"CI","name":"Côte d'Ivoire"}
	]
]`
