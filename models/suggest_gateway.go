package models

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/tidwall/gjson"
)

// ============================================================================
// Suggestion Gateway
//
// Translates (content type, query, country) into a normalized Suggestion
// list. Each content type has its own upstream endpoint and response shape;
// the lookup strategies below hide those differences.
//
// Failure contract: a nil slice plus an error means the lookup failed
// (network, status, or body not JSON). A non-nil, possibly empty slice means
// the lookup worked. Unexpected or missing fields in an otherwise valid body
// are treated as absent, never as a failure.
// ============================================================================

// DefaultSuggestBaseURL is the public search host the endpoints live under.
const DefaultSuggestBaseURL = "https://www.pricerunner.se"

// maxSuggestBody caps how much of an upstream response we read.
const maxSuggestBody = 4 << 20

// SuggestionFetcher is what the field controller needs from a gateway.
type SuggestionFetcher interface {
	FetchSuggestions(ctx context.Context, ct ContentType, query string, cc CountryCode) ([]Suggestion, error)
}

// SuggestionGateway issues lookups against the remote suggestion endpoints.
type SuggestionGateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewSuggestionGateway builds a gateway rooted at baseURL.
// A zero timeout leaves the client without a deadline; callers can still
// bound a lookup through its context.
func NewSuggestionGateway(baseURL string, timeout time.Duration) *SuggestionGateway {
	if baseURL == "" {
		baseURL = DefaultSuggestBaseURL
	}
	return &SuggestionGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// suggestStrategy describes one upstream endpoint: where it lives and how
// to pull Suggestions out of its body.
type suggestStrategy struct {
	path    func(cc CountryCode) string
	extract func(body []byte) []Suggestion
}

var suggestStrategies = map[ContentType]suggestStrategy{
	ContentTypeCategory: {
		path:    func(cc CountryCode) string { return "/public/search/suggest/categories/" + string(cc) },
		extract: flatSuggestions("categories"),
	},
	ContentTypeSubcategory: {
		path:    func(cc CountryCode) string { return "/public/search/suggest/" + string(cc) },
		extract: subcategorySuggestions,
	},
	ContentTypeMerchant: {
		path:    func(cc CountryCode) string { return "/public/search/suggest/merchants/" + string(cc) },
		extract: flatSuggestions("suggestions"),
	},
	ContentTypeBrand: {
		path:    func(cc CountryCode) string { return "/public/search/suggest/brands/" + string(cc) },
		extract: flatSuggestions("suggestions"),
	},
}

// FetchSuggestions runs the lookup for ct. See the failure contract above.
func (g *SuggestionGateway) FetchSuggestions(ctx context.Context, ct ContentType, query string, cc CountryCode) ([]Suggestion, error) {
	strategy, ok := suggestStrategies[ct]
	if !ok {
		return nil, serr.New("no suggestion lookup for content type " + strconv.Quote(string(ct)))
	}
	if !cc.IsValid() {
		return nil, serr.New("no suggestion lookup for country " + strconv.Quote(string(cc)))
	}

	body, err := g.get(ctx, strategy.path(cc), query)
	if err != nil {
		return nil, serr.Wrap(err, "suggestion lookup failed for "+string(ct))
	}

	if !gjson.ValidBytes(body) {
		return nil, serr.New("suggestion response for " + string(ct) + " is not valid JSON")
	}

	suggestions := strategy.extract(body)
	logger.Debug("Suggestions fetched",
		"type", string(ct),
		"country", string(cc),
		"count", strconv.Itoa(len(suggestions)),
	)
	return suggestions, nil
}

// get performs the GET and returns the raw body of a 2xx response.
func (g *SuggestionGateway) get(ctx context.Context, path, query string) ([]byte, error) {
	endpoint := g.baseURL + path + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create suggestion request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, serr.Wrap(err, "suggestion request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serr.New("suggestion endpoint returned status " + strconv.Itoa(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSuggestBody))
	if err != nil {
		return nil, serr.Wrap(err, "failed to read suggestion response")
	}
	return body, nil
}

// flatSuggestions handles the shapes where listPath already holds
// {id, name} records. Records missing either field could never be stored
// as a FieldValue and are dropped.
func flatSuggestions(listPath string) func(body []byte) []Suggestion {
	return func(body []byte) []Suggestion {
		suggestions := []Suggestion{}

		list := gjson.GetBytes(body, listPath)
		if !list.IsArray() {
			return suggestions
		}

		list.ForEach(func(_, item gjson.Result) bool {
			id, name := item.Get("id").String(), item.Get("name").String()
			if id == "" || name == "" {
				return true
			}
			suggestions = append(suggestions, Suggestion{ID: id, Name: name})
			return true
		})
		return suggestions
	}
}

// subcategorySuggestions flattens the global suggestion list. Only
// category-kind records with nested categories contribute; each nested
// entry is keyed by its url path, since that is the only stable handle
// the endpoint gives for a subcategory.
func subcategorySuggestions(body []byte) []Suggestion {
	suggestions := []Suggestion{}

	list := gjson.GetBytes(body, "suggestions")
	if !list.IsArray() {
		return suggestions
	}

	list.ForEach(func(_, record gjson.Result) bool {
		if record.Get("type").String() != string(ContentTypeCategory) {
			return true
		}
		nested := record.Get("categories")
		if !nested.IsArray() {
			return true
		}

		parentName := record.Get("name").String()
		nested.ForEach(func(_, sub gjson.Result) bool {
			path, name := sub.Get("url").String(), sub.Get("name").String()
			if path == "" || name == "" {
				return true
			}
			suggestions = append(suggestions, Suggestion{
				ID:   path,
				Name: parentName + " - " + name,
			})
			return true
		})
		return true
	})
	return suggestions
}
