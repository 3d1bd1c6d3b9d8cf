package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
)

// filterQuery is the GET form of the filter endpoint. Spec constraints
// travel as repeated spec=key:value1||value2 parameters.
type filterQuery struct {
	Category    []string `schema:"category"`
	Subcategory []string `schema:"subcategory"`
	BrandName   []string `schema:"brand"`
	Specs       []string `schema:"spec"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// GetFilterRequestFromRequest accepts the resolution payload either as a
// JSON body (the canonical write-style form) or as query parameters for
// ad-hoc GET usage.
func GetFilterRequestFromRequest(r *http.Request) (*resolve.Request, error) {
	req := resolve.NewRequest()
	if r.Method == http.MethodGet {
		return req, filterRequestFromQuery(r.URL.Query(), req)
	}
	err := json.NewDecoder(r.Body).Decode(req)
	if req.Specifications == nil {
		req.Specifications = map[string][]string{}
	}
	return req, err
}

func filterRequestFromQuery(query url.Values, result *resolve.Request) error {
	q := &filterQuery{}
	if err := decoder.Decode(q, query); err != nil {
		return err
	}
	result.Category = q.Category
	result.Subcategory = q.Subcategory
	result.BrandName = q.BrandName
	for _, raw := range q.Specs {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			continue
		}
		if strings.Contains(value, "||") {
			result.Specifications[key] = strings.Split(value, "||")
		} else {
			result.Specifications[key] = []string{value}
		}
	}
	return nil
}
