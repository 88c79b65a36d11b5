// SPDX-FileCopyrightText: 2026 The Nixdex Authors
// SPDX-License-Identifier: EUPL-1.2

package nixsearch

// MaxResults caps how many hits a single search requests.
const MaxResults = 50

// Query is the request body sent to the search backend. The shape follows
// the Elasticsearch query DSL the NixOS search service expects.
type Query struct {
	From  int         `json:"from"`
	Size  int         `json:"size"`
	Query boolWrapper `json:"query"`
	Sort  []any       `json:"sort"`
}

type boolWrapper struct {
	Bool boolQuery `json:"bool"`
}

type boolQuery struct {
	Must   []multiMatchWrapper `json:"must"`
	Filter []termFilter        `json:"filter"`
}

type multiMatchWrapper struct {
	MultiMatch multiMatch `json:"multi_match"`
}

type multiMatch struct {
	Query  string   `json:"query"`
	Fields []string `json:"fields"`
}

type termFilter struct {
	Term map[string]termValue `json:"term"`
}

type termValue struct {
	Value string `json:"value"`
}

// BuildQuery constructs the weighted multi-field package search for text:
// attribute name weighs highest, programs and short name medium, description
// lowest. Results are limited to package documents, capped at MaxResults,
// and sorted by relevance with attribute name as the tie-break.
func BuildQuery(text string) Query {
	return Query{
		From: 0,
		Size: MaxResults,
		Query: boolWrapper{
			Bool: boolQuery{
				Must: []multiMatchWrapper{
					{
						MultiMatch: multiMatch{
							Query: text,
							Fields: []string{
								"package_attr_name^3",
								"package_programs^2",
								"package_pname^2",
								"package_description",
							},
						},
					},
				},
				Filter: []termFilter{
					{Term: map[string]termValue{"type": {Value: "package"}}},
				},
			},
		},
		Sort: []any{
			map[string]string{"_score": "desc"},
			map[string]string{"package_attr_name": "asc"},
		},
	}
}
