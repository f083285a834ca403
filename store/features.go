package store

import (
	"strings"

	"github.com/teranos/runquery/errors"
)

// Feature names an optional message category. A disabled category is never
// written; reads over it report nothing.
type Feature string

const (
	IncludeGherkinDocuments        Feature = "documents"
	IncludeStepDefinitions         Feature = "step-definitions"
	IncludeHooks                   Feature = "hooks"
	IncludeAttachments             Feature = "attachments"
	IncludeSuggestions             Feature = "suggestions"
	IncludeUndefinedParameterTypes Feature = "undefined-parameter-types"
)

// AllFeatures lists every optional category.
func AllFeatures() []Feature {
	return []Feature{
		IncludeGherkinDocuments,
		IncludeStepDefinitions,
		IncludeHooks,
		IncludeAttachments,
		IncludeSuggestions,
		IncludeUndefinedParameterTypes,
	}
}

// ParseFeature accepts a category name; underscores may stand in for
// hyphens.
func ParseFeature(s string) (Feature, error) {
	normalized := Feature(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	for _, f := range AllFeatures() {
		if f == normalized {
			return f, nil
		}
	}
	return "", errors.NewInvalidRequestError("unknown store feature %q", s)
}

type featureSet map[Feature]bool

func (fs featureSet) has(f Feature) bool { return fs[f] }
