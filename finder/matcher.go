package finder

import (
	"context"

	"parkscout/utils"
)

// MatchResult is the outcome of intersecting one category's identifiers:
// the codes satisfying every identifier, plus a reverse map recording which
// identifiers each code satisfied.
type MatchResult struct {
	Codes     []string
	CodeToIDs map[string][]string
}

// MatchAll fetches the association listing for each identifier and narrows
// to the codes present in every per-identifier set (AND semantics). Codes
// keep the arrival order of the first identifier's set. An empty identifier
// list yields an empty result, and any identifier with zero parks
// short-circuits the whole intersection to empty.
func MatchAll(ctx context.Context, ids []string, parksFor func(context.Context, string) ([]string, error)) (MatchResult, error) {
	result := MatchResult{Codes: []string{}, CodeToIDs: make(map[string][]string)}
	ids = utils.Dedupe(ids)
	if len(ids) == 0 {
		return result, nil
	}

	perID := make(map[string]map[string]bool, len(ids))
	var firstOrder []string

	for i, id := range ids {
		codes, err := parksFor(ctx, id)
		if err != nil {
			return result, err
		}

		set := make(map[string]bool, len(codes))
		for _, code := range codes {
			code = utils.NormalizeCode(code)
			if code == "" {
				continue
			}
			if !set[code] {
				set[code] = true
				if i == 0 {
					firstOrder = append(firstOrder, code)
				}
			}
			if !contains(result.CodeToIDs[code], id) {
				result.CodeToIDs[code] = append(result.CodeToIDs[code], id)
			}
		}
		perID[id] = set
	}

	// No parks for any one identifier means nothing can satisfy all of them.
	for _, id := range ids {
		if len(perID[id]) == 0 {
			return result, nil
		}
	}

	for _, code := range firstOrder {
		inAll := true
		for _, id := range ids[1:] {
			if !perID[id][code] {
				inAll = false
				break
			}
		}
		if inAll {
			result.Codes = append(result.Codes, code)
		}
	}
	return result, nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
