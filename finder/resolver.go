package finder

import (
	"context"
	"regexp"
	"strings"

	"parkscout/models"
	"parkscout/utils"
)

// guidRe matches the canonical 36-character dashed hex shape of an upstream
// opaque identifier.
var guidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func IsGUID(s string) bool {
	return guidRe.MatchString(strings.ToLower(s))
}

// ResolveIDs maps a mixed list of opaque ids and human-readable names to a
// deduplicated id list. Values already shaped like an id pass through
// unchanged; names resolve against the listing by exact normalized match
// first, then by first substring hit in listing order. A name with no match
// is dropped silently — best-effort resolution, not an error.
func ResolveIDs(ctx context.Context, values []string, list func(context.Context) ([]models.RefItem, error)) ([]string, error) {
	ids := make([]string, 0, len(values))
	var names []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if IsGUID(v) {
			ids = append(ids, v)
		} else {
			names = append(names, utils.NormalizeName(v))
		}
	}

	if len(names) == 0 {
		return utils.Dedupe(ids), nil
	}

	items, err := list(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(items))
	for _, item := range items {
		norm := utils.NormalizeName(item.Name)
		if _, ok := byName[norm]; !ok {
			byName[norm] = item.ID
		}
	}

	for _, name := range names {
		id, ok := byName[name]
		if !ok {
			// Fuzzy fallback: first listing entry whose name contains the
			// query. Ambiguous substrings resolve to whichever entry comes
			// first — an accepted imprecision.
			for _, item := range items {
				if strings.Contains(utils.NormalizeName(item.Name), name) {
					id = item.ID
					ok = true
					break
				}
			}
		}
		if ok {
			ids = append(ids, id)
		}
	}

	return utils.Dedupe(ids), nil
}
