package finder

import (
	"context"
	"log"

	"parkscout/models"
	"parkscout/nps"
	"parkscout/utils"

	"golang.org/x/sync/errgroup"
)

// Finder runs the result-resolution pipeline against the upstream API:
// resolve criteria to ids, intersect per-category park sets, combine the
// categories, apply the geographic filter and sort, then fetch details for
// the final ordered list.
type Finder struct {
	api nps.API
}

func New(api nps.API) *Finder {
	return &Finder{api: api}
}

// Search executes one full pipeline run. Any step's failure aborts the run
// and returns the triggering error; zero results is a valid empty outcome.
// Cancelling ctx aborts in-flight upstream requests.
func (f *Finder) Search(ctx context.Context, q models.SearchQuery) ([]models.SearchResult, error) {
	if len(q.Activities) == 0 && len(q.Topics) == 0 {
		return []models.SearchResult{}, nil
	}

	// The two categories resolve independently and run concurrently.
	var actRes, topRes MatchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actRes, err = f.matchCategory(gctx, q.Activities, f.api.ListActivities, f.api.ParksForActivity)
		return err
	})
	g.Go(func() error {
		var err error
		topRes, err = f.matchCategory(gctx, q.Topics, f.api.ListTopics, f.api.ParksForTopic)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var codes []string
	switch {
	case len(q.Activities) > 0 && len(q.Topics) > 0:
		topSet := make(map[string]bool, len(topRes.Codes))
		for _, code := range topRes.Codes {
			topSet[code] = true
		}
		for _, code := range actRes.Codes {
			if topSet[code] {
				codes = append(codes, code)
			}
		}
		log.Printf("[finder] activities (%d) ∩ topics (%d) -> %d parks",
			len(actRes.Codes), len(topRes.Codes), len(codes))
	case len(q.Activities) > 0:
		codes = actRes.Codes
	default:
		codes = topRes.Codes
	}

	// Details fetched once per code across the remaining steps.
	byCode := make(map[string]models.Park)

	if q.Origin != nil && q.RadiusMiles > 0 && len(codes) > 0 {
		if err := f.detailsFor(ctx, codes, byCode); err != nil {
			return nil, err
		}
		codes = utils.Dedupe(FilterByRadius(codes, byCode, *q.Origin, q.RadiusMiles))
		log.Printf("[finder] radius filter <= %.1f mi -> %d parks", q.RadiusMiles, len(codes))
	}

	if q.Origin != nil && len(codes) > 0 {
		if err := f.detailsFor(ctx, codes, byCode); err != nil {
			return nil, err
		}
		codes = SortByDistance(codes, byCode, *q.Origin)
	}

	if len(codes) == 0 {
		return []models.SearchResult{}, nil
	}

	if err := f.detailsFor(ctx, codes, byCode); err != nil {
		return nil, err
	}

	// Preserve the established order; codes the details endpoint did not
	// return are skipped.
	results := make([]models.SearchResult, 0, len(codes))
	for _, code := range codes {
		park, ok := byCode[code]
		if !ok {
			continue
		}
		res := models.SearchResult{Park: park}
		if q.Origin != nil {
			if ll := ParseLatLong(park.LatLong); ll != nil {
				d := HaversineMiles(*q.Origin, *ll)
				res.DistanceMiles = &d
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (f *Finder) matchCategory(
	ctx context.Context,
	values []string,
	list func(context.Context) ([]models.RefItem, error),
	parksFor func(context.Context, string) ([]string, error),
) (MatchResult, error) {
	if len(values) == 0 {
		return MatchResult{Codes: []string{}, CodeToIDs: map[string][]string{}}, nil
	}
	ids, err := ResolveIDs(ctx, values, list)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchAll(ctx, ids, parksFor)
}

// detailsFor fills byCode for any codes not fetched yet.
func (f *Finder) detailsFor(ctx context.Context, codes []string, byCode map[string]models.Park) error {
	var missing []string
	for _, code := range codes {
		if _, ok := byCode[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	parks, err := f.api.ParkDetails(ctx, missing)
	if err != nil {
		return err
	}
	for _, park := range parks {
		code := utils.NormalizeCode(park.ParkCode)
		park.ParkCode = code
		byCode[code] = park
	}
	return nil
}
