package finder

import (
	"context"
	"errors"
	"testing"

	"parkscout/models"
)

// fakeAPI serves canned upstream data to the pipeline.
type fakeAPI struct {
	activities []models.RefItem
	topics     []models.RefItem
	actParks   map[string][]string
	topParks   map[string][]string
	parks      map[string]models.Park
	detailErr  error

	detailCalls int
}

func (f *fakeAPI) ListActivities(context.Context) ([]models.RefItem, error) {
	return f.activities, nil
}

func (f *fakeAPI) ListTopics(context.Context) ([]models.RefItem, error) {
	return f.topics, nil
}

func (f *fakeAPI) ParksForActivity(_ context.Context, id string) ([]string, error) {
	return f.actParks[id], nil
}

func (f *fakeAPI) ParksForTopic(_ context.Context, id string) ([]string, error) {
	return f.topParks[id], nil
}

func (f *fakeAPI) ParkDetails(_ context.Context, codes []string) ([]models.Park, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	var out []models.Park
	for _, code := range codes {
		if park, ok := f.parks[code]; ok {
			out = append(out, park)
		}
	}
	return out, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		activities: []models.RefItem{
			{ID: hikingID, Name: "Hiking"},
			{ID: campingID, Name: "Camping"},
		},
		topics: []models.RefItem{
			{ID: wildlifeID, Name: "Wildlife Watching"},
		},
		actParks: map[string][]string{
			hikingID:  {"shen", "anti", "grca"},
			campingID: {"shen", "grca"},
		},
		topParks: map[string][]string{
			wildlifeID: {"anti", "shen"},
		},
		parks: map[string]models.Park{
			"shen": {ParkCode: "shen", FullName: "Shenandoah", LatLong: "lat:38.4755, long:-78.4535"},
			"anti": {ParkCode: "anti", FullName: "Antietam", LatLong: "lat:39.4612, long:-77.7392"},
			"grca": {ParkCode: "grca", FullName: "Grand Canyon", LatLong: "lat:36.1, long:-112.1"},
		},
	}
}

func TestSearchNoCriteria(t *testing.T) {
	f := New(newFakeAPI())
	results, err := f.Search(context.Background(), models.SearchQuery{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty for no criteria", results)
	}
}

func TestSearchActivitiesOnlyNoOrigin(t *testing.T) {
	api := newFakeAPI()
	f := New(api)

	results, err := f.Search(context.Background(), models.SearchQuery{
		Activities: []string{"Hiking"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// All hiking parks, arrival order, no distance attached.
	want := []string{"shen", "anti", "grca"}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, code := range want {
		if results[i].ParkCode != code {
			t.Errorf("results[%d] = %s, want %s (arrival order)", i, results[i].ParkCode, code)
		}
		if results[i].DistanceMiles != nil {
			t.Error("no origin set, distance should be absent")
		}
	}
}

func TestSearchBothCategoriesWithRadius(t *testing.T) {
	api := newFakeAPI()
	f := New(api)

	origin := &models.Origin{Lat: 38.9, Lon: -77.0}
	results, err := f.Search(context.Background(), models.SearchQuery{
		Activities:  []string{"Hiking"},
		Topics:      []string{"Wildlife Watching"},
		Origin:      origin,
		RadiusMiles: 100,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// hiking {shen anti grca} ∩ wildlife {anti shen} = {shen anti};
	// both within 100 miles of DC, sorted ascending by distance.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ParkCode != "anti" || results[1].ParkCode != "shen" {
		t.Errorf("order = [%s %s], want [anti shen]", results[0].ParkCode, results[1].ParkCode)
	}
	for _, res := range results {
		if res.DistanceMiles == nil {
			t.Fatal("distance should be attached when an origin is set")
		}
		if *res.DistanceMiles > 100 {
			t.Errorf("%s at %f miles exceeds the radius", res.ParkCode, *res.DistanceMiles)
		}
	}
	if *results[0].DistanceMiles > *results[1].DistanceMiles {
		t.Error("results not sorted ascending by distance")
	}
}

func TestSearchIntersectionAND(t *testing.T) {
	api := newFakeAPI()
	f := New(api)

	results, err := f.Search(context.Background(), models.SearchQuery{
		Activities: []string{"Hiking", "Camping"},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	// hiking {shen anti grca} ∩ camping {shen grca} = {shen grca}
	if len(results) != 2 || results[0].ParkCode != "shen" || results[1].ParkCode != "grca" {
		codes := make([]string, len(results))
		for i, r := range results {
			codes[i] = r.ParkCode
		}
		t.Errorf("codes = %v, want [shen grca]", codes)
	}
}

func TestSearchEmptyCategoryShortCircuit(t *testing.T) {
	api := newFakeAPI()
	api.topParks[wildlifeID] = nil
	f := New(api)

	results, err := f.Search(context.Background(), models.SearchQuery{
		Activities: []string{"Hiking"},
		Topics:     []string{"Wildlife Watching"},
	})
	if err != nil {
		t.Fatalf("zero results is a valid outcome, got error %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty when a topic matches no parks", results)
	}
}

func TestSearchDetailErrorAbortsRun(t *testing.T) {
	api := newFakeAPI()
	api.detailErr = errors.New("details down")
	f := New(api)

	_, err := f.Search(context.Background(), models.SearchQuery{
		Activities: []string{"Hiking"},
		Origin:     &models.Origin{Lat: 38.9, Lon: -77.0},
	})
	if !errors.Is(err, api.detailErr) {
		t.Errorf("err = %v, want the step error surfaced", err)
	}
}

func TestSearchDetailsFetchedOncePerCode(t *testing.T) {
	api := newFakeAPI()
	f := New(api)

	_, err := f.Search(context.Background(), models.SearchQuery{
		Activities:  []string{"Hiking"},
		Origin:      &models.Origin{Lat: 38.9, Lon: -77.0},
		RadiusMiles: 100,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if api.detailCalls != 1 {
		t.Errorf("detailCalls = %d, want 1 (memoized across steps)", api.detailCalls)
	}
}

func TestSearchRankedListsDoNotAffectOrder(t *testing.T) {
	api := newFakeAPI()
	f := New(api)

	base, err := f.Search(context.Background(), models.SearchQuery{Activities: []string{"Hiking"}})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	ranked, err := f.Search(context.Background(), models.SearchQuery{
		Activities:        []string{"Hiking"},
		RankedActivityIDs: []string{campingID, hikingID},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(base) != len(ranked) {
		t.Fatalf("ranked list changed the result set size: %d vs %d", len(base), len(ranked))
	}
	for i := range base {
		if base[i].ParkCode != ranked[i].ParkCode {
			t.Errorf("ranked list changed ordering at %d: %s vs %s", i, base[i].ParkCode, ranked[i].ParkCode)
		}
	}
}
