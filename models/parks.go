package models

import "time"

// Park mirrors the upstream NPS park record, trimmed to the fields the
// application renders. ParkCode is the primary cross-reference key and is
// stored lowercase.
type Park struct {
	ID          string      `json:"id"`
	ParkCode    string      `json:"parkCode"`
	FullName    string      `json:"fullName"`
	States      string      `json:"states"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	LatLong     string      `json:"latLong"`
	Images      []ParkImage `json:"images,omitempty"`
}

type ParkImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// RefItem is one entry of a reference listing (an activity or a topic):
// an upstream-assigned opaque id plus a human-readable name.
type RefItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SavedPark is one (user, park code) record. Key is the normalized lowercase
// park code; Park is the display label and defaults to the key.
type SavedPark struct {
	RecordID  string    `json:"-" bson:"recordid"`
	UserID    string    `json:"-" bson:"userid"`
	Key       string    `json:"key" bson:"key"`
	Park      string    `json:"park" bson:"park"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Origin is a search origin coordinate.
type Origin struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchQuery is the body of POST /api/parks/search. Activities and Topics
// hold a mix of opaque ids and human-readable names; a result must satisfy
// every entry of both lists. The ranked lists are carried for future
// weighting and do not affect ordering.
type SearchQuery struct {
	Activities        []string `json:"activities"`
	Topics            []string `json:"topics"`
	RankedActivityIDs []string `json:"rankedActivityIds,omitempty"`
	RankedTopicIDs    []string `json:"rankedTopicIds,omitempty"`
	Origin            *Origin  `json:"origin,omitempty"`
	RadiusMiles       float64  `json:"radiusMiles,omitempty"`
}

// SearchResult is one ranked park in a search response. DistanceMiles is
// set only when the query carried an origin and the park has a parseable
// coordinate.
type SearchResult struct {
	Park
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
}

// Event is the payload published on the change-notification channel when
// a saved-park record or a session changes.
type Event struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityID   string `json:"entity_id"`
	UserID     string `json:"userid"`
}
