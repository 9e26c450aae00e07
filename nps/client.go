package nps

import (
	"context"

	"parkscout/models"
)

// API is the surface of the upstream NPS open-data service the pipeline
// depends on: paginated reference listings, identifier-to-parks association
// endpoints and batch park details.
type API interface {
	// ListActivities retrieves the full activities reference listing.
	ListActivities(ctx context.Context) ([]models.RefItem, error)

	// ListTopics retrieves the full topics reference listing.
	ListTopics(ctx context.Context) ([]models.RefItem, error)

	// ParksForActivity returns the park codes associated with one activity id.
	ParksForActivity(ctx context.Context, id string) ([]string, error)

	// ParksForTopic returns the park codes associated with one topic id.
	ParksForTopic(ctx context.Context, id string) ([]string, error)

	// ParkDetails fetches full park records for a code list, batching
	// requests at the upstream limit and preserving nothing about order.
	ParkDetails(ctx context.Context, codes []string) ([]models.Park, error)
}
