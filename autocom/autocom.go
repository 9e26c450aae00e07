package autocom

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Activity and topic names live in per-category sorted sets so name lookups
// can serve typeahead suggestions without hitting the upstream API.

func autocompleteKey(category string) string {
	return "autocomplete:" + category
}

// AddRefToAutocomplete indexes one reference entry name for suggestions.
func AddRefToAutocomplete(client *redis.Client, category, name string) error {
	ctx := context.Background()

	_, err := client.ZAdd(ctx, autocompleteKey(category), redis.Z{
		Score:  0, // lexicographic range queries need equal scores
		Member: name,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to add %s to autocomplete: %v", category, err)
	}
	return nil
}

// SearchAutocomplete returns up to limit names with the given prefix.
func SearchAutocomplete(client *redis.Client, category, query string, limit int64) ([]string, error) {
	ctx := context.Background()

	results, err := client.ZRangeByLex(ctx, autocompleteKey(category), &redis.ZRangeBy{
		Min:    "[" + query,
		Max:    "[" + query + "\xff",
		Offset: 0,
		Count:  limit,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to search %s autocomplete: %v", category, err)
	}

	return results, nil
}
