package cache

import (
	"fmt"
	"sort"
	"strings"
)

// Cache keys are namespaced by entity and query shape so distinct filter
// combinations never collide:
//
//	{entity}:{kind}:{page}:{limit}:{k=v,...}   list queries
//	{entity}:id:{id}                           single lookups
//	{entity}:slug:{slug}                       slug lookups
//
// Filters are serialised in ascending key order so the same inputs always
// produce the same key.

// ListKey builds the cache key for a paginated list query.
func ListKey(entity, kind string, page, limit int, filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(filters[k])
	}
	return fmt.Sprintf("%s:%s:%d:%d:%s", entity, kind, page, limit, sb.String())
}

// IDKey builds the cache key for a single-entity lookup by id.
func IDKey(entity, id string) string {
	return fmt.Sprintf("%s:id:%s", entity, id)
}

// SlugKey builds the cache key for a single-entity lookup by slug.
func SlugKey(entity, slug string) string {
	return fmt.Sprintf("%s:slug:%s", entity, slug)
}

// Prefix is the invalidation namespace for an entity: deleting it makes every
// cached query result for that entity unobservable.
func Prefix(entity string) string {
	return entity + ":"
}
