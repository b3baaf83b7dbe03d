// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metadata proxies item lookups to the remote game metadata service.

Core Responsibility:

  - Upstream: [Client] fetches items as JSON from {base}/{endpoint}/{id}.
  - Caching: [Cache] keeps payloads in an in-process LRU in front of Redis.
  - Deduplication: [GetItem] fetches each missing key upstream once, even
    under concurrent requests for the same endpoint.
*/
package metadata

// Endpoint paths of the metadata service.
const (
	EndpointCollections = "collections"
)

// Collection is a franchise grouping of games on the metadata service.
type Collection struct {
	ID    uint64   `json:"id"`
	Name  string   `json:"name"`
	Slug  string   `json:"slug"`
	URL   string   `json:"url"`
	Games []uint64 `json:"games"`
}
