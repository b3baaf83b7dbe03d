// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/metadata"
	"github.com/taibuivan/ludex/internal/platform/apperr"
)

// upstream is a fake metadata service serving collections by id.
type upstream struct {
	server *httptest.Server
	hits   atomic.Int64
	apiKey atomic.Value
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	fake := &upstream{}
	fake.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fake.hits.Add(1)
		fake.apiKey.Store(request.Header.Get("X-Api-Key"))

		// Slow enough for concurrent callers to pile up
		time.Sleep(10 * time.Millisecond)

		switch request.URL.Path {
		case "/collections/1":
			fmt.Fprint(writer, `{"id":1,"name":"The Legend of Zelda","slug":"the-legend-of-zelda","games":[1025,1026]}`)
		case "/collections/500":
			writer.WriteHeader(http.StatusInternalServerError)
		case "/collections/666":
			fmt.Fprint(writer, `{"id":`)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func newMetadataService(t *testing.T, fake *upstream) *metadata.Service {
	t.Helper()

	client := metadata.NewClient(fake.server.URL+"/", "secret", time.Second, discardLogger())
	cache := metadata.NewCache(16, time.Hour, newMemoryStore(), discardLogger())
	return metadata.NewService(client, cache, discardLogger())
}

/*
TestService_GetCollection verifies decoding and the API key header.
*/
func TestService_GetCollection(t *testing.T) {
	fake := newUpstream(t)
	service := newMetadataService(t, fake)

	collection, err := service.GetCollection(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "The Legend of Zelda", collection.Name)
	assert.Equal(t, []uint64{1025, 1026}, collection.Games)
	assert.Equal(t, "secret", fake.apiKey.Load())
}

/*
TestService_GetCollection_Cached verifies that repeated lookups stay local.
*/
func TestService_GetCollection_Cached(t *testing.T) {
	fake := newUpstream(t)
	service := newMetadataService(t, fake)

	for range 3 {
		_, err := service.GetCollection(context.Background(), 1)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), fake.hits.Load())
}

/*
TestService_GetCollection_Concurrent verifies that concurrent misses for the
same key reach upstream once.
*/
func TestService_GetCollection_Concurrent(t *testing.T) {
	fake := newUpstream(t)
	service := newMetadataService(t, fake)

	var group sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		group.Add(1)
		go func() {
			defer group.Done()
			_, err := service.GetCollection(context.Background(), 1)
			errs <- err
		}()
	}
	group.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(1), fake.hits.Load())
}

// collectionSummary is a narrower projection of a collection payload.
type collectionSummary struct {
	Name string `json:"name"`
}

/*
TestGetItem_MixedTypes verifies that callers decoding the same key into
different types share one upstream request and each get their own type.
*/
func TestGetItem_MixedTypes(t *testing.T) {
	fake := newUpstream(t)
	service := newMetadataService(t, fake)

	var group sync.WaitGroup
	summaries := make(chan *collectionSummary, 10)
	collections := make(chan *metadata.Collection, 10)
	for range 10 {
		group.Add(2)
		go func() {
			defer group.Done()
			item, err := metadata.GetItem[collectionSummary](context.Background(), service, metadata.EndpointCollections, 1)
			assert.NoError(t, err)
			summaries <- item
		}()
		go func() {
			defer group.Done()
			item, err := metadata.GetItem[metadata.Collection](context.Background(), service, metadata.EndpointCollections, 1)
			assert.NoError(t, err)
			collections <- item
		}()
	}
	group.Wait()
	close(summaries)
	close(collections)

	for item := range summaries {
		require.NotNil(t, item)
		assert.Equal(t, "The Legend of Zelda", item.Name)
	}
	for item := range collections {
		require.NotNil(t, item)
		assert.Equal(t, []uint64{1025, 1026}, item.Games)
	}
	assert.Equal(t, int64(1), fake.hits.Load())
}

/*
TestService_GetCollection_Errors verifies the upstream error mapping.
*/
func TestService_GetCollection_Errors(t *testing.T) {
	fake := newUpstream(t)
	service := newMetadataService(t, fake)

	tests := []struct {
		name string
		id   uint64
		code string
	}{
		{"missing item", 404, apperr.CodeNotFound},
		{"server failure", 500, apperr.CodeUpstream},
		{"broken payload", 666, apperr.CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.GetCollection(context.Background(), tt.id)
			assert.True(t, apperr.IsCode(err, tt.code), err)
		})
	}

	// Failures are not cached
	before := fake.hits.Load()
	_, _ = service.GetCollection(context.Background(), 500)
	assert.Equal(t, before+1, fake.hits.Load())
}

/*
TestClient_Unreachable verifies that transport failures are upstream errors.
*/
func TestClient_Unreachable(t *testing.T) {
	fake := newUpstream(t)
	url := fake.server.URL
	fake.server.Close()

	client := metadata.NewClient(url, "", time.Second, discardLogger())
	_, err := client.Fetch(context.Background(), metadata.EndpointCollections, 1)

	assert.True(t, apperr.IsCode(err, apperr.CodeUpstream))
}

/*
TestHandler_GetCollection verifies the HTTP surface of the proxy.
*/
func TestHandler_GetCollection(t *testing.T) {
	fake := newUpstream(t)
	router := metadata.NewHandler(newMetadataService(t, fake)).Routes()

	tests := []struct {
		target string
		status int
	}{
		{"/collections/1", http.StatusOK},
		{"/collections/404", http.StatusNotFound},
		{"/collections/500", http.StatusBadGateway},
		{"/collections/-1", http.StatusBadRequest},
		{"/collections/zelda", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusOK {
				assert.True(t, strings.Contains(recorder.Body.String(), "the-legend-of-zelda"))
			}
		})
	}
}
