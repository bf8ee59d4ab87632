// Package zotero provides a read-only client for the Zotero web API,
// covering the single bounded items request this tool needs. The API
// caps a single response at 100 items; anything beyond the cap is
// silently truncated since pagination is out of scope.
package zotero

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/zotools/pubsync/internal/transport"
	"github.com/zotools/pubsync/pkg/errors"
)

const (
	// DefaultBaseURL is the public Zotero API endpoint.
	DefaultBaseURL = "https://api.zotero.org"

	// MaxPageSize is the largest item count the API returns in one response.
	MaxPageSize = 100
)

// Client fetches items from a Zotero group library.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// NewClient creates a Zotero client. An empty baseURL falls back to the
// public API endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		transport: transport.New(timeout),
	}
}

// ItemsURL builds the items endpoint URL for a group, optionally scoped
// to a collection.
func (c *Client) ItemsURL(groupID, collectionKey string, limit int) string {
	var endpoint string
	if collectionKey != "" {
		endpoint = fmt.Sprintf("%s/groups/%s/collections/%s/items",
			c.baseURL, url.PathEscape(groupID), url.PathEscape(collectionKey))
	} else {
		endpoint = fmt.Sprintf("%s/groups/%s/items", c.baseURL, url.PathEscape(groupID))
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("limit", strconv.Itoa(limit))
	return endpoint + "?" + query.Encode()
}

// Items retrieves up to limit top-level items from the group library in
// one request, preserving the response ordering. A non-positive or
// over-cap limit is clamped to MaxPageSize.
func (c *Client) Items(ctx context.Context, groupID, collectionKey string, limit int) ([]Item, error) {
	if groupID == "" {
		return nil, &errors.ValidationError{
			Field:   "group",
			Message: "group ID is required",
		}
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	endpoint := c.ItemsURL(groupID, collectionKey, limit)

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := transport.DecodeResponse(resp, &items); err != nil {
		return nil, err
	}

	return items, nil
}
