// Package lookup is the best-effort barcode enrichment collaborator.
// It asks Open Food Facts for product names; any failure (timeout,
// non-200, malformed payload, unknown product) degrades to a fallback
// label so the caller never has to handle an error.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"smartpantry/internal/domain"
)

const DefaultBaseURL = "https://world.openfoodfacts.org"

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		NameEN string `json:"product_name_en"`
		NameAR string `json:"product_name_ar"`
		Name   string `json:"product_name"`
	} `json:"product"`
}

// Lookup resolves a barcode to a pair of product names. It never returns
// an error: when the upstream can't help, both names fall back to
// "Item <code>".
func (c *Client) Lookup(ctx context.Context, code string) domain.ProductNames {
	names := domain.ProductNames{Code: code}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/v0/product/%s.json", c.BaseURL, code), nil)
	if err == nil {
		if resp, err := c.HTTP.Do(req); err == nil {
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				var body offResponse
				if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Status == 1 {
					primary := body.Product.NameEN
					if primary == "" {
						primary = body.Product.Name
					}
					secondary := body.Product.NameAR
					if secondary == "" {
						secondary = primary
					}
					names.NamePrimary = primary
					names.NameSecond = secondary
				}
			}
		}
	}

	if names.NamePrimary == "" {
		names.NamePrimary = "Item " + code
	}
	if names.NameSecond == "" {
		names.NameSecond = names.NamePrimary
	}
	return names
}
