package shopify

import (
	"context"
	"fmt"

	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

// maxImages is the most images one product can carry in the Admin API.
const maxImages = 250

const productImagesQuery = `query productImages($id: ID!, $first: Int!) {
  product(id: $id) {
    images(first: $first) {
      edges { node { id url altText } }
    }
  }
}`

const productsQuery = `query products($first: Int!) {
  products(first: $first) {
    edges {
      node {
        id
        title
        description
        vendor
        priceRangeV2 { minVariantPrice { amount currencyCode } }
        images(first: 1) { edges { node { url altText } } }
      }
    }
  }
}`

type imageNode struct {
	ID      string  `json:"id"`
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
}

// GetProductImages returns the product's current image manifest.
func (c *Client) GetProductImages(ctx context.Context, productID string) ([]domain.ImageRef, error) {
	var out struct {
		Product *struct {
			Images struct {
				Edges []struct {
					Node imageNode `json:"node"`
				} `json:"edges"`
			} `json:"images"`
		} `json:"product"`
	}
	vars := map[string]interface{}{"id": productID, "first": maxImages}
	if err := c.do(ctx, "productImages", productImagesQuery, vars, &out); err != nil {
		return nil, err
	}
	if out.Product == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	refs := make([]domain.ImageRef, 0, len(out.Product.Images.Edges))
	for _, e := range out.Product.Images.Edges {
		refs = append(refs, domain.ImageRef{ID: e.Node.ID, URL: e.Node.URL, AltText: e.Node.AltText})
	}
	return refs, nil
}

// ListProducts returns the first products of the shop with their minimum
// variant price and first image.
func (c *Client) ListProducts(ctx context.Context, first int) ([]*dto.ProductSummaryDTO, error) {
	var out struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID           string `json:"id"`
					Title        string `json:"title"`
					Description  string `json:"description"`
					Vendor       string `json:"vendor"`
					PriceRangeV2 struct {
						MinVariantPrice struct {
							Amount       string `json:"amount"`
							CurrencyCode string `json:"currencyCode"`
						} `json:"minVariantPrice"`
					} `json:"priceRangeV2"`
					Images struct {
						Edges []struct {
							Node imageNode `json:"node"`
						} `json:"edges"`
					} `json:"images"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.do(ctx, "products", productsQuery, map[string]interface{}{"first": first}, &out); err != nil {
		return nil, err
	}

	items := make([]*dto.ProductSummaryDTO, 0, len(out.Products.Edges))
	for _, e := range out.Products.Edges {
		n := e.Node
		item := &dto.ProductSummaryDTO{
			ProductID:    n.ID,
			Title:        n.Title,
			Description:  n.Description,
			Vendor:       n.Vendor,
			Price:        n.PriceRangeV2.MinVariantPrice.Amount,
			CurrencyCode: n.PriceRangeV2.MinVariantPrice.CurrencyCode,
		}
		if len(n.Images.Edges) > 0 {
			img := n.Images.Edges[0].Node
			url := img.URL
			item.ImageURL = &url
			item.ImageAltText = img.AltText
		}
		items = append(items, item)
	}
	return items, nil
}
