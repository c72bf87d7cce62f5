package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
)

type captured struct {
	path  string
	token string
	req   graphQLRequest
}

func newTestClient(t *testing.T, status int, body string) (*Client, *captured) {
	t.Helper()

	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.token = r.Header.Get("X-Shopify-Access-Token")
		_ = json.NewDecoder(r.Body).Decode(&got.req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{Shop: srv.URL, AccessToken: "shpat_test"}, nil)
	require.NoError(t, err)
	return c, got
}

func testFields() contracts.ProductFields {
	return contracts.ProductFields{
		Title:  "Mug",
		Vendor: "Acme",
		Price:  domain.NewMoney(125, -1),
	}
}

func TestNew_RequiresShopAndToken(t *testing.T) {
	_, err := New(Config{AccessToken: "x"}, nil)
	require.Error(t, err)

	_, err = New(Config{Shop: "shop.myshopify.com"}, nil)
	require.Error(t, err)
}

func TestNew_BuildsEndpoint(t *testing.T) {
	c, err := New(Config{Shop: "shop.myshopify.com/", AccessToken: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.myshopify.com/admin/api/2024-01/graphql.json", c.endpoint)
}

func TestUpdateProduct_SendsInputAndToken(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK,
		`{"data":{"productUpdate":{"product":{"id":"gid://shopify/Product/1"},"userErrors":[]}}}`)

	res, err := c.UpdateProduct(context.Background(), "gid://shopify/Product/1", testFields())
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Product/1", res.ProductID)
	assert.Nil(t, contracts.FirstRejection(res))

	assert.Equal(t, "/admin/api/2024-01/graphql.json", got.path)
	assert.Equal(t, "shpat_test", got.token)

	input, ok := got.req.Variables["input"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "gid://shopify/Product/1", input["id"])
	assert.Equal(t, "Mug", input["title"])
	variants, ok := input["variants"].([]interface{})
	require.True(t, ok)
	require.Len(t, variants, 1)
	assert.Equal(t, "12.50", variants[0].(map[string]interface{})["price"])
}

func TestUpdateProduct_UserErrorsAreNotTransportErrors(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK,
		`{"data":{"productUpdate":{"product":null,"userErrors":[{"field":["title"],"message":"Title taken"},{"field":null,"message":"second"}]}}}`)

	res, err := c.UpdateProduct(context.Background(), "gid://shopify/Product/1", testFields())
	require.NoError(t, err)

	ue := contracts.FirstRejection(res)
	require.NotNil(t, ue)
	assert.Equal(t, "Title taken", ue.Message)
	assert.Equal(t, []string{"title"}, ue.Field)
}

func TestDo_TransportFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"non 2xx", http.StatusBadGateway, `upstream down`},
		{"top level errors", http.StatusOK, `{"errors":[{"message":"Throttled"}]}`},
		{"null data", http.StatusOK, `{"data":null}`},
		{"garbage", http.StatusOK, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, tc.status, tc.body)

			_, err := c.DeleteImage(context.Background(), "gid://shopify/ProductImage/1")
			require.Error(t, err)

			var te *domain.TransportError
			assert.True(t, errors.As(err, &te))
			assert.Equal(t, "productImageDelete", te.Op)
		})
	}
}

func TestCreateImage_ReturnsAssignedImage(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK,
		`{"data":{"productImageCreate":{"image":{"id":"gid://shopify/ProductImage/9","url":"https://cdn/x.png","altText":null},"userErrors":[]}}}`)

	res, err := c.CreateImage(context.Background(), "gid://shopify/Product/1", domain.ImageBlob{Src: "https://x/y.png", AltText: "front"})
	require.NoError(t, err)
	require.NotNil(t, res.Image)
	assert.Equal(t, "gid://shopify/ProductImage/9", res.Image.ID)

	image := got.req.Variables["image"].(map[string]interface{})
	assert.Equal(t, "https://x/y.png", image["src"])
	assert.Equal(t, "front", image["altText"])
}

func TestDeleteProduct(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK,
		`{"data":{"productDelete":{"deletedProductId":"gid://shopify/Product/1","userErrors":[]}}}`)

	res, err := c.DeleteProduct(context.Background(), "gid://shopify/Product/1")
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Product/1", res.DeletedProductID)
	assert.Equal(t, map[string]interface{}{"id": "gid://shopify/Product/1"}, got.req.Variables["input"])
}

func TestCreateProduct_AttachesMedia(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK,
		`{"data":{"productCreate":{"product":{"id":"gid://shopify/Product/7"},"userErrors":[]}}}`)

	res, err := c.CreateProduct(context.Background(), testFields(), &domain.ImageBlob{Src: "https://x/y.png"})
	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/Product/7", res.ProductID)

	media := got.req.Variables["media"].([]interface{})
	require.Len(t, media, 1)
	assert.Equal(t, "IMAGE", media[0].(map[string]interface{})["mediaContentType"])
}

func TestGetProductImages(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK,
		`{"data":{"product":{"images":{"edges":[{"node":{"id":"A","url":"https://cdn/a.png","altText":"a"}},{"node":{"id":"B","url":"https://cdn/b.png","altText":null}}]}}}}`)

	refs, err := c.GetProductImages(context.Background(), "gid://shopify/Product/1")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "A", refs[0].ID)
	require.NotNil(t, refs[0].AltText)
	assert.Equal(t, "a", *refs[0].AltText)
	assert.Nil(t, refs[1].AltText)
}

func TestGetProductImages_UnknownProduct(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `{"data":{"product":null}}`)

	_, err := c.GetProductImages(context.Background(), "gid://shopify/Product/404")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK, `{"data":{"products":{"edges":[
		{"node":{"id":"P1","title":"Mug","description":"","vendor":"Acme",
			"priceRangeV2":{"minVariantPrice":{"amount":"12.5","currencyCode":"EUR"}},
			"images":{"edges":[{"node":{"url":"https://cdn/m.png","altText":null}}]}}},
		{"node":{"id":"P2","title":"Cup","description":"d","vendor":"",
			"priceRangeV2":{"minVariantPrice":{"amount":"3.0","currencyCode":"EUR"}},
			"images":{"edges":[]}}}
	]}}}`)

	items, err := c.ListProducts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, float64(10), got.req.Variables["first"])

	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, "12.5", items[0].Price)
	require.NotNil(t, items[0].ImageURL)
	assert.Equal(t, "https://cdn/m.png", *items[0].ImageURL)
	assert.Nil(t, items[1].ImageURL)
}
