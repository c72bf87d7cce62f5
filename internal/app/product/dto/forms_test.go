package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
)

func TestParseUpdateProduct_DecodesLists(t *testing.T) {
	req, err := ParseUpdateProduct(ActionForm{
		ProductID:         " gid://shopify/Product/1 ",
		Title:             "Board",
		Price:             "10",
		NewImages:         `["data:image/png;base64,X", {"src":"https://cdn.example.com/y.png","altText":"side"}]`,
		RemainingImageIDs: `["gid://shopify/ProductImage/2"]`,
	})
	require.NoError(t, err)

	assert.Equal(t, "gid://shopify/Product/1", req.ProductID)
	assert.Equal(t, []string{"gid://shopify/ProductImage/2"}, req.RemainingImageIDs)
	require.Len(t, req.NewImages, 2)
	assert.Equal(t, "data:image/png;base64,X", req.NewImages[0].Src)
	assert.Equal(t, "side", req.NewImages[1].AltText)
}

func TestParseUpdateProduct_AbsentListsAreEmpty(t *testing.T) {
	req, err := ParseUpdateProduct(ActionForm{ProductID: "p1"})
	require.NoError(t, err)
	assert.Empty(t, req.NewImages)
	assert.Empty(t, req.RemainingImageIDs)
}

func TestParseUpdateProduct_FailsClosed(t *testing.T) {
	cases := []struct {
		name  string
		form  ActionForm
		field string
		err   error
	}{
		{"missing id", ActionForm{}, domain.FieldProductID, domain.ErrMissingProductID},
		{"images not json", ActionForm{ProductID: "p1", NewImages: "[oops"}, domain.FieldNewImages, domain.ErrMalformedImageList},
		{"images null", ActionForm{ProductID: "p1", NewImages: "null"}, domain.FieldNewImages, domain.ErrMalformedImageList},
		{"ids not array", ActionForm{ProductID: "p1", RemainingImageIDs: `"a"`}, domain.FieldRemainingImageIDs, domain.ErrMalformedImageList},
		{"blank id", ActionForm{ProductID: "p1", RemainingImageIDs: `["a",""]`}, domain.FieldRemainingImageIDs, domain.ErrMalformedImageList},
		{"blob without src", ActionForm{ProductID: "p1", NewImages: `[{"altText":"x"}]`}, domain.FieldNewImages, domain.ErrMalformedImageList},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := ParseUpdateProduct(tc.form)
			require.Error(t, err)
			assert.Nil(t, req)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseDeleteProduct(t *testing.T) {
	req, err := ParseDeleteProduct(ActionForm{ProductID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "p1", req.ProductID)

	_, err = ParseDeleteProduct(ActionForm{ProductID: "  "})
	assert.ErrorIs(t, err, domain.ErrMissingProductID)
}

func TestParseCreateProduct_ImageSources(t *testing.T) {
	req, err := ParseCreateProduct(ActionForm{Title: "Board", Price: "1", Image: `"data:image/gif;base64,R0"`})
	require.NoError(t, err)
	require.NotNil(t, req.Image)
	assert.Equal(t, "data:image/gif;base64,R0", req.Image.Src)

	req, err = ParseCreateProduct(ActionForm{Title: "Board", Price: "1", NewImages: `["a","b"]`})
	require.NoError(t, err)
	require.NotNil(t, req.Image)
	assert.Equal(t, "a", req.Image.Src)

	req, err = ParseCreateProduct(ActionForm{Title: "Board", Price: "1"})
	require.NoError(t, err)
	assert.Nil(t, req.Image)

	_, err = ParseCreateProduct(ActionForm{Title: "Board", Price: "1", Image: `{`})
	assert.ErrorIs(t, err, domain.ErrMalformedImageList)
}

func TestFormFromValues(t *testing.T) {
	form, err := FormFromValues(map[string]interface{}{
		"_action":           "updateProduct",
		"productId":         "p1",
		"price":             12.5,
		"newImages":         []interface{}{"X", map[string]interface{}{"src": "Y"}},
		"remainingImageIds": []interface{}{"B"},
		"vendor":            nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "updateProduct", form.Action)
	assert.Equal(t, "12.5", form.Price)
	assert.Equal(t, `["X",{"src":"Y"}]`, form.NewImages)
	assert.Equal(t, `["B"]`, form.RemainingImageIDs)
	assert.Empty(t, form.Vendor)

	req, err := ParseUpdateProduct(form)
	require.NoError(t, err)
	assert.Equal(t, "Y", req.NewImages[1].Src)
}

func TestParseUpdateProduct_VendorLimit(t *testing.T) {
	_, err := ParseUpdateProduct(ActionForm{ProductID: "p1", Vendor: strings.Repeat("v", 255)})
	require.NoError(t, err)

	_, err = ParseUpdateProduct(ActionForm{ProductID: "p1", Vendor: strings.Repeat("v", 256)})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, domain.FieldVendor, vErr.Field)
	assert.Equal(t, "Vendor must be 255 characters or fewer", vErr.Message)
}
