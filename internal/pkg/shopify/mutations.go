package shopify

import (
	"context"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
)

const productUpdateMutation = `mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    product { id }
    userErrors { field message }
  }
}`

const productImageDeleteMutation = `mutation productImageDelete($imageId: ID!) {
  productImageDelete(id: $imageId) {
    deletedImageId
    userErrors { field message }
  }
}`

const productImageCreateMutation = `mutation productImageCreate($productId: ID!, $image: ImageInput!) {
  productImageCreate(productId: $productId, image: $image) {
    image { id url altText }
    userErrors { field message }
  }
}`

const productDeleteMutation = `mutation productDelete($input: ProductDeleteInput!) {
  productDelete(input: $input) {
    deletedProductId
    userErrors { field message }
  }
}`

const productCreateMutation = `mutation productCreate($input: ProductInput!, $media: [CreateMediaInput!]) {
  productCreate(input: $input, media: $media) {
    product { id }
    userErrors { field message }
  }
}`

func toUserErrors(in []userError) contracts.UserErrors {
	if len(in) == 0 {
		return nil
	}
	out := make(contracts.UserErrors, 0, len(in))
	for _, ue := range in {
		out = append(out, contracts.UserError{Field: ue.Field, Message: ue.Message})
	}
	return out
}

func productInput(fields contracts.ProductFields) map[string]interface{} {
	return map[string]interface{}{
		"title":           fields.Title,
		"descriptionHtml": fields.Description,
		"vendor":          fields.Vendor,
		"variants": []map[string]interface{}{
			{"price": fields.Price.String()},
		},
	}
}

func (c *Client) UpdateProduct(ctx context.Context, id string, fields contracts.ProductFields) (*contracts.UpdateProductResult, error) {
	input := productInput(fields)
	input["id"] = id

	var out struct {
		ProductUpdate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []userError `json:"userErrors"`
		} `json:"productUpdate"`
	}
	if err := c.do(ctx, "productUpdate", productUpdateMutation, map[string]interface{}{"input": input}, &out); err != nil {
		return nil, err
	}

	res := &contracts.UpdateProductResult{UserErrors: toUserErrors(out.ProductUpdate.UserErrors)}
	if out.ProductUpdate.Product != nil {
		res.ProductID = out.ProductUpdate.Product.ID
	}
	return res, nil
}

func (c *Client) DeleteImage(ctx context.Context, imageID string) (*contracts.DeleteImageResult, error) {
	var out struct {
		ProductImageDelete struct {
			DeletedImageID string      `json:"deletedImageId"`
			UserErrors     []userError `json:"userErrors"`
		} `json:"productImageDelete"`
	}
	vars := map[string]interface{}{"imageId": imageID}
	if err := c.do(ctx, "productImageDelete", productImageDeleteMutation, vars, &out); err != nil {
		return nil, err
	}
	return &contracts.DeleteImageResult{
		DeletedImageID: out.ProductImageDelete.DeletedImageID,
		UserErrors:     toUserErrors(out.ProductImageDelete.UserErrors),
	}, nil
}

func (c *Client) CreateImage(ctx context.Context, productID string, blob domain.ImageBlob) (*contracts.CreateImageResult, error) {
	image := map[string]interface{}{"src": blob.Src}
	if blob.AltText != "" {
		image["altText"] = blob.AltText
	}

	var out struct {
		ProductImageCreate struct {
			Image *struct {
				ID      string  `json:"id"`
				URL     string  `json:"url"`
				AltText *string `json:"altText"`
			} `json:"image"`
			UserErrors []userError `json:"userErrors"`
		} `json:"productImageCreate"`
	}
	vars := map[string]interface{}{"productId": productID, "image": image}
	if err := c.do(ctx, "productImageCreate", productImageCreateMutation, vars, &out); err != nil {
		return nil, err
	}

	res := &contracts.CreateImageResult{UserErrors: toUserErrors(out.ProductImageCreate.UserErrors)}
	if img := out.ProductImageCreate.Image; img != nil {
		res.Image = &domain.ImageRef{ID: img.ID, URL: img.URL, AltText: img.AltText}
	}
	return res, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (*contracts.DeleteProductResult, error) {
	var out struct {
		ProductDelete struct {
			DeletedProductID string      `json:"deletedProductId"`
			UserErrors       []userError `json:"userErrors"`
		} `json:"productDelete"`
	}
	vars := map[string]interface{}{"input": map[string]interface{}{"id": id}}
	if err := c.do(ctx, "productDelete", productDeleteMutation, vars, &out); err != nil {
		return nil, err
	}
	return &contracts.DeleteProductResult{
		DeletedProductID: out.ProductDelete.DeletedProductID,
		UserErrors:       toUserErrors(out.ProductDelete.UserErrors),
	}, nil
}

func (c *Client) CreateProduct(ctx context.Context, fields contracts.ProductFields, image *domain.ImageBlob) (*contracts.CreateProductResult, error) {
	vars := map[string]interface{}{"input": productInput(fields)}
	if image != nil {
		vars["media"] = []map[string]interface{}{{
			"originalSource":   image.Src,
			"alt":              image.AltText,
			"mediaContentType": "IMAGE",
		}}
	}

	var out struct {
		ProductCreate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			UserErrors []userError `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := c.do(ctx, "productCreate", productCreateMutation, vars, &out); err != nil {
		return nil, err
	}

	res := &contracts.CreateProductResult{UserErrors: toUserErrors(out.ProductCreate.UserErrors)}
	if out.ProductCreate.Product != nil {
		res.ProductID = out.ProductCreate.Product.ID
	}
	return res, nil
}
