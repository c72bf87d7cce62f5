package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
)

// Action names accepted by the dispatcher.
const (
	ActionUpdateProduct = "updateProduct"
	ActionDeleteProduct = "deleteProduct"
	ActionCreateProduct = "createProduct"
)

// MsgMalformedImages is returned when an image list field cannot be decoded.
const MsgMalformedImages = "Image list is malformed"

// ActionForm is the raw action submission. Image lists travel as JSON-encoded
// strings, the way form posts carry them.
type ActionForm struct {
	Action            string `form:"_action" json:"_action"`
	ProductID         string `form:"productId" json:"productId"`
	Title             string `form:"title" json:"title"`
	Description       string `form:"description" json:"description"`
	Price             string `form:"price" json:"price"`
	Vendor            string `form:"vendor" json:"vendor"`
	NewImages         string `form:"newImages" json:"newImages"`
	RemainingImageIDs string `form:"remainingImageIds" json:"remainingImageIds"`
	Image             string `form:"image" json:"image"`
}

// FormFromValues builds an ActionForm from decoded JSON-like values. String
// values are taken as-is; anything else (image lists sent as arrays, numeric
// prices) is re-encoded as JSON text, the way a form post carries it.
func FormFromValues(values map[string]interface{}) (ActionForm, error) {
	flat := make(map[string]string, len(values))
	for k, v := range values {
		switch tv := v.(type) {
		case nil:
		case string:
			flat[k] = tv
		default:
			b, err := json.Marshal(tv)
			if err != nil {
				return ActionForm{}, fmt.Errorf("field %s: %w", k, err)
			}
			flat[k] = string(b)
		}
	}

	return ActionForm{
		Action:            flat["_action"],
		ProductID:         flat["productId"],
		Title:             flat["title"],
		Description:       flat["description"],
		Price:             flat["price"],
		Vendor:            flat["vendor"],
		NewImages:         flat["newImages"],
		RemainingImageIDs: flat["remainingImageIds"],
		Image:             flat["image"],
	}, nil
}

// UpdateProductRequest is the typed form of an updateProduct submission.
// Scalar fields are still unvalidated; NewProductDraft owns those rules.
type UpdateProductRequest struct {
	ProductID         string `validate:"required"`
	Title             string
	Description       string
	Price             string
	Vendor            string `validate:"max=255"`
	NewImages         []domain.ImageBlob `validate:"dive"`
	RemainingImageIDs []string           `validate:"dive,required"`
}

type DeleteProductRequest struct {
	ProductID string `validate:"required"`
}

type CreateProductRequest struct {
	Title       string
	Description string
	Price       string
	Vendor      string            `validate:"max=255"`
	Image       *domain.ImageBlob `validate:"omitnil"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseUpdateProduct is the single decode boundary for updateProduct. It fails
// closed: a malformed image list or a missing product id is a ValidationError,
// never an empty list.
func ParseUpdateProduct(f ActionForm) (*UpdateProductRequest, error) {
	req := &UpdateProductRequest{
		ProductID:   strings.TrimSpace(f.ProductID),
		Title:       f.Title,
		Description: f.Description,
		Price:       f.Price,
		Vendor:      f.Vendor,
	}

	blobs, err := decodeList[domain.ImageBlob](domain.FieldNewImages, f.NewImages)
	if err != nil {
		return nil, err
	}
	req.NewImages = blobs

	ids, err := decodeList[string](domain.FieldRemainingImageIDs, f.RemainingImageIDs)
	if err != nil {
		return nil, err
	}
	req.RemainingImageIDs = ids

	if err := validate.Struct(req); err != nil {
		return nil, translate(err)
	}
	return req, nil
}

// ParseDeleteProduct is the decode boundary for deleteProduct.
func ParseDeleteProduct(f ActionForm) (*DeleteProductRequest, error) {
	req := &DeleteProductRequest{ProductID: strings.TrimSpace(f.ProductID)}
	if err := validate.Struct(req); err != nil {
		return nil, translate(err)
	}
	return req, nil
}

// ParseCreateProduct is the decode boundary for createProduct. The image may
// come from the image field or, failing that, the first entry of newImages.
func ParseCreateProduct(f ActionForm) (*CreateProductRequest, error) {
	req := &CreateProductRequest{
		Title:       f.Title,
		Description: f.Description,
		Price:       f.Price,
		Vendor:      f.Vendor,
	}

	if raw := strings.TrimSpace(f.Image); raw != "" {
		var blob domain.ImageBlob
		if err := json.Unmarshal([]byte(raw), &blob); err != nil {
			return nil, domain.NewValidationError("image", MsgMalformedImages, domain.ErrMalformedImageList)
		}
		req.Image = &blob
	} else {
		blobs, err := decodeList[domain.ImageBlob](domain.FieldNewImages, f.NewImages)
		if err != nil {
			return nil, err
		}
		if len(blobs) > 0 {
			req.Image = &blobs[0]
		}
	}

	if err := validate.Struct(req); err != nil {
		return nil, translate(err)
	}
	return req, nil
}

// decodeList decodes a JSON array field. An absent field is an empty list;
// anything else that is not an array of T is rejected.
func decodeList[T any](field, raw string) ([]T, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return nil, domain.NewValidationError(field, MsgMalformedImages, domain.ErrMalformedImageList)
	}
	return out, nil
}

// translate converts the first validator failure into a domain ValidationError.
func translate(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return domain.NewValidationError("", err.Error(), err)
	}

	fe := ves[0]
	switch fe.StructField() {
	case "ProductID":
		return domain.NewValidationError(domain.FieldProductID, domain.MsgProductIDRequired, domain.ErrMissingProductID)
	case "Vendor":
		return domain.NewValidationError(domain.FieldVendor, "Vendor must be 255 characters or fewer", fe)
	default:
		// list entries (blank ids, blobs without src)
		return domain.NewValidationError(fieldFromNamespace(fe.Namespace()), MsgMalformedImages, domain.ErrMalformedImageList)
	}
}

func fieldFromNamespace(ns string) string {
	switch {
	case strings.Contains(ns, "RemainingImageIDs"):
		return domain.FieldRemainingImageIDs
	case strings.Contains(ns, "NewImages"):
		return domain.FieldNewImages
	default:
		return "image"
	}
}
