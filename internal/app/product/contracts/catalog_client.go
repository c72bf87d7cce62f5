package contracts

import (
	"context"

	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

// CatalogClient is the mutation surface of the remote catalog service.
//
// A returned error is always a transport failure. Business-rule rejections
// are reported in the result's UserErrors with a nil error.
type CatalogClient interface {
	UpdateProduct(ctx context.Context, id string, fields ProductFields) (*UpdateProductResult, error)
	DeleteImage(ctx context.Context, imageID string) (*DeleteImageResult, error)
	CreateImage(ctx context.Context, productID string, blob domain.ImageBlob) (*CreateImageResult, error)
	DeleteProduct(ctx context.Context, id string) (*DeleteProductResult, error)
}

// CatalogReader reads remote catalog state. Nothing read through it is cached.
type CatalogReader interface {
	GetProductImages(ctx context.Context, productID string) ([]domain.ImageRef, error)
	ListProducts(ctx context.Context, first int) ([]*dto.ProductSummaryDTO, error)
}

// CatalogCreator creates products remotely.
type CatalogCreator interface {
	CreateProduct(ctx context.Context, fields ProductFields, image *domain.ImageBlob) (*CreateProductResult, error)
}

// ProductFields are the scalar product fields sent on update and create.
type ProductFields struct {
	Title       string
	Description string
	Vendor      string
	Price       domain.Money
}

// FieldsFromDraft copies a validated draft into ProductFields.
func FieldsFromDraft(d *domain.ProductDraft) ProductFields {
	return ProductFields{
		Title:       d.Title(),
		Description: d.Description(),
		Vendor:      d.Vendor(),
		Price:       d.Price(),
	}
}

// UserError is one business-rule rejection reported by the remote catalog.
type UserError struct {
	Field   []string
	Message string
}

// UserErrors is the rejection list carried by every mutation result.
type UserErrors []UserError

// First returns the first rejection as a domain error, or nil when the list is empty.
func (u UserErrors) First() *domain.RemoteUserError {
	if len(u) == 0 {
		return nil
	}
	return &domain.RemoteUserError{Field: u[0].Field, Message: u[0].Message}
}

type UpdateProductResult struct {
	ProductID  string
	UserErrors UserErrors
}

type DeleteImageResult struct {
	DeletedImageID string
	UserErrors     UserErrors
}

type CreateImageResult struct {
	Image      *domain.ImageRef
	UserErrors UserErrors
}

type DeleteProductResult struct {
	DeletedProductID string
	UserErrors       UserErrors
}

type CreateProductResult struct {
	ProductID  string
	UserErrors UserErrors
}

// Rejections return the user errors of a result; nil results have none.

func (r *UpdateProductResult) Rejections() UserErrors {
	if r == nil {
		return nil
	}
	return r.UserErrors
}

func (r *DeleteImageResult) Rejections() UserErrors {
	if r == nil {
		return nil
	}
	return r.UserErrors
}

func (r *CreateImageResult) Rejections() UserErrors {
	if r == nil {
		return nil
	}
	return r.UserErrors
}

func (r *DeleteProductResult) Rejections() UserErrors {
	if r == nil {
		return nil
	}
	return r.UserErrors
}

func (r *CreateProductResult) Rejections() UserErrors {
	if r == nil {
		return nil
	}
	return r.UserErrors
}

// Rejecter is implemented by every mutation result.
type Rejecter interface {
	Rejections() UserErrors
}

// FirstRejection returns the first user error carried by res, or nil.
func FirstRejection(res Rejecter) *domain.RemoteUserError {
	if res == nil {
		return nil
	}
	return res.Rejections().First()
}
