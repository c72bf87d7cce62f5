package domain

import (
	"strings"
	"unicode/utf8"
)

// Field names used in validation errors and remote user errors.
const (
	FieldProductID         = "productId"
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldPrice             = "price"
	FieldVendor            = "vendor"
	FieldNewImages         = "newImages"
	FieldRemainingImageIDs = "remainingImageIds"
)

const maxTitleLength = 255

// Caller-facing validation messages.
const (
	MsgProductIDRequired = "Product id is required"
	MsgTitleRequired     = "Title is required"
	MsgTitleTooLong      = "Title must be 255 characters or fewer"
	MsgPriceRequired     = "Price is required"
	MsgPriceInvalid      = "Please enter a valid price"
	MsgPriceNegative     = "Price cannot be negative"
)

// ProductDraft is an operator's proposed product state. A draft only exists
// in validated form: NewProductDraft is the sole constructor.
type ProductDraft struct {
	id          string
	title       string
	description string
	price       Money
	vendor      string
}

// NewProductDraft validates the submitted fields and returns a normalized
// draft: title trimmed, price coerced to a decimal. id may be empty for drafts
// that describe a product not yet created remotely.
//
// It has no side effects and must complete before any remote call.
func NewProductDraft(id, title, description, price, vendor string) (*ProductDraft, error) {
	trimmedTitle, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	amount, err := validatePrice(price)
	if err != nil {
		return nil, err
	}

	return &ProductDraft{
		id:          strings.TrimSpace(id),
		title:       trimmedTitle,
		description: description,
		price:       amount,
		vendor:      strings.TrimSpace(vendor),
	}, nil
}

// NewExistingProductDraft is NewProductDraft for an update, where the product
// id is mandatory.
func NewExistingProductDraft(id, title, description, price, vendor string) (*ProductDraft, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError(FieldProductID, MsgProductIDRequired, ErrMissingProductID)
	}
	return NewProductDraft(id, title, description, price, vendor)
}

func (d *ProductDraft) ID() string {
	return d.id
}

func (d *ProductDraft) Title() string {
	return d.title
}

func (d *ProductDraft) Description() string {
	return d.description
}

func (d *ProductDraft) Price() Money {
	return d.price
}

func (d *ProductDraft) Vendor() string {
	return d.vendor
}

// Validation helpers

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", NewValidationError(FieldTitle, MsgTitleRequired, ErrEmptyTitle)
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return "", NewValidationError(FieldTitle, MsgTitleTooLong, ErrTitleTooLong)
	}
	return trimmed, nil
}

func validatePrice(price string) (Money, error) {
	if strings.TrimSpace(price) == "" {
		return Money{}, NewValidationError(FieldPrice, MsgPriceRequired, ErrMissingPrice)
	}
	amount, err := NewMoneyFromDecimal(price)
	if err != nil {
		return Money{}, NewValidationError(FieldPrice, MsgPriceInvalid, ErrInvalidPrice)
	}
	if amount.IsNegative() {
		return Money{}, NewValidationError(FieldPrice, MsgPriceNegative, ErrNegativePrice)
	}
	if !amount.HasCents() {
		return Money{}, NewValidationError(FieldPrice, MsgPriceInvalid, ErrPricePrecision)
	}
	return amount, nil
}
