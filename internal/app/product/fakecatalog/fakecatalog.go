// Package fakecatalog provides an in-memory, call-recording catalog for tests.
package fakecatalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	contracts "github.com/murkotick/product-sync-service/internal/app/product/contracts"
	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

// ErrTransport is returned by calls configured to fail in transport.
var ErrTransport = errors.New("fakecatalog: connection reset")

// Call is one recorded invocation.
type Call struct {
	Method string
	Target string
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Method, c.Target)
}

// Failure configures how a call fails. A non-empty UserError wins over Transport.
type Failure struct {
	UserError string
	Transport bool
}

// Catalog implements contracts.CatalogClient, CatalogReader and CatalogCreator.
type Catalog struct {
	mu    sync.Mutex
	calls []Call

	// Images is the manifest returned by GetProductImages, keyed by product id.
	Images map[string][]domain.ImageRef
	// Products is returned by ListProducts.
	Products []*dto.ProductSummaryDTO

	// Failures keyed by "Method" or "Method:target". Creations are targeted by src.
	Failures map[string]Failure

	// BeforeCall, when set, runs at the start of every call.
	BeforeCall func(method, target string)

	nextID int
}

func New() *Catalog {
	return &Catalog{
		Images:   map[string][]domain.ImageRef{},
		Failures: map[string]Failure{},
	}
}

// Fail configures the call identified by key to fail.
func (c *Catalog) Fail(key string, f Failure) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Failures[key] = f
	return c
}

// Calls returns the recorded calls in invocation order.
func (c *Catalog) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallsTo returns the recorded targets of method.
func (c *Catalog) CallsTo(method string) []string {
	var out []string
	for _, call := range c.Calls() {
		if call.Method == method {
			out = append(out, call.Target)
		}
	}
	return out
}

func (c *Catalog) begin(method, target string) (contracts.UserErrors, error) {
	if c.BeforeCall != nil {
		c.BeforeCall(method, target)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Method: method, Target: target})

	f, ok := c.Failures[method+":"+target]
	if !ok {
		f, ok = c.Failures[method]
	}
	if !ok {
		return nil, nil
	}
	if f.UserError != "" {
		return contracts.UserErrors{{Field: []string{"base"}, Message: f.UserError}}, nil
	}
	if f.Transport {
		return nil, ErrTransport
	}
	return nil, nil
}

func (c *Catalog) newID(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return fmt.Sprintf("gid://shopify/%s/%d", prefix, c.nextID)
}

func (c *Catalog) UpdateProduct(_ context.Context, id string, _ contracts.ProductFields) (*contracts.UpdateProductResult, error) {
	ue, err := c.begin("UpdateProduct", id)
	if err != nil {
		return nil, err
	}
	return &contracts.UpdateProductResult{ProductID: id, UserErrors: ue}, nil
}

func (c *Catalog) DeleteImage(_ context.Context, imageID string) (*contracts.DeleteImageResult, error) {
	ue, err := c.begin("DeleteImage", imageID)
	if err != nil {
		return nil, err
	}
	if len(ue) > 0 {
		return &contracts.DeleteImageResult{UserErrors: ue}, nil
	}
	return &contracts.DeleteImageResult{DeletedImageID: imageID}, nil
}

func (c *Catalog) CreateImage(_ context.Context, _ string, blob domain.ImageBlob) (*contracts.CreateImageResult, error) {
	ue, err := c.begin("CreateImage", blob.Src)
	if err != nil {
		return nil, err
	}
	if len(ue) > 0 {
		return &contracts.CreateImageResult{UserErrors: ue}, nil
	}
	return &contracts.CreateImageResult{Image: &domain.ImageRef{ID: c.newID("ProductImage"), URL: blob.Src}}, nil
}

func (c *Catalog) DeleteProduct(_ context.Context, id string) (*contracts.DeleteProductResult, error) {
	ue, err := c.begin("DeleteProduct", id)
	if err != nil {
		return nil, err
	}
	if len(ue) > 0 {
		return &contracts.DeleteProductResult{UserErrors: ue}, nil
	}
	return &contracts.DeleteProductResult{DeletedProductID: id}, nil
}

func (c *Catalog) CreateProduct(_ context.Context, fields contracts.ProductFields, _ *domain.ImageBlob) (*contracts.CreateProductResult, error) {
	ue, err := c.begin("CreateProduct", fields.Title)
	if err != nil {
		return nil, err
	}
	if len(ue) > 0 {
		return &contracts.CreateProductResult{UserErrors: ue}, nil
	}
	return &contracts.CreateProductResult{ProductID: c.newID("Product")}, nil
}

func (c *Catalog) GetProductImages(_ context.Context, productID string) ([]domain.ImageRef, error) {
	if _, err := c.begin("GetProductImages", productID); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ImageRef(nil), c.Images[productID]...), nil
}

func (c *Catalog) ListProducts(_ context.Context, first int) ([]*dto.ProductSummaryDTO, error) {
	if _, err := c.begin("ListProducts", fmt.Sprint(first)); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if first < len(c.Products) {
		return c.Products[:first], nil
	}
	return c.Products, nil
}

// Mutations returns the recorded calls that change remote state.
func (c *Catalog) Mutations() []Call {
	var out []Call
	for _, call := range c.Calls() {
		switch call.Method {
		case "GetProductImages", "ListProducts":
			continue
		}
		out = append(out, call)
	}
	return out
}
