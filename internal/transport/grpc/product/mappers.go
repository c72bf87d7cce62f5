package product

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

func structToForm(req *structpb.Struct) (dto.ActionForm, error) {
	if req == nil {
		return dto.ActionForm{}, fmt.Errorf("request is required")
	}
	return dto.FormFromValues(req.AsMap())
}

// toStruct encodes a JSON-tagged value as a Struct.
func toStruct(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}
