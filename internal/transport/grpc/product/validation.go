package product

import (
	"fmt"
	"math"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

func requireFields(req *structpb.Struct, keys ...string) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	for _, k := range keys {
		if strings.TrimSpace(stringField(req, k)) == "" {
			return fmt.Errorf("%s is required", k)
		}
	}
	return nil
}

func stringField(req *structpb.Struct, key string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[key].GetStringValue()
}

// intField reads an optional whole number. Absent or null fields are zero.
func intField(req *structpb.Struct, key string) (int, error) {
	if req == nil {
		return 0, nil
	}
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return 0, nil
	case *structpb.Value_NumberValue:
		if k.NumberValue != math.Trunc(k.NumberValue) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(k.NumberValue), nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}
