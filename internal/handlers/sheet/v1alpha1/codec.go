package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

// Decode unmarshals a Struct payload into a request value
func Decode(in *structpb.Struct, dst any) error {
	if in == nil {
		return errors.InvalidArgument("request body is required")
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.InvalidArgumentf("request body is not valid JSON: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.InvalidArgumentf("request body does not match the method: %v", err)
	}
	return nil
}

// Encode marshals a response value into a Struct payload. The value must
// serialise to a JSON object.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "response is not a JSON object")
	}
	return out, nil
}
