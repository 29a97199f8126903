package errors

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCOption customises the status produced by ToGRPCError
type GRPCOption func(*grpcOptions)

type grpcOptions struct {
	message func(*Error) string
}

// WithMessage overrides the status message, typically with a localised summary.
// The original message is still carried in the status details.
func WithMessage(fn func(*Error) string) GRPCOption {
	return func(o *grpcOptions) {
		o.message = fn
	}
}

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error, opts ...GRPCOption) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	o := &grpcOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var e *Error
	if !As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	message := e.Message
	if o.message != nil {
		message = o.message(e)
	}
	st := status.New(e.Code.GRPCCode(), message)

	// Engine codes collapse onto fewer gRPC codes, so always carry the original
	if details, detailErr := errorDetails(e); detailErr == nil {
		if withDetails, wdErr := st.WithDetails(details); wdErr == nil {
			st = withDetails
		}
	}
	return st.Err()
}

// FromGRPCError rebuilds an *Error from a status produced by ToGRPCError.
// Statuses without details get the closest code for their gRPC code.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		fields := details.GetFields()
		if code := fields[detailCodeKey].GetStringValue(); code != "" {
			out.Code = Code(code)
		}
		if msg := fields[detailMessageKey].GetStringValue(); msg != "" {
			out.Message = msg
		}
		if meta := fields[detailMetaKey].GetStructValue(); meta != nil {
			out.Meta = meta.AsMap()
		}
		break
	}

	return out
}

const (
	detailCodeKey    = "code"
	detailMessageKey = "message"
	detailMetaKey    = "meta"
)

// errorDetails packs the code, message and metadata into a protobuf Struct
func errorDetails(e *Error) (*structpb.Struct, error) {
	fields := map[string]any{
		detailCodeKey:    string(e.Code),
		detailMessageKey: e.Message,
	}
	if len(e.Meta) > 0 {
		meta := make(map[string]any, len(e.Meta))
		for k, v := range e.Meta {
			meta[k] = toStructValue(v)
		}
		fields[detailMetaKey] = meta
	}
	return structpb.NewStruct(fields)
}

// toStructValue reduces arbitrary metadata values to types structpb accepts
func toStructValue(v any) any {
	switch val := v.(type) {
	case nil, bool, string, float64, float32, int, int32, int64, uint, uint32, uint64:
		return val
	case map[string][]string:
		out := make(map[string]any, len(val))
		for k, list := range val {
			items := make([]any, len(list))
			for i, item := range list {
				items[i] = item
			}
			out[k] = items
		}
		return out
	case []string:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = item
		}
		return items
	default:
		return fmt.Sprint(val)
	}
}
