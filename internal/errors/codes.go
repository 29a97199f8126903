package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is the machine-readable kind of an error
type Code string

// Transport codes
const (
	CodeOK               Code = "OK"
	CodeCanceled         Code = "CANCELED"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeNotFound         Code = "NOT_FOUND"
	CodeAlreadyExists    Code = "ALREADY_EXISTS"
	CodeUnimplemented    Code = "UNIMPLEMENTED"
	CodeUnavailable      Code = "UNAVAILABLE"
	CodeInternal         Code = "INTERNAL"
)

// Sheet engine codes
const (
	CodeUnknownAbility     Code = "UNKNOWN_ABILITY"
	CodeInvalidConfig      Code = "INVALID_CONFIG"
	CodeInvalidImport      Code = "INVALID_IMPORT"
	CodeVersionConflict    Code = "VERSION_CONFLICT"
	CodeCyclicParent       Code = "CYCLIC_PARENT"
	CodeImageQuotaExceeded Code = "IMAGE_QUOTA_EXCEEDED"
	CodeIOFailure          Code = "IO_FAILURE"
	CodeSyncDisabled       Code = "SYNC_DISABLED"
)

type codeInfo struct {
	grpc codes.Code
	http int
}

// codeTable is the single source for status mappings. Several engine codes
// share a gRPC code; the original code travels in the status details.
var codeTable = map[Code]codeInfo{
	CodeOK:               {codes.OK, http.StatusOK},
	CodeCanceled:         {codes.Canceled, http.StatusRequestTimeout},
	CodeDeadlineExceeded: {codes.DeadlineExceeded, http.StatusGatewayTimeout},
	CodeInvalidArgument:  {codes.InvalidArgument, http.StatusBadRequest},
	CodeNotFound:         {codes.NotFound, http.StatusNotFound},
	CodeAlreadyExists:    {codes.AlreadyExists, http.StatusConflict},
	CodeUnimplemented:    {codes.Unimplemented, http.StatusNotImplemented},
	CodeUnavailable:      {codes.Unavailable, http.StatusServiceUnavailable},
	CodeInternal:         {codes.Internal, http.StatusInternalServerError},

	CodeUnknownAbility:     {codes.InvalidArgument, http.StatusBadRequest},
	CodeInvalidConfig:      {codes.InvalidArgument, http.StatusBadRequest},
	CodeInvalidImport:      {codes.InvalidArgument, http.StatusBadRequest},
	CodeVersionConflict:    {codes.Aborted, http.StatusConflict},
	CodeCyclicParent:       {codes.FailedPrecondition, http.StatusUnprocessableEntity},
	CodeImageQuotaExceeded: {codes.ResourceExhausted, http.StatusRequestEntityTooLarge},
	CodeIOFailure:          {codes.Unavailable, http.StatusBadGateway},
	CodeSyncDisabled:       {codes.FailedPrecondition, http.StatusUnprocessableEntity},
}

// fromGRPC maps a bare gRPC status, one without our details, back to a code
var fromGRPC = map[codes.Code]Code{
	codes.OK:                CodeOK,
	codes.Canceled:          CodeCanceled,
	codes.DeadlineExceeded:  CodeDeadlineExceeded,
	codes.InvalidArgument:   CodeInvalidArgument,
	codes.NotFound:          CodeNotFound,
	codes.AlreadyExists:     CodeAlreadyExists,
	codes.Unimplemented:     CodeUnimplemented,
	codes.Unavailable:       CodeUnavailable,
	codes.Aborted:           CodeVersionConflict,
	codes.ResourceExhausted: CodeImageQuotaExceeded,
}

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Known reports whether the code is one this package emits
func (c Code) Known() bool {
	_, ok := codeTable[c]
	return ok
}

// GRPCCode returns the gRPC code the error travels as
func (c Code) GRPCCode() codes.Code {
	if info, ok := codeTable[c]; ok {
		return info.grpc
	}
	return codes.Unknown
}

// HTTPStatus returns the HTTP status for gateways that expose the service over REST
func (c Code) HTTPStatus() int {
	if info, ok := codeTable[c]; ok {
		return info.http
	}
	return http.StatusInternalServerError
}

func codeFromGRPC(c codes.Code) Code {
	if code, ok := fromGRPC[c]; ok {
		return code
	}
	return CodeInternal
}
