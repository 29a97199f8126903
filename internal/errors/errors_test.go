package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	s.Equal("NOT_FOUND: sheet sheet_1 not found", errors.NotFoundf("sheet %s not found", "sheet_1").Error())

	wrapped := errors.IOFailure(fmt.Errorf("connection refused"), "failed to read sheet")
	s.Equal("IO_FAILURE: failed to read sheet: connection refused", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.NotFound("sheet not found").
		WithMeta("sheet_id", "sheet_1").
		WithMeta("owner_id", "user_1")

	s.Equal("sheet_1", err.Meta["sheet_id"])
	s.Equal("user_1", err.Meta["owner_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	s.Run("plain error becomes internal", func() {
		base := fmt.Errorf("boom")
		wrapped := errors.Wrap(base, "failed to get sheet")

		s.Equal(errors.CodeInternal, wrapped.Code)
		s.Equal("failed to get sheet", wrapped.Message)
		s.Equal(base, wrapped.Unwrap())
	})

	s.Run("code and meta survive", func() {
		base := errors.VersionConflict("version 3 taken").WithMeta("version", 3)
		wrapped := errors.Wrapf(base, "failed to create version of %s", "sheet_1")

		s.True(errors.IsVersionConflict(wrapped))
		s.Equal(3, wrapped.Meta["version"])

		// the copy does not alias the inner map
		wrapped.WithMeta("sheet_id", "sheet_1")
		s.NotContains(base.Meta, "sheet_id")
	})

	s.Run("nil stays nil", func() {
		s.Nil(errors.Wrap(nil, "nothing"))
		s.Nil(errors.WrapWithCode(nil, errors.CodeInvalidImport, "nothing"))
		s.Nil(errors.IOFailure(nil, "nothing"))
	})
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := errors.InvalidArgument("siz must be between 30 and 90").WithMeta("field", "siz")
	wrapped := errors.WrapWithCode(base, errors.CodeInvalidImport, "snapshot rejected")

	s.True(errors.IsInvalidImport(wrapped))
	s.False(errors.IsInvalidArgument(wrapped))
	s.Equal("siz", wrapped.Meta["field"])
	s.Equal(base, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestIsMatchesCode() {
	s.True(errors.NotFound("a").Is(errors.NotFound("b")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
	s.True(errors.Is(errors.Wrap(errors.CyclicParent("loop"), "ctx"), errors.CyclicParent("")))
}

func (s *ErrorsTestSuite) TestKinds() {
	testCases := []struct {
		name  string
		err   *errors.Error
		code  errors.Code
		check func(error) bool
	}{
		{"NotFound", errors.NotFound("x"), errors.CodeNotFound, errors.IsNotFound},
		{"InvalidArgument", errors.InvalidArgumentf("siz %d", 29), errors.CodeInvalidArgument, errors.IsInvalidArgument},
		{"AlreadyExists", errors.AlreadyExistsf("setting %q", "mine"), errors.CodeAlreadyExists, errors.IsAlreadyExists},
		{"Internal", errors.Internalf("bad %s", "state"), errors.CodeInternal, errors.IsInternal},
		{"UnknownAbility", errors.UnknownAbility("luck"), errors.CodeUnknownAbility, errors.IsUnknownAbility},
		{"InvalidConfig", errors.InvalidConfigf("sides %d", 1), errors.CodeInvalidConfig, errors.IsInvalidConfig},
		{"InvalidImport", errors.InvalidImport("bad"), errors.CodeInvalidImport, errors.IsInvalidImport},
		{"VersionConflict", errors.VersionConflictf("v%d", 3), errors.CodeVersionConflict, errors.IsVersionConflict},
		{"CyclicParent", errors.CyclicParent("cycle"), errors.CodeCyclicParent, errors.IsCyclicParent},
		{"ImageQuotaExceeded", errors.ImageQuotaExceededf("%d images", 11), errors.CodeImageQuotaExceeded, errors.IsImageQuotaExceeded},
		{"SyncDisabled", errors.SyncDisabled("off"), errors.CodeSyncDisabled, errors.IsSyncDisabled},
		{"IOFailure", errors.IOFailuref(fmt.Errorf("eof"), "read %s", "sheet"), errors.CodeIOFailure, errors.IsIOFailure},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.code, tc.err.Code)
			s.True(tc.code.Known())
			s.True(tc.check(tc.err))
			s.True(tc.check(errors.Wrap(tc.err, "wrapped")))
		})
	}

	s.Equal("luck", errors.UnknownAbility("luck").Meta["ability"])
}

func (s *ErrorsTestSuite) TestAccessors() {
	err := errors.Wrap(errors.NotFound("user friendly").WithMeta("key", "value"), "wrapped message")
	std := fmt.Errorf("standard error")

	s.Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Equal(errors.CodeInternal, errors.GetCode(std))
	s.Equal(errors.CodeOK, errors.GetCode(nil))

	s.Equal("value", errors.GetMeta(err)["key"])
	s.Nil(errors.GetMeta(std))

	s.Equal("wrapped message", errors.GetMessage(err))
	s.Equal("standard error", errors.GetMessage(std))
	s.Empty(errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestStatusMappings() {
	testCases := []struct {
		code errors.Code
		grpc codes.Code
		http int
	}{
		{errors.CodeOK, codes.OK, http.StatusOK},
		{errors.CodeNotFound, codes.NotFound, http.StatusNotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument, http.StatusBadRequest},
		{errors.CodeAlreadyExists, codes.AlreadyExists, http.StatusConflict},
		{errors.CodeInternal, codes.Internal, http.StatusInternalServerError},
		{errors.CodeUnknownAbility, codes.InvalidArgument, http.StatusBadRequest},
		{errors.CodeInvalidConfig, codes.InvalidArgument, http.StatusBadRequest},
		{errors.CodeInvalidImport, codes.InvalidArgument, http.StatusBadRequest},
		{errors.CodeVersionConflict, codes.Aborted, http.StatusConflict},
		{errors.CodeCyclicParent, codes.FailedPrecondition, http.StatusUnprocessableEntity},
		{errors.CodeImageQuotaExceeded, codes.ResourceExhausted, http.StatusRequestEntityTooLarge},
		{errors.CodeIOFailure, codes.Unavailable, http.StatusBadGateway},
		{errors.CodeSyncDisabled, codes.FailedPrecondition, http.StatusUnprocessableEntity},
		{errors.Code("MADE_UP"), codes.Unknown, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.grpc, tc.code.GRPCCode())
			s.Equal(tc.http, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestToGRPCError() {
	s.Nil(errors.ToGRPCError(nil))

	st, ok := status.FromError(errors.ToGRPCError(errors.NotFound("sheet not found")))
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("sheet not found", st.Message())

	st, ok = status.FromError(errors.ToGRPCError(fmt.Errorf("raw")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())

	already := status.Error(codes.Unavailable, "down")
	s.Equal(already, errors.ToGRPCError(already))
}

func (s *ErrorsTestSuite) TestFromGRPCError_BareStatus() {
	err := errors.FromGRPCError(status.Error(codes.InvalidArgument, "invalid input"))
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
	s.Equal("invalid input", errors.GetMessage(err))

	s.Equal(errors.CodeVersionConflict, errors.GetCode(errors.FromGRPCError(status.Error(codes.Aborted, "x"))))
	s.Equal(errors.CodeInternal, errors.GetCode(errors.FromGRPCError(status.Error(codes.DataLoss, "x"))))

	plain := fmt.Errorf("not a status")
	s.Equal(plain, errors.FromGRPCError(plain))
	s.Nil(errors.FromGRPCError(nil))
}

func (s *ErrorsTestSuite) TestGRPCRoundTripKeepsEngineCode() {
	err := errors.VersionConflict("version 3 already exists").WithMeta("version", 3)

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.Aborted, st.Code())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsVersionConflict(back))
	s.Equal("version 3 already exists", errors.GetMessage(back))
	s.EqualValues(3, errors.GetMeta(back)["version"])
}

func (s *ErrorsTestSuite) TestGRPCRoundTripKeepsValidationFields() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("siz", 29, 30, 90, vb)

	back := errors.FromGRPCError(errors.ToGRPCError(vb.Build()))
	fields, ok := errors.GetMeta(back)["validation_errors"].(map[string]any)
	s.Require().True(ok)
	s.Equal([]any{"must be between 30 and 90"}, fields["siz"])
}

func (s *ErrorsTestSuite) TestGRPCWithMessage() {
	err := errors.CyclicParent("sheet_1 is its own ancestor")

	grpcErr := errors.ToGRPCError(err, errors.WithMessage(func(e *errors.Error) string {
		return "localised: " + e.Code.String()
	}))
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal("localised: CYCLIC_PARENT", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsCyclicParent(back))
	s.Equal("sheet_1 is its own ancestor", errors.GetMessage(back))
}
