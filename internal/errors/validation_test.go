package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) fields(err error) map[string][]string {
	s.Require().Error(err)
	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	return fields
}

func (s *ValidationTestSuite) TestValidationError_StableOrder() {
	ve := errors.NewValidationError()
	ve.AddFieldError("siz", "must be between 30 and 90")
	ve.AddFieldError("edu", "must be between 30 and 90")
	ve.AddFieldError("siz", "is required")

	s.True(ve.HasErrors())
	s.Equal("validation failed: siz: must be between 30 and 90, is required; edu: must be between 30 and 90", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.Equal(ve.Error(), err.Message)

	s.Nil(errors.NewValidationError().ToError())
	s.Equal("validation failed", errors.NewValidationError().Error())
}

func (s *ValidationTestSuite) TestBuilder() {
	vb := errors.NewValidationBuilder()
	s.Nil(vb.Build())
	s.False(vb.HasErrors())

	vb.Field("name", "is required").
		Fieldf("age", "must be between %d and %d", 15, 90).
		RequiredField("edition").
		InvalidField("category", "not a skill category")

	err := vb.Build()
	s.True(errors.IsInvalidArgument(err))

	fields := s.fields(err)
	s.Equal([]string{"is required"}, fields["edition"])
	s.Equal([]string{"is invalid: not a skill category"}, fields["category"])
}

func (s *ValidationTestSuite) TestBuildWithCode() {
	vb := errors.NewValidationBuilder()
	s.Nil(vb.BuildWithCode(errors.CodeInvalidConfig))

	errors.ValidateRange("str.count", 0, 1, 10, vb)
	err := vb.BuildWithCode(errors.CodeInvalidConfig)
	s.True(errors.IsInvalidConfig(err))
	s.False(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Harvey Walters", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"padded value", "  Harvey  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			s.Equal(tc.shouldErr, vb.HasErrors())
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange_Boundaries() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("siz", 29, 30, 90, vb)
	errors.ValidateRange("edu", 30, 30, 90, vb)
	errors.ValidateRange("app", 90, 30, 90, vb)
	errors.ValidateRange("age", 91, 15, 90, vb)

	fields := s.fields(vb.Build())
	s.Contains(fields["siz"][0], "must be between 30 and 90")
	s.Contains(fields["age"][0], "must be between 15 and 90")
	s.NotContains(fields, "edu")
	s.NotContains(fields, "app")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	editions := []string{"6th", "7th"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("edition", "5th", editions, vb)
	errors.ValidateEnum("default_edition", "7th", editions, vb)

	fields := s.fields(vb.Build())
	s.Equal([]string{"must be one of: 6th, 7th"}, fields["edition"])
	s.NotContains(fields, "default_edition")
}

func (s *ValidationTestSuite) TestValidateMaxRunes() {
	vb := errors.NewValidationBuilder()
	// 3 runes, 9 bytes
	errors.ValidateMaxRunes("note", "正気度", 3, vb)
	s.False(vb.HasErrors())

	errors.ValidateMaxRunes("note", "正気度ロール", 3, vb)
	s.True(vb.HasErrors())
}

func (s *ValidationTestSuite) TestValidateMin() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMin("base", 0, 0, vb)
	s.False(vb.HasErrors())

	errors.ValidateMin("base", -1, 0, vb)
	s.True(vb.HasErrors())
}
