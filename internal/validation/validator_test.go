// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package validation

import (
	"strings"
	"testing"
)

func TestGetValidatorSingleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// recommendationQuery mirrors the shape the API layer validates.
type recommendationQuery struct {
	UserID int     `validate:"required,min=1"`
	N      int     `validate:"min=1,max=100"`
	Weight float64 `validate:"min=0,max=1"`
	Source string  `validate:"omitempty,oneof=collaborative content hybrid"`
}

func TestValidateStructValid(t *testing.T) {
	tests := []struct {
		name  string
		input recommendationQuery
	}{
		{
			name:  "typical request",
			input: recommendationQuery{UserID: 42, N: 10, Weight: 0.5, Source: "hybrid"},
		},
		{
			name:  "boundary minimums",
			input: recommendationQuery{UserID: 1, N: 1, Weight: 0},
		},
		{
			name:  "boundary maximums",
			input: recommendationQuery{UserID: 1, N: 100, Weight: 1, Source: "content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStructInvalid(t *testing.T) {
	tests := []struct {
		name      string
		input     recommendationQuery
		wantField string
		wantTag   string
	}{
		{
			name:      "missing user id",
			input:     recommendationQuery{N: 10, Weight: 0.5},
			wantField: "UserID",
			wantTag:   "required",
		},
		{
			name:      "n too low",
			input:     recommendationQuery{UserID: 1, N: 0, Weight: 0.5},
			wantField: "N",
			wantTag:   "min",
		},
		{
			name:      "n too high",
			input:     recommendationQuery{UserID: 1, N: 500, Weight: 0.5},
			wantField: "N",
			wantTag:   "max",
		},
		{
			name:      "weight above one",
			input:     recommendationQuery{UserID: 1, N: 10, Weight: 1.5},
			wantField: "Weight",
			wantTag:   "max",
		},
		{
			name:      "negative weight",
			input:     recommendationQuery{UserID: 1, N: 10, Weight: -0.1},
			wantField: "Weight",
			wantTag:   "min",
		},
		{
			name:      "unknown source",
			input:     recommendationQuery{UserID: 1, N: 10, Weight: 0.5, Source: "popular"},
			wantField: "Source",
			wantTag:   "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) == 0 {
				t.Fatal("RequestValidationError should contain at least one error")
			}

			found := false
			for _, e := range errs {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, errs)
			}
		})
	}
}

func TestToAPIErrorSingleError(t *testing.T) {
	input := recommendationQuery{N: 10, Weight: 0.5}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("expected non-empty message")
	}
	if apiErr.Details == nil {
		t.Fatal("expected details to be set")
	}
	if got := apiErr.Details["field"]; got != "UserID" {
		t.Errorf("details field = %v, want UserID", got)
	}
}

func TestToAPIErrorMultipleErrors(t *testing.T) {
	input := recommendationQuery{N: 0, Weight: 2}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details == nil {
		t.Fatal("expected details to contain field information")
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("expected details to contain 'fields' key")
	}
}

func TestNestedStructValidation(t *testing.T) {
	type inner struct {
		Value string `validate:"required"`
	}
	type outer struct {
		Inner inner `validate:"required"`
	}

	valid := outer{Inner: inner{Value: "test"}}
	if err := ValidateStruct(&valid); err != nil {
		t.Errorf("ValidateStruct() returned unexpected error for valid nested struct: %v", err)
	}

	invalid := outer{}
	if err := ValidateStruct(&invalid); err == nil {
		t.Error("ValidateStruct() should have returned error for invalid nested struct")
	}
}

func TestErrorMessages(t *testing.T) {
	input := recommendationQuery{N: 0}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	if msg == "" {
		t.Error("error message should not be empty")
	}
	if !strings.Contains(msg, "UserID") && !strings.Contains(msg, "N") {
		t.Errorf("error message should reference failed field: %s", msg)
	}
}
