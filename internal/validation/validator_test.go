// Watchly - Personalized Catalog Rows for Media Addons
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchly

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type testItem struct {
	ID   string `json:"_id" validate:"required"`
	Type string `json:"type" validate:"required,oneof=movie series tv"`
	Note string `json:"-" validate:"max=5"`
}

type testLibrary struct {
	Loved []testItem `json:"loved" validate:"dive"`
}

type testRequest struct {
	Library testLibrary `json:"library"`
	Limit   int         `json:"limit" validate:"min=0,max=100"`
	Name    string      `validate:"omitempty,min=2"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        testRequest
		wantFields []string
		wantTags   []string
	}{
		{
			name: "valid",
			req:  testRequest{Library: testLibrary{Loved: []testItem{{ID: "tt1", Type: "movie"}, {ID: "tt2", Type: "tv"}}}},
		},
		{
			name:       "missing id",
			req:        testRequest{Library: testLibrary{Loved: []testItem{{Type: "movie"}}}},
			wantFields: []string{"library.loved[0]._id"},
			wantTags:   []string{"required"},
		},
		{
			name:       "bad type in second item",
			req:        testRequest{Library: testLibrary{Loved: []testItem{{ID: "tt1", Type: "movie"}, {ID: "tt2", Type: "anime"}}}},
			wantFields: []string{"library.loved[1].type"},
			wantTags:   []string{"oneof"},
		},
		{
			name:       "multiple",
			req:        testRequest{Limit: 500, Name: "x"},
			wantFields: []string{"limit", "Name"},
			wantTags:   []string{"max", "min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			errs := err.Errors()
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), err, len(tt.wantFields))
			}
			for i := range errs {
				if errs[i].Field() != tt.wantFields[i] {
					t.Errorf("errors[%d].Field() = %q, want %q", i, errs[i].Field(), tt.wantFields[i])
				}
				if errs[i].Tag() != tt.wantTags[i] {
					t.Errorf("errors[%d].Tag() = %q, want %q", i, errs[i].Tag(), tt.wantTags[i])
				}
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	req := testRequest{Library: testLibrary{Loved: []testItem{{ID: "tt1", Type: "anime"}}}}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "library.loved[0].type must be one of: movie series tv" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "library.loved[0].type" || apiErr.Details["value"] != "anime" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	req := testRequest{Library: testLibrary{Loved: []testItem{{}, {ID: "tt2", Type: "movie"}}}}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "library.loved[0]._id is required") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", err.Error())
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}
}

func TestFieldPath(t *testing.T) {
	tests := map[string]string{
		"CatalogRequest.library.loved[0]._id": "library.loved[0]._id",
		"Config.limit":                        "limit",
		"root":                                "root",
	}
	for in, want := range tests {
		if got := fieldPath(in); got != want {
			t.Errorf("fieldPath(%q) = %q, want %q", in, got, want)
		}
	}
}
