// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

package validation

import (
	"strings"
	"testing"
)

type recommendationQuery struct {
	UserID  int    `validate:"gt=0"`
	MovieID int    `validate:"gte=0"`
	Limit   int    `validate:"gte=0,lte=100"`
	Sort    string `validate:"omitempty,oneof=score title"`
}

func TestValidateStructPasses(t *testing.T) {
	q := recommendationQuery{UserID: 1, MovieID: 10, Limit: 20}
	if verr := ValidateStruct(&q); verr != nil {
		t.Errorf("ValidateStruct() = %v, want nil", verr)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	q := recommendationQuery{UserID: 0, MovieID: 1, Limit: 10}
	verr := ValidateStruct(&q)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	errs := verr.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() length = %d, want 1", len(errs))
	}
	if errs[0].Field() != "UserID" || errs[0].Tag() != "gt" {
		t.Errorf("error = (field=%s, tag=%s), want (UserID, gt)", errs[0].Field(), errs[0].Tag())
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "UserID") {
		t.Errorf("Message = %q, want field name mentioned", apiErr.Message)
	}
	if apiErr.Details["field"] != "UserID" {
		t.Errorf("Details[field] = %v, want UserID", apiErr.Details["field"])
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	q := recommendationQuery{UserID: -1, MovieID: -1, Limit: 500, Sort: "year"}
	verr := ValidateStruct(&q)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	if len(verr.Errors()) != 4 {
		t.Fatalf("Errors() length = %d, want 4", len(verr.Errors()))
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T, want []map[string]interface{}", apiErr.Details["fields"])
	}
	if len(fields) != 4 {
		t.Errorf("Details[fields] length = %d, want 4", len(fields))
	}
}

func TestTranslatedMessages(t *testing.T) {
	q := recommendationQuery{UserID: 1, MovieID: 0, Limit: 500}
	verr := ValidateStruct(&q)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	if got := verr.Error(); !strings.Contains(got, "less than or equal to 100") {
		t.Errorf("Error() = %q, want lte translation", got)
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}
