package http

import (
	"strings"
	"testing"
)

type validationProbe struct {
	SubmissionID string `validate:"required,hex32"`
	Role         string `validate:"required,role"`
	DocType      string `validate:"required,doctype"`
	DocDate      string `validate:"required,datetime=2006-01-02"`
}

func validProbe() validationProbe {
	return validationProbe{
		SubmissionID: strings.Repeat("a", 32),
		Role:         "VENDOR",
		DocType:      "SIMJA",
		DocDate:      "2026-03-10",
	}
}

func TestValidator_AcceptsValidProbe(t *testing.T) {
	cv := NewValidator()
	if err := cv.Validate(validProbe()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestValidator_CustomTags(t *testing.T) {
	cv := NewValidator()

	cases := []struct {
		name  string
		mut   func(*validationProbe)
		field string
		msg   string
	}{
		{"uppercase hex", func(p *validationProbe) { p.SubmissionID = strings.Repeat("A", 32) }, "SubmissionID", "32-char lowercase hex"},
		{"short hex", func(p *validationProbe) { p.SubmissionID = strings.Repeat("a", 31) }, "SubmissionID", "32-char lowercase hex"},
		{"unknown role", func(p *validationProbe) { p.Role = "OVERLORD" }, "Role", "valid role"},
		{"unknown doc type", func(p *validationProbe) { p.DocType = "RESUME" }, "DocType", "valid document type"},
		{"wrong date layout", func(p *validationProbe) { p.DocDate = "10/03/2026" }, "DocDate", "YYYY-MM-DD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProbe()
			tc.mut(&p)
			err := cv.Validate(p)
			if err == nil {
				t.Fatal("expected validation error")
			}
			details := ToFieldErrors(err)
			if !containsFieldMsg(details, tc.field, tc.msg) {
				t.Fatalf("missing %s/%s in %+v", tc.field, tc.msg, details)
			}
		})
	}
}

func TestToFieldErrors_NonValidationError(t *testing.T) {
	details := ToFieldErrors(errPlain{})
	if len(details) != 1 || details[0].Field != "_" {
		t.Fatalf("fallback mapping: %+v", details)
	}
}

type errPlain struct{}

func (errPlain) Error() string { return "boom" }
