package todo

import (
	"strings"
	"testing"
)

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateTodoRequest
		wantField string
	}{
		{"valid", CreateTodoRequest{Title: "Buy milk"}, ""},
		{"valid at max length", CreateTodoRequest{Title: strings.Repeat("a", 200)}, ""},
		{"missing title", CreateTodoRequest{}, "title"},
		{"title too long", CreateTodoRequest{Title: strings.Repeat("a", 201)}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCreate(&tt.req)
			if tt.wantField == "" {
				if errs != nil {
					t.Errorf("ValidateCreate() = %v, want nil", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatal("ValidateCreate() = nil, want field error")
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("ValidateCreate() field = %q, want %q", errs[0].Field, tt.wantField)
			}
			if errs[0].Message == "" {
				t.Error("ValidateCreate() returned empty message")
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name      string
		req       UpdateTodoRequest
		wantField string
	}{
		{"empty body is valid", UpdateTodoRequest{}, ""},
		{"valid title", UpdateTodoRequest{Title: strptr("Buy milk"), TitleSet: true}, ""},
		{"null description is valid", UpdateTodoRequest{DescriptionSet: true}, ""},
		{"null title", UpdateTodoRequest{TitleSet: true}, "title"},
		{"empty title", UpdateTodoRequest{Title: strptr(""), TitleSet: true}, "title"},
		{"title too long", UpdateTodoRequest{Title: strptr(strings.Repeat("a", 201)), TitleSet: true}, "title"},
		{"null completed", UpdateTodoRequest{CompletedSet: true}, "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateUpdate(&tt.req)
			if tt.wantField == "" {
				if errs != nil {
					t.Errorf("ValidateUpdate() = %v, want nil", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatal("ValidateUpdate() = nil, want field error")
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("ValidateUpdate() field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}
