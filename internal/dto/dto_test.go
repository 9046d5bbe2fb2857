package dto

import (
	"encoding/json"
	"testing"
)

func TestUpdateTodoRequestDistinguishesNullFromOmitted(t *testing.T) {
	var req UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"completed": true, "description": null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !req.Completed.Set || req.Completed.Value == nil || !*req.Completed.Value {
		t.Fatalf("completed not set: %#v", req.Completed)
	}
	if !req.Description.Set || req.Description.Value != nil {
		t.Fatalf("description should be set to null: %#v", req.Description)
	}
	if req.Title.Set || req.DueDate.Set || req.Priority.Set {
		t.Fatalf("omitted keys reported as set: %#v", req)
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var req UpdateTodoRequest
	if err := json.Unmarshal([]byte(`{"completed": "yes"}`), &req); err == nil {
		t.Fatal("expected type error")
	}
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some("x"), B: Null[string]()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":"x","b":null}` {
		t.Fatalf("unexpected JSON %s", out)
	}
}

func TestNumericIDAcceptsNumbersAndStrings(t *testing.T) {
	for _, body := range []string{`{"categoryId": 5}`, `{"categoryId": "5"}`, `{"categoryId": " 5 "}`} {
		var req LinkCategoryRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if req.CategoryID != 5 {
			t.Fatalf("%s: got %d", body, req.CategoryID)
		}
	}

	for _, body := range []string{`{"categoryId": "abc"}`, `{"categoryId": 1.5}`, `{"categoryId": true}`, `{"categoryId": 3000000000}`, `{"categoryId": "3000000000"}`} {
		var req LinkCategoryRequest
		if err := json.Unmarshal([]byte(body), &req); err == nil {
			t.Fatalf("%s: expected error", body)
		}
	}
}
