package models

import (
	"encoding/json"
	"testing"
)

// TestPlanFieldMarshal verifies the wire forms: null, a bare number for a
// pre-fill and an object for an edit.
func TestPlanFieldMarshal(t *testing.T) {
	tests := []struct {
		name  string
		field PlanField
		want  string
	}{
		{"absent", PlanField{}, `null`},
		{"unedited", Unedited(122.5), `122.5`},
		{"edited", Edited(4), `{"value":4,"edited":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.field)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("json = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPlanFieldUnmarshal(t *testing.T) {
	tests := []struct {
		in       string
		wantSet  bool
		wantVal  float64
		wantEdit bool
	}{
		{`null`, false, 0, false},
		{`100`, true, 100, false},
		{`{"value":95,"edited":true}`, true, 95, true},
		{`{"value":95}`, true, 95, false},
		{`{"value":null,"edited":true}`, false, 0, true},
		{`{"value":null}`, false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p PlanField
			if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			v, ok := p.Value()
			if ok != tt.wantSet || v != tt.wantVal || p.IsEdited() != tt.wantEdit {
				t.Errorf("got %s, want set=%v value=%g edited=%v", p, tt.wantSet, tt.wantVal, tt.wantEdit)
			}
		})
	}
}

// TestPlanFieldNullObject verifies that an object with a null value stays
// present and keeps its wire form.
func TestPlanFieldNullObject(t *testing.T) {
	for _, in := range []string{`{"value":null,"edited":true}`, `{"value":null}`} {
		var p PlanField
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		if p.IsAbsent() || p.IsSet() || p.Ptr() != nil {
			t.Errorf("Unmarshal(%s) = %s, want present with null value", in, p)
		}
		out, err := json.Marshal(p)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != in {
			t.Errorf("Marshal = %s, want %s", out, in)
		}
	}
	var absent PlanField
	if err := json.Unmarshal([]byte(`null`), &absent); err != nil || !absent.IsAbsent() {
		t.Errorf("null should decode as absent, got %s (err %v)", absent, err)
	}
}

func TestPlanFieldUnmarshalInvalid(t *testing.T) {
	for _, in := range []string{`"heavy"`, `{"value":"x"}`, `true`} {
		var p PlanField
		if err := json.Unmarshal([]byte(in), &p); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", in)
		}
	}
}

func TestUneditedPtr(t *testing.T) {
	if UneditedPtr(nil).IsSet() {
		t.Error("UneditedPtr(nil) should be absent")
	}
	p := UneditedPtr(Float(7))
	if v, ok := p.Value(); !ok || v != 7 || p.IsEdited() {
		t.Errorf("UneditedPtr(7) = %s", p)
	}
}

// TestPlanSetRoundTrip verifies that a plan set survives storage with its
// edit flags intact.
func TestPlanSetRoundTrip(t *testing.T) {
	in := PlanSet{ID: "ns1", Weight: Unedited(122.5), Reps: Edited(4)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"ns1","weight":122.5,"reps":{"value":4,"edited":true}}` {
		t.Errorf("json = %s", data)
	}
	var out PlanSet
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Weight.IsEdited() || !out.Reps.IsEdited() {
		t.Errorf("round trip = %+v", out)
	}
}
