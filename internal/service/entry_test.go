package service

import (
	"encoding/json"
	"testing"
)

func TestLooseFloatUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want *float64
	}{
		{"number", `12.5`, ptr(12.5)},
		{"numeric string", `"3.7"`, ptr(3.7)},
		{"padded string", `" 42 "`, ptr(42)},
		{"null", `null`, nil},
		{"garbage string", `"abc"`, nil},
		{"object", `{"a":1}`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f LooseFloat
			if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if !f.Present {
				t.Fatal("expected Present to be set")
			}
			switch {
			case tc.want == nil && f.Value != nil:
				t.Errorf("got %v, want nil", *f.Value)
			case tc.want != nil && (f.Value == nil || *f.Value != *tc.want):
				t.Errorf("got %v, want %v", f.Value, *tc.want)
			}
		})
	}
}

func TestLooseFloatAbsent(t *testing.T) {
	var payload struct {
		Temp LooseFloat `json:"temp_celsius"`
	}
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Temp.Present {
		t.Error("absent key must not be marked present")
	}
}

func TestLooseStringUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"abc"`, "abc"},
		{`7`, "7"},
		{`7.5`, "7.5"},
		{`null`, ""},
		{`[1]`, ""},
	}

	for _, tc := range cases {
		var s LooseString
		if err := json.Unmarshal([]byte(tc.in), &s); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if s.Value != tc.want {
			t.Errorf("unmarshal %s = %q, want %q", tc.in, s.Value, tc.want)
		}
	}
}

func TestTemperaturePrecedence(t *testing.T) {
	explicit := LooseFloat{Value: ptr(21.5), Present: true}
	explicitNull := LooseFloat{Present: true}
	legacy := LooseFloat{Value: ptr(30.0), Present: true}

	if got := temperature(explicit, legacy); got == nil || *got != 21.5 {
		t.Errorf("explicit value should win, got %v", got)
	}
	if got := temperature(explicitNull, legacy); got != nil {
		t.Errorf("explicit null should suppress the legacy alias, got %v", *got)
	}
	if got := temperature(LooseFloat{}, legacy); got == nil || *got != 30.0 {
		t.Errorf("absent explicit should fall back to legacy, got %v", got)
	}
}

func TestCollectionTime(t *testing.T) {
	if got := collectionTime(nil); got != nil {
		t.Errorf("nil input: got %v", *got)
	}
	empty := "  "
	if got := collectionTime(&empty); got != nil {
		t.Errorf("blank input: got %v", *got)
	}
	raw := " 08:30 "
	got := collectionTime(&raw)
	if got == nil || *got != "08:30" {
		t.Errorf("trimmed time: got %v", got)
	}
}

func ptr(v float64) *float64 { return &v }
