package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexBoolUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`"false"`, false},
		{`"TRUE"`, true},
		{`"FALSE"`, false},
		{`"TrUe"`, true},
		{`"1"`, true},
		{`"0"`, false},
		{`" true "`, true},
		{`null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var b FlexBool
			if err := json.Unmarshal([]byte(tt.in), &b); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if bool(b) != tt.want {
				t.Fatalf("unmarshal %s = %v, want %v", tt.in, b, tt.want)
			}
		})
	}
}

func TestFlexBoolUnmarshalInvalid(t *testing.T) {
	for _, in := range []string{`"yes"`, `"maybe"`, `42`} {
		var b FlexBool
		if err := json.Unmarshal([]byte(in), &b); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestFlexBoolMarshal(t *testing.T) {
	out, err := json.Marshal(FlexBool(true))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "true" {
		t.Fatalf("marshal = %s, want true", out)
	}
}

func TestCallLogNormalizesTruthyStrings(t *testing.T) {
	payload := `{
		"run_id": "run-1",
		"carrier_legal_name": "Roadrunner Freight LLC",
		"flag_closed_deal": "True",
		"was_transferred": "false",
		"call_tag": "booked",
		"carrier_sentiment": "positive"
	}`

	var c CallLog
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !bool(c.FlagClosedDeal) {
		t.Error("flag_closed_deal should normalize to true")
	}
	if bool(c.WasTransferred) {
		t.Error("was_transferred should normalize to false")
	}
}

func TestCallLogValidate(t *testing.T) {
	tests := []struct {
		name    string
		call    CallLog
		wantErr bool
	}{
		{
			name: "complete",
			call: CallLog{RunID: "r1", CallTag: "booked", CarrierSentiment: "positive"},
		},
		{
			name:    "missing run_id",
			call:    CallLog{CallTag: "booked", CarrierSentiment: "positive"},
			wantErr: true,
		},
		{
			name:    "missing call_tag",
			call:    CallLog{RunID: "r1", CarrierSentiment: "positive"},
			wantErr: true,
		},
		{
			name:    "missing sentiment",
			call:    CallLog{RunID: "r1", CallTag: "booked"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCallLogNormalizeDefaultsDateTime(t *testing.T) {
	c := CallLog{RunID: "r1", CallTag: "booked", CarrierSentiment: "positive"}

	before := time.Now().UTC()
	c.Normalize()
	after := time.Now().UTC()

	if c.DateTime.Before(before) || c.DateTime.After(after) {
		t.Fatalf("date_time %v not defaulted to ingestion time", c.DateTime)
	}

	// An explicit date_time is preserved.
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c2 := CallLog{RunID: "r2", DateTime: fixed}
	c2.Normalize()
	if !c2.DateTime.Equal(fixed) {
		t.Fatalf("date_time %v overwritten, want %v", c2.DateTime, fixed)
	}
}
