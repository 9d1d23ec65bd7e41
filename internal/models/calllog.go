package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FlexBool is a boolean that also accepts loosely-typed truthy strings
// ("true"/"false", "1"/"0", case-insensitive) on the wire. Voice-agent
// platforms post extraction payloads with stringly booleans; normalization
// happens here, at the ingestion boundary, so storage only ever sees bools.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return fmt.Errorf("invalid boolean value %q", s)
		}
		*b = FlexBool(v)
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// CallLog records one carrier negotiation call and its outcome.
// run_id is the primary key; records are never mutated or deleted.
type CallLog struct {
	RunID            string              `json:"run_id"`
	CarrierLegalName string              `json:"carrier_legal_name,omitempty"`
	MCNumber         string              `json:"mc_number,omitempty"`
	LoadIDSearched   string              `json:"load_id_searched,omitempty"`
	Origin           string              `json:"origin,omitempty"`
	Destination      string              `json:"destination,omitempty"`
	EquipmentType    string              `json:"equipment_type,omitempty"`
	OriginalRate     decimal.NullDecimal `json:"original_rate"`
	FinalRate        decimal.NullDecimal `json:"final_rate"`
	Turns            *int                `json:"turns,omitempty"`
	FlagClosedDeal   FlexBool            `json:"flag_closed_deal"`
	WasTransferred   FlexBool            `json:"was_transferred"`
	CallTag          string              `json:"call_tag"`
	CarrierSentiment string              `json:"carrier_sentiment"`
	Transcript       string              `json:"transcript,omitempty"`
	DateTime         time.Time           `json:"date_time"`
}

// Validate checks the constraints a record must satisfy before persistence.
func (c *CallLog) Validate() error {
	if c.RunID == "" {
		return errors.New("run_id is required")
	}
	if c.CallTag == "" {
		return errors.New("call_tag is required")
	}
	if c.CarrierSentiment == "" {
		return errors.New("carrier_sentiment is required")
	}
	return nil
}

// Normalize fills defaults: a missing date_time becomes the ingestion time.
func (c *CallLog) Normalize() {
	if c.DateTime.IsZero() {
		c.DateTime = time.Now().UTC()
	}
}

// LogCallResponse is returned by POST /log_call_extraction.
type LogCallResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id"`
}

// BulkLogResponse is returned by POST /bulk_log_call_extraction.
// ProcessedCount reports the number of records submitted in the request,
// including any skipped duplicates.
type BulkLogResponse struct {
	Message        string `json:"message"`
	ProcessedCount int    `json:"processed_count"`
}
