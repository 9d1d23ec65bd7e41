package models

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

func init() {
	// Rates serialize as JSON numbers, matching the rest of the payload.
	decimal.MarshalJSONWithoutQuotes = true
}

// EquipmentTypes lists the accepted values for Load.EquipmentType.
var EquipmentTypes = []string{"Dry Van", "Reefer", "Flatbed"}

// Load is a shipment offer submitted by a carrier.
// Loads are append-only: once accepted they are never mutated or deleted.
type Load struct {
	LoadID           string          `json:"load_id"`
	Origin           string          `json:"origin"`
	Destination      string          `json:"destination"`
	PickupDatetime   time.Time       `json:"pickup_datetime"`
	DeliveryDatetime time.Time       `json:"delivery_datetime"`
	EquipmentType    string          `json:"equipment_type"`
	LoadboardRate    decimal.Decimal `json:"loadboard_rate"`
	Notes            string          `json:"notes,omitempty"`
	Weight           int             `json:"weight"`
	CommodityType    string          `json:"commodity_type"`
	NumOfPieces      int             `json:"num_of_pieces"`
	Miles            int             `json:"miles"`
	Dimensions       string          `json:"dimensions"`
}

// Validate checks all field constraints. It runs at the ingestion boundary
// before any state mutation; a load that fails here is never stored.
func (l *Load) Validate() error {
	if l.LoadID == "" {
		return errors.New("load_id is required")
	}
	if n := utf8.RuneCountInString(l.Origin); n < 3 || n > 100 {
		return errors.New("origin must be between 3 and 100 characters")
	}
	if n := utf8.RuneCountInString(l.Destination); n < 3 || n > 100 {
		return errors.New("destination must be between 3 and 100 characters")
	}
	if l.PickupDatetime.IsZero() {
		return errors.New("pickup_datetime is required")
	}
	if l.DeliveryDatetime.IsZero() {
		return errors.New("delivery_datetime is required")
	}
	if !l.DeliveryDatetime.After(l.PickupDatetime) {
		return errors.New("delivery_datetime must be after pickup_datetime")
	}
	if !validEquipmentType(l.EquipmentType) {
		return fmt.Errorf("equipment_type must be one of: Dry Van, Reefer, Flatbed")
	}
	if !l.LoadboardRate.IsPositive() {
		return errors.New("loadboard_rate must be greater than 0")
	}
	if l.Weight <= 0 {
		return errors.New("weight must be greater than 0")
	}
	if l.CommodityType == "" {
		return errors.New("commodity_type is required")
	}
	if l.NumOfPieces < 1 {
		return errors.New("num_of_pieces must be greater than or equal to 1")
	}
	if l.Miles <= 0 {
		return errors.New("miles must be greater than 0")
	}
	if utf8.RuneCountInString(l.Dimensions) < 2 {
		return errors.New("dimensions must be at least 2 characters")
	}
	return nil
}

func validEquipmentType(v string) bool {
	for _, e := range EquipmentTypes {
		if v == e {
			return true
		}
	}
	return false
}

// MessageResponse is the confirmation payload returned by POST /loads.
type MessageResponse struct {
	Message string `json:"message"`
}
