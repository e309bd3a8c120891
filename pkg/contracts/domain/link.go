package domain

import (
	"github.com/go-playground/validator/v10"
)

// SyntheticLinkColumns is the CSV header of a generated links file, in
// field order.
var SyntheticLinkColumns = []string{
	"link_id",
	"scenario",
	"tx_power_dbm",
	"rx_sensitivity_dbm",
	"engineering_margin_db",
	"fiber_length_km",
	"fiber_att_db_per_km",
	"n_splice",
	"splice_loss_db",
	"n_connector",
	"connector_loss_db",
	"splitter_loss_db",
	"other_loss_db",
}

// SyntheticLink represents the physical parameters of one generated fiber
// link. The ranges mirror the generator's distributions.
type SyntheticLink struct {
	LinkID              string  `json:"link_id" validate:"required"`
	Scenario            string  `json:"scenario"`
	TxPowerDBm          int     `json:"tx_power_dbm" validate:"oneof=2 4 6 8"`
	RxSensitivityDBm    int     `json:"rx_sensitivity_dbm" validate:"oneof=-27 -28 -29 -20"`
	EngineeringMarginDB int     `json:"engineering_margin_db" validate:"oneof=2 3 4 5"`
	FiberLengthKm       float64 `json:"fiber_length_km" validate:"gte=2,lte=40"`
	FiberAttDBPerKm     float64 `json:"fiber_att_db_per_km" validate:"gte=0.2,lte=0.5"`
	NSplice             int     `json:"n_splice" validate:"min=1"`
	SpliceLossDB        float64 `json:"splice_loss_db" validate:"gte=0.05,lte=0.15"`
	NConnector          int     `json:"n_connector" validate:"oneof=2 4 6 8"`
	ConnectorLossDB     float64 `json:"connector_loss_db" validate:"gte=0.2,lte=0.5"`
	SplitterLossDB      float64 `json:"splitter_loss_db" validate:"gte=0.5,lte=2"`
	OtherLossDB         float64 `json:"other_loss_db" validate:"gte=0,lte=2.5"`
}

var linkValidator = validator.New()

// Validate checks the link against its parameter ranges
func (l SyntheticLink) Validate() error {
	return linkValidator.Struct(l)
}
