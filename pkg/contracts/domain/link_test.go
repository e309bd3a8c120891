package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validLink() SyntheticLink {
	return SyntheticLink{
		LinkID:              "link_00001",
		Scenario:            "base",
		TxPowerDBm:          4,
		RxSensitivityDBm:    -28,
		EngineeringMarginDB: 3,
		FiberLengthKm:       12.34,
		FiberAttDBPerKm:     0.3,
		NSplice:             4,
		SpliceLossDB:        0.081,
		NConnector:          2,
		ConnectorLossDB:     0.35,
		SplitterLossDB:      1.5,
		OtherLossDB:         0.0,
	}
}

func TestSyntheticLink_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *SyntheticLink)
		wantErr bool
	}{
		{"valid", func(l *SyntheticLink) {}, false},
		{"empty scenario allowed", func(l *SyntheticLink) { l.Scenario = "" }, false},
		{"length lower bound", func(l *SyntheticLink) { l.FiberLengthKm = 2.0 }, false},
		{"length upper bound", func(l *SyntheticLink) { l.FiberLengthKm = 40.0 }, false},
		{"missing id", func(l *SyntheticLink) { l.LinkID = "" }, true},
		{"tx power not in set", func(l *SyntheticLink) { l.TxPowerDBm = 5 }, true},
		{"rx sensitivity not in set", func(l *SyntheticLink) { l.RxSensitivityDBm = -30 }, true},
		{"length too short", func(l *SyntheticLink) { l.FiberLengthKm = 1.99 }, true},
		{"length too long", func(l *SyntheticLink) { l.FiberLengthKm = 40.01 }, true},
		{"no splices", func(l *SyntheticLink) { l.NSplice = 0 }, true},
		{"connector count not in set", func(l *SyntheticLink) { l.NConnector = 3 }, true},
		{"other loss too high", func(l *SyntheticLink) { l.OtherLossDB = 2.6 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLink()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSyntheticLinkColumns(t *testing.T) {
	assert.Len(t, SyntheticLinkColumns, 13)
	assert.Equal(t, "link_id", SyntheticLinkColumns[0])
	assert.Equal(t, "other_loss_db", SyntheticLinkColumns[12])
}
