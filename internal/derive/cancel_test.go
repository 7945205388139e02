package derive

import (
	"testing"

	"github.com/BearBump/CaseDesk/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCancelability_AllCombinations(t *testing.T) {
	tests := []struct {
		name     string
		supplier *string
		dropped  bool
		tracking *string
		want     CancelEligibility
	}{
		{"nothing yet", nil, false, nil, CanCancel},
		{"supplier only", strp("SUP1"), false, nil, CheckSupplier},
		{"dropped only", nil, true, nil, CannotCancel},
		{"tracking only", nil, false, strp("1Z999"), CannotCancel},
		{"supplier and dropped", strp("SUP1"), true, nil, CannotCancel},
		{"supplier and tracking", strp("SUP1"), false, strp("1Z999"), CannotCancel},
		{"dropped and tracking", nil, true, strp("1Z999"), CannotCancel},
		{"everything", strp("SUP1"), true, strp("1Z999"), CannotCancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cancelability(&models.Order{
				SupplierOrderNumber:   tt.supplier,
				ShipmentDropped:       tt.dropped,
				CarrierTrackingNumber: tt.tracking,
			})
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCancelability_EmptyStringsAreAbsent(t *testing.T) {
	got := Cancelability(&models.Order{
		SupplierOrderNumber:   strp(""),
		CarrierTrackingNumber: strp(""),
	})
	require.Equal(t, CanCancel, got)
}

func TestCancelability_NilOrder(t *testing.T) {
	require.Equal(t, CanCancel, Cancelability(nil))
}
