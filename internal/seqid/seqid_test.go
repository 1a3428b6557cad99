package seqid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		last string
		want string
	}{
		{"empty ticket starts above floor", Ticket, "", "TIC1001"},
		{"ticket increments", Ticket, "TIC1042", "TIC1043"},
		{"patient increments", Patient, "P-1007", "P-1008"},
		{"purchase order increments", PurchaseOrder, "PO-1999", "PO-2000"},
		{"malformed last restarts at floor", Ticket, "garbage", "TIC1001"},
		{"wrong prefix restarts at floor", Patient, "TIC1042", "P-1001"},
		{"suffix below floor restarts at floor", Ticket, "TIC7", "TIC1001"},
		{"non-numeric suffix restarts at floor", PurchaseOrder, "PO-abc", "PO-1001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Next(tt.last))
		})
	}
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, 1042, Ticket.Suffix("TIC1042"))
	assert.Equal(t, 1000, Ticket.Suffix(""))
	assert.Equal(t, 1000, Ticket.Suffix("TIC"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Ticket.Validate("TIC1001"))
	assert.NoError(t, PurchaseOrder.Validate("PO-1234"))
	assert.Error(t, Ticket.Validate("P-1001"))
	assert.Error(t, Ticket.Validate("TIC"))
	assert.Error(t, Patient.Validate("P-12x4"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "PO-1001", PurchaseOrder.Format(1001))
}
