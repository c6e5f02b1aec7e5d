package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmissionCopiesInput(t *testing.T) {
	fields := []Field{{Name: "nombre", Value: "Ana"}}
	files := []File{{Field: "files", Name: "a.png", Type: "image/png", Data: []byte{1, 2, 3}}}

	sub := NewSubmission(KindVoucher, "/api/vouchers", fields, files, time.Now())
	fields[0].Value = "changed"
	files[0].Name = "changed.png"

	assert.Equal(t, "Ana", sub.Value("nombre"))
	assert.Equal(t, "a.png", sub.Files[0].Name)
	assert.Equal(t, "", sub.Value("missing"))
}

func TestPendingFromKeepsMetadataOnly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sub := NewSubmission(KindVoucher, "/api/vouchers",
		[]Field{{Name: "dni", Value: "12345678"}, {Name: "monto", Value: "1.000"}},
		[]File{{Field: "files", Name: "a.png", Type: "image/png", Data: make([]byte, 42)}},
		now)

	rec := PendingFrom(sub, "http://backend.test")
	require.NotEmpty(t, rec.ID)
	assert.Equal(t, KindVoucher, rec.Kind)
	assert.Equal(t, "2026-03-01T12:00:00Z", rec.Timestamp)
	assert.Equal(t, []FileMeta{{Name: "a.png", Size: 42, Type: "image/png"}}, rec.Files)
	assert.Equal(t, "1.000", rec.Value("monto"))
	assert.Equal(t, "http://backend.test", rec.Base)
	assert.Equal(t, sub.Fields, rec.Fields)
}

func TestConsumption(t *testing.T) {
	kwh, amount := Consumption(1000, 1150, 439.26)
	assert.InDelta(t, 150, kwh, 1e-9)
	assert.InDelta(t, 65889, amount, 1e-9)

	kwh, amount = Consumption(1000, 1000, 439.26)
	assert.Zero(t, kwh)
	assert.Zero(t, amount)

	kwh, amount = Consumption(0, 10, 439.26)
	assert.InDelta(t, 10, kwh, 1e-9)
	assert.InDelta(t, 4392.6, amount, 1e-9)

	kwh, _ = Consumption(-5, 10, 439.26)
	assert.Zero(t, kwh)
}
