package service

import (
	"strings"
	"time"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

const VouchersEndpoint = "/api/vouchers"

// VoucherForm is a payment proof: who paid, for which room, how much, plus the receipt photos.
type VoucherForm struct {
	Nombre   string `validate:"required"`
	Apellido string `validate:"required"`
	DNI      string `validate:"required"`
	Email    string `validate:"required,email_simple"`
	Ref4     string `validate:"ref4"`
	Hab      string `validate:"required"`
	Monto    string `validate:"required,amount"`

	Files []models.File `validate:"-"`
}

var voucherMessages = validation.Messages{
	"Nombre.required":    "El nombre es requerido",
	"Apellido.required":  "El apellido es requerido",
	"DNI.required":       "El DNI es requerido",
	"Email.required":     "El correo electrónico es requerido",
	"Email.email_simple": "El correo electrónico no es válido",
	"Ref4.ref4":          "Los últimos 4 dígitos deben ser numéricos",
	"Hab.required":       "El número de habitación/apartamento es requerido",
	"Monto.required":     "El monto depositado es requerido",
	"Monto.amount":       "El monto debe usar separador de miles, por ejemplo 50.000",
}

func (f *VoucherForm) normalize() {
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Apellido = strings.TrimSpace(f.Apellido)
	f.DNI = validation.Digits(f.DNI)
	f.Email = strings.TrimSpace(f.Email)
	f.Ref4 = validation.Digits(f.Ref4)
	f.Hab = strings.TrimSpace(f.Hab)
	f.Monto = validation.Amount(f.Monto)
}

func (f *VoucherForm) Check(v *validation.Validator, cfg *config.Config, errs *validation.Errors) {
	f.normalize()
	v.Struct(f, voucherMessages, errs)
	validation.ImageRule{
		Field:       "files",
		Required:    true,
		RequiredMsg: "Debes adjuntar al menos una imagen del comprobante",
		MaxTotal:    cfg.MaxVoucherSize,
	}.Check(f.Files, errs)
}

func (f *VoucherForm) Submission(now time.Time) *models.FormSubmission {
	fields := []models.Field{
		{Name: "nombre", Value: f.Nombre},
		{Name: "apellido", Value: f.Apellido},
		{Name: "dni", Value: f.DNI},
		{Name: "email", Value: f.Email},
		{Name: "ref4", Value: f.Ref4},
		{Name: "hab", Value: f.Hab},
		{Name: "monto", Value: f.Monto},
		{Name: "timestamp", Value: now.UTC().Format(isoMillis)},
	}
	return models.NewSubmission(models.KindVoucher, VouchersEndpoint, fields, f.Files, now)
}

func (f *VoucherForm) SentMessage() string { return "¡Voucher enviado correctamente!" }
