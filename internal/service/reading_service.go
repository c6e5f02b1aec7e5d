package service

import (
	"strings"
	"time"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

const ReadingsEndpoint = "/api/contadores"

// ReadingForm is a tenant's electricity meter reading with a photo of the meter.
type ReadingForm struct {
	Nombre         string `validate:"required"`
	Apellido       string `validate:"required"`
	DNI            string `validate:"required,dni"`
	NumeroMedicion string `validate:"required,decimal"`
	NroApartamento string `validate:"required"`
	Observaciones  string

	Files []models.File `validate:"-"`
}

var readingMessages = validation.Messages{
	"Nombre.required":         "El campo Nombre es requerido.",
	"Apellido.required":       "El campo Apellido es requerido.",
	"DNI.required":            "El campo DNI es requerido.",
	"DNI.dni":                 "El DNI debe tener entre 7 y 8 dígitos.",
	"NumeroMedicion.required": "El campo Número de medición es requerido.",
	"NumeroMedicion.decimal":  "El número de medición debe ser un valor numérico válido.",
	"NroApartamento.required": "El campo Número de apartamento es requerido.",
}

func (f *ReadingForm) Check(v *validation.Validator, cfg *config.Config, errs *validation.Errors) {
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Apellido = strings.TrimSpace(f.Apellido)
	f.DNI = validation.Digits(f.DNI)
	f.NumeroMedicion = strings.TrimSpace(f.NumeroMedicion)
	f.NroApartamento = strings.TrimSpace(f.NroApartamento)
	f.Observaciones = strings.TrimSpace(f.Observaciones)

	v.Struct(f, readingMessages, errs)
	validation.ImageRule{
		Field:       "fotoMedidor",
		Required:    true,
		RequiredMsg: "El campo Foto del medidor es requerido.",
		TypeMsg:     "Por favor selecciona un archivo de imagen válido.",
		MaxEach:     cfg.MaxFileSize,
	}.Check(f.Files, errs)
}

func (f *ReadingForm) Submission(now time.Time) *models.FormSubmission {
	ts := now.UTC().Format(isoMillis)
	fields := []models.Field{
		{Name: "dni", Value: f.DNI},
		{Name: "nombre", Value: f.Nombre},
		{Name: "apellidos", Value: f.Apellido},
		{Name: "nroApartamento", Value: f.NroApartamento},
		{Name: "numeroMedicion", Value: f.NumeroMedicion},
		{Name: "fechaLectura", Value: ts},
		{Name: "timestamp", Value: ts},
	}
	if f.Observaciones != "" {
		fields = append(fields, models.Field{Name: "observaciones", Value: f.Observaciones})
	}
	var photo []models.File
	for _, file := range f.Files {
		if file.Field == "fotoMedidor" {
			photo = append(photo, file)
			break
		}
	}
	return models.NewSubmission(models.KindReading, ReadingsEndpoint, fields, photo, now)
}

func (f *ReadingForm) SentMessage() string { return "¡Medición registrada exitosamente!" }
