package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/repository"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

const CalculationsEndpoint = "/api/calculos-medidor"

// CalculatorForm holds two meter readings. Check derives consumption and amount.
type CalculatorForm struct {
	Nombre           string `validate:"required"`
	Apellido         string `validate:"required"`
	DNI              string `validate:"required,dni"`
	Habitacion       string `validate:"required"`
	MedicionAnterior string `validate:"required,decimal"`
	MedicionActual   string `validate:"required,decimal"`

	Files []models.File `validate:"-"`

	calc models.Calculation
}

var calculatorMessages = validation.Messages{
	"Nombre.required":           "El nombre es requerido",
	"Apellido.required":         "El apellido es requerido",
	"DNI.required":              "El DNI es requerido",
	"DNI.dni":                   "Ingrese un DNI válido (7-8 dígitos)",
	"Habitacion.required":       "La habitación es requerida",
	"MedicionAnterior.required": "La medición anterior es requerida",
	"MedicionAnterior.decimal":  "La medición anterior debe ser un número válido",
	"MedicionActual.required":   "La medición actual es requerida",
	"MedicionActual.decimal":    "La medición actual debe ser un número válido",
}

func (f *CalculatorForm) Check(v *validation.Validator, cfg *config.Config, errs *validation.Errors) {
	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Apellido = strings.TrimSpace(f.Apellido)
	f.DNI = validation.Digits(f.DNI)
	f.Habitacion = strings.TrimSpace(f.Habitacion)
	f.MedicionAnterior = validation.Decimal(f.MedicionAnterior)
	f.MedicionActual = validation.Decimal(f.MedicionActual)

	before := errs.Len()
	v.Struct(f, calculatorMessages, errs)
	if errs.Len() == before {
		prev, _ := validation.ParseDecimal(f.MedicionAnterior)
		cur, _ := validation.ParseDecimal(f.MedicionActual)
		if cur <= prev {
			errs.Add("MedicionActual", "La medición actual debe ser mayor a la anterior")
		} else {
			kwh, amount := models.Consumption(prev, cur, cfg.PricePerKWH)
			f.calc = models.Calculation{
				Nombre:           f.Nombre,
				Apellido:         f.Apellido,
				DNI:              f.DNI,
				Habitacion:       f.Habitacion,
				MedicionAnterior: prev,
				MedicionActual:   cur,
				ConsumoCalculado: kwh,
				MontoTotal:       amount,
				PrecioKWH:        cfg.PricePerKWH,
			}
		}
	}

	for _, field := range []string{"fotoAnterior", "fotoActual"} {
		validation.ImageRule{Field: field, MaxEach: cfg.MaxFileSize}.Check(f.Files, errs)
	}
}

func (f *CalculatorForm) Submission(now time.Time) *models.FormSubmission {
	f.calc.FechaRegistro = now.UTC().Format(isoMillis)
	f.calc.Timestamp = now.UnixMilli()
	c := f.calc
	fields := []models.Field{
		{Name: "nombre", Value: c.Nombre},
		{Name: "apellido", Value: c.Apellido},
		{Name: "dni", Value: c.DNI},
		{Name: "habitacion", Value: c.Habitacion},
		{Name: "medicionAnterior", Value: formatFloat(c.MedicionAnterior)},
		{Name: "medicionActual", Value: formatFloat(c.MedicionActual)},
		{Name: "consumoCalculado", Value: formatFloat(c.ConsumoCalculado)},
		{Name: "montoTotal", Value: formatFloat(c.MontoTotal)},
		{Name: "precioKWH", Value: formatFloat(c.PrecioKWH)},
		{Name: "fechaRegistro", Value: c.FechaRegistro},
		{Name: "timestamp", Value: formatFloat(float64(c.Timestamp))},
	}
	var photos []models.File
	for _, file := range f.Files {
		if file.Field == "fotoAnterior" || file.Field == "fotoActual" {
			photos = append(photos, file)
		}
	}
	return models.NewSubmission(models.KindCalculation, CalculationsEndpoint, fields, photos, now)
}

func (f *CalculatorForm) SentMessage() string { return "¡Cálculo registrado correctamente!" }

func (f *CalculatorForm) RequiresSuccess() bool { return true }

// Calculation is the derived record, valid after a successful Check.
func (f *CalculatorForm) Calculation() models.Calculation { return f.calc }

// CalculatorService submits calculations and keeps the local history and autofill snapshot.
type CalculatorService struct {
	forms   *FormService
	history *repository.CalculationRepo
	price   float64
	log     *logrus.Entry
}

func NewCalculatorService(forms *FormService, history *repository.CalculationRepo, cfg *config.Config, log *logrus.Logger) *CalculatorService {
	return &CalculatorService{
		forms:   forms,
		history: history,
		price:   cfg.PricePerKWH,
		log:     log.WithField("component", "calculator"),
	}
}

// Submit records every valid calculation locally, whether or not the backend took it.
func (s *CalculatorService) Submit(ctx context.Context, view View, base, visitor string, f *CalculatorForm) (*Outcome, error) {
	out, err := s.forms.Submit(ctx, view, base, f)
	if err != nil {
		return nil, err
	}
	c := f.Calculation()
	c.Sent = out.Status == StatusSent
	if err := s.history.Record(ctx, visitor, c); err != nil {
		s.log.WithError(err).Warn("could not record calculation history")
	}
	data := map[string]any{
		"consumoCalculado": c.ConsumoCalculado,
		"montoTotal":       c.MontoTotal,
	}
	if prev, ok := out.Data.(map[string]string); ok {
		for k, v := range prev {
			data[k] = v
		}
	}
	out.Data = data
	return out, nil
}

// Preview is the live calculation shown while typing. ok is false until both readings parse.
type Preview struct {
	Consumo float64 `json:"consumo"`
	Monto   float64 `json:"monto"`
	Valid   bool    `json:"valid"`
}

func (s *CalculatorService) Preview(anterior, actual string) Preview {
	prev, ok1 := validation.ParseDecimal(anterior)
	cur, ok2 := validation.ParseDecimal(actual)
	if !ok1 || !ok2 || cur <= prev {
		return Preview{}
	}
	kwh, amount := models.Consumption(prev, cur, s.price)
	return Preview{Consumo: kwh, Monto: amount, Valid: true}
}

// Autofill returns the visitor's personal fields from their last calculation, if any.
func (s *CalculatorService) Autofill(ctx context.Context, visitor string) (*models.Autofill, error) {
	last, err := s.history.Last(ctx, visitor)
	if err != nil || last == nil {
		return nil, err
	}
	a := last.Autofill()
	return &a, nil
}

func (s *CalculatorService) History(ctx context.Context) ([]models.Calculation, error) {
	return s.history.History(ctx)
}

func (s *CalculatorService) PricePerKWH() float64 { return s.price }
