package models

import "math"

// Calculation is one electricity consumption calculation for a room.
type Calculation struct {
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	DNI              string  `json:"dni"`
	Habitacion       string  `json:"habitacion"`
	MedicionAnterior float64 `json:"medicionAnterior"`
	MedicionActual   float64 `json:"medicionActual"`
	ConsumoCalculado float64 `json:"consumoCalculado"`
	MontoTotal       float64 `json:"montoTotal"`
	PrecioKWH        float64 `json:"precioKWH"`
	FechaRegistro    string  `json:"fechaRegistro"`
	Timestamp        int64   `json:"timestamp"`
	Sent             bool    `json:"sent"`
}

// Consumption returns consumed kWh and amount due. Both are zero unless actual > previous >= 0.
func Consumption(previous, actual, pricePerKWH float64) (kwh, amount float64) {
	if previous < 0 || actual <= previous {
		return 0, 0
	}
	kwh = actual - previous
	amount = math.Round(kwh*pricePerKWH*100) / 100
	return kwh, amount
}

// Autofill holds the personal fields reused on the next visit.
type Autofill struct {
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	DNI        string `json:"dni"`
	Habitacion string `json:"habitacion"`
}

// Autofill drops the measurements and keeps only personal fields.
func (c *Calculation) Autofill() Autofill {
	return Autofill{Nombre: c.Nombre, Apellido: c.Apellido, DNI: c.DNI, Habitacion: c.Habitacion}
}
