package dashboard

var vouchers = &Spec{
	Name:     "vouchers",
	Title:    "Comprobantes de pago",
	Endpoint: "/api/vouchers",
	DateKeys: []string{"timestamp", "createdAt"},
	Columns: []Column{
		{Title: "Nombre", Keys: []string{"nombre", "apellido"}, Join: true},
		{Title: "DNI", Keys: []string{"dni"}},
		{Title: "Email", Keys: []string{"email"}},
		{Title: "Ref 4", Keys: []string{"ref4"}},
		{Title: "Hab/Apto", Keys: []string{"hab", "habitacion"}},
		{Title: "Monto", Keys: []string{"monto"}, Kind: Money},
		{Title: "Fecha/Hora", Keys: []string{"timestamp", "createdAt"}, Kind: Date},
		{Title: "Archivos", Kind: Images, FirstSource: true, Sources: []ImageSource{
			{Key: "files", Dir: "vouchers"},
			{Key: "fotos", Dir: "vouchers"},
		}},
	},
	Metrics: []Metric{
		{Title: "Total Comprobantes", Kind: MetricCount},
		{Title: "Cargados Hoy", Kind: MetricToday},
		{Title: "Monto Total", Kind: MetricSum, Keys: []string{"monto"}, Money: true},
		{Title: "Monto Promedio", Kind: MetricAverage, Keys: []string{"monto"}, Money: true},
	},
	Filters: []Filter{
		{Param: "hab", Label: "Hab/Apto", Key: "hab", Kind: Equals},
		{Param: "dni", Label: "DNI", Key: "dni", Kind: Contains},
	},
}

var readings = &Spec{
	Name:     "contadores",
	Title:    "Lecturas de medidores",
	Endpoint: "/api/contadores",
	DateKeys: []string{"timestamp", "fechaLectura", "createdAt"},
	Columns: []Column{
		{Title: "Nombre", Keys: []string{"nombre", "apellido", "apellidos"}, Join: true},
		{Title: "DNI", Keys: []string{"dni"}},
		{Title: "Medición", Keys: []string{"numeroMedicion"}, Kind: Number, Decimals: 1, Suffix: " kWh"},
		{Title: "Hab/Apto", Keys: []string{"nroApartamento"}},
		{Title: "Fecha/Hora", Keys: []string{"timestamp", "fechaLectura", "createdAt"}, Kind: Date},
		{Title: "Observaciones", Keys: []string{"observaciones"}},
		{Title: "Foto", Kind: Images, Sources: []ImageSource{
			{Key: "fotoMedidor", Dir: "contadores"},
		}},
	},
	Metrics: []Metric{
		{Title: "Total Lecturas", Kind: MetricCount},
		{Title: "Lecturas Hoy", Kind: MetricToday},
		{Title: "Promedio kWh", Kind: MetricAverage, Keys: []string{"numeroMedicion"}, Decimals: 1, Suffix: " kWh"},
	},
	Filters: []Filter{
		{Param: "apto", Label: "Hab/Apto", Key: "nroApartamento", Kind: Equals},
		{Param: "dni", Label: "DNI", Key: "dni", Kind: Contains},
	},
}

var calculations = &Spec{
	Name:     "calculos",
	Title:    "Cálculos de consumo eléctrico",
	Endpoint: "/api/calculos-medidor",
	DateKeys: []string{"fechaRegistro", "createdAt"},
	Columns: []Column{
		{Title: "Nombre", Keys: []string{"nombre"}},
		{Title: "Apellido", Keys: []string{"apellido"}},
		{Title: "DNI", Keys: []string{"dni"}},
		{Title: "Habitación", Keys: []string{"habitacion"}},
		{Title: "Anterior", Keys: []string{"medicionAnterior"}, Kind: Number, Decimals: 2},
		{Title: "Actual", Keys: []string{"medicionActual"}, Kind: Number, Decimals: 2},
		{Title: "Consumo", Keys: []string{"consumoCalculado"}, Kind: Number, Decimals: 2, Suffix: " kWh"},
		{Title: "Monto", Keys: []string{"montoTotal"}, Kind: Money},
		{Title: "Fecha", Keys: []string{"fechaRegistro", "createdAt"}, Kind: Date},
		{Title: "Fotos", Kind: Images, Sources: []ImageSource{
			{Key: "fotoAnteriorData", URL: "/api/calculos-medidor/{id}/foto-anterior"},
			{Key: "fotoActualData", URL: "/api/calculos-medidor/{id}/foto-actual"},
		}},
	},
	Metrics: []Metric{
		{Title: "Total Registros", Kind: MetricCount},
		{Title: "Consumo Total", Kind: MetricSum, Keys: []string{"consumoCalculado"}, Decimals: 2, Suffix: " kWh"},
		{Title: "Monto Total", Kind: MetricSum, Keys: []string{"montoTotal"}, Money: true},
		{Title: "Promedio Consumo", Kind: MetricAverage, Keys: []string{"consumoCalculado"}, Decimals: 2, Suffix: " kWh"},
	},
	Filters: []Filter{
		{Param: "habitacion", Label: "Habitación", Key: "habitacion", Kind: Equals},
		{Param: "dni", Label: "DNI", Key: "dni", Kind: Contains},
	},
}

// All lists the dashboards in menu order.
func All() []*Spec {
	return []*Spec{vouchers, readings, calculations}
}

// Lookup finds a dashboard by name.
func Lookup(name string) (*Spec, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
