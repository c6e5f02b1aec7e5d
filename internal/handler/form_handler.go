package handler

import (
	"errors"
	"net/http"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	mw "github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/middleware"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/service"
)

// multipartMemory bounds what ParseMultipartForm keeps in memory before spilling to disk.
const multipartMemory = 32 << 20

type FormHandler struct {
	*Pages
	cfg     *config.Config
	forms   *service.FormService
	calc    *service.CalculatorService
	contact *service.ContactService
}

func NewFormHandler(p *Pages, cfg *config.Config, forms *service.FormService, calc *service.CalculatorService, contact *service.ContactService) *FormHandler {
	return &FormHandler{Pages: p, cfg: cfg, forms: forms, calc: calc, contact: contact}
}

// parseUpload limits the body and parses the multipart form. Uploads well above the
// configured limits are cut off here; the validators report the precise limit.
func (h *FormHandler) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 4*h.cfg.MaxVoucherSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "Los archivos superan el tamaño permitido")
			return false
		}
		writeError(w, http.StatusBadRequest, "Formulario inválido")
		return false
	}
	return true
}

// Home

func (h *FormHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", h.page(r, "Inicio"))
}

func (h *FormHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Formulario inválido")
		return
	}
	f := &service.ContactForm{
		Nombre:    r.FormValue("nombre"),
		Apellido:  r.FormValue("apellido"),
		DNI:       r.FormValue("dni"),
		Email:     r.FormValue("email"),
		Huespedes: r.FormValue("huespedes"),
		Tipo:      r.FormValue("tipo"),
		Mensaje:   r.FormValue("mensaje"),
	}
	view := &pageView{}
	out, err := h.contact.Submit(view, f)
	form := formValues(r, "nombre", "apellido", "dni", "email", "huespedes", "tipo", "mensaje")
	h.respond(w, r, "home", h.page(r, "Inicio"), view, form, out, err)
}

// Vouchers

func (h *FormHandler) VoucherPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "vouchers", h.page(r, "Vouchers"))
}

func (h *FormHandler) Voucher(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}
	files, err := readFiles(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se pudieron leer los archivos")
		return
	}
	f := &service.VoucherForm{
		Nombre:   r.FormValue("nombre"),
		Apellido: r.FormValue("apellido"),
		DNI:      r.FormValue("dni"),
		Email:    r.FormValue("email"),
		Ref4:     r.FormValue("ref4"),
		Hab:      r.FormValue("hab"),
		Monto:    r.FormValue("monto"),
		Files:    files,
	}
	view := &pageView{}
	out, err := h.forms.Submit(r.Context(), view, mw.BaseURL(r.Context()), f)
	form := formValues(r, "nombre", "apellido", "dni", "email", "ref4", "hab", "monto")
	h.respond(w, r, "vouchers", h.page(r, "Vouchers"), view, form, out, err)
}

// Meter readings

func (h *FormHandler) ReadingPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "contadores", h.page(r, "Contadores"))
}

func (h *FormHandler) Reading(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}
	files, err := readFiles(r, "fotoMedidor")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se pudieron leer los archivos")
		return
	}
	f := &service.ReadingForm{
		Nombre:         r.FormValue("nombre"),
		Apellido:       r.FormValue("apellido"),
		DNI:            r.FormValue("dni"),
		NumeroMedicion: r.FormValue("numeroMedicion"),
		NroApartamento: r.FormValue("nroApartamento"),
		Observaciones:  r.FormValue("observaciones"),
		Files:          files,
	}
	view := &pageView{}
	out, err := h.forms.Submit(r.Context(), view, mw.BaseURL(r.Context()), f)
	form := formValues(r, "nombre", "apellido", "dni", "numeroMedicion", "nroApartamento", "observaciones")
	h.respond(w, r, "contadores", h.page(r, "Contadores"), view, form, out, err)
}

// Calculator

type calculatorData struct {
	Price  float64
	Result *service.Preview
}

func (h *FormHandler) CalculatorPage(w http.ResponseWriter, r *http.Request) {
	page := h.page(r, "Calculadora")
	page.Data = calculatorData{Price: h.calc.PricePerKWH()}

	// Tenant data comes from this browser's last calculation.
	fill, err := h.calc.Autofill(r.Context(), mw.VisitorID(r.Context()))
	if err != nil {
		h.log.WithError(err).Warn("calculator autofill failed")
	}
	if fill != nil {
		page.Form = map[string]string{
			"nombre":     fill.Nombre,
			"apellido":   fill.Apellido,
			"dni":        fill.DNI,
			"habitacion": fill.Habitacion,
		}
	}
	h.render(w, http.StatusOK, "calculadora", page)
}

func (h *FormHandler) Calculator(w http.ResponseWriter, r *http.Request) {
	if !h.parseUpload(w, r) {
		return
	}
	files, err := readFiles(r, "fotoAnterior", "fotoActual")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se pudieron leer los archivos")
		return
	}
	f := &service.CalculatorForm{
		Nombre:           r.FormValue("nombre"),
		Apellido:         r.FormValue("apellido"),
		DNI:              r.FormValue("dni"),
		Habitacion:       r.FormValue("habitacion"),
		MedicionAnterior: r.FormValue("medicionAnterior"),
		MedicionActual:   r.FormValue("medicionActual"),
		Files:            files,
	}
	view := &pageView{}
	ctx := r.Context()
	out, err := h.calc.Submit(ctx, view, mw.BaseURL(ctx), mw.VisitorID(ctx), f)

	page := h.page(r, "Calculadora")
	data := calculatorData{Price: h.calc.PricePerKWH()}
	if err == nil {
		if p := h.calc.Preview(f.MedicionAnterior, f.MedicionActual); p.Valid {
			data.Result = &p
		}
	}
	page.Data = data
	form := formValues(r, "nombre", "apellido", "dni", "habitacion", "medicionAnterior", "medicionActual")
	h.respond(w, r, "calculadora", page, view, form, out, err)
}

// CalculatorPreview answers the live consumption/amount display while the user types.
func (h *FormHandler) CalculatorPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := h.calc.Preview(q.Get("anterior"), q.Get("actual"))
	writeJSON(w, http.StatusOK, map[string]any{
		"consumo":      p.Consumo,
		"monto":        p.Monto,
		"valid":        p.Valid,
		"precioPorKwh": h.calc.PricePerKWH(),
	})
}
