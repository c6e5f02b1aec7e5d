package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/validation"
)

// MaxContactMessage is the character limit of the free-text message.
const MaxContactMessage = 200

type ContactForm struct {
	Nombre    string `validate:"required"`
	Apellido  string `validate:"required"`
	DNI       string `validate:"required"`
	Email     string `validate:"required,email_simple"`
	Huespedes string
	Tipo      string
	Mensaje   string `validate:"max=200"`
}

var contactMessages = validation.Messages{
	"Nombre.required":    "El nombre es requerido",
	"Apellido.required":  "El apellido es requerido",
	"DNI.required":       "El DNI es requerido",
	"Email.required":     "El correo electrónico es requerido",
	"Email.email_simple": "El correo electrónico no es válido",
	"Mensaje.max":        fmt.Sprintf("El mensaje no puede superar los %d caracteres", MaxContactMessage),
}

var accommodationLabels = map[string]string{
	"habitacion":  "Habitación",
	"apartamento": "Apartamento",
	"consultar":   "Consultar opciones disponibles",
}

func accommodationLabel(tipo string) string {
	if l, ok := accommodationLabels[tipo]; ok {
		return l
	}
	return tipo
}

// ContactService turns an inquiry into a WhatsApp deep link. Nothing is posted to the backend.
type ContactService struct {
	validator *validation.Validator
	cfg       *config.Config
	log       *logrus.Entry
}

func NewContactService(v *validation.Validator, cfg *config.Config, log *logrus.Logger) *ContactService {
	return &ContactService{validator: v, cfg: cfg, log: log.WithField("component", "contact")}
}

func (s *ContactService) Submit(view View, f *ContactForm) (*Outcome, error) {
	view.SetBusy(true)
	defer view.SetBusy(false)

	f.Nombre = strings.TrimSpace(f.Nombre)
	f.Apellido = strings.TrimSpace(f.Apellido)
	f.DNI = strings.TrimSpace(f.DNI)
	f.Email = strings.TrimSpace(f.Email)
	f.Mensaje = strings.TrimSpace(f.Mensaje)

	var errs validation.Errors
	s.validator.Struct(f, contactMessages, &errs)
	if errs.Len() > 0 {
		view.ShowBanner(BannerError, errs.First())
		return nil, &errs
	}

	link := s.WhatsAppLink(s.Message(f))
	s.log.WithField("tipo", f.Tipo).Info("contact inquiry prepared")
	msg := "¡Perfecto! Te estamos redirigiendo a WhatsApp..."
	view.ShowBanner(BannerSuccess, msg)
	view.Reset()
	return &Outcome{Status: StatusSent, Message: msg, Data: map[string]string{"whatsapp": link}}, nil
}

// Message is the plain-text WhatsApp message for an inquiry.
func (s *ContactService) Message(f *ContactForm) string {
	var b strings.Builder
	fmt.Fprintf(&b, "¡Hola! Quiero hacer una consulta para %s\n\n", s.cfg.HostalName)
	b.WriteString("*Datos del huésped:*\n")
	fmt.Fprintf(&b, "👤 Nombre: %s %s\n", f.Nombre, f.Apellido)
	fmt.Fprintf(&b, "📋 DNI: %s\n", f.DNI)
	fmt.Fprintf(&b, "📧 Email: %s\n\n", f.Email)
	fmt.Fprintf(&b, "👥 *Huéspedes:* %s\n", f.Huespedes)
	fmt.Fprintf(&b, "🏠 *Tipo de alojamiento:* %s\n\n", accommodationLabel(f.Tipo))
	if f.Mensaje != "" {
		fmt.Fprintf(&b, "💬 *Mensaje adicional:*\n%s\n\n", f.Mensaje)
	}
	b.WriteString("Espero su respuesta. ¡Gracias!")
	return b.String()
}

// WhatsAppLink builds https://wa.me/<number>?text=<message> with spaces as %20.
func (s *ContactService) WhatsAppLink(message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.cfg.WhatsAppNumber, text)
}

// QuickLink is the footer link with a generic greeting.
func (s *ContactService) QuickLink() string {
	return s.WhatsAppLink("¡Hola! Quiero información sobre " + s.cfg.HostalName)
}
