package validation

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

// SniffType detects the content type from the bytes, ignoring what the client declared.
func SniffType(data []byte) string {
	return mimetype.Detect(data).String()
}

func isImage(f models.File) bool {
	return strings.HasPrefix(f.Type, "image/")
}

// ImageRule constrains the files uploaded under one form field.
type ImageRule struct {
	Field       string
	Required    bool
	RequiredMsg string
	// TypeMsg replaces the default "not an image" message when set.
	TypeMsg     string
	MaxEach     int64
	MaxTotal    int64
}

// Check appends at most one message per violated constraint.
func (r ImageRule) Check(files []models.File, errs *Errors) {
	var own []models.File
	for _, f := range files {
		if f.Field == r.Field {
			own = append(own, f)
		}
	}
	if len(own) == 0 {
		if r.Required {
			errs.Add(r.Field, r.RequiredMsg)
		}
		return
	}

	var total int64
	for _, f := range own {
		if !isImage(f) {
			msg := r.TypeMsg
			if msg == "" {
				msg = "Solo se permiten imágenes"
			}
			errs.Add(r.Field, msg)
			return
		}
		size := int64(len(f.Data))
		if r.MaxEach > 0 && size > r.MaxEach {
			errs.Add(r.Field, fmt.Sprintf("La imagen es demasiado grande. El tamaño máximo es %s.", humanize.IBytes(uint64(r.MaxEach))))
			return
		}
		total += size
	}
	if r.MaxTotal > 0 && total > r.MaxTotal {
		errs.Add(r.Field, fmt.Sprintf("Las imágenes superan el tamaño total permitido (%s)", humanize.IBytes(uint64(r.MaxTotal))))
	}
}
