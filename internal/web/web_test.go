package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/dashboard"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

func TestAllPagesParse(t *testing.T) {
	tpls, err := Parse()
	require.NoError(t, err)
	for _, name := range pages {
		var buf bytes.Buffer
		require.NoError(t, tpls.Render(&buf, name, &Page{Title: name, Hostal: "Hostal Mayelewoo"}), name)
	}
	assert.Error(t, tpls.Render(&bytes.Buffer{}, "missing", &Page{}))
}

func TestDashboardEscapesCells(t *testing.T) {
	tpls, err := Parse()
	require.NoError(t, err)

	spec, _ := dashboard.Lookup("vouchers")
	page := dashboard.Build(spec, []models.ListItem{
		{"nombre": `<script>alert("x")</script>`, "fotos": []any{`a.jpg" onerror="alert(1)`}},
	}, dashboard.Query{Base: "https://api.example.org", Now: time.Now()})

	var buf bytes.Buffer
	require.NoError(t, tpls.Render(&buf, "dashboard", &Page{Title: "Vouchers", Data: page}))
	out := buf.String()

	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;")
	assert.NotContains(t, out, `onerror="alert(1)`)
}

func TestBannerAndBackendOverride(t *testing.T) {
	tpls, err := Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tpls.Render(&buf, "vouchers", &Page{
		Title:   "Vouchers",
		Banner:  &Banner{Kind: "error", Text: "El DNI es requerido"},
		Form:    map[string]string{"nombre": "Ana"},
		Backend: "local",
	}))
	out := buf.String()
	assert.Contains(t, out, `class="banner banner-error"`)
	assert.Contains(t, out, "El DNI es requerido")
	assert.Contains(t, out, `value="Ana"`)
	assert.Contains(t, out, `action="/vouchers?backend=local"`)
}
