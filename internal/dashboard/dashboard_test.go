package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

const base = "https://api.example.org"

var now = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func TestAggregates(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil, []string{"monto"}))
	assert.Equal(t, 0.0, Sum(nil, []string{"monto"}))

	items := []models.ListItem{{"monto": 10.0}, {"monto": 20.0}}
	assert.Equal(t, 30.0, Sum(items, []string{"monto"}))
	assert.Equal(t, 15.0, Average(items, []string{"monto"}))
	assert.Len(t, items, 2)
}

func TestSumAcceptsNumericStrings(t *testing.T) {
	items := []models.ListItem{
		{"monto": "50.000"},
		{"monto": "1.500"},
		{"monto": "$ 250"},
		{"monto": "abc"},
		{"other": 1.0},
	}
	assert.Equal(t, 51750.0, Sum(items, []string{"monto"}))
}

func TestSameDay(t *testing.T) {
	items := []models.ListItem{
		{"timestamp": "2025-03-10T01:00:00.000Z"},
		{"createdAt": "2025-03-10T23:59:59Z"},
		{"timestamp": "2025-03-09T23:59:59Z"},
		{"timestamp": "bad"},
		{},
	}
	assert.Equal(t, 2, SameDay(items, []string{"timestamp", "createdAt"}, now))
}

func TestBuildMetricsForTwoRows(t *testing.T) {
	page := Build(vouchers, []models.ListItem{{"monto": 10.0}, {"monto": 20.0}}, Query{Base: base, Now: now})

	require.Len(t, page.Metrics, 4)
	assert.Equal(t, "2", page.Metrics[0].Value)
	assert.Equal(t, 30.0, page.Metrics[2].Raw)
	assert.Equal(t, "$30,00", page.Metrics[2].Value)
	assert.Equal(t, 15.0, page.Metrics[3].Raw)
}

func TestMetricKinds(t *testing.T) {
	spec := &Spec{
		Name:     "kinds",
		DateKeys: []string{"fecha"},
		Metrics: []Metric{
			{Title: "count", Kind: MetricCount},
			{Title: "sum", Kind: MetricSum, Keys: []string{"kwh"}},
			{Title: "avg", Kind: MetricAverage, Keys: []string{"kwh"}, Decimals: 1},
			{Title: "today", Kind: MetricToday},
		},
	}
	items := []models.ListItem{
		{"kwh": 4.0, "fecha": now.Format("2006-01-02") + "T08:00:00Z"},
		{"kwh": "6", "fecha": "2001-01-01T08:00:00Z"},
	}

	page := Build(spec, items, Query{Base: base, Now: now})

	require.Len(t, page.Metrics, 4)
	assert.Equal(t, "2", page.Metrics[0].Value)
	assert.Equal(t, "10", page.Metrics[1].Value)
	assert.Equal(t, "5.0", page.Metrics[2].Value)
	assert.Equal(t, "1", page.Metrics[3].Value)
}

func TestBuildEmptyListHasZeroAverage(t *testing.T) {
	page := Build(calculations, nil, Query{Base: base, Now: now})
	assert.Empty(t, page.Rows)
	assert.Equal(t, "0", page.Metrics[0].Value)
	assert.Equal(t, 0.0, page.Metrics[3].Raw)
	assert.Equal(t, "0.00 kWh", page.Metrics[3].Value)
}

func TestMissingValuesRenderPlaceholder(t *testing.T) {
	page := Build(vouchers, []models.ListItem{{"nombre": "Ana"}}, Query{Base: base, Now: now})
	require.Len(t, page.Rows, 1)
	cells := page.Rows[0].Cells
	assert.Equal(t, "Ana", cells[0].Text)
	for _, c := range cells[1:] {
		assert.Equal(t, Placeholder, c.Text)
	}
}

func TestCellsKeepRawText(t *testing.T) {
	page := Build(vouchers, []models.ListItem{{"nombre": "<script>alert(1)</script>"}}, Query{Base: base, Now: now})
	assert.Equal(t, "<script>alert(1)</script>", page.Rows[0].Cells[0].Text)
}

func TestImageResolution(t *testing.T) {
	item := models.ListItem{
		"_id":   "abc",
		"fotos": []any{"comp1.jpg", "/uploads/vouchers/comp2.png", "https://cdn.example.org/x.webp"},
	}
	page := Build(vouchers, []models.ListItem{item}, Query{Base: base, Now: now})
	imgs := page.Rows[0].Cells[7].Images
	require.Len(t, imgs, 3)
	assert.Equal(t, base+"/uploads/vouchers/comp1.jpg", imgs[0].URL)
	assert.Equal(t, base+"/uploads/vouchers/comp2.png", imgs[1].URL)
	assert.Equal(t, "https://cdn.example.org/x.webp", imgs[2].URL)
	assert.True(t, imgs[0].Picture)

	item["files"] = []any{map[string]any{"name": "recibo.pdf", "url": "/files/recibo.pdf"}}
	page = Build(vouchers, []models.ListItem{item}, Query{Base: base, Now: now})
	imgs = page.Rows[0].Cells[7].Images
	require.Len(t, imgs, 1)
	assert.Equal(t, base+"/files/recibo.pdf", imgs[0].URL)
	assert.False(t, imgs[0].Picture)
}

func TestCalculationPhotosUseRowID(t *testing.T) {
	item := models.ListItem{
		"_id":              "c1",
		"fotoAnteriorData": map[string]any{"filename": "a.jpg"},
		"montoTotal":       4392.6,
	}
	page := Build(calculations, []models.ListItem{item}, Query{Base: base, Now: now})
	cells := page.Rows[0].Cells
	imgs := cells[9].Images
	require.Len(t, imgs, 1)
	assert.Equal(t, base+"/api/calculos-medidor/c1/foto-anterior", imgs[0].URL)
	assert.Equal(t, "$4.392,60", cells[7].Text)
}

func TestFiltersDoNotMutateSource(t *testing.T) {
	items := []models.ListItem{
		{"habitacion": "3", "dni": "30111222"},
		{"habitacion": "1", "dni": "30999888"},
		{"habitacion": "3", "dni": "40111000"},
	}
	page := Build(calculations, items, Query{Base: base, Now: now, Filters: map[string]string{"habitacion": "3", "dni": "111"}})

	assert.Len(t, page.Rows, 2)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, items, 3)
	assert.Equal(t, []string{"1", "3"}, page.Filters[0].Options)
	assert.Equal(t, "3", page.Filters[0].Value)

	page = Build(calculations, items, Query{Base: base, Now: now, Filters: map[string]string{"habitacion": "3", "dni": "999"}})
	assert.Empty(t, page.Rows)
	assert.Equal(t, "0", page.Metrics[0].Value)
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("calculos")
	require.True(t, ok)
	assert.Equal(t, "/api/calculos-medidor", s.Endpoint)
	_, ok = Lookup("nope")
	assert.False(t, ok)
	assert.Len(t, All(), 3)
}

type fakeLister struct {
	items []models.ListItem
	err   error
	url   string
}

func (f *fakeLister) GetList(_ context.Context, url string) ([]models.ListItem, error) {
	f.url = url
	return f.items, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRenderFailureGivesEmptyPageWithBanner(t *testing.T) {
	src := &fakeLister{err: errors.New("boom")}
	page := NewRenderer(src, quietLogger()).Render(context.Background(), readings, Query{Base: base, Now: now})

	assert.Equal(t, base+"/api/contadores", src.url)
	assert.Equal(t, LoadErrorMessage, page.Error)
	assert.Empty(t, page.Rows)
	assert.Equal(t, "0", page.Metrics[0].Value)
}

func TestRenderIsRepeatable(t *testing.T) {
	src := &fakeLister{items: []models.ListItem{{"numeroMedicion": "1234.5"}}}
	r := NewRenderer(src, quietLogger())
	a := r.Render(context.Background(), readings, Query{Base: base, Now: now})
	b := r.Render(context.Background(), readings, Query{Base: base, Now: now})
	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, "1234.5 kWh", a.Rows[0].Cells[2].Text)
}

func TestExportXLSX(t *testing.T) {
	items := []models.ListItem{
		{"habitacion": "3", "nombre": "Ana"},
		{"habitacion": "1", "nombre": "Luis"},
		{"habitacion": "3", "nombre": "Eva"},
	}
	page := Build(calculations, items, Query{Base: base, Now: now, Filters: map[string]string{"habitacion": "3"}})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, page))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("calculos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Nombre", rows[0][0])
	assert.Equal(t, "Ana", rows[1][0])
	assert.Equal(t, "Eva", rows[2][0])
}

func TestExportJSON(t *testing.T) {
	page := Build(vouchers, []models.ListItem{{"dni": "1234567"}, {"dni": "7654321"}}, Query{Base: base, Now: now, Filters: map[string]string{"dni": "765"}})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, page))
	var got struct {
		Dashboard string              `json:"dashboard"`
		Total     int                 `json:"total"`
		Data      []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "vouchers", got.Dashboard)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "7654321", got.Data[0]["dni"])
}
