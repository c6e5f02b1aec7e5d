package dashboard

import (
	"context"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

// LoadErrorMessage is the banner shown when the list could not be fetched.
const LoadErrorMessage = "No se pudieron cargar los datos. Intenta nuevamente más tarde."

var (
	absoluteURL = regexp.MustCompile(`(?i)^https?://`)
	imageName   = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|heic)$`)
)

// Image is a linked file. Picture is false for files shown as a plain link.
type Image struct {
	Name    string
	URL     string
	Picture bool
}

type Cell struct {
	Text   string
	Images []Image
}

type Row struct {
	ID    string
	Cells []Cell
}

type MetricValue struct {
	Title string
	Value string
	Raw   float64
}

type FilterView struct {
	Param   string
	Label   string
	Value   string
	Kind    FilterKind
	Options []string
}

// Page is everything a dashboard template needs. Items holds the filtered source rows.
type Page struct {
	Spec    *Spec
	Base    string
	Metrics []MetricValue
	Filters []FilterView
	Rows    []Row
	Items   []models.ListItem
	Total   int
	Error   string
}

// Query is one render request.
type Query struct {
	Base    string
	Filters map[string]string
	Now     time.Time
}

// Lister fetches a list resource.
type Lister interface {
	GetList(ctx context.Context, url string) ([]models.ListItem, error)
}

type Renderer struct {
	source Lister
	log    *logrus.Entry
}

func NewRenderer(source Lister, log *logrus.Logger) *Renderer {
	return &Renderer{source: source, log: log.WithField("component", "dashboard")}
}

// Render fetches the list and builds the page. A failed fetch gives an empty page with Error set.
func (r *Renderer) Render(ctx context.Context, spec *Spec, q Query) *Page {
	items, err := r.source.GetList(ctx, q.Base+spec.Endpoint)
	if err != nil {
		r.log.WithError(err).WithField("dashboard", spec.Name).Warn("list fetch failed")
		page := Build(spec, nil, q)
		page.Error = LoadErrorMessage
		return page
	}
	return Build(spec, items, q)
}

// Build is the pure part of Render.
func Build(spec *Spec, items []models.ListItem, q Query) *Page {
	if q.Now.IsZero() {
		q.Now = time.Now()
	}
	filtered := Apply(items, spec.Filters, q.Filters)

	page := &Page{
		Spec:  spec,
		Base:  q.Base,
		Items: filtered,
		Total: len(items),
		Rows:  make([]Row, 0, len(filtered)),
	}
	for _, f := range spec.Filters {
		page.Filters = append(page.Filters, FilterView{
			Param:   f.Param,
			Label:   f.Label,
			Value:   q.Filters[f.Param],
			Kind:    f.Kind,
			Options: Options(items, f.Key),
		})
	}
	for _, m := range spec.Metrics {
		page.Metrics = append(page.Metrics, metric(spec, m, filtered, q.Now))
	}
	for _, it := range filtered {
		row := Row{ID: rowID(it), Cells: make([]Cell, 0, len(spec.Columns))}
		for _, c := range spec.Columns {
			row.Cells = append(row.Cells, cell(c, it, q.Base))
		}
		page.Rows = append(page.Rows, row)
	}
	return page
}

func metric(spec *Spec, m Metric, items []models.ListItem, now time.Time) MetricValue {
	var raw float64
	switch m.Kind {
	case MetricCount:
		raw = float64(len(items))
	case MetricToday:
		raw = float64(SameDay(items, spec.DateKeys, now))
	case MetricSum:
		raw = Sum(items, m.Keys)
	case MetricAverage:
		raw = Average(items, m.Keys)
	}

	var value string
	switch {
	case m.Kind == MetricCount || m.Kind == MetricToday:
		value = strconv.Itoa(int(raw))
	case m.Money:
		value = formatMoney(raw)
	default:
		value = strconv.FormatFloat(raw, 'f', m.Decimals, 64) + m.Suffix
	}
	return MetricValue{Title: m.Title, Value: value, Raw: raw}
}

func cell(c Column, it models.ListItem, base string) Cell {
	switch c.Kind {
	case Images:
		imgs := images(c, it, base)
		if len(imgs) == 0 {
			return Cell{Text: Placeholder}
		}
		return Cell{Images: imgs}
	case Number:
		n, ok := firstNumber(it, c.Keys)
		if !ok {
			return Cell{Text: orPlaceholder(firstText(it, c.Keys))}
		}
		return Cell{Text: strconv.FormatFloat(n, 'f', c.Decimals, 64) + c.Suffix}
	case Money:
		n, ok := firstNumber(it, c.Keys)
		if !ok {
			return Cell{Text: orPlaceholder(firstText(it, c.Keys))}
		}
		return Cell{Text: formatMoney(n)}
	case Date:
		return Cell{Text: orPlaceholder(formatDate(firstText(it, c.Keys)))}
	}

	if c.Join {
		var parts []string
		for _, k := range c.Keys {
			if s := text(it[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return Cell{Text: orPlaceholder(strings.Join(parts, " "))}
	}
	return Cell{Text: orPlaceholder(firstText(it, c.Keys))}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func formatMoney(n float64) string {
	return "$" + humanize.FormatFloat("#.###,##", n)
}

// formatDate shows RFC 3339 and unix-millisecond dates as dd/mm/yyyy hh:mm UTC.
func formatDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format("02/01/2006 15:04")
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC().Format("02/01/2006 15:04")
	}
	return s
}

func images(c Column, it models.ListItem, base string) []Image {
	var out []Image
	for _, src := range c.Sources {
		found := sourceImages(src, it, base)
		out = append(out, found...)
		if c.FirstSource && len(found) > 0 {
			break
		}
	}
	return out
}

func sourceImages(src ImageSource, it models.ListItem, base string) []Image {
	v, ok := it[src.Key]
	if !ok || v == nil {
		return nil
	}
	if src.URL != "" {
		id := rowID(it)
		if id == "" {
			return nil
		}
		return []Image{{Name: src.Key, URL: base + strings.ReplaceAll(src.URL, "{id}", id), Picture: true}}
	}

	var out []Image
	add := func(name, ref string) {
		if u := resolveImage(ref, src.Dir, base); u != "" {
			if name == "" {
				name = path.Base(ref)
			}
			out = append(out, Image{Name: name, URL: u, Picture: IsImage(name) || IsImage(u)})
		}
	}
	switch t := v.(type) {
	case string:
		add("", t)
	case []any:
		for _, e := range t {
			switch f := e.(type) {
			case string:
				add("", f)
			case map[string]any:
				name := firstText(f, []string{"name", "originalname", "filename"})
				add(name, firstText(f, []string{"url", "path", "filename", "name"}))
			}
		}
	case map[string]any:
		name := firstText(t, []string{"name", "originalname", "filename"})
		add(name, firstText(t, []string{"url", "path", "filename", "name"}))
	}
	return out
}

// resolveImage maps a stored reference to a URL the browser can load.
func resolveImage(ref, dir, base string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case absoluteURL.MatchString(ref):
		return ref
	case strings.HasPrefix(ref, "/"):
		return base + ref
	case strings.Contains(ref, "/"):
		return base + "/" + ref
	case dir != "":
		return base + "/uploads/" + dir + "/" + ref
	}
	return base + "/uploads/" + ref
}

// IsImage reports whether a file name looks like a picture.
func IsImage(name string) bool {
	return imageName.MatchString(name)
}
