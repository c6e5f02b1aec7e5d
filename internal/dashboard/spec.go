// Package dashboard renders any admin list from a declarative description:
// where the data comes from, which columns, which metrics and which filters.
package dashboard

type ColumnKind int

const (
	Text ColumnKind = iota
	Number
	Money
	Date
	Images
)

// ImageSource tells where a row keeps its pictures.
// Bare file names resolve to {base}/uploads/<Dir>/<name>. When URL is set it is a
// path template where {id} is replaced by the row id, used if Key has any value.
type ImageSource struct {
	Key string
	Dir string
	URL string
}

type Column struct {
	Title string
	// Keys are read in order. Text columns join every non-empty value with a space
	// when Join is set, otherwise the first non-empty value wins.
	Keys     []string
	Join     bool
	Kind     ColumnKind
	Decimals int
	Suffix   string
	Sources  []ImageSource
	// FirstSource stops at the first image source that yields pictures.
	FirstSource bool
}

type MetricKind int

const (
	MetricCount MetricKind = iota
	MetricSum
	MetricAverage
	MetricToday
)

type Metric struct {
	Title    string
	Kind     MetricKind
	Keys     []string
	Money    bool
	Decimals int
	Suffix   string
}

type FilterKind int

const (
	Equals FilterKind = iota
	Contains
)

// Filter is driven by the query parameter Param.
type Filter struct {
	Param string
	Label string
	Key   string
	Kind  FilterKind
}

// Spec describes one dashboard.
type Spec struct {
	Name     string
	Title    string
	Endpoint string
	// DateKeys hold the record date, first non-empty wins. Used by MetricToday metrics.
	DateKeys []string
	Columns  []Column
	Metrics  []Metric
	Filters  []Filter
}
