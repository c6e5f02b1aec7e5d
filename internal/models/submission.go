package models

import (
	"time"
)

// FormKind names a form that posts to the backend.
type FormKind string

const (
	KindContact     FormKind = "contact"
	KindVoucher     FormKind = "voucher"
	KindReading     FormKind = "reading"
	KindCalculation FormKind = "calculation"
)

// BackendKinds are the forms that post to the backend and can be left pending.
var BackendKinds = []FormKind{KindVoucher, KindReading, KindCalculation}

// Field is one named text value of a submission. Order is preserved on the wire.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// File is an attached upload. Data is never persisted locally.
type File struct {
	Field string
	Name  string
	Type  string
	Data  []byte
}

// Meta reduces a file to what a PendingRecord keeps.
func (f File) Meta() FileMeta {
	return FileMeta{Name: f.Name, Size: int64(len(f.Data)), Type: f.Type}
}

// FileMeta is the {name,size,type} triple stored in place of file bytes.
type FileMeta struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// FormSubmission is built once per submit and not modified afterwards.
type FormSubmission struct {
	Kind      FormKind
	Endpoint  string
	Fields    []Field
	Files     []File
	CreatedAt time.Time
}

// NewSubmission copies fields and files so callers cannot mutate the result.
func NewSubmission(kind FormKind, endpoint string, fields []Field, files []File, now time.Time) *FormSubmission {
	fs := make([]Field, len(fields))
	copy(fs, fields)
	fl := make([]File, len(files))
	copy(fl, files)
	return &FormSubmission{
		Kind:      kind,
		Endpoint:  endpoint,
		Fields:    fs,
		Files:     fl,
		CreatedAt: now.UTC(),
	}
}

// Value returns the first field with the given name.
func (s *FormSubmission) Value(name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// FileMetas lists the metadata of every attached file.
func (s *FormSubmission) FileMetas() []FileMeta {
	metas := make([]FileMeta, 0, len(s.Files))
	for _, f := range s.Files {
		metas = append(metas, f.Meta())
	}
	return metas
}
