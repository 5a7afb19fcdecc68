package excel

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/geoirb/xlsx-template/internal/data"
	"github.com/geoirb/xlsx-template/internal/placeholder"
)

// Template binds payloads into a spreadsheet template. A Template owns its
// document and is not safe for concurrent use.
type Template struct {
	cfg      Config
	logger   *slog.Logger
	doc      *workbook
	literals literals
}

// NewTemplate creates a Template with DefaultConfig modified by opts.
func NewTemplate(opts ...Option) (*Template, error) {
	t := &Template{
		cfg:    DefaultConfig(),
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return t, nil
}

// Config returns the configuration in use.
func (t *Template) Config() Config {
	return t.cfg
}

// LoadTemplate opens the template document. source is nil for a blank
// workbook, a string file path, or the workbook content as []byte or an
// io.Reader. A previously loaded document is closed.
func (t *Template) LoadTemplate(source any) error {
	var (
		f   *excelize.File
		err error
	)
	switch src := source.(type) {
	case nil:
		f = excelize.NewFile()
	case string:
		f, err = excelize.OpenFile(src)
	case []byte:
		f, err = excelize.OpenReader(bytes.NewReader(src))
	case io.Reader:
		f, err = excelize.OpenReader(src)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownTemplateType, source)
	}
	if err != nil {
		return &DocumentError{Op: "open", Err: err}
	}

	if t.doc != nil {
		if err := t.doc.Close(); err != nil {
			t.logger.Warn("closing previous template", "error", err)
		}
	}
	t.doc = newWorkbook(f)
	t.literals = make(literals)
	return nil
}

// Workbook returns the loaded document, or nil before LoadTemplate.
func (t *Template) Workbook() *excelize.File {
	if t.doc == nil {
		return nil
	}
	return t.doc.file
}

// ApplyData binds payload into every placeholder of the document. A nil
// payload is an empty object. Missing data leaves cells blank; only
// document failures are returned. Cells bound once hold plain values, so
// applying again only affects placeholders that are still present. Text
// written by raw placeholders is never bound again.
func (t *Template) ApplyData(payload any) error {
	if t.doc == nil {
		return ErrTemplateNotLoaded
	}
	root := data.From(payload)
	if root.IsBlank() {
		root = data.MappingValue(nil)
	}
	b := &binder{
		doc:      t.doc,
		root:     root,
		cfg:      t.cfg,
		logger:   t.logger,
		literals: t.literals,
	}
	return b.run()
}

// ToBuffer serializes the document.
func (t *Template) ToBuffer() (*bytes.Buffer, error) {
	if t.doc == nil {
		return nil, ErrTemplateNotLoaded
	}
	buf := new(bytes.Buffer)
	if err := t.doc.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteTo serializes the document into w.
func (t *Template) WriteTo(w io.Writer) (int64, error) {
	buf, err := t.ToBuffer()
	if err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// ToFile saves the document at path.
func (t *Template) ToFile(path string) error {
	if t.doc == nil {
		return ErrTemplateNotLoaded
	}
	return t.doc.SaveAs(path)
}

// Close releases the document.
func (t *Template) Close() error {
	if t.doc == nil {
		return nil
	}
	err := t.doc.Close()
	t.doc, t.literals = nil, nil
	return err
}

// Match is a placeholder found in the document. Cell is empty for sheet
// title placeholders.
type Match struct {
	Sheet  string
	Cell   string
	Kind   string
	Path   string
	Format string
}

func newMatch(sheet, cell string, p placeholder.Placeholder) Match {
	return Match{Sheet: sheet, Cell: cell, Kind: p.Kind.String(), Path: p.Path, Format: p.Format}
}

// Placeholders lists the placeholders of the document without binding them.
// Text written by raw placeholders is not listed while it is unchanged.
func (t *Template) Placeholders() ([]Match, error) {
	if t.doc == nil {
		return nil, ErrTemplateNotLoaded
	}
	var matches []Match
	for _, kind := range placeholder.Kinds() {
		cells, err := t.doc.FindCells(placeholder.Pattern(kind))
		if err != nil {
			return nil, err
		}
		for _, c := range cells {
			text, err := c.Text()
			if err != nil {
				return nil, err
			}
			if t.literals.holds(c.Sheet(), c.Ref(), text) {
				continue
			}
			if p, ok := placeholder.Match(kind, text); ok {
				matches = append(matches, newMatch(c.Sheet(), c.Ref(), p))
			}
		}
	}
	for _, sheet := range t.doc.Sheets() {
		if t.literals.holds(sheet.Name(), "", sheet.Name()) {
			continue
		}
		for _, kind := range []placeholder.Kind{placeholder.Str, placeholder.Raw} {
			if p, ok := placeholder.Match(kind, sheet.Name()); ok {
				matches = append(matches, newMatch(sheet.Name(), "", p))
			}
		}
	}
	return matches, nil
}

// FillIn loads template, applies payload and returns the rendered workbook.
func (t *Template) FillIn(template any, payload any) (io.Reader, error) {
	if err := t.LoadTemplate(template); err != nil {
		return nil, err
	}
	if err := t.ApplyData(payload); err != nil {
		return nil, err
	}
	buf, err := t.ToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}
