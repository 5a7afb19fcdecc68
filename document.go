package excel

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// StyleProperty names a cell style attribute settable through Cell.SetStyle.
type StyleProperty string

const (
	StyleNumberFormat StyleProperty = "numberFormat"
	StyleFontColor    StyleProperty = "fontColor"
	StyleUnderline    StyleProperty = "underline"
)

// Document is the spreadsheet the binder works on.
type Document interface {
	Sheets() []Sheet
	// FindCells returns the cells whose whole text matches pattern, sheet
	// by sheet in row-major order.
	FindCells(pattern *regexp.Regexp) ([]Cell, error)
	Write(w io.Writer) error
	SaveAs(path string) error
	Close() error
}

// Sheet is a worksheet of a Document.
type Sheet interface {
	Name() string
	SetName(name string) error
}

// Cell is a single addressable cell of a Document.
type Cell interface {
	Sheet() string
	Ref() string
	Text() (string, error)
	SetValue(value any) error
	SetStyle(prop StyleProperty, value string) error
	// InheritStyle copies the whole style of from onto the cell.
	InheritStyle(from Cell) error
	SetHyperlink(ref string) error
	SetPicture(png []byte, altText string) error
	RelativeCell(rowOffset, colOffset int) (Cell, error)
}

type styleKey struct {
	base  int
	prop  StyleProperty
	value string
}

// workbook is the Document backed by an excelize file.
type workbook struct {
	file   *excelize.File
	styles map[styleKey]int
}

func newWorkbook(f *excelize.File) *workbook {
	return &workbook{
		file:   f,
		styles: make(map[styleKey]int),
	}
}

func (w *workbook) Sheets() []Sheet {
	names := w.file.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		sheets = append(sheets, &worksheet{wb: w, name: name})
	}
	return sheets
}

func (w *workbook) FindCells(pattern *regexp.Regexp) ([]Cell, error) {
	var cells []Cell
	for _, sheet := range w.file.GetSheetList() {
		refs, err := w.file.SearchSheet(sheet, pattern.String(), true)
		if err != nil {
			return nil, &DocumentError{Op: "search", Sheet: sheet, Err: err}
		}
		for _, ref := range refs {
			cells = append(cells, &cell{wb: w, sheet: sheet, ref: ref})
		}
	}
	return cells, nil
}

func (w *workbook) Write(dst io.Writer) error {
	if err := w.file.Write(dst); err != nil {
		return &DocumentError{Op: "write", Err: err}
	}
	return nil
}

func (w *workbook) SaveAs(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return &DocumentError{Op: "save", Err: err}
	}
	return nil
}

func (w *workbook) Close() error {
	return w.file.Close()
}

type worksheet struct {
	wb   *workbook
	name string
}

func (s *worksheet) Name() string {
	return s.name
}

func (s *worksheet) SetName(name string) error {
	if name == s.name {
		return nil
	}
	for _, other := range s.wb.file.GetSheetList() {
		if strings.EqualFold(other, name) {
			return &DocumentError{Op: "rename", Sheet: s.name, Err: fmt.Errorf("%w: %q", ErrSheetNameTaken, other)}
		}
	}
	if err := s.wb.file.SetSheetName(s.name, name); err != nil {
		return &DocumentError{Op: "rename", Sheet: s.name, Err: err}
	}
	s.name = name
	return nil
}

type cell struct {
	wb    *workbook
	sheet string
	ref   string
}

func (c *cell) Sheet() string {
	return c.sheet
}

func (c *cell) Ref() string {
	return c.ref
}

func (c *cell) fail(op string, err error) error {
	return &DocumentError{Op: op, Sheet: c.sheet, Cell: c.ref, Err: err}
}

func (c *cell) Text() (string, error) {
	text, err := c.wb.file.GetCellValue(c.sheet, c.ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", c.fail("read", err)
	}
	return text, nil
}

func (c *cell) SetValue(value any) error {
	if err := c.wb.file.SetCellValue(c.sheet, c.ref, value); err != nil {
		return c.fail("set value", err)
	}
	return nil
}

// SetStyle derives a style from the cell's current one with prop changed.
// Derived styles are cached per base style so repeated bindings reuse ids.
func (c *cell) SetStyle(prop StyleProperty, value string) error {
	base, err := c.wb.file.GetCellStyle(c.sheet, c.ref)
	if err != nil {
		return c.fail("get style", err)
	}
	key := styleKey{base: base, prop: prop, value: value}
	id, ok := c.wb.styles[key]
	if !ok {
		style, err := c.wb.file.GetStyle(base)
		if err != nil {
			return c.fail("get style", err)
		}
		if err := applyStyleProperty(style, prop, value); err != nil {
			return c.fail("set style", err)
		}
		if id, err = c.wb.file.NewStyle(style); err != nil {
			return c.fail("new style", err)
		}
		c.wb.styles[key] = id
	}
	if err := c.wb.file.SetCellStyle(c.sheet, c.ref, c.ref, id); err != nil {
		return c.fail("set style", err)
	}
	return nil
}

func applyStyleProperty(style *excelize.Style, prop StyleProperty, value string) error {
	switch prop {
	case StyleNumberFormat:
		style.DecimalPlaces = nil
		style.NegRed = false
		if value == "General" {
			style.NumFmt, style.CustomNumFmt = 0, nil
			return nil
		}
		format := value
		style.NumFmt, style.CustomNumFmt = 0, &format
	case StyleFontColor:
		if style.Font == nil {
			style.Font = &excelize.Font{}
		}
		style.Font.Color = value
		style.Font.ColorTheme = nil
		style.Font.ColorIndexed = 0
		style.Font.ColorTint = 0
	case StyleUnderline:
		if style.Font == nil {
			style.Font = &excelize.Font{}
		}
		style.Font.Underline = value
	default:
		return fmt.Errorf("unknown style property %q", prop)
	}
	return nil
}

func (c *cell) InheritStyle(from Cell) error {
	id, err := c.wb.file.GetCellStyle(from.Sheet(), from.Ref())
	if err != nil {
		return c.fail("get style", err)
	}
	if err := c.wb.file.SetCellStyle(c.sheet, c.ref, c.ref, id); err != nil {
		return c.fail("set style", err)
	}
	return nil
}

func (c *cell) SetHyperlink(ref string) error {
	if err := c.wb.file.SetCellHyperLink(c.sheet, c.ref, ref, "External"); err != nil {
		return c.fail("set hyperlink", err)
	}
	return nil
}

func (c *cell) SetPicture(png []byte, altText string) error {
	pic := &excelize.Picture{
		Extension: ".png",
		File:      png,
		Format:    &excelize.GraphicOptions{AltText: altText},
	}
	if err := c.wb.file.AddPictureFromBytes(c.sheet, c.ref, pic); err != nil {
		return c.fail("add picture", err)
	}
	return nil
}

func (c *cell) RelativeCell(rowOffset, colOffset int) (Cell, error) {
	col, row, err := excelize.CellNameToCoordinates(c.ref)
	if err != nil {
		return nil, c.fail("offset", err)
	}
	ref, err := excelize.CoordinatesToCellName(col+colOffset, row+rowOffset)
	if err != nil {
		return nil, c.fail("offset", err)
	}
	return &cell{wb: c.wb, sheet: c.sheet, ref: ref}, nil
}

var builtInFormats = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "hh:mm",
	21: "hh:mm:ss",
	22: "m/d/yy hh:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[red](#,##0)",
	39: "#,##0.00 ;(#,##0.00)",
	40: "#,##0.00 ;[red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// NumberFormat returns the number format code applied to a cell of f.
func NumberFormat(f *excelize.File, sheet, ref string) (string, error) {
	id, err := f.GetCellStyle(sheet, ref)
	if err != nil {
		return "", err
	}
	style, err := f.GetStyle(id)
	if err != nil {
		return "", err
	}
	if style.CustomNumFmt != nil {
		return *style.CustomNumFmt, nil
	}
	if code, ok := builtInFormats[style.NumFmt]; ok {
		return code, nil
	}
	return "", fmt.Errorf("number format %d has no known code", style.NumFmt)
}
