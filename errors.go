package excel

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotLoaded is returned by operations that need a document
	// before LoadTemplate has succeeded.
	ErrTemplateNotLoaded = errors.New("template is not loaded")
	// ErrUnknownTemplateType is returned by LoadTemplate for unsupported sources.
	ErrUnknownTemplateType = errors.New("unknown template type")
	// ErrSheetNameTaken is returned when renaming a sheet to the name of
	// another sheet. Sheet names compare case-insensitively.
	ErrSheetNameTaken = errors.New("sheet name is already taken")
)

// DocumentError wraps a failure of the underlying spreadsheet document.
type DocumentError struct {
	Op    string
	Sheet string
	Cell  string
	Err   error
}

func (e *DocumentError) Error() string {
	switch {
	case e.Sheet != "" && e.Cell != "":
		return fmt.Sprintf("%s %s!%s: %v", e.Op, e.Sheet, e.Cell, e.Err)
	case e.Sheet != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
