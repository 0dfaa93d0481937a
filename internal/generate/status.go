package generate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/discpack/internal/archive"
	"github.com/handiism/discpack/internal/config"
	"github.com/handiism/discpack/internal/model"
	"github.com/handiism/discpack/internal/pack"
	"github.com/handiism/discpack/internal/template"
)

// Status is the outcome of generating one pack.
type Status int

const (
	StatusSuccess Status = iota
	// StatusBadUnicode: a value could not be written as UTF-8.
	StatusBadUnicode
	// StatusPackDirInUse: the output path belongs to something else.
	StatusPackDirInUse
	// StatusBadZip: archiving failed; the pack tree was kept.
	StatusBadZip
	// StatusBadTemplate: unresolved placeholder, brace syntax error,
	// malformed JSON template or missing template set.
	StatusBadTemplate
	// StatusInvalidEntries: duplicate or malformed disc ids.
	StatusInvalidEntries
	// StatusIOError: any other filesystem failure.
	StatusIOError
	// StatusInvalidSettings: the settings failed validation.
	StatusInvalidSettings
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusBadUnicode:
		return "bad unicode"
	case StatusPackDirInUse:
		return "pack dir in use"
	case StatusBadZip:
		return "bad zip"
	case StatusBadTemplate:
		return "bad template"
	case StatusInvalidEntries:
		return "invalid entries"
	case StatusIOError:
		return "io error"
	case StatusInvalidSettings:
		return "invalid settings"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Message is a user-facing description of the status.
func (s Status) Message() string {
	switch s {
	case StatusSuccess:
		return "Pack generated"
	case StatusBadUnicode:
		return "A title or name contains characters that cannot be written"
	case StatusPackDirInUse:
		return "The output folder already exists and was not made by this tool"
	case StatusBadZip:
		return "The pack could not be zipped; the unzipped folder was kept"
	case StatusBadTemplate:
		return "The pack templates are broken or missing"
	case StatusInvalidEntries:
		return "Two discs share a name, or a name is not allowed"
	case StatusInvalidSettings:
		return "The pack settings are not valid"
	default:
		return "A file could not be read or written"
	}
}

// Classify maps a generation error to its Status.
func Classify(err error) Status {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case err == nil:
		return StatusSuccess
	case config.IsValidationError(err):
		return StatusInvalidSettings
	case template.IsEncoding(err):
		return StatusBadUnicode
	case pack.IsDirInUse(err):
		return StatusPackDirInUse
	case archive.IsError(err):
		return StatusBadZip
	case template.IsUnresolved(err), template.IsSyntax(err), pack.IsSetError(err),
		errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return StatusBadTemplate
	case errors.Is(err, model.ErrInvalidEntry):
		return StatusInvalidEntries
	default:
		return StatusIOError
	}
}
