package render

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("render: unknown format")

// Format names an output encoding.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatDOT, FormatJSON, FormatText, FormatPDF, FormatSVG, FormatPNG}

// ParseFormat maps a case-insensitive name ("PDF", "svg", "txt") to a Format.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "txt" {
		name = string(FormatText)
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}

	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// External reports whether the format needs the graphviz binary.
func (f Format) External() bool {
	return f == FormatPDF || f == FormatSVG || f == FormatPNG
}

// Ext is the file extension without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}

	return string(f)
}

// ContentType is the MIME type for HTTP responses.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (f Format) String() string { return string(f) }
