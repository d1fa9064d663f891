package pdf

import (
	"os"

	"github.com/billfold/billfold/internal/logger"
	"github.com/jung-kurt/gofpdf"
)

const customFamily = "Custom"

// Face is one resolved font face: either a built-in core face or a custom
// TTF file registered per render call.
type Face struct {
	Family string
	Style  string
	File   string
}

// FontSet is the set of faces one render pass draws with. It is resolved
// once before rendering; the draw routines never probe the filesystem.
type FontSet struct {
	Regular Face
	Bold    Face
	Italic  Face
}

// ResolveFontSet probes the configured font files and falls back to the
// built-in Helvetica faces for any that are missing. A missing file is
// logged and never fails the render.
func ResolveFontSet(cfg RenderConfig, log *logger.Logger) FontSet {
	set := FontSet{
		Regular: Face{Family: "Helvetica", Style: ""},
		Bold:    Face{Family: "Helvetica", Style: "B"},
		Italic:  Face{Family: "Helvetica", Style: "I"},
	}

	resolve := func(face *Face, style, file string) {
		if file == "" {
			return
		}
		if _, err := os.Stat(file); err != nil {
			log.Warnw("custom font not available, using built-in face",
				"file", file,
				"error", err,
			)
			return
		}
		*face = Face{Family: customFamily, Style: style, File: file}
	}

	resolve(&set.Regular, "", cfg.FontRegular)
	resolve(&set.Bold, "B", cfg.FontBold)
	resolve(&set.Italic, "I", cfg.FontItalic)

	return set
}

// Face returns the face for a style
func (s FontSet) Face(style FontStyle) Face {
	switch style {
	case StyleBold:
		return s.Bold
	case StyleItalic:
		return s.Italic
	default:
		return s.Regular
	}
}

// register adds the custom TTF faces to a document. Built-in faces need no
// registration. A malformed font file surfaces through doc.Error() and
// fails the whole render.
func (s FontSet) register(doc *gofpdf.Fpdf) {
	for _, face := range []Face{s.Regular, s.Bold, s.Italic} {
		if face.File != "" {
			doc.AddUTF8Font(face.Family, face.Style, face.File)
		}
	}
}
