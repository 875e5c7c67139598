package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
	pdfTabWidth   = 4 // Number of spaces for a tab
)

// PDFSink renders the same document as TextSink into a PDF, one file per page,
// with syntax highlighting. Call Save once the run is finished.
type PDFSink struct {
	pdf   *gofpdf.Fpdf
	style *chroma.Style
	tr    func(string) string
}

func NewPDFSink() *PDFSink {
	pdf := gofpdf.New("P", "mm", "A4", "") // Portrait, mm, A4, default font dir
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	return &PDFSink{
		pdf:   pdf,
		style: style,
		// Core fonts are cp1252; map UTF-8 text onto it.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (s *PDFSink) WriteHeader(h Header) error {
	s.pdf.AddPage()
	s.pdf.SetFont("Helvetica", "B", pdfFontSize+3)
	s.pdf.SetTextColor(0, 0, 0)
	s.cell(fmt.Sprintf("%s - %s", h.Title, h.Requested))
	s.pdf.Ln(pdfLineHeight / 2)

	s.pdf.SetFont("Helvetica", "", pdfFontSize)
	s.cell(fmt.Sprintf("Root Directory: %s\nTarget Folder: %s\nTarget File Types: %s\nTraversal Order: %s",
		h.Root, h.Target, h.Suffixes, traversalOrder))
	return s.pdf.Error()
}

func (s *PDFSink) WriteRecord(rec FileRecord) error {
	s.pdf.AddPage()
	s.pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	s.pdf.SetTextColor(0, 0, 0)
	s.cell(fmt.Sprintf("[FILE] %s", rec.Path))
	s.pdf.Ln(pdfLineHeight / 2)
	s.pdf.Line(pdfMargin, s.pdf.GetY(), pdfPageWidth-pdfMargin, s.pdf.GetY())
	s.pdf.Ln(pdfLineHeight / 2)

	if rec.Err != nil {
		s.pdf.SetFont("Courier", "", pdfFontSize)
		s.pdf.SetTextColor(255, 0, 0)
		s.cell(rec.Text())
		return s.pdf.Error()
	}
	if err := s.writeHighlighted(rec.Path, rec.Content); err != nil {
		s.pdf.SetFont("Courier", "", pdfFontSize)
		s.pdf.SetTextColor(0, 0, 0)
		s.cell(expandTabs(rec.Content))
	}
	return s.pdf.Error()
}

// Save writes the PDF to outputPath.
func (s *PDFSink) Save(outputPath string) error {
	if err := s.pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}

func (s *PDFSink) cell(text string) {
	s.pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, s.tr(text), "", "L", false)
}

// writeHighlighted writes code token by token with the style's colors.
func (s *PDFSink) writeHighlighted(filePath, code string) error {
	lexer := lexers.Match(path.Base(filePath))
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	s.pdf.SetFont("Courier", "", pdfFontSize)
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := s.style.Get(token.Type)
		styleStr := ""
		if entry.Bold == chroma.Yes {
			styleStr += "B"
		}
		if entry.Italic == chroma.Yes {
			styleStr += "I"
		}
		s.pdf.SetFontStyle(styleStr)

		if entry.Colour.IsSet() {
			s.pdf.SetTextColor(int(entry.Colour.Red()), int(entry.Colour.Green()), int(entry.Colour.Blue()))
		} else {
			s.pdf.SetTextColor(0, 0, 0)
		}
		s.pdf.Write(pdfLineHeight, s.tr(expandTabs(token.Value)))
	}
	s.pdf.Ln(-1)
	return nil
}

func expandTabs(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", pdfTabWidth))
}
