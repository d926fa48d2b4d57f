// Package extractor routes a document to the format-specific text extractor
// by MIME type, falling back to the filename extension.
package extractor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/opengovlab/docucert/internal/core/domain"
	"github.com/opengovlab/docucert/internal/core/ports"
)

type Router struct {
	plaintext ports.TextExtractor
	pdf       ports.TextExtractor
}

func NewRouter(plaintext, pdf ports.TextExtractor) *Router {
	return &Router{plaintext: plaintext, pdf: pdf}
}

func (r *Router) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if r.isPDF(doc) {
		return r.pdf.Extract(ctx, doc)
	}
	return r.plaintext.Extract(ctx, doc)
}

func (r *Router) isPDF(doc *domain.Document) bool {
	if strings.EqualFold(doc.MimeType, "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(doc.Filename), ".pdf")
}
