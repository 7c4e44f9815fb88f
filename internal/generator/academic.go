package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// AcademicGenerator assembles the section based GI registration paper from
// a row's form fields and writes the artifact through an ArtifactStore.
// Rendering to a typeset format is out of scope; the paper body is plain
// markdown.
type AcademicGenerator struct {
	artifacts ArtifactStore
}

func NewAcademicGenerator(artifacts ArtifactStore) *AcademicGenerator {
	return &AcademicGenerator{artifacts: artifacts}
}

var _ Generator = (*AcademicGenerator)(nil)

func (g *AcademicGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if req.Name == "" {
		return "", errors.New("row has no GI name")
	}

	body := g.compose(req)
	filename := ArtifactFilename(req.Name, req.Date)

	if err := g.artifacts.Put(ctx, filename, []byte(body)); err != nil {
		return "", errors.Wrapf(err, "failed to store paper %s", filename)
	}

	return filename, nil
}

func (g *AcademicGenerator) compose(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Geographical Indication Registration Paper: %s\n\n", req.Name)
	fmt.Fprintf(&b, "Date: %s\n\nSignature: %s\n\n", req.Date, req.Signature)

	fmt.Fprintf(&b, "## Abstract\n\n%s, a product of %s, is presented for GI protection. %s\n\n",
		req.Name, orUnknown(req.Location), req.Description)

	fmt.Fprintf(&b, "## Introduction\n\n%s originates from %s. The connection between the region and the product's unique characteristics forms the basis of this application.\n\n",
		req.Name, orUnknown(req.Location))

	fmt.Fprintf(&b, "## Methodology\n\nThe product description provided by the applicant follows:\n\n%s\n\n", req.Description)

	if extra := req.Cells[min(3, len(req.Cells)):]; len(extra) > 0 {
		b.WriteString("## Supporting Responses\n\n")
		for _, cell := range extra {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			fmt.Fprintf(&b, "- %s\n", cell)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Conclusion\n\nOn the basis of the evidence above, %s qualifies for registration as a Geographical Indication of %s.\n\nSigned: %s, %s\n",
		req.Name, orUnknown(req.Location), req.Signature, req.Date)

	return b.String()
}

// ArtifactFilename follows the original tool's naming scheme,
// gi_paper_<name>_<date> with spaces replaced by underscores.
func ArtifactFilename(name, date string) string {
	return fmt.Sprintf("gi_paper_%s_%s.md", strings.ReplaceAll(name, " ", "_"), date)
}

func orUnknown(s string) string {
	if s == "" {
		return "an unspecified region"
	}
	return s
}
