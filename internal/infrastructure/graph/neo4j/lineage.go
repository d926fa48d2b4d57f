// Package neo4j records certification lineage: which document, with which
// content hash, received which verdict and attribution. The graph is an
// optional audit surface; write failures are reported to the caller and
// logged there, never retried.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/opengovlab/docucert/internal/core/domain"
)

type LineageRecorder struct {
	driver neo4j.DriverWithContext
}

func New(ctx context.Context, uri, user, password string) (*LineageRecorder, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &LineageRecorder{driver: driver}, nil
}

func (r *LineageRecorder) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *LineageRecorder) RecordCertification(ctx context.Context, doc *domain.Document, report *domain.CertificationReport) error {
	params := map[string]any{
		"docID":        doc.ID,
		"filename":     doc.Filename,
		"sha256":       doc.SHA256,
		"docType":      string(report.Detection.DetectedDocumentType),
		"aiScore":      report.Detection.AIDetectionScore,
		"inconclusive": report.Detection.DetectionInconclusive,
		"generatedAt":  report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if model := report.Detection.LikelyAIModel.Model; model != nil {
		params["model"] = *model
	} else {
		params["model"] = ""
	}

	const query = `
MERGE (d:Document {id: $docID})
SET d.filename = $filename, d.sha256 = $sha256, d.type = $docType
MERGE (c:Certification {documentId: $docID, generatedAt: $generatedAt})
SET c.aiScore = $aiScore, c.inconclusive = $inconclusive
MERGE (d)-[:CERTIFIED_BY]->(c)
FOREACH (_ IN CASE WHEN $model <> '' THEN [1] ELSE [] END |
	MERGE (m:ModelFamily {name: $model})
	MERGE (c)-[:ATTRIBUTED_TO]->(m)
)
`
	_, err := neo4j.ExecuteQuery(ctx, r.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return fmt.Errorf("record certification lineage: %w", err)
	}
	return nil
}
