package detection

import "github.com/opengovlab/docucert/internal/core/domain"

// Service adapts the engine and deep analyzer to the analyzer port used by
// the certification pipeline.
type Service struct {
	engine *Engine
	deep   *DeepAnalyzer
}

func NewService(engine *Engine, deep *DeepAnalyzer) *Service {
	return &Service{engine: engine, deep: deep}
}

func (s *Service) Analyze(text, typeHint string) *domain.ConsensusResult {
	return s.engine.AnalyzeText(text, Options{DocumentTypeHint: typeHint})
}

func (s *Service) DeepAnalyze(text, typeHint string) *domain.DeepAnalysisResult {
	return s.deep.Analyze(text, Options{DocumentTypeHint: typeHint})
}
