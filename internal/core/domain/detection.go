package domain

import "time"

// Detector keys. The fixed set of eight heuristic sub-detectors; the five
// *_style keys double as the model-attribution buckets.
const (
	DetectorBurstiness        = "burstiness"
	DetectorStatistical       = "statistical"
	DetectorPhraseFingerprint = "phrase_fingerprint"
	DetectorGPTStyle          = "gpt_style"
	DetectorGeminiStyle       = "gemini_style"
	DetectorClaudeStyle       = "claude_style"
	DetectorDeepSeekStyle     = "deepseek_style"
	DetectorLlamaStyle        = "llama_style"
)

// MixedModel is reported when attribution cannot separate the top two
// model buckets.
const MixedModel = "Mixed/Uncertain"

// BaselineResult is the genre calibration for one document. The adjustment
// only ever lowers the AI score; the penalty only ever discounts confidence.
type BaselineResult struct {
	DocumentType        DocumentType   `json:"document_type"`
	IsSpecialized       bool           `json:"is_specialized"`
	PatternCount        int            `json:"pattern_count"`
	PatternsByCategory  map[string]int `json:"patterns_by_category"`
	AIScoreAdjustment   float64        `json:"ai_score_adjustment"`
	ConfidencePenalty   float64        `json:"confidence_penalty"`
	Warnings            []string       `json:"warnings"`
	DetectedConventions []string       `json:"detected_conventions"`
}

// ModelAttribution is the secondary which-model decision. Model is nil when
// no bucket clears the floor, MixedModel when the margin is too thin.
type ModelAttribution struct {
	Model       *string            `json:"model"`
	Confidence  float64            `json:"confidence"`
	Analysis    string             `json:"analysis"`
	ModelScores map[string]float64 `json:"model_scores"`
}

type FlaggedSection struct {
	Section      int     `json:"section"`
	Text         string  `json:"text"`
	AILikelihood float64 `json:"ai_likelihood"`
}

type ConfidenceInterval struct {
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Display string  `json:"display"`
}

// ConsensusResult is the externally consumed detection artifact. All scores
// are on the [0,1] scale; render layers multiply by 100 at presentation
// boundaries only.
type ConsensusResult struct {
	AIDetectionScore        float64            `json:"ai_detection_score"`
	Confidence              float64            `json:"confidence"`
	Detected                bool               `json:"detected"`
	LikelyAIModel           ModelAttribution   `json:"likely_ai_model"`
	FlaggedSections         []FlaggedSection   `json:"flagged_sections"`
	Interpretation          string             `json:"interpretation"`
	Recommendation          string             `json:"recommendation"`
	Methods                 []string           `json:"methods"`
	ModelScores             map[string]float64 `json:"model_scores"`
	Timestamp               time.Time          `json:"timestamp"`
	DetectionInconclusive   bool               `json:"detection_inconclusive"`
	InconclusiveReason      *string            `json:"inconclusive_reason"`
	ScoreConfidenceInterval ConfidenceInterval `json:"score_confidence_interval"`
	DocumentBaseline        *BaselineResult    `json:"document_baseline,omitempty"`
	DetectedDocumentType    DocumentType       `json:"detected_document_type"`
	DomainWarnings          []string           `json:"domain_warnings,omitempty"`
	DetectionSpread         float64            `json:"detection_spread"`
}

// SectionScore is one document section re-scored with the full consensus
// pipeline (deep-analysis level 2).
type SectionScore struct {
	Index        int     `json:"index"`
	Heading      string  `json:"heading,omitempty"`
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	Inconclusive bool    `json:"inconclusive"`
}

type SectionLevelResult struct {
	Sections     []SectionScore `json:"sections"`
	AverageScore float64        `json:"average_score"`
}

type SentenceLevelResult struct {
	AICount    int     `json:"ai_count"`
	HumanCount int     `json:"human_count"`
	Total      int     `json:"total"`
	AIFraction float64 `json:"ai_fraction"`
}

// FingerprintLevelResult is deep-analysis level 3: a raw pattern-count total
// plus its explicit normalization to [0,1]. RawPatternCount is kept so the
// report can still show the unnormalized figure.
type FingerprintLevelResult struct {
	RawPatternCount int     `json:"raw_pattern_count"`
	Score           float64 `json:"score"`
}

// ModelFingerprintResult is deep-analysis level 5: per-model keyword
// fingerprints, confidence from match density per 1000 characters.
type ModelFingerprintResult struct {
	Matches    map[string]int `json:"matches"`
	BestModel  string         `json:"best_model,omitempty"`
	Confidence float64        `json:"confidence"`
}

// StylometryResult is deep-analysis level 6. Score is in [0,1]; Label is the
// discrete LOW/MEDIUM/HIGH confidence derived from the indicator count.
type StylometryResult struct {
	AvgSentenceLength float64  `json:"avg_sentence_length"`
	PerplexityProxy   float64  `json:"perplexity_proxy"`
	Burstiness        float64  `json:"burstiness"`
	LexicalDiversity  float64  `json:"lexical_diversity"`
	Readability       float64  `json:"readability"`
	Indicators        []string `json:"indicators"`
	Score             float64  `json:"score"`
	Label             string   `json:"label"`
}

// DeepConsensus combines the five levels. Score averages levels 1, 2, 4 and 6
// only; levels 3 and 5 vote on PrimaryModel but carry no numeric weight.
// TransparencyScore is on [0,100] and measures inter-level agreement.
type DeepConsensus struct {
	Score             float64            `json:"score"`
	LevelScores       map[string]float64 `json:"level_scores"`
	PrimaryModel      string             `json:"primary_model,omitempty"`
	ModelVotes        map[string]int     `json:"model_votes,omitempty"`
	TransparencyScore float64            `json:"transparency_score"`
}

type DeepAnalysisResult struct {
	Level1      *ConsensusResult        `json:"level1"`
	Sections    *SectionLevelResult     `json:"sections"`
	Fingerprint *FingerprintLevelResult `json:"fingerprint"`
	Sentences   *SentenceLevelResult    `json:"sentences"`
	Models      *ModelFingerprintResult `json:"models"`
	Stylometry  *StylometryResult       `json:"stylometry"`
	Consensus   DeepConsensus           `json:"consensus"`
}
