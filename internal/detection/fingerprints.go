package detection

// Per-model keyword fingerprints for deep-analysis level 5. Counting is
// case-insensitive substring matching; confidence comes from match density
// per 1000 characters, not from the consensus confidence formula.
var modelKeywordFingerprints = map[string][]string{
	"GPT": {
		"delve", "tapestry", "multifaceted", "in today's rapidly evolving",
		"it's important to note", "navigate the complexities", "landscape of",
	},
	"Gemini": {
		"great question", "let's dive in", "think of it like", "in a nutshell",
		"happy to help", "let's break it down",
	},
	"Claude": {
		"i'm claude", "it's important to consider", "i should note",
		"ethical considerations", "to be honest", "i want to be careful",
	},
	"DeepSeek": {
		"```", "optimise", "analyse", "algorithm", "complexity", "whilst",
	},
	"Llama": {
		"key findings", "stakeholder", "actionable", "best practices",
		"according to", "leverage",
	},
}

// fingerprintOrder fixes map iteration for deterministic vote output.
var fingerprintOrder = []string{"GPT", "Gemini", "Claude", "DeepSeek", "Llama"}

// fingerprintNormalizer converts the level-3 raw pattern total to [0,1].
// The raw count is preserved alongside; only the score enters level math.
const fingerprintNormalizer = 50.0
