package keywords

// Default keyword tables for the AI news domain. Kept as a function so each
// component gets its own immutable copy instead of sharing a mutable global.

// DefaultTables returns the built-in company and topic keyword tables.
func DefaultTables() Tables {
	return Tables{
		Companies: map[string][]string{
			// Tier 1 (established leaders)
			"openai": {
				"openai", "chatgpt", "gpt-4", "gpt4", "gpt-4o", "gpt4o", "gpt-5",
				"o1", "o3", "sora", "dall-e", "dalle", "whisper", "sam altman", "open ai",
			},
			"anthropic": {
				"anthropic", "claude", "claude 3", "claude 3.5", "claude 4",
				"constitutional ai", "dario amodei", "claude ai",
			},
			"google": {
				"google ai", "google deepmind", "deepmind", "gemini", "bard",
				"palm 2", "palm2", "imagen", "veo", "alphafold", "demis hassabis",
				"google gemini", "vertex ai",
			},
			"microsoft": {
				"microsoft ai", "copilot", "azure ai", "bing ai", "microsoft research",
				"phi-3", "phi3", "phi-4", "phi4", "satya nadella",
			},
			"meta": {
				`re:\bmeta\b`, "meta ai", "llama", "llama 2", "llama 3", "llama 4",
				"yann lecun", "meta llama", "meta generative ai",
			},
			"xai": {
				"xai", "x ai", "grok", "elon musk ai", "x.ai",
			},
			"amazon": {
				"amazon ai", "aws ai", "alexa ai", "bedrock", "sagemaker",
				"aws bedrock", "amazon q", "amazon titan",
			},
			"apple": {
				"apple intelligence", "apple ai", "apple machine learning",
				"siri ai", "mlx", "apple ml",
			},
			"nvidia": {
				"nvidia", "jensen huang", "h100", "h200", "a100", "b200",
				"blackwell", "dgx", "cuda", "tensorrt", "nvidia ai",
			},

			// Tier 2 (emerging / notable)
			"deepseek": {
				"deepseek", "deep seek", "deepseek v3", "deepseek r1",
			},
			"mistral": {
				"mistral", "mistral ai", "mistral 7b", "mixtral", "mistral large", "le chat",
			},
			"cohere": {
				"cohere", "command r", "aidan gomez",
			},
			"perplexity": {
				"perplexity", "perplexity ai", "pplx",
			},
			"midjourney": {
				"midjourney",
			},
			"stability": {
				"stability ai", "stable diffusion", "sd3", "stable video",
			},
			"figure": {
				"figure ai", "figure 01", "figure 02", "figure robotics",
			},
			"huggingface": {
				"huggingface", "hugging face",
			},
		},
		Tier1: []string{
			"openai", "anthropic", "google", "microsoft", "meta", "xai",
			"amazon", "apple", "nvidia",
		},
		Topics: map[string][]string{
			"safety": {
				"ai safety", "alignment", "existential risk", "misalignment",
				"interpretability", "red team", "jailbreak",
			},
			"controversy": {
				"controversy", "lawsuit", "backlash", "scandal", "fired",
				"resignation", "leaked", "copyright dispute",
			},
			"regulation": {
				"regulation", "compliance", "ai act", "executive order",
				"governance", "oversight", "safety standards",
			},
			"agentic": {
				`re:\bagents?\b`, `re:\bagentic\b`, "ai agent", "autonomous agent",
				"agent framework", "agent orchestration",
			},
			"reasoning": {
				`re:\breasoning\b`, "chain of thought", "system 2",
				"logical reasoning", "multistep reasoning",
			},
			"open_source": {
				"open source", "opensource", "weights release", "model release",
				"open weights",
			},
			"multimodal": {
				"multimodal", "vision language", "image generation",
				"video generation", "text to image", "text to video",
			},
			"robotics": {
				"robot", "robotics", "humanoid", "embodied", "robotic learning",
			},
			"coding": {
				"coding", "code generation", "developer tools", "code assistant",
			},
			"funding": {
				"funding", "raises", "valuation", "acquisition", "series a",
				"series b", "investment round",
			},
			"china": {
				"china ai", "chinese ai", "beijing ai", "shenzhen ai",
			},
			"benchmark": {
				"benchmark", "leaderboard", "mmlu", "evals",
			},
			"rumor": {
				"rumor", "rumour", "reportedly", "sources say", "leak suggests",
			},
		},
		TopicWeights: map[string]int{
			"safety":      30,
			"controversy": 28,
			"regulation":  25,
			"agentic":     20,
			"reasoning":   18,
			"open_source": 15,
			"funding":     14,
			"multimodal":  12,
			"robotics":    12,
			"coding":      10,
			"china":       10,
			"benchmark":   6,
			"rumor":       4,
		},
	}
}

// BreakingKeywords are title phrases that mark a story as breaking news when
// it involves a primary company.
func BreakingKeywords() []string {
	return []string{
		"just released", "announces", "launches", "unveils", "breakthrough",
		"major update", "acquisition", "partnership", "gpt-5", "claude 4",
	}
}

// PrimaryCompanies are the company keys that can trigger breaking-news flags.
func PrimaryCompanies() []string {
	return []string{"openai", "anthropic", "google", "deepseek"}
}
