package insight

import (
	"strings"

	"resume-match-go/internal/extractor"
)

// 表明深度经验的强动词
var strongVerbs = []string{
	"architected", "designed", "built", "developed", "implemented", "created",
	"engineered", "optimized", "led", "managed", "established", "founded",
	"transformed", "improved", "enhanced", "deployed", "scaled", "migrated",
}

// 中等强度动词
var moderateVerbs = []string{
	"worked", "used", "utilized", "applied", "assisted", "contributed",
	"participated", "collaborated", "supported", "helped", "involved",
}

// 经验强度指示词
var experienceIndicators = []string{
	"years", "year", "months", "month", "experience", "experienced",
	"proficient", "expert", "advanced", "senior", "lead", "principal",
}

// SkillConfidence 单个技能的熟练度分析
type SkillConfidence struct {
	Skill    string   `json:"skill"`
	Mentions int      `json:"mentions"`
	Verbs    []string `json:"verbs"`
	Contexts []string `json:"contexts"`
	Level    string   `json:"level"` // strong / moderate / weak
}

// SkillStrengthSummary 按强弱归类的技能熟练度汇总
type SkillStrengthSummary struct {
	Strong   []string                   `json:"strong"`
	Moderate []string                   `json:"moderate"`
	Weak     []string                   `json:"weak"`
	Details  map[string]SkillConfidence `json:"details"`
}

// SummarizeSkillStrength 对简历中抽取到的每个技能评估熟练度：
// 统计提及次数，并在含该技能的句子里找动词强度和经验指示词。
// 提及≥3且强动词≥2为strong；提及≥1为moderate；其余为weak。
func (a *Analyzer) SummarizeSkillStrength(resumeText string) *SkillStrengthSummary {
	skills := a.extractor.ExtractSkills(resumeText)
	sentences := splitSentences(resumeText)
	resumeLower := strings.ToLower(resumeText)

	summary := &SkillStrengthSummary{
		Strong:   []string{},
		Moderate: []string{},
		Weak:     []string{},
		Details:  make(map[string]SkillConfidence, len(skills)),
	}

	for _, skill := range skills.Sorted() {
		pattern := extractor.WordPattern(strings.ToLower(skill))
		mentions := len(pattern.FindAllStringIndex(resumeLower, -1))

		verbs := []string{}
		contexts := []string{}
		strongCount := 0

		for _, sentence := range sentences {
			sentenceLower := strings.ToLower(sentence)
			if !pattern.MatchString(sentenceLower) {
				continue
			}

			for _, verb := range strongVerbs {
				if extractor.WordPattern(verb).MatchString(sentenceLower) {
					verbs = append(verbs, verb)
					strongCount++
					break
				}
			}
			for _, verb := range moderateVerbs {
				if extractor.WordPattern(verb).MatchString(sentenceLower) {
					verbs = append(verbs, verb)
					break
				}
			}
			for _, indicator := range experienceIndicators {
				if extractor.WordPattern(indicator).MatchString(sentenceLower) {
					contexts = append(contexts, indicator)
				}
			}
		}

		level := classifyStrength(mentions, strongCount, len(contexts) > 0)

		summary.Details[skill] = SkillConfidence{
			Skill:    skill,
			Mentions: mentions,
			Verbs:    verbs,
			Contexts: contexts,
			Level:    level,
		}

		switch level {
		case "strong":
			summary.Strong = append(summary.Strong, skill)
		case "moderate":
			summary.Moderate = append(summary.Moderate, skill)
		default:
			summary.Weak = append(summary.Weak, skill)
		}
	}

	return summary
}

func classifyStrength(mentions, strongVerbCount int, hasIndicator bool) string {
	switch {
	case mentions >= 3 && strongVerbCount >= 2:
		return "strong"
	case mentions >= 2 && (strongVerbCount >= 1 || hasIndicator):
		return "moderate"
	case mentions >= 1:
		return "moderate"
	default:
		return "weak"
	}
}
