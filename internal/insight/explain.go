package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"resume-match-go/internal/types"
)

// 负面措辞，出现在简历句子里会拉低印象
var negativePhrases = []string{"lack", "no experience", "not familiar", "limited"}

// SectionImpact 单个维度对最终得分的影响
type SectionImpact struct {
	Score        float64 `json:"score"`        // 维度得分 0-100
	Weight       float64 `json:"weight"`       // 权重 0-100
	Contribution float64 `json:"contribution"` // 对总分的贡献
	Status       string  `json:"status"`       // strong / moderate / weak
}

// Strength 得分的正向因素
type Strength struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// Weakness 得分的负向因素
type Weakness struct {
	Section string  `json:"section"`
	Message string  `json:"message"`
	Impact  float64 `json:"impact"`
}

// LineHighlight 简历中对得分有影响的句子
type LineHighlight struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Explanation 得分归因解释
type Explanation struct {
	SectionImpact         map[string]SectionImpact `json:"section_impact"`
	StrongMatches         []string                 `json:"strong_matches"`
	MissingCriticalSkills []string                 `json:"missing_critical_skills"`
	TopStrengths          []Strength               `json:"top_strengths"`
	TopWeaknesses         []Weakness               `json:"top_weaknesses"`
	TotalContribution     float64                  `json:"total_contribution"`
	LowScoreReasons       []string                 `json:"low_score_reasons,omitempty"`
	HelpfulLines          []LineHighlight          `json:"helpful_lines"`
	HurtfulLines          []LineHighlight          `json:"hurtful_lines"`
}

// ExplainScore 解释得分构成：各维度的贡献与强弱、强匹配技能、
// 缺失的关键技能、低分原因，以及简历中帮到或拖累得分的句子。
func (a *Analyzer) ExplainScore(resumeText, jobText string, sections types.SectionScores, weights types.WeightVector, matchScore float64) *Explanation {
	impact := map[string]SectionImpact{
		"skills":     sectionImpact(sections.Skills, weights.Skills),
		"experience": sectionImpact(sections.Experience, weights.Experience),
		"education":  sectionImpact(sections.Education, weights.Education),
		"tools":      sectionImpact(sections.Tools, weights.Tools),
	}

	resumeSkills := a.extractor.ExtractSkills(resumeText)
	jobSkills := a.extractor.ExtractSkills(jobText)

	strongMatches := resumeSkills.Intersect(jobSkills).Sorted()
	if len(strongMatches) > 10 {
		strongMatches = strongMatches[:10]
	}
	missingCritical := jobSkills.Diff(resumeSkills).Sorted()
	if len(missingCritical) > 10 {
		missingCritical = missingCritical[:10]
	}

	strengths := []Strength{}
	weaknesses := []Weakness{}
	total := 0.0
	for _, section := range sortedKeys(impact) {
		data := impact[section]
		total += data.Contribution
		switch data.Status {
		case "strong":
			strengths = append(strengths, Strength{
				Section: section,
				Message: fmt.Sprintf("Strong %s match (%.1f%%)", section, data.Score),
			})
		case "weak":
			impactLoss := (100 - data.Score) * data.Weight / 100
			weaknesses = append(weaknesses, Weakness{
				Section: section,
				Message: fmt.Sprintf("%s section reduces score by %.1f%%", capitalize(section), impactLoss),
				Impact:  round2(impactLoss),
			})
		}
	}
	// 按损失从大到小排序，损失相同时按名称保证确定性
	sort.SliceStable(weaknesses, func(i, j int) bool {
		return weaknesses[i].Impact > weaknesses[j].Impact
	})
	if len(strengths) > 5 {
		strengths = strengths[:5]
	}
	if len(weaknesses) > 5 {
		weaknesses = weaknesses[:5]
	}

	explanation := &Explanation{
		SectionImpact:         impact,
		StrongMatches:         strongMatches,
		MissingCriticalSkills: missingCritical,
		TopStrengths:          strengths,
		TopWeaknesses:         weaknesses,
		TotalContribution:     round2(total),
	}
	explanation.LowScoreReasons = lowScoreReasons(matchScore, explanation)

	helpful, hurtful := a.highlightLines(resumeText, jobSkills)
	explanation.HelpfulLines = helpful
	explanation.HurtfulLines = hurtful

	return explanation
}

func sectionImpact(score, weight float64) SectionImpact {
	status := "weak"
	if score > 0.7 {
		status = "strong"
	} else if score > 0.4 {
		status = "moderate"
	}
	return SectionImpact{
		Score:        round2(score * 100),
		Weight:       round2(weight * 100),
		Contribution: round2(score * weight * 100),
		Status:       status,
	}
}

// lowScoreReasons 总分低于50时给出最多5条原因
func lowScoreReasons(matchScore float64, explanation *Explanation) []string {
	if matchScore >= 50 {
		return nil
	}

	reasons := []string{}
	if len(explanation.MissingCriticalSkills) > 0 {
		top := explanation.MissingCriticalSkills
		if len(top) > 3 {
			top = top[:3]
		}
		reasons = append(reasons, fmt.Sprintf("Missing critical skills: %s", strings.Join(top, ", ")))
	}

	for i, weakness := range explanation.TopWeaknesses {
		if i >= 3 {
			break
		}
		reasons = append(reasons, weakness.Message)
	}

	for _, section := range sortedKeys(explanation.SectionImpact) {
		if data := explanation.SectionImpact[section]; data.Score < 30 {
			reasons = append(reasons, fmt.Sprintf("Very low %s match (%.1f%%)", section, data.Score))
		}
	}

	if len(reasons) > 5 {
		reasons = reasons[:5]
	}
	return reasons
}

// highlightLines 按句子扫描简历：含岗位技能的句子记为加分句，
// 含负面措辞的句子记为减分句。加分句最多5条，减分句最多3条。
func (a *Analyzer) highlightLines(resumeText string, jobSkills types.StringSet) ([]LineHighlight, []LineHighlight) {
	helpful := []LineHighlight{}
	hurtful := []LineHighlight{}

	for _, sentence := range splitSentences(resumeText) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}

		matching := a.extractor.ExtractSkills(trimmed).Intersect(jobSkills).Sorted()
		if len(matching) > 0 {
			if len(helpful) < 5 {
				top := matching
				if len(top) > 3 {
					top = top[:3]
				}
				helpful = append(helpful, LineHighlight{
					Text:   truncateSentence(trimmed),
					Reason: fmt.Sprintf("Contains matching skills: %s", strings.Join(top, ", ")),
				})
			}
			continue
		}

		if len(hurtful) < 3 && containsAnyPhrase(strings.ToLower(trimmed), negativePhrases) {
			hurtful = append(hurtful, LineHighlight{
				Text:   truncateSentence(trimmed),
				Reason: "Contains negative language",
			})
		}
	}

	return helpful, hurtful
}

func truncateSentence(s string) string {
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}

func containsAnyPhrase(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
