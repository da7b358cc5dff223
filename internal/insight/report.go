// Package insight 在核心匹配流水线之外给出面向候选人的增值分析:
// ATS兼容性、得分归因解释、技能熟练度与简历改写建议。
// 全部是对已有文本和得分的本地再加工，不引入新的外部调用。
package insight

import (
	"regexp"
	"sort"

	"resume-match-go/internal/extractor"
	"resume-match-go/internal/types"
)

// sentencePattern 句子切分边界
var sentencePattern = regexp.MustCompile(`[.!?]+\s+`)

// Analyzer 增值分析器，依赖实体抽取器做关键词对齐
type Analyzer struct {
	extractor *extractor.Extractor
}

// NewAnalyzer 创建增值分析器
func NewAnalyzer(ex *extractor.Extractor) *Analyzer {
	return &Analyzer{extractor: ex}
}

// Report 一次匹配运行附带的增值分析汇总
type Report struct {
	ATS                *ATSReport            `json:"ats,omitempty"`
	Explanation        *Explanation          `json:"explanation,omitempty"`
	SkillConfidence    *SkillStrengthSummary `json:"skill_confidence,omitempty"`
	RewriteSuggestions []RewriteSuggestion   `json:"rewrite_suggestions,omitempty"`
}

// Analyze 生成完整的增值分析报告。
// sections与weights来自评分阶段，matchScore为0-100的加权总分。
func (a *Analyzer) Analyze(resumeText, jobText string, sections types.SectionScores, weights types.WeightVector, matchScore float64) *Report {
	return &Report{
		ATS:                a.AnalyzeATS(resumeText, jobText),
		Explanation:        a.ExplainScore(resumeText, jobText, sections, weights, matchScore),
		SkillConfidence:    a.SummarizeSkillStrength(resumeText),
		RewriteSuggestions: a.SuggestRewrites(resumeText, jobText, maxRewriteSuggestions),
	}
}

func splitSentences(text string) []string {
	return sentencePattern.Split(text, -1)
}

// sortedKeys 返回按字典序排序的map键，保证遍历顺序确定
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
