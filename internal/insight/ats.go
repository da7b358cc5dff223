package insight

import (
	"fmt"
	"strings"

	"resume-match-go/internal/extractor"
)

// ATS系统普遍能识别的标准章节标题
var standardHeaders = []string{
	"experience", "work experience", "employment", "professional experience",
	"education", "academic background", "qualifications",
	"skills", "technical skills", "core competencies",
	"summary", "professional summary", "objective", "profile",
	"certifications", "certificates", "awards", "achievements",
	"projects", "publications", "languages",
}

// 缺失时必须提示的关键章节
var criticalSections = []string{"experience", "education", "skills"}

// KeywordPlacement 单个岗位关键词在简历中的出现情况
type KeywordPlacement struct {
	Present        bool   `json:"present"`
	Mentions       int    `json:"mentions"`
	Recommendation string `json:"recommendation"` // good / increase / add
}

// ATSReport 简历的ATS兼容性分析结果
type ATSReport struct {
	ATSScore         int                         `json:"ats_score"`
	Issues           []string                    `json:"issues"`
	Suggestions      []string                    `json:"suggestions"`
	MissingSections  []string                    `json:"missing_sections"`
	KeywordPlacement map[string]KeywordPlacement `json:"keyword_placement"`
	Recommendations  []string                    `json:"recommendations"`
}

// AnalyzeATS 检查简历的章节结构和岗位关键词覆盖，给出0-100的兼容性评分。
// 每缺一个关键章节扣20分，每个问题再扣5分。
func (a *Analyzer) AnalyzeATS(resumeText, jobText string) *ATSReport {
	resumeLower := strings.ToLower(resumeText)

	foundHeaders := make(map[string]bool)
	for _, header := range standardHeaders {
		if extractor.WordPattern(header).MatchString(resumeLower) {
			foundHeaders[header] = true
		}
	}

	issues := []string{}
	suggestions := []string{}
	missingSections := []string{}

	for _, section := range criticalSections {
		sectionFound := false
		for _, header := range standardHeaders {
			if strings.Contains(header, section) && foundHeaders[header] {
				sectionFound = true
				break
			}
		}
		if !sectionFound {
			missingSections = append(missingSections, section)
			issues = append(issues, fmt.Sprintf("Missing '%s' section header", section))
			suggestions = append(suggestions, fmt.Sprintf("Add a clear '%s' section header", capitalize(section)))
		}
	}

	keywordPlacement := map[string]KeywordPlacement{}
	if strings.TrimSpace(jobText) != "" {
		jobSkills := a.extractor.ExtractSkills(jobText)
		resumeSkills := a.extractor.ExtractSkills(resumeText)

		missingKeywords := jobSkills.Diff(resumeSkills).Sorted()
		if len(missingKeywords) > 0 {
			top := missingKeywords
			if len(top) > 5 {
				top = top[:5]
			}
			suggestions = append(suggestions,
				fmt.Sprintf("Consider adding these job keywords: %s", strings.Join(top, ", ")))
		}

		for _, skill := range jobSkills.Sorted() {
			if resumeSkills.Contains(skill) {
				mentions := len(extractor.WordPattern(strings.ToLower(skill)).FindAllStringIndex(resumeLower, -1))
				recommendation := "increase"
				if mentions >= 2 {
					recommendation = "good"
				}
				keywordPlacement[skill] = KeywordPlacement{
					Present:        true,
					Mentions:       mentions,
					Recommendation: recommendation,
				}
			} else {
				keywordPlacement[skill] = KeywordPlacement{Recommendation: "add"}
			}
		}
	}

	score := 100 - len(missingSections)*20 - len(issues)*5
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	report := &ATSReport{
		ATSScore:         score,
		Issues:           issues,
		Suggestions:      suggestions,
		MissingSections:  missingSections,
		KeywordPlacement: keywordPlacement,
	}
	report.Recommendations = buildRecommendations(report)
	return report
}

// buildRecommendations 按优先级汇总建议：关键章节缺失最先，其次关键词，最后格式建议
func buildRecommendations(report *ATSReport) []string {
	recommendations := []string{}

	if len(report.MissingSections) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("CRITICAL: Add missing sections: %s", strings.Join(report.MissingSections, ", ")))
	}

	missing := []string{}
	for _, skill := range sortedKeys(report.KeywordPlacement) {
		if !report.KeywordPlacement[skill].Present {
			missing = append(missing, skill)
		}
	}
	if len(missing) > 0 {
		if len(missing) > 5 {
			missing = missing[:5]
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Add these keywords: %s", strings.Join(missing, ", ")))
	}

	suggestionCap := len(report.Suggestions)
	if suggestionCap > 3 {
		suggestionCap = 3
	}
	recommendations = append(recommendations, report.Suggestions[:suggestionCap]...)

	return recommendations
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
