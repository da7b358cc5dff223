package insight

import (
	"fmt"
	"regexp"
	"strings"

	"resume-match-go/internal/extractor"
	"resume-match-go/internal/types"
)

// maxRewriteSuggestions 默认给出的改写建议上限
const maxRewriteSuggestions = 5

// maxBulletsAnalyzed 参与分析的要点行上限
const maxBulletsAnalyzed = 20

// 弱动词到强动词的替换表
var actionVerbTemplates = map[string][]string{
	"improved": {"optimized", "enhanced", "streamlined", "refined"},
	"worked":   {"developed", "implemented", "designed", "built"},
	"helped":   {"contributed to", "supported", "facilitated", "enabled"},
	"did":      {"executed", "delivered", "achieved", "accomplished"},
	"made":     {"created", "established", "founded", "initiated"},
}

var bulletMarkerPattern = regexp.MustCompile(`^[-•*]\s+`)
var numberedItemPattern = regexp.MustCompile(`^\d+[.)]\s+`)

// RewriteSuggestion 单条简历要点的改写建议
type RewriteSuggestion struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
}

// SuggestRewrites 找出简历中的要点行，把弱动词替换为强动词并提示补充岗位技能。
// 只对含岗位相关技能或弱动词的要点给建议，数量不超过maxSuggestions。
func (a *Analyzer) SuggestRewrites(resumeText, jobText string, maxSuggestions int) []RewriteSuggestion {
	jobSkills := a.extractor.ExtractSkills(jobText)

	suggestions := []RewriteSuggestion{}
	for i, bullet := range collectBulletPoints(resumeText) {
		if i >= maxBulletsAnalyzed || len(suggestions) >= maxSuggestions {
			break
		}

		bulletLower := strings.ToLower(bullet)
		matchingSkills := a.extractor.ExtractSkills(bullet).Intersect(jobSkills).Sorted()

		weakVerbsFound := []string{}
		for _, weakVerb := range sortedKeys(actionVerbTemplates) {
			if extractor.WordPattern(weakVerb).MatchString(bulletLower) {
				weakVerbsFound = append(weakVerbsFound, weakVerb)
			}
		}

		if len(matchingSkills) == 0 && len(weakVerbsFound) == 0 {
			continue
		}

		suggestions = append(suggestions, RewriteSuggestion{
			Original:  truncateBullet(bullet),
			Suggested: a.rewriteBullet(bullet, jobSkills, weakVerbsFound),
			Reason:    suggestionReason(matchingSkills, weakVerbsFound),
		})
	}

	return suggestions
}

// collectBulletPoints 识别要点行：显式的符号/编号行，或长度在21-199字符之间的普通行
func collectBulletPoints(resumeText string) []string {
	bullets := []string{}
	for _, line := range strings.Split(resumeText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bulletMarkerPattern.MatchString(line) || numberedItemPattern.MatchString(line) {
			bullets = append(bullets, line)
		} else if len(line) > 20 && len(line) < 200 {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// rewriteBullet 用替换表里的首个强动词替换弱动词；
// 短要点再尝试自然地补进一个缺失的岗位技能。
func (a *Analyzer) rewriteBullet(original string, jobSkills types.StringSet, weakVerbs []string) string {
	rewritten := original

	for _, weakVerb := range weakVerbs {
		alternatives := actionVerbTemplates[weakVerb]
		if len(alternatives) == 0 {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(weakVerb) + `\b`)
		rewritten = pattern.ReplaceAllString(rewritten, alternatives[0])
	}

	if len(original) < 100 {
		bulletSkills := a.extractor.ExtractSkills(original)
		for _, skill := range jobSkills.Sorted() {
			if bulletSkills.Contains(skill) {
				continue
			}
			if !strings.Contains(strings.ToLower(rewritten), strings.ToLower(skill)) {
				rewritten = strings.TrimRight(rewritten, ".") + fmt.Sprintf(" using %s.", skill)
			}
			break
		}
	}

	return rewritten
}

func suggestionReason(matchingSkills, weakVerbs []string) string {
	reasons := []string{}

	if len(weakVerbs) > 0 {
		reasons = append(reasons,
			fmt.Sprintf("Use stronger action verbs (e.g., %s)", actionVerbTemplates[weakVerbs[0]][0]))
	}

	if len(matchingSkills) > 0 {
		top := matchingSkills
		if len(top) > 2 {
			top = top[:2]
		}
		reasons = append(reasons, fmt.Sprintf("Already mentions relevant skills: %s", strings.Join(top, ", ")))
	} else {
		reasons = append(reasons, "Could emphasize job-relevant skills more")
	}

	return strings.Join(reasons, "; ")
}

func truncateBullet(s string) string {
	if len(s) > 150 {
		return s[:150] + "..."
	}
	return s
}
