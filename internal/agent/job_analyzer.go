package agent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

// 岗位侧经验要求模式。取所有匹配中的最小值，最低门槛即约束条件。
var jobYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`minimum\s+of\s+(\d+)\s*years?`),
	regexp.MustCompile(`at\s+least\s+(\d+)\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s+in`),
}

// 必备技能指示词
var requiredIndicators = []string{
	"required", "must have", "must possess", "essential",
	"mandatory", "necessary", "need", "needs",
}

// 加分技能指示词
var preferredIndicators = []string{
	"preferred", "nice to have", "bonus", "plus",
	"advantageous", "desirable", "optional",
}

// 岗位侧学历关键词，"degree" 单独出现按本科处理
var jobEducationLevels = []struct {
	level    types.EducationLevel
	keywords []string
}{
	{types.EducationPhD, []string{"phd", "ph.d", "doctorate"}},
	{types.EducationMasters, []string{"master", "ms", "ma", "mba"}},
	{types.EducationBachelors, []string{"bachelor", "bs", "ba", "degree"}},
}

var seniorKeywords = []string{"senior", "sr.", "lead", "principal", "staff"}
var juniorKeywords = []string{"junior", "jr.", "entry", "entry-level"}
var midKeywords = []string{"mid", "mid-level", "intermediate"}

// contextWindow 技能提及处向前后各取多少字符作为分类上下文
const contextWindow = 50

// JobAnalyzer 岗位分析阶段：把岗位描述转成结构化需求集
type JobAnalyzer struct {
	extractor *extractor.Extractor
	logger    zerolog.Logger
}

// NewJobAnalyzer 创建岗位分析阶段
func NewJobAnalyzer(ex *extractor.Extractor) *JobAnalyzer {
	return &JobAnalyzer{
		extractor: ex,
		logger:    logger.Component(constants.StageJobAnalyzer),
	}
}

// Name 返回阶段名
func (a *JobAnalyzer) Name() string {
	return constants.StageJobAnalyzer
}

// Process 分析岗位描述，写入pc.Requirement并返回阶段消息。
// 空文本返回置信度为0的消息而非错误。
func (a *JobAnalyzer) Process(ctx context.Context, pc *PipelineContext) (*AgentMessage, error) {
	_, span := tracer.Start(ctx, "agent.job_analyzer")
	defer span.End()

	if strings.TrimSpace(pc.JobText) == "" {
		pc.Requirement = emptyRequirement()
		a.logger.Warn().Msg("岗位描述为空，返回零置信度需求集")
		return NewMessage(a.Name(), pc.Requirement, 0.0, "No job description provided", nil), nil
	}

	entities := a.extractor.ExtractAll(pc.JobText)
	required, preferred := categorizeSkills(pc.JobText, entities.Skills)
	educationRequired, educationSpecified := extractJobEducation(pc.JobText)

	requirement := &types.JobRequirement{
		RequiredSkills:          required,
		PreferredSkills:         preferred,
		AllSkills:               entities.Skills,
		Tools:                   entities.Tools,
		ExperienceRequiredYears: extractExperienceRequirement(pc.JobText),
		EducationRequired:       educationRequired,
		EducationSpecified:      educationSpecified,
		RoleLevel:               identifyRoleLevel(pc.JobText),
	}
	pc.Requirement = requirement

	confidence := analysisConfidence(requirement)

	reasoning := buildJobReasoning(requirement)
	span.SetAttributes(
		attribute.String("job.content", tracing.SafeDocumentContent(pc.JobText)),
		attribute.String("stage.reasoning", tracing.SafeReasoning(reasoning)),
	)
	evidence := []string{
		fmt.Sprintf("Identified %d required skills", len(required)),
		fmt.Sprintf("Found %d preferred skills", len(preferred)),
		fmt.Sprintf("Role level: %s", requirement.RoleLevel),
		fmt.Sprintf("Experience required: %.1f years", requirement.ExperienceRequiredYears),
	}

	a.logger.Debug().
		Int("required_skills", len(required)).
		Int("preferred_skills", len(preferred)).
		Float64("experience_required", requirement.ExperienceRequiredYears).
		Msg("岗位分析完成")

	return NewMessage(a.Name(), requirement, confidence, reasoning, evidence), nil
}

func emptyRequirement() *types.JobRequirement {
	return &types.JobRequirement{
		RequiredSkills:  make(types.StringSet),
		PreferredSkills: make(types.StringSet),
		AllSkills:       make(types.StringSet),
		Tools:           make(types.StringSet),
	}
}

// categorizeSkills 对每个技能的全部提及检查±50字符窗口：
// 命中必备指示词立即判为required；否则命中加分指示词判为preferred；
// 两者都未命中时多次提及默认required、单次提及默认preferred；
// 正则重扫不到任何提及也默认preferred。两个集合保证互斥。
func categorizeSkills(jobText string, allSkills types.StringSet) (types.StringSet, types.StringSet) {
	jobLower := strings.ToLower(jobText)
	required := make(types.StringSet)
	preferred := make(types.StringSet)

	// 按字典序遍历，保证结果确定
	for _, skill := range allSkills.Sorted() {
		pattern := extractor.WordPattern(strings.ToLower(skill))
		matches := pattern.FindAllStringIndex(jobLower, -1)

		if len(matches) == 0 {
			preferred.Add(skill)
			continue
		}

		isRequired := false
		isPreferred := false

		for _, match := range matches {
			start := match[0] - contextWindow
			if start < 0 {
				start = 0
			}
			end := match[1] + contextWindow
			if end > len(jobLower) {
				end = len(jobLower)
			}
			window := jobLower[start:end]

			if containsAny(window, requiredIndicators) {
				isRequired = true
				break
			}
			if containsAny(window, preferredIndicators) {
				isPreferred = true
			}
		}

		switch {
		case isRequired:
			required.Add(skill)
		case isPreferred:
			preferred.Add(skill)
		case len(matches) > 1:
			required.Add(skill)
		default:
			preferred.Add(skill)
		}
	}

	return required, preferred
}

// extractExperienceRequirement 提取经验年限要求，取最小值；未提及返回0
func extractExperienceRequirement(jobText string) float64 {
	textLower := strings.ToLower(jobText)

	var yearsFound []float64
	for _, pattern := range jobYearPatterns {
		for _, match := range pattern.FindAllStringSubmatch(textLower, -1) {
			if v, err := strconv.ParseFloat(match[1], 64); err == nil {
				yearsFound = append(yearsFound, v)
			}
		}
	}

	if len(yearsFound) == 0 {
		return 0.0
	}

	minYears := yearsFound[0]
	for _, v := range yearsFound[1:] {
		if v < minYears {
			minYears = v
		}
	}
	return minYears
}

// extractJobEducation 扫描学历要求；第二个返回值表示岗位是否明确提出了要求
func extractJobEducation(jobText string) (types.EducationLevel, bool) {
	textLower := strings.ToLower(jobText)
	for _, entry := range jobEducationLevels {
		for _, keyword := range entry.keywords {
			if strings.Contains(textLower, keyword) {
				return entry.level, true
			}
		}
	}
	return types.EducationUnknown, false
}

// identifyRoleLevel 识别岗位级别，未命中任何关键词返回NotSpecified
func identifyRoleLevel(jobText string) types.RoleLevel {
	textLower := strings.ToLower(jobText)
	if containsAny(textLower, seniorKeywords) {
		return types.RoleSenior
	}
	if containsAny(textLower, juniorKeywords) {
		return types.RoleJunior
	}
	if containsAny(textLower, midKeywords) {
		return types.RoleMidLevel
	}
	return types.RoleNotSpecified
}

// analysisConfidence 分析置信度：基础0.5，按需求信号加成，封顶1.0
func analysisConfidence(req *types.JobRequirement) float64 {
	confidence := 0.5

	if len(req.RequiredSkills) > 3 {
		confidence += 0.2
	}
	if len(req.RequiredSkills) > 5 {
		confidence += 0.1
	}
	if req.ExperienceRequiredYears > 0 {
		confidence += 0.1
	}
	if req.EducationSpecified {
		confidence += 0.1
	}
	if req.RoleLevel != types.RoleNotSpecified {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func buildJobReasoning(req *types.JobRequirement) string {
	parts := []string{
		fmt.Sprintf("Analyzed job requirements: %d required skills, %d preferred skills.",
			len(req.RequiredSkills), len(req.PreferredSkills)),
	}
	if req.ExperienceRequiredYears > 0 {
		parts = append(parts, fmt.Sprintf("Requires %.1f years of experience.", req.ExperienceRequiredYears))
	}
	if req.EducationSpecified {
		parts = append(parts, fmt.Sprintf("Education requirement: %s.", req.EducationRequired))
	}
	if req.RoleLevel != types.RoleNotSpecified {
		parts = append(parts, fmt.Sprintf("Role level: %s.", req.RoleLevel))
	}
	return strings.Join(parts, " ")
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
