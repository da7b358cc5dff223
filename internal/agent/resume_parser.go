package agent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

var tracer = otel.Tracer("agent")

// 经验年限的文本模式。简历侧取所有匹配中的最大值。
var resumeYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s+in`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s+of`),
}

// 年份区间模式，如 "2019-2023" 或 "2021 - present"
var dateRangePattern = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{4}|present|current)`)

// 学历关键词，按优先级从高到低排列，首个命中即为结果
var educationLevels = []struct {
	level    types.EducationLevel
	keywords []string
}{
	{types.EducationPhD, []string{"phd", "ph.d", "doctorate", "doctoral"}},
	{types.EducationMasters, []string{"master", "ms", "ma", "mba", "mtech", "msc"}},
	{types.EducationBachelors, []string{"bachelor", "bs", "ba", "btech", "bsc"}},
	{types.EducationDiploma, []string{"diploma", "certification", "certificate"}},
}

// 头衔行识别关键词
var titleKeywords = []string{
	"engineer", "developer", "analyst", "manager", "director",
	"specialist", "consultant", "architect", "scientist", "lead",
	"senior", "junior", "principal", "staff",
}

// ResumeParser 简历解析阶段：把候选人文本转成结构化画像
type ResumeParser struct {
	extractor *extractor.Extractor
	logger    zerolog.Logger
}

// NewResumeParser 创建简历解析阶段
func NewResumeParser(ex *extractor.Extractor) *ResumeParser {
	return &ResumeParser{
		extractor: ex,
		logger:    logger.Component(constants.StageResumeParser),
	}
}

// Name 返回阶段名
func (p *ResumeParser) Name() string {
	return constants.StageResumeParser
}

// Process 解析简历文本，写入pc.Profile并返回阶段消息。
// 空文本返回置信度为0的消息而非错误，下游按空画像继续降级运行。
func (p *ResumeParser) Process(ctx context.Context, pc *PipelineContext) (*AgentMessage, error) {
	_, span := tracer.Start(ctx, "agent.resume_parser")
	defer span.End()

	if strings.TrimSpace(pc.ResumeText) == "" {
		pc.Profile = &types.ResumeProfile{
			Skills: make(types.StringSet),
			Tools:  make(types.StringSet),
			Titles: []string{},
		}
		p.logger.Warn().Msg("简历文本为空，返回零置信度画像")
		return NewMessage(p.Name(), pc.Profile, 0.0, "No resume text provided", nil), nil
	}

	entities := p.extractor.ExtractAll(pc.ResumeText)
	titles := extractJobTitles(pc.ResumeText)

	profile := &types.ResumeProfile{
		Skills:          entities.Skills,
		Tools:           entities.Tools,
		ExperienceYears: extractResumeExperienceYears(pc.ResumeText, len(titles)),
		EducationLevel:  extractEducationLevel(pc.ResumeText),
		Titles:          titles,
	}
	pc.Profile = profile

	confidence := parsingConfidence(profile)

	reasoning := buildResumeReasoning(profile)
	span.SetAttributes(
		attribute.String("resume.content", tracing.SafeDocumentContent(pc.ResumeText)),
		attribute.String("stage.reasoning", tracing.SafeReasoning(reasoning)),
	)
	evidence := []string{
		fmt.Sprintf("Extracted %d skills", len(profile.Skills)),
		fmt.Sprintf("Found %d tools", len(profile.Tools)),
		fmt.Sprintf("Estimated %.1f years of experience", profile.ExperienceYears),
		fmt.Sprintf("Education level: %s", profile.EducationLevel),
	}

	p.logger.Debug().
		Int("skills", len(profile.Skills)).
		Float64("experience_years", profile.ExperienceYears).
		Str("education", profile.EducationLevel.String()).
		Msg("简历解析完成")

	return NewMessage(p.Name(), profile, confidence, reasoning, evidence), nil
}

// extractResumeExperienceYears 从简历文本估算经验年限。
// 跨模式取最大值；一个模式都没命中时退化为 min(头衔数*1.5, 10)。
func extractResumeExperienceYears(text string, titleCount int) float64 {
	textLower := strings.ToLower(text)

	var yearsFound []float64
	for _, pattern := range resumeYearPatterns {
		for _, match := range pattern.FindAllStringSubmatch(textLower, -1) {
			if v, err := strconv.ParseFloat(match[1], 64); err == nil {
				yearsFound = append(yearsFound, v)
			}
		}
	}

	// 年份区间按每段约1年粗略计入
	if ranges := dateRangePattern.FindAllStringSubmatch(text, -1); len(ranges) > 0 {
		yearsFound = append(yearsFound, float64(len(ranges)))
	}

	if len(yearsFound) == 0 {
		years := float64(titleCount) * 1.5
		if years > 10.0 {
			years = 10.0
		}
		return years
	}

	maxYears := yearsFound[0]
	for _, v := range yearsFound[1:] {
		if v > maxYears {
			maxYears = v
		}
	}
	return maxYears
}

// extractEducationLevel 按固定优先级扫描学历关键词，首个命中即返回
func extractEducationLevel(text string) types.EducationLevel {
	textLower := strings.ToLower(text)
	for _, entry := range educationLevels {
		for _, keyword := range entry.keywords {
			if strings.Contains(textLower, keyword) {
				return entry.level
			}
		}
	}
	return types.EducationUnknown
}

// extractJobTitles 在前20行里找含职位关键词、长度在6到49字符之间的行，最多取5个
func extractJobTitles(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}

	titles := []string{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lineLower := strings.ToLower(trimmed)
		for _, keyword := range titleKeywords {
			if strings.Contains(lineLower, keyword) {
				if len(trimmed) > 5 && len(trimmed) < 50 {
					titles = append(titles, trimmed)
				}
				break
			}
		}
		if len(titles) >= 5 {
			break
		}
	}
	return titles
}

// parsingConfidence 解析置信度：基础0.5，按信号加成，封顶1.0
func parsingConfidence(profile *types.ResumeProfile) float64 {
	confidence := 0.5

	if len(profile.Skills) > 5 {
		confidence += 0.2
	}
	if len(profile.Skills) > 10 {
		confidence += 0.1
	}
	if profile.ExperienceYears > 0 {
		confidence += 0.1
	}
	if profile.EducationLevel != types.EducationUnknown {
		confidence += 0.1
	}
	if len(profile.Titles) > 0 {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func buildResumeReasoning(profile *types.ResumeProfile) string {
	parts := []string{
		fmt.Sprintf("Parsed resume with %d skills and %d tools.", len(profile.Skills), len(profile.Tools)),
	}
	if profile.ExperienceYears > 0 {
		parts = append(parts, fmt.Sprintf("Estimated %.1f years of experience.", profile.ExperienceYears))
	}
	if profile.EducationLevel != types.EducationUnknown {
		parts = append(parts, fmt.Sprintf("Education level: %s.", profile.EducationLevel))
	}
	if len(profile.Titles) > 0 {
		parts = append(parts, fmt.Sprintf("Found %d job titles.", len(profile.Titles)))
	}
	return strings.Join(parts, " ")
}
