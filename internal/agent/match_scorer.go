package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

// MatchScorer 评分阶段：汇总画像与需求集，产出分维度得分和加权总分
type MatchScorer struct {
	encoder      *parser.Encoder
	preprocessor *parser.TextPreprocessor
	logger       zerolog.Logger
}

// NewMatchScorer 创建评分阶段。encoder为nil时语义相似度恒为0并降低置信度。
func NewMatchScorer(encoder *parser.Encoder) *MatchScorer {
	return &MatchScorer{
		encoder:      encoder,
		preprocessor: parser.NewTextPreprocessor(),
		logger:       logger.Component(constants.StageMatchScorer),
	}
}

// Name 返回阶段名
func (s *MatchScorer) Name() string {
	return constants.StageMatchScorer
}

// Process 计算匹配得分。权重校验失败是硬错误，直接返回给调用方；
// 嵌入服务失败只把语义相似度降为0并记录警告，不中断流水线。
func (s *MatchScorer) Process(ctx context.Context, pc *PipelineContext) (*AgentMessage, error) {
	ctx, span := tracer.Start(ctx, "agent.match_scorer")
	defer span.End()

	if err := pc.Weights.Validate(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	if pc.Profile == nil || pc.Requirement == nil {
		pc.Score = &types.ScoreOutput{Weights: pc.Weights}
		return NewMessage(s.Name(), pc.Score, 0.0, "Missing resume or job data", nil), nil
	}

	profile := pc.Profile
	req := pc.Requirement

	sections := types.SectionScores{
		Skills:     computeSkillScore(profile, req),
		Experience: computeExperienceScore(profile, req),
		Education:  computeEducationScore(profile, req),
		Tools:      computeToolScore(profile, req),
	}

	var warnings []string
	sections.Overall, warnings = s.semanticSimilarity(ctx, span, pc.ResumeText, pc.JobText)

	weighted := sections.Skills*pc.Weights.Skills +
		sections.Experience*pc.Weights.Experience +
		sections.Education*pc.Weights.Education +
		sections.Tools*pc.Weights.Tools

	matchCount := len(profile.Skills.Intersect(req.RequiredSkills))

	score := &types.ScoreOutput{
		OverallScore:        round2(weighted * 100),
		SemanticSimilarity:  round2(sections.Overall * 100),
		SectionScores:       sections,
		Weights:             pc.Weights,
		SkillMatchCount:     matchCount,
		TotalRequiredSkills: len(req.RequiredSkills),
	}
	pc.Score = score

	confidence := scoringConfidence(score)

	reasoning := buildScoreReasoning(score)
	evidence := []string{
		fmt.Sprintf("Skill match: %d/%d", score.SkillMatchCount, score.TotalRequiredSkills),
		fmt.Sprintf("Overall score: %.1f%%", score.OverallScore),
		fmt.Sprintf("Semantic similarity: %.1f%%", score.SemanticSimilarity),
	}
	evidence = append(evidence, warnings...)

	s.logger.Debug().
		Float64("overall_score", score.OverallScore).
		Float64("semantic_similarity", score.SemanticSimilarity).
		Msg("评分完成")

	return NewMessage(s.Name(), score, confidence, reasoning, evidence), nil
}

// computeSkillScore 技能得分：必备70%、加分30%的加权覆盖率。
// 岗位没有任何技能要求时视为完全匹配。
func computeSkillScore(profile *types.ResumeProfile, req *types.JobRequirement) float64 {
	nRequired := len(req.RequiredSkills)
	nPreferred := len(req.PreferredSkills)
	if nRequired == 0 && nPreferred == 0 {
		return 1.0
	}

	requiredMatch := float64(len(profile.Skills.Intersect(req.RequiredSkills)))
	preferredMatch := float64(len(profile.Skills.Intersect(req.PreferredSkills)))

	denominator := float64(nRequired)*0.7 + float64(nPreferred)*0.3
	if denominator == 0 {
		return 0.0
	}

	score := (requiredMatch*0.7 + preferredMatch*0.3) / denominator
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// computeExperienceScore 经验得分：无要求为1.0，达标为1.0，否则按比例给部分分
func computeExperienceScore(profile *types.ResumeProfile, req *types.JobRequirement) float64 {
	if req.ExperienceRequiredYears == 0 {
		return 1.0
	}
	if profile.ExperienceYears >= req.ExperienceRequiredYears {
		return 1.0
	}
	score := profile.ExperienceYears / req.ExperienceRequiredYears
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// computeEducationScore 学历得分：按固定序数层级比较，达标为1.0，否则按层级比例
func computeEducationScore(profile *types.ResumeProfile, req *types.JobRequirement) float64 {
	if !req.EducationSpecified {
		return 1.0
	}

	resumeLevel := float64(profile.EducationLevel)
	requiredLevel := float64(req.EducationRequired)

	if resumeLevel >= requiredLevel {
		return 1.0
	}
	if requiredLevel == 0 {
		return 0.0
	}
	return resumeLevel / requiredLevel
}

// computeToolScore 工具得分：交集占岗位工具数的比例；岗位未列工具为1.0
func computeToolScore(profile *types.ResumeProfile, req *types.JobRequirement) float64 {
	if len(req.Tools) == 0 {
		return 1.0
	}
	score := float64(len(profile.Tools.Intersect(req.Tools))) / float64(len(req.Tools))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// semanticSimilarity 计算两份预处理后全文的余弦相似度。
// 嵌入服务超时或失败按不可用处理：相似度0.0加一条警告，流水线继续。
func (s *MatchScorer) semanticSimilarity(ctx context.Context, span trace.Span, resumeText, jobText string) (float64, []string) {
	if s.encoder == nil || strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return 0.0, nil
	}

	processedResume := s.preprocessor.Preprocess(resumeText)
	processedJob := s.preprocessor.Preprocess(jobText)

	vectors, err := s.encoder.EncodeBatch(ctx, []string{processedResume, processedJob})
	if err != nil {
		s.logger.Warn().Err(err).Msg("嵌入服务不可用，语义相似度降级为0")
		tracing.RecordEmbeddingFallback(span, err.Error())
		return 0.0, []string{"Warning: embedding service unavailable, semantic similarity defaulted to 0"}
	}

	return parser.CosineSimilarity(vectors[0], vectors[1]), nil
}

// scoringConfidence 评分置信度：基础0.7，按数据信号加成，封顶1.0
func scoringConfidence(score *types.ScoreOutput) float64 {
	confidence := 0.7

	if score.TotalRequiredSkills > 0 {
		confidence += 0.1
	}
	if score.SemanticSimilarity > 0 {
		confidence += 0.1
	}
	if score.TotalRequiredSkills > 0 {
		ratio := float64(score.SkillMatchCount) / float64(score.TotalRequiredSkills)
		if ratio > 0.5 {
			confidence += 0.1
		}
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func buildScoreReasoning(score *types.ScoreOutput) string {
	parts := []string{
		fmt.Sprintf("Computed overall match score of %.1f%% based on weighted section scores.", score.OverallScore),
		fmt.Sprintf("Skills: %.1f%%, Experience: %.1f%%, Education: %.1f%%, Tools: %.1f%%.",
			score.SectionScores.Skills*100,
			score.SectionScores.Experience*100,
			score.SectionScores.Education*100,
			score.SectionScores.Tools*100),
	}
	if score.SemanticSimilarity > 0 {
		parts = append(parts, fmt.Sprintf("Semantic similarity: %.1f%%.", score.SemanticSimilarity))
	}
	return strings.Join(parts, " ")
}
