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

// stabilityResult 扰动测试的中间结果
type stabilityResult struct {
	stabilityIndex float64
	variance       float64
	isStable       bool
	warnings       []string
}

// consistencyResult 一致性检查的中间结果
type consistencyResult struct {
	consistency  float64
	isConsistent bool
	matchRatio   float64
}

// Verifier 自验证阶段：对得分做扰动稳定性测试和技能重合度一致性检查。
// 该阶段对缺失数据从不报错，只降级为低置信度、多警告的输出。
type Verifier struct {
	encoder *parser.Encoder
	logger  zerolog.Logger
}

// NewVerifier 创建自验证阶段。encoder为nil时稳定性得分全部按0处理。
func NewVerifier(encoder *parser.Encoder) *Verifier {
	return &Verifier{
		encoder: encoder,
		logger:  logger.Component(constants.StageVerification),
	}
}

// Name 返回阶段名
func (v *Verifier) Name() string {
	return constants.StageVerification
}

// Process 验证评分结果，写入pc.Verification并返回阶段消息
func (v *Verifier) Process(ctx context.Context, pc *PipelineContext) (*AgentMessage, error) {
	ctx, span := tracer.Start(ctx, "agent.verification")
	defer span.End()

	rawScore := 0.0
	if pc.Score != nil {
		rawScore = pc.Score.OverallScore
	}

	stability := v.testStability(ctx, pc.ResumeText, pc.JobText)
	consistency := checkConsistency(pc.Profile, pc.Requirement, rawScore)
	level := assessConfidenceLevel(stability.stabilityIndex, consistency.consistency)

	warnings := append([]string{}, stability.warnings...)
	if !stability.isStable {
		warnings = append(warnings, "Score may be unstable - consider reviewing resume formatting")
	}
	if !consistency.isConsistent {
		warnings = append(warnings, "Score may not align with skill match ratio - verification recommended")
	}
	if stability.variance > 0.1 {
		warnings = append(warnings, "High score variance detected - results may vary")
	}

	result := &types.VerificationResult{
		FinalScore:       round2(rawScore),
		ConfidenceLevel:  level,
		StabilityIndex:   round3(stability.stabilityIndex),
		ScoreVariance:    round3(stability.variance),
		ConsistencyScore: round3(consistency.consistency),
		IsStable:         stability.isStable,
		IsConsistent:     consistency.isConsistent,
		Warnings:         warnings,
	}
	pc.Verification = result

	confidence := verificationConfidence(result)

	reasoning := buildVerificationReasoning(result)
	evidence := []string{
		fmt.Sprintf("Stability index: %.3f", result.StabilityIndex),
		fmt.Sprintf("Score variance: %.3f", result.ScoreVariance),
		fmt.Sprintf("Confidence level: %s", result.ConfidenceLevel),
		fmt.Sprintf("Warnings: %d", len(warnings)),
	}

	v.logger.Debug().
		Float64("stability_index", result.StabilityIndex).
		Float64("consistency_score", result.ConsistencyScore).
		Str("confidence_level", string(result.ConfidenceLevel)).
		Msg("验证完成")

	return NewMessage(v.Name(), result, confidence, reasoning, evidence), nil
}

// testStability 对简历文本构造至多3个扰动变体，逐一与岗位文本算快速相似度得分，
// 用得分方差衡量稳定性。变体：尾部3行轮转到开头(仅当行数≥6)、空白折叠、原文基线。
// 快速得分有意只用语义相似度、绕过加权公式，与正式得分口径不同。
func (v *Verifier) testStability(ctx context.Context, resumeText, jobText string) stabilityResult {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return stabilityResult{stabilityIndex: 0.0, variance: 1.0, isStable: false}
	}

	variants := buildPerturbations(resumeText)

	// 变体和岗位文本合并成一次批量编码，阻塞成本压到单个往返
	scores, warnings := v.quickScores(ctx, variants, jobText)

	variance := populationVariance(scores)

	stabilityIndex := 1.0 - variance*10
	if stabilityIndex > 1.0 {
		stabilityIndex = 1.0
	}
	if stabilityIndex < 0.0 {
		stabilityIndex = 0.0
	}

	return stabilityResult{
		stabilityIndex: stabilityIndex,
		variance:       variance,
		isStable:       variance < constants.StabilityThreshold,
		warnings:       warnings,
	}
}

// buildPerturbations 构造扰动变体，最后一个总是未修改的原文基线
func buildPerturbations(resumeText string) []string {
	var variants []string

	lines := strings.Split(resumeText, "\n")
	if len(lines) > 5 {
		rotated := append(append([]string{}, lines[len(lines)-3:]...), lines[:len(lines)-3]...)
		variants = append(variants, strings.Join(rotated, "\n"))
	}

	variants = append(variants, parser.CollapseWhitespace(resumeText))
	variants = append(variants, resumeText)

	if len(variants) > 3 {
		variants = variants[:3]
	}
	return variants
}

// quickScores 批量编码所有变体与岗位文本，返回每个变体对岗位的余弦相似度。
// 嵌入服务失败按不可用降级：全部得分为0加一条警告，不向上抛错。
func (v *Verifier) quickScores(ctx context.Context, variants []string, jobText string) ([]float64, []string) {
	scores := make([]float64, len(variants))

	if v.encoder == nil {
		return scores, nil
	}

	vectors, err := v.encoder.EncodeBatch(ctx, append(append([]string{}, variants...), jobText))
	if err != nil {
		v.logger.Warn().Err(err).Msg("嵌入服务不可用，稳定性测试得分降级为0")
		tracing.RecordEmbeddingFallback(trace.SpanFromContext(ctx), err.Error())
		return scores, []string{"Warning: embedding service unavailable during stability testing"}
	}

	jobVector := vectors[len(vectors)-1]
	for i := range variants {
		scores[i] = parser.CosineSimilarity(vectors[i], jobVector)
	}
	return scores, nil
}

// checkConsistency 检查得分与技能重合率是否自洽。
// 期望区间为(ratio*0.7, ratio*0.9)；无必备技能时视为平凡一致。
func checkConsistency(profile *types.ResumeProfile, req *types.JobRequirement, rawScore float64) consistencyResult {
	matchRatio := 0.0
	if profile != nil && req != nil && len(req.RequiredSkills) > 0 {
		matchRatio = float64(len(profile.Skills.Intersect(req.RequiredSkills))) / float64(len(req.RequiredSkills))
	}

	lower := matchRatio * 0.7
	upper := matchRatio * 0.9
	actual := rawScore / 100.0

	isConsistent := (actual >= lower && actual <= upper) || matchRatio == 0

	consistency := 1.0
	if upper > 0 {
		mid := (lower + upper) / 2
		diff := actual - mid
		if diff < 0 {
			diff = -diff
		}
		consistency = clamp01(1.0 - diff/upper)
	}

	return consistencyResult{
		consistency:  consistency,
		isConsistent: isConsistent,
		matchRatio:   matchRatio,
	}
}

// assessConfidenceLevel 稳定性与一致性的均值决定置信档位
func assessConfidenceLevel(stabilityIndex, consistency float64) types.ConfidenceLevel {
	avg := (stabilityIndex + consistency) / 2.0
	switch {
	case avg >= constants.ConfidenceHighFloor:
		return types.ConfidenceHigh
	case avg >= constants.ConfidenceMediumFloor:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// populationVariance 总体方差
func populationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(values))
}

// verificationConfidence 验证阶段自身置信度：基础0.7，按结果质量加成，封顶1.0
func verificationConfidence(result *types.VerificationResult) float64 {
	confidence := 0.7

	if result.IsStable {
		confidence += 0.1
	}
	if result.IsConsistent {
		confidence += 0.1
	}
	if result.ConfidenceLevel == types.ConfidenceHigh {
		confidence += 0.1
	}
	if len(result.Warnings) == 0 {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func buildVerificationReasoning(result *types.VerificationResult) string {
	parts := []string{
		fmt.Sprintf("Verified match score of %.1f%% with %s confidence.",
			result.FinalScore, strings.ToLower(string(result.ConfidenceLevel))),
		fmt.Sprintf("Stability index: %.3f, Consistency: %.3f.",
			result.StabilityIndex, result.ConsistencyScore),
	}
	if len(result.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("Generated %d warnings.", len(result.Warnings)))
	} else {
		parts = append(parts, "No warnings - results are stable and consistent.")
	}
	return strings.Join(parts, " ")
}
