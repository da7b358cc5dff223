package agent

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/dict"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/insight"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

// PipelineInput 一次匹配请求的输入。Weights为nil时使用默认权重。
type PipelineInput struct {
	ResumeText string
	JobText    string
	Weights    *types.WeightVector
}

// PipelineMetadata 流水线运行的元信息
type PipelineMetadata struct {
	PipelineVersion string  `json:"pipeline_version"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
	StageCount      int     `json:"stage_count"`
	AgentAgreement  float64 `json:"agent_agreement"` // 各阶段置信度均值
}

// MatchResult 流水线的聚合结果，编排器是所有阶段消息的唯一长期持有者
type MatchResult struct {
	RequestID          string                    `json:"request_id"`
	MatchScore         float64                   `json:"match_score"`
	ResumeProfile      *types.ResumeProfile      `json:"resume_profile"`
	JobRequirement     *types.JobRequirement     `json:"job_requirement"`
	SectionScores      types.SectionScores       `json:"section_scores"`
	Score              *types.ScoreOutput        `json:"score"`
	GapAnalysis        *types.GapResult          `json:"gap_analysis"`
	Verification       *types.VerificationResult `json:"verification"`
	AgentContributions map[string]float64        `json:"agent_contributions"`
	Messages           []*AgentMessage           `json:"agent_messages"`
	Metadata           PipelineMetadata          `json:"pipeline_metadata"`
	Insights           *insight.Report           `json:"insights,omitempty"`
}

// Orchestrator 按固定顺序调度五个阶段：解析→分析→评分→差距→验证。
// 简历解析与岗位分析互相独立，并发执行；其余阶段依赖双方产出，串行等待。
type Orchestrator struct {
	resumeParser *ResumeParser
	jobAnalyzer  *JobAnalyzer
	matchScorer  *MatchScorer
	skillGap     *SkillGapAnalyzer
	verifier     *Verifier
	insights     *insight.Analyzer
	logger       zerolog.Logger
}

// Option 编排器的可选配置
type Option func(*Orchestrator)

// WithInsights 启用增值分析，结果附加在MatchResult.Insights
func WithInsights(analyzer *insight.Analyzer) Option {
	return func(o *Orchestrator) {
		o.insights = analyzer
	}
}

// NewOrchestrator 创建编排器。encoder为nil时所有语义相似度路径降级为0。
func NewOrchestrator(dictionary *dict.Dictionary, encoder *parser.Encoder, opts ...Option) *Orchestrator {
	ex := extractor.New(dictionary)

	o := &Orchestrator{
		resumeParser: NewResumeParser(ex),
		jobAnalyzer:  NewJobAnalyzer(ex),
		matchScorer:  NewMatchScorer(encoder),
		skillGap:     NewSkillGapAnalyzer(dictionary),
		verifier:     NewVerifier(encoder),
		logger:       logger.Component(constants.StageOrchestrator),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run 执行完整流水线并返回聚合结果。
// 权重校验失败是唯一的硬错误；其余失败模式全部折算进置信度和警告。
func (o *Orchestrator) Run(ctx context.Context, input PipelineInput) (*MatchResult, error) {
	ctx, span := tracer.Start(ctx, "agent.pipeline")
	defer span.End()

	start := time.Now()

	// 权重在任何阶段执行前先行校验，避免白跑解析
	pc := NewPipelineContext(input.ResumeText, input.JobText, input.Weights)
	if err := pc.Weights.Validate(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	requestID := newRequestID()
	span.SetAttributes(attribute.String("request.id", requestID))

	// 简历解析与岗位分析互不依赖，各写各的上下文字段，并发安全
	var wg sync.WaitGroup
	var resumeMsg, jobMsg *AgentMessage
	wg.Add(2)
	go func() {
		defer wg.Done()
		resumeMsg, _ = o.resumeParser.Process(ctx, pc)
	}()
	go func() {
		defer wg.Done()
		jobMsg, _ = o.jobAnalyzer.Process(ctx, pc)
	}()
	wg.Wait()

	messages := []*AgentMessage{resumeMsg, jobMsg}

	scoreMsg, err := o.matchScorer.Process(ctx, pc)
	if err != nil {
		return nil, err
	}
	messages = append(messages, scoreMsg)

	gapMsg, _ := o.skillGap.Process(ctx, pc)
	messages = append(messages, gapMsg)

	verifyMsg, _ := o.verifier.Process(ctx, pc)
	messages = append(messages, verifyMsg)

	result := &MatchResult{
		RequestID:          requestID,
		MatchScore:         finalScore(pc),
		ResumeProfile:      pc.Profile,
		JobRequirement:     pc.Requirement,
		SectionScores:      pc.Score.SectionScores,
		Score:              pc.Score,
		GapAnalysis:        pc.Gap,
		Verification:       pc.Verification,
		AgentContributions: contributions(pc),
		Messages:           messages,
		Metadata: PipelineMetadata{
			PipelineVersion: constants.PipelineVersion,
			ElapsedSeconds:  round2(time.Since(start).Seconds()),
			StageCount:      len(messages),
			AgentAgreement:  agentAgreement(messages),
		},
	}

	if o.insights != nil {
		result.Insights = o.insights.Analyze(
			input.ResumeText, input.JobText,
			pc.Score.SectionScores, pc.Weights, result.MatchScore,
		)
	}

	o.logger.Info().
		Str("request_id", requestID).
		Float64("match_score", result.MatchScore).
		Float64("agent_agreement", result.Metadata.AgentAgreement).
		Float64("elapsed_seconds", result.Metadata.ElapsedSeconds).
		Msg("匹配流水线完成")

	return result, nil
}

// finalScore 最终得分以验证阶段的FinalScore为准，为零/未设置时回退到原始加权分
func finalScore(pc *PipelineContext) float64 {
	if pc.Verification != nil && pc.Verification.FinalScore > 0 {
		return pc.Verification.FinalScore
	}
	if pc.Score != nil {
		return pc.Score.OverallScore
	}
	return 0.0
}

// contributions 每个维度对总分的贡献：维度得分×权重，换算到0-100
func contributions(pc *PipelineContext) map[string]float64 {
	if pc.Score == nil {
		return map[string]float64{}
	}
	s := pc.Score.SectionScores
	w := pc.Score.Weights
	return map[string]float64{
		"skills":     round2(s.Skills * w.Skills * 100),
		"experience": round2(s.Experience * w.Experience * 100),
		"education":  round2(s.Education * w.Education * 100),
		"tools":      round2(s.Tools * w.Tools * 100),
	}
}

// agentAgreement 所有阶段置信度的均值
func agentAgreement(messages []*AgentMessage) float64 {
	if len(messages) == 0 {
		return 0.0
	}
	total := 0.0
	for _, msg := range messages {
		total += msg.Confidence
	}
	return round3(total / float64(len(messages)))
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}
