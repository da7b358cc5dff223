package agent

import (
	"context"
	"math"

	"resume-match-go/internal/types"
)

// Stage 单个流水线阶段的能力接口。
// 阶段从PipelineContext读取上游产出，把自己的结构化结果写回对应字段，
// 并返回一条AgentMessage；数据依赖全部显式走PipelineContext，不走隐式共享状态。
type Stage interface {
	Name() string
	Process(ctx context.Context, pc *PipelineContext) (*AgentMessage, error)
}

// PipelineContext 一次(简历,岗位)匹配运行的显式上下文。
// 每次请求新建一份，运行结束即丢弃；阶段只写自己的输出字段，不修改上游。
type PipelineContext struct {
	ResumeText string
	JobText    string
	Weights    types.WeightVector

	Profile      *types.ResumeProfile
	Requirement  *types.JobRequirement
	Score        *types.ScoreOutput
	Gap          *types.GapResult
	Verification *types.VerificationResult
}

// NewPipelineContext 创建流水线上下文，weights为nil时使用默认权重
func NewPipelineContext(resumeText, jobText string, weights *types.WeightVector) *PipelineContext {
	w := types.DefaultWeights()
	if weights != nil {
		w = *weights
	}
	return &PipelineContext{
		ResumeText: resumeText,
		JobText:    jobText,
		Weights:    w,
	}
}

// round2 保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round3 保留三位小数
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// clamp01 把值收拢到 [0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
