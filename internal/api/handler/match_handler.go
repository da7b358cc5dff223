package handler

import (
	"context"
	"fmt"
	"strings"

	"resume-match-go/internal/agent"
	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// MatchHandler 匹配处理器，把HTTP请求转交给流水线编排器
type MatchHandler struct {
	cfg          *config.Config
	orchestrator *agent.Orchestrator
}

// NewMatchHandler 创建匹配处理器
func NewMatchHandler(cfg *config.Config, orchestrator *agent.Orchestrator) *MatchHandler {
	return &MatchHandler{
		cfg:          cfg,
		orchestrator: orchestrator,
	}
}

// effectiveWeights 请求未携带权重时回落到配置文件中的评分权重
func (h *MatchHandler) effectiveWeights(reqWeights *types.WeightVector) *types.WeightVector {
	if reqWeights != nil {
		return reqWeights
	}
	w := h.cfg.Scoring.Weights
	return &w
}

// MatchRequest 单岗位匹配请求
type MatchRequest struct {
	ResumeText string              `json:"resume_text"`
	JobText    string              `json:"job_text"`
	Weights    *types.WeightVector `json:"weights,omitempty"`
}

// BatchMatchRequest 一份简历对多个岗位的匹配请求
type BatchMatchRequest struct {
	ResumeText string              `json:"resume_text"`
	Jobs       []agent.JobPosting  `json:"jobs"`
	Weights    *types.WeightVector `json:"weights,omitempty"`
}

// HandleMatch 处理单岗位匹配。
// 空简历或空岗位由流水线以零置信度降级处理，两者同时为空才拒绝。
func (h *MatchHandler) HandleMatch(ctx context.Context, req *MatchRequest) (*agent.MatchResult, error) {
	if strings.TrimSpace(req.ResumeText) == "" && strings.TrimSpace(req.JobText) == "" {
		return nil, fmt.Errorf("%w: resume_text 和 job_text 不能同时为空", types.ErrInvalidRequest)
	}

	result, err := h.orchestrator.Run(ctx, agent.PipelineInput{
		ResumeText: req.ResumeText,
		JobText:    req.JobText,
		Weights:    h.effectiveWeights(req.Weights),
	})
	if err != nil {
		logger.Error().Err(err).Msg("匹配流水线执行失败")
		return nil, err
	}

	return result, nil
}

// HandleBatchMatch 处理批量匹配，逐岗位跑完整流水线后按得分排名
func (h *MatchHandler) HandleBatchMatch(ctx context.Context, req *BatchMatchRequest) (*agent.ComparisonResult, error) {
	if len(req.Jobs) == 0 {
		return nil, fmt.Errorf("%w: jobs 不能为空", types.ErrInvalidRequest)
	}
	for i, job := range req.Jobs {
		if strings.TrimSpace(job.Text) == "" {
			return nil, fmt.Errorf("%w: jobs[%d] 缺少岗位描述", types.ErrInvalidRequest, i)
		}
	}

	result, err := h.orchestrator.CompareJobs(ctx, req.ResumeText, req.Jobs, h.effectiveWeights(req.Weights))
	if err != nil {
		logger.Error().Err(err).Msg("批量匹配执行失败")
		return nil, err
	}

	return result, nil
}
