package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/dict"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// SkillGapAnalyzer 差距分析阶段：集合运算得出缺失/匹配技能、覆盖率与学习路径
type SkillGapAnalyzer struct {
	dictionary *dict.Dictionary
	logger     zerolog.Logger
}

// NewSkillGapAnalyzer 创建差距分析阶段
func NewSkillGapAnalyzer(dictionary *dict.Dictionary) *SkillGapAnalyzer {
	return &SkillGapAnalyzer{
		dictionary: dictionary,
		logger:     logger.Component(constants.StageSkillGap),
	}
}

// Name 返回阶段名
func (g *SkillGapAnalyzer) Name() string {
	return constants.StageSkillGap
}

// Process 计算技能差距，写入pc.Gap并返回阶段消息
func (g *SkillGapAnalyzer) Process(ctx context.Context, pc *PipelineContext) (*AgentMessage, error) {
	_, span := tracer.Start(ctx, "agent.skill_gap")
	defer span.End()

	if pc.Profile == nil || pc.Requirement == nil {
		pc.Gap = emptyGapResult()
		return NewMessage(g.Name(), pc.Gap, 0.0, "Missing resume or job data", nil), nil
	}

	resumeSkills := pc.Profile.Skills
	required := pc.Requirement.RequiredSkills
	preferred := pc.Requirement.PreferredSkills

	missingRequired := required.Diff(resumeSkills).Sorted()
	missingPreferred := preferred.Diff(resumeSkills).Sorted()
	matching := resumeSkills.Intersect(required).Sorted()

	// 覆盖率：匹配数占必备技能数的百分比，无必备技能时定义为100
	coverage := 100.0
	if len(required) > 0 {
		coverage = float64(len(matching)) / float64(len(required)) * 100
	}

	prioritySkills := missingRequired
	if len(prioritySkills) > constants.MaxLearningPathItems {
		prioritySkills = prioritySkills[:constants.MaxLearningPathItems]
	}

	gap := &types.GapResult{
		MissingRequired:  missingRequired,
		MissingPreferred: missingPreferred,
		MatchingSkills:   matching,
		SkillCoverage:    round2(coverage),
		TotalRequired:    len(required),
		MatchingCount:    len(matching),
		LearningPath:     g.buildLearningPath(prioritySkills),
		PrioritySkills:   prioritySkills,
	}
	pc.Gap = gap

	confidence := gapConfidence(gap)

	reasoning := buildGapReasoning(gap)
	evidence := []string{
		fmt.Sprintf("Missing %d required skills", len(missingRequired)),
		fmt.Sprintf("Missing %d preferred skills", len(missingPreferred)),
		fmt.Sprintf("Skill coverage: %.1f%%", gap.SkillCoverage),
	}
	if len(missingRequired) > 0 {
		top := missingRequired
		if len(top) > 3 {
			top = top[:3]
		}
		evidence = append(evidence, fmt.Sprintf("Top priority: %s", strings.Join(top, ", ")))
	} else {
		evidence = append(evidence, "All required skills present")
	}

	g.logger.Debug().
		Float64("coverage", gap.SkillCoverage).
		Int("missing_required", len(missingRequired)).
		Msg("差距分析完成")

	return NewMessage(g.Name(), gap, confidence, reasoning, evidence), nil
}

func emptyGapResult() *types.GapResult {
	return &types.GapResult{
		MissingRequired:  []string{},
		MissingPreferred: []string{},
		MatchingSkills:   []string{},
		LearningPath:     []types.GapEntry{},
		PrioritySkills:   []string{},
	}
}

// buildLearningPath 为缺失的必备技能查前置技能表，按插入顺序从1开始编号
func (g *SkillGapAnalyzer) buildLearningPath(missingSkills []string) []types.GapEntry {
	path := make([]types.GapEntry, 0, len(missingSkills))
	for _, skill := range missingSkills {
		path = append(path, types.GapEntry{
			Skill:          skill,
			Prerequisites:  g.dictionary.PrerequisitesFor(skill),
			SuggestedOrder: len(path) + 1,
		})
	}
	return path
}

// gapConfidence 差距分析置信度：基础0.8，需求规模越大越可信，封顶1.0
func gapConfidence(gap *types.GapResult) float64 {
	confidence := 0.8

	if gap.TotalRequired > 5 {
		confidence += 0.1
	}
	if gap.TotalRequired > 10 {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func buildGapReasoning(gap *types.GapResult) string {
	parts := []string{
		fmt.Sprintf("Identified %d missing required skills and %d missing preferred skills.",
			len(gap.MissingRequired), len(gap.MissingPreferred)),
		fmt.Sprintf("Skill coverage: %.1f%%.", gap.SkillCoverage),
	}
	if len(gap.PrioritySkills) > 0 {
		top := gap.PrioritySkills
		if len(top) > 3 {
			top = top[:3]
		}
		parts = append(parts, fmt.Sprintf("Top priority skills to learn: %s.", strings.Join(top, ", ")))
	}
	return strings.Join(parts, " ")
}
