package agent

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

// JobPosting 待比较的一个岗位
type JobPosting struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// JobRanking 单个岗位在比较结果中的排名条目
type JobRanking struct {
	Rank            int          `json:"rank"`
	JobID           string       `json:"job_id"`
	JobTitle        string       `json:"job_title"`
	MatchScore      float64      `json:"match_score"`
	SkillCoverage   float64      `json:"skill_coverage"`
	MissingRequired []string     `json:"missing_required"`
	Result          *MatchResult `json:"-"`
}

// RankingStats 比较结果的汇总统计
type RankingStats struct {
	TotalJobs    int     `json:"total_jobs"`
	AverageScore float64 `json:"average_score"`
	HighestScore float64 `json:"highest_score"`
	LowestScore  float64 `json:"lowest_score"`
	ScoreRange   float64 `json:"score_range"`
}

// ComparisonResult 一份简历对多个岗位的完整比较结果
type ComparisonResult struct {
	Rankings            []JobRanking `json:"rankings"`
	Stats               RankingStats `json:"stats"`
	CommonMissingSkills []string     `json:"common_missing_skills"`
}

// CompareJobs 将同一份简历依次跑完整流水线匹配每个岗位，按得分排序。
// 各岗位匹配相互独立，任一岗位的硬错误终止整个比较。
func (o *Orchestrator) CompareJobs(ctx context.Context, resumeText string, jobs []JobPosting, weights *types.WeightVector) (*ComparisonResult, error) {
	ctx, span := tracer.Start(ctx, "agent.compare_jobs")
	defer span.End()
	span.SetAttributes(attribute.Int("jobs.count", len(jobs)))

	if len(jobs) == 0 {
		return nil, fmt.Errorf("没有可比较的岗位")
	}

	rankings := make([]JobRanking, 0, len(jobs))
	missingCounts := map[string]int{}
	for _, job := range jobs {
		result, err := o.Run(ctx, PipelineInput{
			ResumeText: resumeText,
			JobText:    job.Text,
			Weights:    weights,
		})
		if err != nil {
			tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeInternal,
				attribute.String("job.id", job.ID))
			return nil, fmt.Errorf("岗位 %s 匹配失败: %w", job.ID, err)
		}

		ranking := JobRanking{
			JobID:      job.ID,
			JobTitle:   job.Title,
			MatchScore: result.MatchScore,
			Result:     result,
		}
		if result.GapAnalysis != nil {
			ranking.SkillCoverage = result.GapAnalysis.SkillCoverage
			ranking.MissingRequired = result.GapAnalysis.MissingRequired
			for _, skill := range result.GapAnalysis.MissingRequired {
				missingCounts[skill]++
			}
		}
		rankings = append(rankings, ranking)
	}

	// 稳定排序，同分保持输入顺序
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].MatchScore > rankings[j].MatchScore
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	return &ComparisonResult{
		Rankings:            rankings,
		Stats:               comparisonStats(rankings),
		CommonMissingSkills: commonMissing(missingCounts),
	}, nil
}

func comparisonStats(rankings []JobRanking) RankingStats {
	stats := RankingStats{TotalJobs: len(rankings)}
	if len(rankings) == 0 {
		return stats
	}
	total := 0.0
	highest := rankings[0].MatchScore
	lowest := rankings[0].MatchScore
	for _, r := range rankings {
		total += r.MatchScore
		if r.MatchScore > highest {
			highest = r.MatchScore
		}
		if r.MatchScore < lowest {
			lowest = r.MatchScore
		}
	}
	stats.AverageScore = round2(total / float64(len(rankings)))
	stats.HighestScore = highest
	stats.LowestScore = lowest
	stats.ScoreRange = round2(highest - lowest)
	return stats
}

// commonMissing 统计在多个岗位中反复缺失的技能，按出现次数降序取前5，同次数按字典序
func commonMissing(counts map[string]int) []string {
	skills := make([]string, 0, len(counts))
	for skill := range counts {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		if counts[skills[i]] != counts[skills[j]] {
			return counts[skills[i]] > counts[skills[j]]
		}
		return skills[i] < skills[j]
	})
	if len(skills) > 5 {
		skills = skills[:5]
	}
	return skills
}
