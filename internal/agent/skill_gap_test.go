package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/dict"
	"resume-match-go/internal/types"
)

func gapContext(resumeSkills, requiredSkills, preferredSkills []string) *PipelineContext {
	pc := NewPipelineContext("", "", nil)
	pc.Profile = &types.ResumeProfile{
		Skills: types.NewStringSet(resumeSkills...),
		Tools:  make(types.StringSet),
	}
	pc.Requirement = &types.JobRequirement{
		RequiredSkills:  types.NewStringSet(requiredSkills...),
		PreferredSkills: types.NewStringSet(preferredSkills...),
		AllSkills:       types.NewStringSet(requiredSkills...).Union(types.NewStringSet(preferredSkills...)),
		Tools:           make(types.StringSet),
	}
	return pc
}

func TestSkillGapAnalysis(t *testing.T) {
	g := NewSkillGapAnalyzer(dict.Default())
	pc := gapContext([]string{"python", "django"}, []string{"python", "aws"}, []string{"docker"})

	msg, err := g.Process(context.Background(), pc)
	require.NoError(t, err)
	require.NotNil(t, pc.Gap)

	gap := pc.Gap
	assert.Equal(t, []string{"aws"}, gap.MissingRequired)
	assert.Equal(t, []string{"docker"}, gap.MissingPreferred)
	assert.Equal(t, []string{"python"}, gap.MatchingSkills)
	assert.InDelta(t, 50.0, gap.SkillCoverage, 0.001)
	assert.Equal(t, 2, gap.TotalRequired)
	assert.Equal(t, 1, gap.MatchingCount)

	// 学习路径带前置技能，顺序从1开始
	require.Len(t, gap.LearningPath, 1)
	assert.Equal(t, "aws", gap.LearningPath[0].Skill)
	assert.Equal(t, []string{"linux", "networking", "cloud computing"}, gap.LearningPath[0].Prerequisites)
	assert.Equal(t, 1, gap.LearningPath[0].SuggestedOrder)

	// 必备技能不超过5个时置信度为基础值
	assert.InDelta(t, 0.8, msg.Confidence, 0.001)
}

func TestSkillGapCoverageMonotonic(t *testing.T) {
	g := NewSkillGapAnalyzer(dict.Default())
	required := []string{"python", "aws", "docker", "kubernetes"}

	// 必备技能固定，简历技能逐个增加时覆盖率只增不减
	resumeSkills := []string{"java", "python", "terraform", "aws", "docker", "kubernetes"}
	prev := -1.0
	for i := 0; i <= len(resumeSkills); i++ {
		pc := gapContext(resumeSkills[:i], required, nil)
		_, err := g.Process(context.Background(), pc)
		require.NoError(t, err)
		require.NotNil(t, pc.Gap)

		assert.GreaterOrEqual(t, pc.Gap.SkillCoverage, prev,
			"coverage dropped after adding skill set %v", resumeSkills[:i])
		prev = pc.Gap.SkillCoverage
	}
	assert.InDelta(t, 100.0, prev, 0.001)
}

func TestSkillGapFullCoverage(t *testing.T) {
	g := NewSkillGapAnalyzer(dict.Default())
	pc := gapContext([]string{"python", "aws"}, []string{"python", "aws"}, nil)

	msg, err := g.Process(context.Background(), pc)
	require.NoError(t, err)

	assert.Empty(t, pc.Gap.MissingRequired)
	assert.InDelta(t, 100.0, pc.Gap.SkillCoverage, 0.001)
	assert.Contains(t, msg.Evidence, "All required skills present")
}

func TestSkillGapNoRequiredSkills(t *testing.T) {
	// 岗位无必备技能时覆盖率定义为100
	g := NewSkillGapAnalyzer(dict.Default())
	pc := gapContext([]string{"python"}, nil, []string{"docker"})

	_, err := g.Process(context.Background(), pc)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pc.Gap.SkillCoverage, 0.001)
}

func TestSkillGapLearningPathCap(t *testing.T) {
	g := NewSkillGapAnalyzer(dict.Default())
	required := []string{"aws", "docker", "kubernetes", "terraform", "ansible", "jenkins", "linux"}
	pc := gapContext(nil, required, nil)

	_, err := g.Process(context.Background(), pc)
	require.NoError(t, err)

	// 缺失7项但学习路径封顶5项，按字典序取前5
	assert.Len(t, pc.Gap.MissingRequired, 7)
	require.Len(t, pc.Gap.LearningPath, 5)
	assert.Equal(t, []string{"ansible", "aws", "docker", "jenkins", "kubernetes"}, pc.Gap.PrioritySkills)
	for i, entry := range pc.Gap.LearningPath {
		assert.Equal(t, i+1, entry.SuggestedOrder)
	}
}

func TestSkillGapMissingData(t *testing.T) {
	g := NewSkillGapAnalyzer(dict.Default())
	pc := NewPipelineContext("resume", "job", nil)

	msg, err := g.Process(context.Background(), pc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, msg.Confidence)
	require.NotNil(t, pc.Gap)
	assert.Empty(t, pc.Gap.MissingRequired)
}
