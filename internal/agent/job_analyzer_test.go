package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

const sampleJob = `Senior Platform Engineer
Python is required and AWS is essential for this role.
Our group ships tooling for cloud infra with high uptime.
Nice to have: Docker.
Minimum of 5 years building services. At least 3 years with Python.`

func TestJobAnalyzerCategorization(t *testing.T) {
	a := NewJobAnalyzer(newTestExtractor())
	pc := NewPipelineContext("", sampleJob, nil)

	msg, err := a.Process(context.Background(), pc)
	require.NoError(t, err)
	require.NotNil(t, pc.Requirement)

	req := pc.Requirement
	assert.ElementsMatch(t, []string{"aws", "python"}, req.RequiredSkills.Sorted())
	assert.ElementsMatch(t, []string{"docker"}, req.PreferredSkills.Sorted())

	// 必备与加分集合互斥
	assert.Empty(t, req.RequiredSkills.Intersect(req.PreferredSkills))

	// 多个年限表述取最小值作为门槛
	assert.InDelta(t, 3.0, req.ExperienceRequiredYears, 0.001)
	assert.Equal(t, types.RoleSenior, req.RoleLevel)
	assert.False(t, req.EducationSpecified)

	// 必备技能仅2个：0.5 + 0.1(年限) + 0.1(级别)
	assert.InDelta(t, 0.7, msg.Confidence, 0.001)
}

func TestJobAnalyzerEmptyText(t *testing.T) {
	a := NewJobAnalyzer(newTestExtractor())
	pc := NewPipelineContext("resume text", "", nil)

	msg, err := a.Process(context.Background(), pc)
	require.NoError(t, err)

	require.NotNil(t, pc.Requirement)
	assert.Empty(t, pc.Requirement.RequiredSkills)
	assert.Equal(t, 0.0, msg.Confidence)
	assert.Equal(t, "No job description provided", msg.Reasoning)
}

func TestJobAnalyzerMentionCountDefault(t *testing.T) {
	// 窗口内无任何指示词时：多次提及默认必备，单次提及默认加分
	jobText := "We use Python daily. Python powers our stack. Docker appears here once."
	skills := types.NewStringSet("python", "docker")

	required, preferred := categorizeSkills(jobText, skills)
	assert.True(t, required.Contains("python"))
	assert.True(t, preferred.Contains("docker"))
}

func TestJobAnalyzerRequiredBeatsPreferred(t *testing.T) {
	// 同一技能多处提及时，任一提及命中必备指示词即判为必备
	jobText := "Docker is nice to have for local setups. Docker is required in production."
	skills := types.NewStringSet("docker")

	required, preferred := categorizeSkills(jobText, skills)
	assert.True(t, required.Contains("docker"))
	assert.False(t, preferred.Contains("docker"))
}

func TestJobAnalyzerExperienceMinimum(t *testing.T) {
	assert.InDelta(t, 2.0, extractExperienceRequirement("5 years of experience preferred, at least 2 years mandatory"), 0.001)
	assert.Equal(t, 0.0, extractExperienceRequirement("no numeric requirement"))
}

func TestJobAnalyzerEducation(t *testing.T) {
	level, specified := extractJobEducation("PhD strongly preferred")
	assert.Equal(t, types.EducationPhD, level)
	assert.True(t, specified)

	level, specified = extractJobEducation("nothing relevant here")
	assert.Equal(t, types.EducationUnknown, level)
	assert.False(t, specified)
}

func TestJobAnalyzerRoleLevel(t *testing.T) {
	assert.Equal(t, types.RoleSenior, identifyRoleLevel("Staff Engineer opening"))
	assert.Equal(t, types.RoleJunior, identifyRoleLevel("entry-level position"))
	assert.Equal(t, types.RoleMidLevel, identifyRoleLevel("intermediate developer"))
	assert.Equal(t, types.RoleNotSpecified, identifyRoleLevel("developer opening"))
}
