package constants

// 流水线阶段名，出现在AgentMessage.StageName和span名称中
const (
	StageResumeParser = "resume_parser"
	StageJobAnalyzer  = "job_analyzer"
	StageMatchScorer  = "match_scorer"
	StageSkillGap     = "skill_gap"
	StageVerification = "verification"
	StageOrchestrator = "orchestrator"
)

const (
	// PipelineVersion 匹配流水线版本号，随阶段语义变化递增
	PipelineVersion = "1.0"

	// MaxLearningPathItems 学习路径最多给出的技能数
	MaxLearningPathItems = 5

	// StabilityThreshold 置信度方差低于该值视为稳定
	StabilityThreshold = 0.05

	// ConfidenceHighFloor 高置信度下限
	ConfidenceHighFloor = 0.8
	// ConfidenceMediumFloor 中置信度下限
	ConfidenceMediumFloor = 0.6
)
