package types

import (
	"fmt"
	"math"
	"sort"
)

// EducationLevel 表示候选人或岗位要求的学历层级
type EducationLevel int

const (
	// EducationUnknown 未识别出学历
	EducationUnknown EducationLevel = iota
	// EducationDiploma 大专/证书级别
	EducationDiploma
	// EducationBachelors 本科
	EducationBachelors
	// EducationMasters 硕士
	EducationMasters
	// EducationPhD 博士
	EducationPhD
)

// String 方法使得 EducationLevel 可以被打印
func (l EducationLevel) String() string {
	switch l {
	case EducationDiploma:
		return "Diploma/Certification"
	case EducationBachelors:
		return "Bachelors"
	case EducationMasters:
		return "Masters"
	case EducationPhD:
		return "PhD"
	default:
		return "Unknown"
	}
}

// MarshalJSON 输出可读的学历名称
func (l EducationLevel) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", l.String())), nil
}

// RoleLevel 表示岗位的资历级别
type RoleLevel int

const (
	// RoleNotSpecified 岗位描述中未说明级别
	RoleNotSpecified RoleLevel = iota
	// RoleJunior 初级岗位
	RoleJunior
	// RoleMidLevel 中级岗位
	RoleMidLevel
	// RoleSenior 高级岗位
	RoleSenior
)

// String 方法使得 RoleLevel 可以被打印
func (l RoleLevel) String() string {
	switch l {
	case RoleJunior:
		return "Junior"
	case RoleMidLevel:
		return "Mid-Level"
	case RoleSenior:
		return "Senior"
	default:
		return "Not Specified"
	}
}

// MarshalJSON 输出可读的级别名称
func (l RoleLevel) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", l.String())), nil
}

// ConfidenceLevel 验证阶段给出的置信度档位
type ConfidenceLevel string

const (
	// ConfidenceLow 低置信度
	ConfidenceLow ConfidenceLevel = "Low"
	// ConfidenceMedium 中等置信度
	ConfidenceMedium ConfidenceLevel = "Medium"
	// ConfidenceHigh 高置信度
	ConfidenceHigh ConfidenceLevel = "High"
)

// StringSet 字符串集合，用于技能/工具的集合运算
type StringSet map[string]struct{}

// NewStringSet 由若干元素构造集合
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add 向集合中添加元素
func (s StringSet) Add(item string) {
	s[item] = struct{}{}
}

// Contains 判断元素是否在集合中
func (s StringSet) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

// Intersect 返回两个集合的交集
func (s StringSet) Intersect(other StringSet) StringSet {
	out := make(StringSet)
	for item := range s {
		if other.Contains(item) {
			out.Add(item)
		}
	}
	return out
}

// Diff 返回 s - other 的差集
func (s StringSet) Diff(other StringSet) StringSet {
	out := make(StringSet)
	for item := range s {
		if !other.Contains(item) {
			out.Add(item)
		}
	}
	return out
}

// Union 返回两个集合的并集
func (s StringSet) Union(other StringSet) StringSet {
	out := make(StringSet, len(s)+len(other))
	for item := range s {
		out.Add(item)
	}
	for item := range other {
		out.Add(item)
	}
	return out
}

// Sorted 返回按字典序排序的元素切片
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON 集合序列化为有序数组，保证输出稳定
func (s StringSet) MarshalJSON() ([]byte, error) {
	items := s.Sorted()
	buf := []byte{'['}
	for i, item := range items {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, []byte(fmt.Sprintf("%q", item))...)
	}
	return append(buf, ']'), nil
}

// EntitySet 从原始文本中抽取出的实体集合。
// 每次调用抽取器都会产生一个全新的实例，返回后不再修改，由调用方持有。
type EntitySet struct {
	Skills            StringSet `json:"skills"`
	Tools             StringSet `json:"tools"`
	EducationMarkers  []string  `json:"education_markers"`
	ExperienceMarkers []string  `json:"experience_markers"`
}

// NewEntitySet 创建所有字段均已初始化的空实体集合
func NewEntitySet() *EntitySet {
	return &EntitySet{
		Skills:            make(StringSet),
		Tools:             make(StringSet),
		EducationMarkers:  []string{},
		ExperienceMarkers: []string{},
	}
}

// ResumeProfile 候选人简历的结构化画像，在一次流水线运行中创建一次，之后只读
type ResumeProfile struct {
	Skills          StringSet      `json:"skills"`
	Tools           StringSet      `json:"tools"`
	ExperienceYears float64        `json:"experience_years"`
	EducationLevel  EducationLevel `json:"education_level"`
	Titles          []string       `json:"titles"`
}

// JobRequirement 岗位描述的结构化需求集。
// 技能分类保证 RequiredSkills 与 PreferredSkills 互斥：required 优先。
type JobRequirement struct {
	RequiredSkills          StringSet      `json:"required_skills"`
	PreferredSkills         StringSet      `json:"preferred_skills"`
	AllSkills               StringSet      `json:"all_skills"`
	Tools                   StringSet      `json:"tools"`
	ExperienceRequiredYears float64        `json:"experience_required_years"`
	EducationRequired       EducationLevel `json:"education_required"`
	EducationSpecified      bool           `json:"education_specified"`
	RoleLevel               RoleLevel      `json:"role_level"`
}

// SectionScores 各维度的匹配得分，取值范围 [0,1]；Overall 为原始语义相似度
type SectionScores struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Tools      float64 `json:"tools"`
	Overall    float64 `json:"overall"`
}

// WeightTolerance 权重和允许的偏差
const WeightTolerance = 0.01

// WeightVector 四个评分维度的权重，和必须为 1.0（容差 0.01）
type WeightVector struct {
	Skills     float64 `json:"skills" yaml:"skills"`
	Experience float64 `json:"experience" yaml:"experience"`
	Education  float64 `json:"education" yaml:"education"`
	Tools      float64 `json:"tools" yaml:"tools"`
}

// DefaultWeights 返回默认权重配置
func DefaultWeights() WeightVector {
	return WeightVector{
		Skills:     0.4,
		Experience: 0.3,
		Education:  0.15,
		Tools:      0.15,
	}
}

// Sum 返回权重之和
func (w WeightVector) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Tools
}

// IsZero 判断是否为未设置的零值权重
func (w WeightVector) IsZero() bool {
	return w.Skills == 0 && w.Experience == 0 && w.Education == 0 && w.Tools == 0
}

// Validate 校验权重和是否在容差范围内
func (w WeightVector) Validate() error {
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: 权重和必须为 1.0, 实际为 %.4f", ErrInvalidWeights, sum)
	}
	return nil
}

// GapEntry 学习路径中的一个条目
type GapEntry struct {
	Skill          string   `json:"skill"`
	Prerequisites  []string `json:"prerequisites"`
	SuggestedOrder int      `json:"suggested_order"`
}

// GapResult 技能差距分析结果
type GapResult struct {
	MissingRequired  []string   `json:"missing_required_skills"`
	MissingPreferred []string   `json:"missing_preferred_skills"`
	MatchingSkills   []string   `json:"matching_skills"`
	SkillCoverage    float64    `json:"skill_coverage"`
	TotalRequired    int        `json:"total_required"`
	MatchingCount    int        `json:"matching_count"`
	LearningPath     []GapEntry `json:"learning_path"`
	PrioritySkills   []string   `json:"priority_skills"`
}

// VerificationResult 自验证阶段的输出
type VerificationResult struct {
	FinalScore       float64         `json:"final_score"`
	ConfidenceLevel  ConfidenceLevel `json:"confidence_level"`
	StabilityIndex   float64         `json:"stability_index"`
	ScoreVariance    float64         `json:"score_variance"`
	ConsistencyScore float64         `json:"consistency_score"`
	IsStable         bool            `json:"is_stable"`
	IsConsistent     bool            `json:"is_consistent"`
	Warnings         []string        `json:"warnings"`
}

// ScoreOutput 评分阶段的结构化输出
type ScoreOutput struct {
	OverallScore        float64       `json:"overall_score"`
	SemanticSimilarity  float64       `json:"semantic_similarity"`
	SectionScores       SectionScores `json:"section_scores"`
	Weights             WeightVector  `json:"weights"`
	SkillMatchCount     int           `json:"skill_match_count"`
	TotalRequiredSkills int           `json:"total_required_skills"`
}
