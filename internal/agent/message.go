package agent

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AgentMessage 流水线阶段间的结构化消息。
// 每个阶段产出且仅产出一条，消息创建后不可变，最终全部汇入编排器的结果。
type AgentMessage struct {
	ID         string    `json:"id"`
	StageName  string    `json:"stage_name"`
	Output     any       `json:"output"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning,omitempty"`
	Evidence   []string  `json:"evidence,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewMessage 创建一条带唯一ID和时间戳的阶段消息
func NewMessage(stageName string, output any, confidence float64, reasoning string, evidence []string) *AgentMessage {
	return &AgentMessage{
		ID:         uuid.NewString(),
		StageName:  stageName,
		Output:     output,
		Confidence: confidence,
		Reasoning:  reasoning,
		Evidence:   evidence,
		Timestamp:  time.Now().UTC(),
	}
}

// ToJSON 序列化为缩进JSON，便于日志和调试输出
func (m *AgentMessage) ToJSON() (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
