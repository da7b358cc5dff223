package types

import "errors"

// 流水线错误分类（见各阶段约定）：
// 权重校验失败是唯一向调用方直接抛出的硬错误，
// 其余降级路径通过降低置信度和追加警告来表达，不中断流水线。
var (
	// ErrInvalidWeights 调用方提供的评分权重校验失败
	ErrInvalidWeights = errors.New("invalid score weights")

	// ErrInputMissing 阶段收到空输入（简历或岗位文本为空）
	ErrInputMissing = errors.New("input text missing")

	// ErrEmbeddingUnavailable 向量服务不可用或超时
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrInvalidRequest API请求参数不合法
	ErrInvalidRequest = errors.New("invalid request")
)
