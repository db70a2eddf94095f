package events

import (
	"encoding/json"
	"fmt"
)

// DecodePayload 将事件负载解码为具体类型
// 事件经由总线JSON序列化后负载变为map，需要再次编解码还原
func DecodePayload[T any](payload interface{}) (*T, error) {
	if payload == nil {
		return nil, fmt.Errorf("事件负载为空")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("编码事件负载失败: %w", err)
	}

	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("解码事件负载失败: %w", err)
	}
	return &decoded, nil
}
