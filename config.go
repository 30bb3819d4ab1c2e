package voltlab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"voltlab/types"
)

// ParseConfig 解析YAML求解参数，未给出的字段保持默认值
func ParseConfig(data []byte) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置: %w", err)
	}
	return cfg, nil
}

// LoadConfig 读取并解析YAML求解参数文件
func LoadConfig(path string) (types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DefaultConfig(), fmt.Errorf("读取配置: %w", err)
	}
	return ParseConfig(data)
}
