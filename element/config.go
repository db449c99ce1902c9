package element

import (
	"fmt"
	"slices"
	"strings"
)

// SetPin 按前缀生成编号引脚，如 SetPin("a", 2) 得到 a0, a1。
func SetPin(prefix string, n int) []string {
	pins := make([]string, n)
	for i := range pins {
		pins[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return pins
}

// Config 元件配置结构体，存储元件的静态配置信息。
// 具体元件嵌入 *Config，只需实现 Recompute。
type Config struct {
	Name      string   // 元件名称（如 "ps" 表示移相器）
	Pin       []string // 引脚列表，定义散射矩阵行列顺序
	ValueInit Defaults // 参数默认值
}

// GetName 元件名称。
func (config *Config) GetName() string {
	return strings.ToUpper(config.Name)
}

// Pins 引脚副本
func (config *Config) Pins() []string { return slices.Clone(config.Pin) }

// Defaults 默认值副本
func (config *Config) Defaults() Defaults { return config.ValueInit.Clone() }

// PinNum 获取元件的引脚数量。
func (config *Config) PinNum() int { return len(config.Pin) }

// String 名称与引脚
func (config *Config) String() string {
	return fmt.Sprintf("%s%v", config.GetName(), config.Pin)
}
