package scatter

import "errors"

var (
	// ErrUnknownPin 引脚名不存在
	ErrUnknownPin = errors.New("未知引脚")
	// ErrPortCollision 合并或重命名后出现重复引脚名
	ErrPortCollision = errors.New("引脚名冲突")
	// ErrDegenerateConnection 连接分母在容差内为零（谐振环路）
	ErrDegenerateConnection = errors.New("连接退化")
	// ErrDimension 矩阵尺寸与引脚数不一致
	ErrDimension = errors.New("矩阵尺寸不匹配")
	// ErrSelfConnection 引脚与自身相连
	ErrSelfConnection = errors.New("引脚不能与自身相连")
)
