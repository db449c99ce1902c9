package load

import "errors"

var (
	// ErrParse 文件解析或解码失败
	ErrParse = errors.New("网络文件解析失败")
	// ErrUnknownNetwork 引用了未定义（或定义在后面）的网络
	ErrUnknownNetwork = errors.New("未知网络")
	// ErrDuplicateNetwork 网络名重复
	ErrDuplicateNetwork = errors.New("网络名重复")
	// ErrUnknownComponent 引脚引用了不存在的组件
	ErrUnknownComponent = errors.New("未知组件")
	// ErrInvalidComponent 组件定义不完整或自相矛盾
	ErrInvalidComponent = errors.New("组件定义非法")
	// ErrExpression 表达式计算失败
	ErrExpression = errors.New("表达式错误")
)
