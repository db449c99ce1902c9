package element

import "errors"

var (
	// ErrMissingParameter 求解时参数没有任何来源提供数值
	ErrMissingParameter = errors.New("缺少参数")
	// ErrUnknownKind 元件类型未注册
	ErrUnknownKind = errors.New("未知的元件类型")
	// ErrInvalidArgument 元件构造参数非法
	ErrInvalidArgument = errors.New("元件参数非法")
)
