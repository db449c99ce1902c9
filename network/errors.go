package network

import (
	"errors"

	"github.com/joamatab/lekkersim/element"
	"github.com/joamatab/lekkersim/scatter"
)

var (
	// ErrUnknownPin 引用了不存在的引脚，或引脚不属于当前网络
	ErrUnknownPin = scatter.ErrUnknownPin
	// ErrDegenerateConnection 连接形成无损谐振环路，分母为零
	ErrDegenerateConnection = scatter.ErrDegenerateConnection
	// ErrPortCollision 放置或模式展开后出现重复引脚名
	ErrPortCollision = scatter.ErrPortCollision
	// ErrDimension 模型返回的矩阵尺寸与引脚数不符
	ErrDimension = scatter.ErrDimension
	// ErrMissingParameter 求解时参数没有任何来源提供数值
	ErrMissingParameter = element.ErrMissingParameter

	// ErrDuplicateExternalName 外部引脚名重复
	ErrDuplicateExternalName = errors.New("外部引脚名重复")
	// ErrDuplicateName 组件名或派生参数名重复
	ErrDuplicateName = errors.New("名称重复")
	// ErrPinInUse 引脚已被连接或导出
	ErrPinInUse = errors.New("引脚已被占用")
	// ErrDanglingPin 严格模式下存在既未连接也未导出的引脚
	ErrDanglingPin = errors.New("存在悬空引脚")
	// ErrLengthMismatch 扫描序列长度不一致
	ErrLengthMismatch = errors.New("扫描序列长度不一致")
	// ErrBuilderClosed 网络已构建，构建器不再接受修改
	ErrBuilderClosed = errors.New("构建器已关闭")
	// ErrInvalidPlacement 放置参数非法（空模型、空模式标签等）
	ErrInvalidPlacement = errors.New("放置参数非法")
)
