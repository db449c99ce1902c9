package maths

import (
	"math"
	"math/cmplx"
)

// Number 是一个约束，允许任何浮点或复数类型
type Number interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Abs 是一个泛型函数，返回任何支持的 Number 类型的绝对值（复数取模）。
func Abs[T Number](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return math.Abs(float64(x))
	case float64:
		return math.Abs(x)
	case complex64:
		return cmplx.Abs(complex128(x))
	case complex128:
		return cmplx.Abs(x)
	}
	return 0
}

// Conj 返回共轭值，实数类型原样返回。
func Conj[T Number](v T) T {
	switch x := any(v).(type) {
	case complex64:
		return any(complex64(cmplx.Conj(complex128(x)))).(T)
	case complex128:
		return any(cmplx.Conj(x)).(T)
	}
	return v
}

// DataManager 一维数据管理器（底层存储核心）
type DataManager[T Number] interface {
	Length() int    // 获取数据长度
	String() string // 返回数据的字符串表示

	Get(index int) T        // 获取指定索引处的元素值
	Set(index int, value T) // 设置指定索引处的元素值

	DataCopy() []T // 返回数据的切片副本
	DataPtr() []T  // 返回数据的切片引用（直接操作底层数据）
}

// 向量接口定义
type Vector[T Number] interface {
	Length() int    // 获取向量长度
	String() string // 格式化字符串输出

	Get(index int) T        // 获取指定索引元素值
	Set(index int, value T) // 设置指定索引元素值

	ToDense() []T // 转换为稠密切片
}

// 矩阵接口定义
type Matrix[T Number] interface {
	// 基础属性方法
	Rows() int      // 获取矩阵行数
	Cols() int      // 获取矩阵列数
	String() string // 格式化字符串输出
	IsSquare() bool // 判断是否为方阵（行数=列数）

	// 数据访问方法
	Get(row, col int) T        // 获取指定行列元素值
	Set(row, col int, value T) // 设置指定行列元素值

	// 数据转换方法
	ToDense() Vector[T] // 转换为稠密向量（行优先展开）
	Clone() Matrix[T]   // 深拷贝

	// 数学运算方法
	MatrixVectorMultiply(x Vector[T]) Vector[T] // 矩阵向量乘法（返回A*x）
}
