package maths

import (
	"fmt"
)

// dataManager 提供了 DataManager 接口的通用实现。
type dataManager[T Number] struct {
	data []T
}

// NewDataManager 创建一个指定长度的新的 DataManager。
func NewDataManager[T Number](length int) DataManager[T] {
	return &dataManager[T]{
		data: make([]T, length),
	}
}

// NewDataManagerWithData 使用给定的数据切片创建一个新的 DataManager。
func NewDataManagerWithData[T Number](data []T) DataManager[T] {
	return &dataManager[T]{
		data: data,
	}
}

// Length 返回数据的长度。
func (dm *dataManager[T]) Length() int {
	return len(dm.data)
}

// String 返回数据的字符串表示形式。
func (dm *dataManager[T]) String() string {
	return fmt.Sprintf("%v", dm.data)
}

// Get 返回指定索引处的值。
func (dm *dataManager[T]) Get(index int) T {
	return dm.data[index]
}

// Set 设置指定索引处的值。
func (dm *dataManager[T]) Set(index int, value T) {
	dm.data[index] = value
}

// DataCopy 返回底层切片的副本。
func (dm *dataManager[T]) DataCopy() []T {
	out := make([]T, len(dm.data))
	copy(out, dm.data)
	return out
}

// DataPtr 返回底层切片。
func (dm *dataManager[T]) DataPtr() []T {
	return dm.data
}
