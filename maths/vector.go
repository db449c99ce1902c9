package maths

// denseVector 稠密向量实现
// 基于 DataManager 实现 Vector 接口
type denseVector[T Number] struct {
	DataManager[T]
}

// NewDenseVector 创建新的稠密向量
func NewDenseVector[T Number](length int) Vector[T] {
	return &denseVector[T]{
		DataManager: NewDataManager[T](length),
	}
}

// NewDenseVectorWithData 从现有数据创建稠密向量（共享切片）
func NewDenseVectorWithData[T Number](data []T) Vector[T] {
	return &denseVector[T]{
		DataManager: NewDataManagerWithData(data),
	}
}

// ToDense 返回数据副本
func (v *denseVector[T]) ToDense() []T {
	return v.DataCopy()
}

// Linspace 返回 [start, stop] 上 n 个等距点，n==1 时只含 start。
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
