package maths

import (
	"fmt"
	"strings"
)

// denseMatrix 稠密矩阵（行优先存储）
type denseMatrix[T Number] struct {
	rows, cols int
	DataManager[T]
}

// NewDenseMatrix 创建 rows×cols 的零矩阵
func NewDenseMatrix[T Number](rows, cols int) Matrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("矩阵尺寸非法: %d×%d", rows, cols))
	}
	return &denseMatrix[T]{
		rows:        rows,
		cols:        cols,
		DataManager: NewDataManager[T](rows * cols),
	}
}

// NewDenseMatrixFrom 从二维切片创建矩阵
func NewDenseMatrixFrom[T Number](dense [][]T) Matrix[T] {
	cols := 0
	if len(dense) > 0 {
		cols = len(dense[0])
	}
	m := &denseMatrix[T]{rows: len(dense), cols: cols, DataManager: NewDataManager[T](len(dense) * cols)}
	m.fill(dense)
	return m
}

// NewIdentity 创建 n 阶单位矩阵
func NewIdentity[T Number](n int) Matrix[T] {
	m := NewDenseMatrix[T](n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Rows 行数
func (m *denseMatrix[T]) Rows() int { return m.rows }

// Cols 列数
func (m *denseMatrix[T]) Cols() int { return m.cols }

// IsSquare 判断是否为方阵
func (m *denseMatrix[T]) IsSquare() bool { return m.rows == m.cols }

func (m *denseMatrix[T]) index(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("矩阵索引越界: (%d,%d) 超出 %d×%d", row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

// Get 获取元素
func (m *denseMatrix[T]) Get(row, col int) T {
	return m.DataManager.Get(m.index(row, col))
}

// Set 设置元素
func (m *denseMatrix[T]) Set(row, col int, value T) {
	m.DataManager.Set(m.index(row, col), value)
}

// ToDense 行优先展开为稠密向量（副本）
func (m *denseMatrix[T]) ToDense() Vector[T] {
	return NewDenseVectorWithData(m.DataCopy())
}

// fill 从二维切片填充，尺寸必须一致
func (m *denseMatrix[T]) fill(dense [][]T) {
	if len(dense) != m.rows {
		panic(fmt.Sprintf("矩阵行数不匹配: %d != %d", len(dense), m.rows))
	}
	for i, row := range dense {
		if len(row) != m.cols {
			panic(fmt.Sprintf("矩阵第 %d 行列数不匹配: %d != %d", i, len(row), m.cols))
		}
		copy(m.DataPtr()[i*m.cols:(i+1)*m.cols], row)
	}
}

// Clone 深拷贝
func (m *denseMatrix[T]) Clone() Matrix[T] {
	return &denseMatrix[T]{
		rows:        m.rows,
		cols:        m.cols,
		DataManager: NewDataManagerWithData(m.DataCopy()),
	}
}

// MatrixVectorMultiply 矩阵向量乘法
func (m *denseMatrix[T]) MatrixVectorMultiply(x Vector[T]) Vector[T] {
	if x.Length() != m.cols {
		panic(fmt.Sprintf("矩阵向量维度不匹配: %d != %d", x.Length(), m.cols))
	}
	out := NewDenseVector[T](m.rows)
	data := m.DataPtr()
	for i := 0; i < m.rows; i++ {
		var sum T
		for j := 0; j < m.cols; j++ {
			sum += data[i*m.cols+j] * x.Get(j)
		}
		out.Set(i, sum)
	}
	return out
}

// String 格式化输出
func (m *denseMatrix[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%v", m.Get(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// Unitarity 返回 ‖MᴴM − I‖ 的最大元素模，用于检验能量守恒。
func Unitarity[T Number](m Matrix[T]) float64 {
	if !m.IsSquare() {
		panic(fmt.Sprintf("非方阵: %d×%d", m.Rows(), m.Cols()))
	}
	n := m.Rows()
	worst := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for k := 0; k < n; k++ {
				sum += Conj(m.Get(k, i)) * m.Get(k, j)
			}
			if i == j {
				sum -= 1
			}
			if a := Abs(sum); a > worst {
				worst = a
			}
		}
	}
	return worst
}
