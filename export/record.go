// Package export 把扫描结果整理成表格，并输出为 CSV、JSON 或曲线图。
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/cmplx"
	"slices"
	"strconv"

	"github.com/joamatab/lekkersim/network"
)

// 内置列名
const (
	ColumnIndex = "index"
	ColumnT     = "T"
	ColumnPhase = "Phase"
	ColumnRe    = "Re"
	ColumnIm    = "Im"
)

// ErrUnknownColumn 列名不存在
var ErrUnknownColumn = errors.New("未知的列")

// Record 一对引脚在整个扫描上的传输记录，每个扫描点一行。
type Record struct {
	PinA   string      `json:"pin_a"`
	PinB   string      `json:"pin_b"`
	Names  []string    `json:"names"`  // 扫描参数列
	Params [][]float64 `json:"params"` // Params[i][k] 为第 i 行第 k 个扫描参数
	T      []float64   `json:"T"`
	Phase  []float64   `json:"phase"`
	Re     []float64   `json:"re"`
	Im     []float64   `json:"im"`
}

// NewRecord 由扫描结果提取 a、b 之间的 T、相位和复幅度
func NewRecord(sw *network.SweepResult, a, b string) (*Record, error) {
	n := sw.Len()
	rec := &Record{
		PinA:   a,
		PinB:   b,
		Names:  slices.Clone(sw.Names),
		Params: make([][]float64, n),
		T:      make([]float64, n),
		Phase:  make([]float64, n),
		Re:     make([]float64, n),
		Im:     make([]float64, n),
	}
	for i, m := range sw.Models {
		v, err := m.Amplitude(a, b)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行: %w", i, err)
		}
		abs := cmplx.Abs(v)
		rec.T[i] = abs * abs
		rec.Phase[i] = cmplx.Phase(v)
		rec.Re[i], rec.Im[i] = real(v), imag(v)
		row := make([]float64, len(rec.Names))
		for k, name := range rec.Names {
			row[k] = sw.Values[name][i]
		}
		rec.Params[i] = row
	}
	return rec, nil
}

// Len 行数
func (rec *Record) Len() int { return len(rec.T) }

// Amplitude 第 i 行的复幅度
func (rec *Record) Amplitude(i int) complex128 { return complex(rec.Re[i], rec.Im[i]) }

// Columns 所有可用列名：扫描参数在前
func (rec *Record) Columns() []string {
	return append(slices.Clone(rec.Names), ColumnT, ColumnPhase, ColumnRe, ColumnIm)
}

// Column 按列名取一列
func (rec *Record) Column(name string) ([]float64, error) {
	switch name {
	case ColumnT:
		return slices.Clone(rec.T), nil
	case ColumnPhase:
		return slices.Clone(rec.Phase), nil
	case ColumnRe:
		return slices.Clone(rec.Re), nil
	case ColumnIm:
		return slices.Clone(rec.Im), nil
	case ColumnIndex:
		out := make([]float64, rec.Len())
		for i := range out {
			out[i] = float64(i)
		}
		return out, nil
	}
	k := slices.Index(rec.Names, name)
	if k < 0 {
		return nil, fmt.Errorf("%w %q（可用: %v）", ErrUnknownColumn, name, rec.Columns())
	}
	out := make([]float64, rec.Len())
	for i, row := range rec.Params {
		out[i] = row[k]
	}
	return out, nil
}

// Render 以 JSON 输出
func (rec *Record) Render(w io.Writer) error { return json.NewEncoder(w).Encode(rec) }

// WriteCSV 以 CSV 输出，表头为扫描参数、T、Phase、Amplitude
func (rec *Record) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append(slices.Clone(rec.Names), ColumnT, ColumnPhase, "Amplitude")
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < rec.Len(); i++ {
		row := make([]string, 0, len(header))
		for _, v := range rec.Params[i] {
			row = append(row, formatFloat(v))
		}
		row = append(row,
			formatFloat(rec.T[i]),
			formatFloat(rec.Phase[i]),
			strconv.FormatComplex(rec.Amplitude(i), 'g', -1, 128),
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
