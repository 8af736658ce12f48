package services

import (
	"bytes"
	"errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/yeremiapane/geprek-app/utils"
)

// RenderRevenueChart menggambar grafik garis pendapatan harian sebagai PNG
func RenderRevenueChart(points []RevenuePoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, errors.New("tidak ada data pendapatan")
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ticks := make([]chart.Tick, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = float64(p.Revenue)
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Label}
	}
	maxY := 0.0
	for _, y := range ys {
		if y > maxY {
			maxY = y
		}
	}
	// rentang nol ditolak go-chart
	if maxY == 0 {
		maxY = 1000
	}
	// go-chart butuh minimal dua titik
	if len(points) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:  "Pendapatan 7 Hari Terakhir",
		Width:  800,
		Height: 320,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return utils.FormatRupiah(int64(f))
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Pendapatan",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
