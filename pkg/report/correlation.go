package report

import (
	"math"

	"github.com/dixit-prashant/Marketing-Analytics-Pipeline/pkg/models"
)

// MetricNames labels the rows and columns of the correlation matrix, in
// matrix order.
var MetricNames = [3]string{"Recency", "Frequency", "Monetary"}

// Correlation computes the Pearson correlation matrix of the recency,
// frequency and monetary columns over a population. A zero-variance column
// has no defined correlation; its entries, diagonal included, are NaN.
func Correlation(metrics []models.CustomerMetrics) [3][3]float64 {
	cols := [3][]float64{
		make([]float64, len(metrics)),
		make([]float64, len(metrics)),
		make([]float64, len(metrics)),
	}
	for i, m := range metrics {
		cols[0][i] = float64(m.RecencyDays)
		cols[1][i] = float64(m.Frequency)
		cols[2][i] = m.Monetary
	}

	var matrix [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				if variance(cols[i]) == 0 {
					matrix[i][j] = math.NaN()
				} else {
					matrix[i][j] = 1
				}
				continue
			}
			matrix[i][j] = pearson(cols[i], cols[j])
		}
	}
	return matrix
}

func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return math.NaN()
	}
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

func variance(x []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / n
	var acc float64
	for _, v := range x {
		d := v - mean
		acc += d * d
	}
	return acc
}
