// residual-calibrate is a QC tool for the upstream regression models that
// feed the warning pipeline. It fits constant/linear/quadratic/cubic trend
// models of residual (actual − predicted) versus depth for each pressure
// channel of a well and reports fit diagnostics, flagging channels whose
// residuals still carry depth-dependent structure the model failed to
// capture.
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/welldrift/wellwarn/internal/wells"
)

// ModelType represents the fitted residual trend models
type ModelType string

const (
	ModelConstant  ModelType = "constant"
	ModelLinear    ModelType = "linear"
	ModelQuadratic ModelType = "quadratic"
	ModelCubic     ModelType = "cubic"
)

// FitResult contains the diagnostics for one model on one channel
type FitResult struct {
	ModelType            ModelType
	ModelName            string
	Channel              string
	Coefficients         []float64 // residual = c0 + c1*depth + c2*depth² + ...
	RSquared             float64
	AdjustedRSquared     float64
	MeanAbsoluteError    float64
	RootMeanSquaredError float64
	AIC                  float64 // lower is better
	BIC                  float64 // lower is better
	SampleCount          int
}

func main() {
	var (
		wellName = flag.String("well", "", "Well name (required)")
		csvPath  = flag.String("input", "", "CSV input file with depth/actual/predicted columns")
		dbConn   = flag.String("db", "", "Postgres connection string (alternative to -input)")
		dbTable  = flag.String("db-table", "pressure_inputs", "Input table name when using -db")
		csvOut   = flag.String("csv", "", "Optional CSV output file for per-sample residuals and fits")
	)
	flag.Parse()

	if *wellName == "" {
		fmt.Fprintf(os.Stderr, "Error: -well is required\n")
		os.Exit(1)
	}

	var well *wells.WellInput
	var err error
	switch {
	case *csvPath != "":
		well, err = wells.LoadCSV(*wellName, *csvPath)
	case *dbConn != "":
		well, err = fetchWell(*dbConn, *dbTable, *wellName)
	default:
		fmt.Fprintf(os.Stderr, "Error: one of -input or -db is required\n")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading well: %v\n", err)
		os.Exit(1)
	}
	if err := well.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if well.Len() < 10 {
		fmt.Fprintf(os.Stderr, "Error: not enough samples (%d). Need at least 10.\n", well.Len())
		os.Exit(1)
	}

	fmt.Printf("Pressure Residual Calibration Report\n")
	fmt.Printf("====================================\n\n")
	fmt.Printf("Well: %s (%d samples, depth %.1f–%.1f)\n\n",
		well.Name, well.Len(), well.Depth[0], well.Depth[well.Len()-1])

	channels := []struct {
		name      string
		residuals []float64
	}{
		{"SPP", wells.Residuals(well.SPPActual, well.SPPPredicted)},
		{"AP", wells.Residuals(well.APActual, well.APPredicted)},
	}

	for _, ch := range channels {
		depths, residuals := dropNaN(well.Depth, ch.residuals)
		if len(residuals) < 10 {
			fmt.Printf("%s: skipped, only %d finite residuals\n\n", ch.name, len(residuals))
			continue
		}
		displayChannel(ch.name, fitAllModels(ch.name, depths, residuals))
	}

	if *csvOut != "" {
		if err := exportCSV(*csvOut, well); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		} else {
			fmt.Printf("\nResiduals exported to: %s\n", *csvOut)
		}
	}
}

func fetchWell(connStr, table, wellName string) (*wells.WellInput, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT depth, spp_actual, spp_predicted, ap_actual, ap_predicted
		FROM %s
		WHERE well = $1
		ORDER BY depth`, table)

	rows, err := db.Query(query, wellName)
	if err != nil {
		return nil, fmt.Errorf("error querying input table: %w", err)
	}
	defer rows.Close()

	well := &wells.WellInput{
		Name:         wellName,
		Depth:        []float64{},
		SPPActual:    []float64{},
		SPPPredicted: []float64{},
		APActual:     []float64{},
		APPredicted:  []float64{},
	}
	for rows.Next() {
		var depth float64
		var sppA, sppP, apA, apP sql.NullFloat64
		if err := rows.Scan(&depth, &sppA, &sppP, &apA, &apP); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		well.Depth = append(well.Depth, depth)
		well.SPPActual = append(well.SPPActual, floatOrNaN(sppA))
		well.SPPPredicted = append(well.SPPPredicted, floatOrNaN(sppP))
		well.APActual = append(well.APActual, floatOrNaN(apA))
		well.APPredicted = append(well.APPredicted, floatOrNaN(apP))
	}
	return well, rows.Err()
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func dropNaN(depths, residuals []float64) ([]float64, []float64) {
	outD := make([]float64, 0, len(depths))
	outR := make([]float64, 0, len(residuals))
	for i := range residuals {
		if !math.IsNaN(residuals[i]) {
			outD = append(outD, depths[i])
			outR = append(outR, residuals[i])
		}
	}
	return outD, outR
}

func fitAllModels(channel string, depths, residuals []float64) []FitResult {
	return []FitResult{
		fitConstantModel(channel, residuals),
		fitLinearModel(channel, depths, residuals),
		fitPolynomialModel(channel, depths, residuals, 2),
		fitPolynomialModel(channel, depths, residuals, 3),
	}
}

func fitConstantModel(channel string, residuals []float64) FitResult {
	n := len(residuals)
	meanResidual := stat.Mean(residuals, nil)

	result := FitResult{
		ModelType:    ModelConstant,
		ModelName:    "Constant Offset",
		Channel:      channel,
		Coefficients: []float64{meanResidual},
		SampleCount:  n,
	}

	predict := func(float64) float64 { return meanResidual }
	fillMetrics(&result, nil, residuals, predict, 1)
	return result
}

func fitLinearModel(channel string, depths, residuals []float64) FitResult {
	n := len(residuals)
	intercept, slope := stat.LinearRegression(depths, residuals, nil, false)

	result := FitResult{
		ModelType:    ModelLinear,
		ModelName:    "Linear",
		Channel:      channel,
		Coefficients: []float64{intercept, slope},
		SampleCount:  n,
	}

	predict := func(d float64) float64 { return intercept + slope*d }
	fillMetrics(&result, depths, residuals, predict, 2)
	return result
}

func fitPolynomialModel(channel string, depths, residuals []float64, degree int) FitResult {
	n := len(residuals)

	// Vandermonde matrix, solved by QR decomposition
	X := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= degree; j++ {
			X.Set(i, j, math.Pow(depths[i], float64(j)))
		}
	}
	y := mat.NewVecDense(n, residuals)

	var qr mat.QR
	qr.Factorize(X)

	coeffs := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(coeffs, false, y); err != nil {
		fmt.Fprintf(os.Stderr, "Error solving polynomial regression: %v\n", err)
		return FitResult{}
	}

	coeff := make([]float64, degree+1)
	for i := 0; i <= degree; i++ {
		coeff[i] = coeffs.AtVec(i)
	}

	modelType := ModelQuadratic
	modelName := "Quadratic"
	if degree == 3 {
		modelType = ModelCubic
		modelName = "Cubic"
	}

	result := FitResult{
		ModelType:    modelType,
		ModelName:    modelName,
		Channel:      channel,
		Coefficients: coeff,
		SampleCount:  n,
	}

	predict := func(d float64) float64 {
		pred := 0.0
		for i, c := range coeff {
			pred += c * math.Pow(d, float64(i))
		}
		return pred
	}
	fillMetrics(&result, depths, residuals, predict, float64(degree+1))
	return result
}

func fillMetrics(result *FitResult, x, y []float64, predict func(float64) float64, k float64) {
	n := float64(len(y))
	result.RSquared = calculateRSquared(x, y, predict)
	result.AdjustedRSquared = calculateAdjustedRSquared(result.RSquared, n, k)
	result.MeanAbsoluteError = calculateMAE(x, y, predict)
	result.RootMeanSquaredError = calculateRMSE(x, y, predict)
	result.AIC = calculateAIC(n, result.RootMeanSquaredError, k)
	result.BIC = calculateBIC(n, result.RootMeanSquaredError, k)
}

func calculateRSquared(x, y []float64, predict func(float64) float64) float64 {
	meanY := stat.Mean(y, nil)

	var ssTot, ssRes float64
	for i := range y {
		predicted := predictAt(x, i, predict)
		ssTot += (y[i] - meanY) * (y[i] - meanY)
		ssRes += (y[i] - predicted) * (y[i] - predicted)
	}

	if ssTot == 0 {
		return 0
	}
	return 1 - (ssRes / ssTot)
}

func calculateAdjustedRSquared(r2, n, k float64) float64 {
	if n-k-1 <= 0 {
		return 0
	}
	return 1 - ((1-r2)*(n-1))/(n-k-1)
}

func calculateMAE(x, y []float64, predict func(float64) float64) float64 {
	var sumAbsError float64
	for i := range y {
		sumAbsError += math.Abs(y[i] - predictAt(x, i, predict))
	}
	return sumAbsError / float64(len(y))
}

func calculateRMSE(x, y []float64, predict func(float64) float64) float64 {
	var sumSqError float64
	for i := range y {
		diff := y[i] - predictAt(x, i, predict)
		sumSqError += diff * diff
	}
	return math.Sqrt(sumSqError / float64(len(y)))
}

func predictAt(x []float64, i int, predict func(float64) float64) float64 {
	if x == nil {
		return predict(0)
	}
	return predict(x[i])
}

func calculateAIC(n, rmse, k float64) float64 {
	// AIC = 2k + n*ln(SSE/n)
	sse := n * rmse * rmse
	if sse <= 0 {
		return math.Inf(1)
	}
	return 2*k + n*math.Log(sse/n)
}

func calculateBIC(n, rmse, k float64) float64 {
	// BIC = k*ln(n) + n*ln(SSE/n)
	sse := n * rmse * rmse
	if sse <= 0 {
		return math.Inf(1)
	}
	return k*math.Log(n) + n*math.Log(sse/n)
}

func displayChannel(channel string, results []FitResult) {
	fmt.Printf("%s residual trend vs depth:\n", channel)
	fmt.Printf("  %-16s %8s %8s %10s %10s %10s %10s\n",
		"Model", "R²", "AdjR²", "MAE", "RMSE", "AIC", "BIC")

	best := results[0]
	for _, r := range results {
		if r.AIC < best.AIC {
			best = r
		}
		fmt.Printf("  %-16s %8.4f %8.4f %10.4f %10.4f %10.1f %10.1f\n",
			r.ModelName, r.RSquared, r.AdjustedRSquared,
			r.MeanAbsoluteError, r.RootMeanSquaredError, r.AIC, r.BIC)
	}

	fmt.Printf("  Best by AIC: %s\n", best.ModelName)
	if best.ModelType != ModelConstant && best.RSquared > 0.1 {
		fmt.Printf("  NOTE: residuals show depth-dependent structure (R²=%.3f); the upstream model may be underfit.\n",
			best.RSquared)
	}
	fmt.Println()
}

func exportCSV(path string, well *wells.WellInput) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"depth", "spp_residual", "ap_residual"}); err != nil {
		return err
	}

	sppResiduals := wells.Residuals(well.SPPActual, well.SPPPredicted)
	apResiduals := wells.Residuals(well.APActual, well.APPredicted)
	for i := range well.Depth {
		record := []string{
			strconv.FormatFloat(well.Depth[i], 'g', -1, 64),
			strconv.FormatFloat(sppResiduals[i], 'g', -1, 64),
			strconv.FormatFloat(apResiduals[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
