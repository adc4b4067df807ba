package analytics

import (
	"errors"
	"sort"

	"transaction-analytics/internal/models"
)

// VisualizationType is the requested output shape, independent of the
// analytics type that produced the aggregation.
type VisualizationType string

const (
	VisualizationLineChart VisualizationType = "line_chart"
	VisualizationBarChart  VisualizationType = "bar_chart"
	VisualizationPieChart  VisualizationType = "pie_chart"
	VisualizationTable     VisualizationType = "table"
)

var ErrUnsupportedVisualization = errors.New("unsupported visualization type")

// IsValidVisualizationType checks a visualization type name.
func IsValidVisualizationType(visualizationType string) bool {
	switch VisualizationType(visualizationType) {
	case VisualizationLineChart, VisualizationBarChart, VisualizationPieChart, VisualizationTable:
		return true
	default:
		return false
	}
}

// Payload is a self-describing chart or table payload. Configuration is
// one of ChartConfiguration, PieConfiguration or TableConfiguration,
// fixed by Type.
type Payload struct {
	Type          VisualizationType `json:"type"`
	Configuration interface{}       `json:"configuration"`
}

// Axis describes one chart axis.
type Axis struct {
	Label string `json:"label"`
}

// ChartPoint is a single labeled value in a chart series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is one named data series.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartConfiguration backs line and bar charts.
type ChartConfiguration struct {
	XAxis  Axis          `json:"x_axis"`
	YAxis  Axis          `json:"y_axis"`
	Series []ChartSeries `json:"series"`
}

// PieSlice is one pie chart segment.
type PieSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// PieConfiguration backs pie charts.
type PieConfiguration struct {
	Series []PieSlice `json:"series"`
}

// TableColumn describes one table column.
type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TableConfiguration backs tabular output.
type TableConfiguration struct {
	Columns []TableColumn            `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// FormatContext carries the labeling inputs for a formatted payload:
// what the values measure, the bucket granularity (empty for
// categorical aggregations) and the subject used in series names, e.g.
// "Spending" in "Weekly Spending".
type FormatContext struct {
	Measure     Measure
	Granularity Granularity
	Subject     string
}

// SeriesName combines the granularity label and the subject.
func (ctx FormatContext) SeriesName() string {
	if prefix := ctx.Granularity.Label(); prefix != "" {
		return prefix + " " + ctx.Subject
	}
	return ctx.Subject
}

func (ctx FormatContext) valueLabel() string {
	if ctx.Measure == MeasureCount {
		return "Transaction Count"
	}
	return "Amount"
}

func (ctx FormatContext) keyLabel() string {
	if ctx.Granularity == "" {
		return "Category"
	}
	return "Period"
}

// Format maps an aggregation result onto the requested visualization.
// An empty aggregation produces a structurally valid payload with empty
// series or rows, never missing fields. Unknown visualization types are
// an error.
func Format(result Result, ctx FormatContext, visualizationType VisualizationType) (Payload, error) {
	switch visualizationType {
	case VisualizationLineChart, VisualizationBarChart:
		return Payload{
			Type: visualizationType,
			Configuration: ChartConfiguration{
				XAxis:  Axis{Label: ctx.keyLabel()},
				YAxis:  Axis{Label: ctx.valueLabel()},
				Series: []ChartSeries{{Name: ctx.SeriesName(), Data: chartPoints(result)}},
			},
		}, nil

	case VisualizationPieChart:
		return Payload{
			Type:          visualizationType,
			Configuration: PieConfiguration{Series: pieSlices(result)},
		}, nil

	case VisualizationTable:
		rows := make([]map[string]interface{}, 0, len(result))
		for _, p := range result.NonZero() {
			rows = append(rows, map[string]interface{}{
				"label": p.Key,
				"value": roundedFloat(p),
			})
		}
		return Payload{
			Type: visualizationType,
			Configuration: TableConfiguration{
				Columns: []TableColumn{
					{Key: "label", Label: ctx.keyLabel()},
					{Key: "value", Label: ctx.valueLabel()},
				},
				Rows: rows,
			},
		}, nil

	default:
		return Payload{}, ErrUnsupportedVisualization
	}
}

// FormatSeries maps parallel comparison arms onto the requested
// visualization. Charts carry one series per arm; pie charts reduce
// each arm to its total; tables produce the period-by-series matrix,
// with periods sorted chronologically unless the comparison is
// category-keyed (categorical reports keep their original order).
func FormatSeries(series []Series, ctx FormatContext, visualizationType VisualizationType, categorical bool) (Payload, error) {
	switch visualizationType {
	case VisualizationLineChart, VisualizationBarChart:
		chartSeries := make([]ChartSeries, 0, len(series))
		for _, s := range series {
			chartSeries = append(chartSeries, ChartSeries{Name: s.Name, Data: chartPoints(s.Points)})
		}
		return Payload{
			Type: visualizationType,
			Configuration: ChartConfiguration{
				XAxis:  Axis{Label: ctx.keyLabel()},
				YAxis:  Axis{Label: ctx.valueLabel()},
				Series: chartSeries,
			},
		}, nil

	case VisualizationPieChart:
		slices := make([]PieSlice, 0, len(series))
		for _, s := range series {
			slices = append(slices, PieSlice{Name: s.Name, Value: roundedTotal(s)})
		}
		return Payload{
			Type:          visualizationType,
			Configuration: PieConfiguration{Series: slices},
		}, nil

	case VisualizationTable:
		return formatSeriesTable(series, ctx, categorical), nil

	default:
		return Payload{}, ErrUnsupportedVisualization
	}
}

// TransactionTableColumns is the fixed schema for transaction-level
// table payloads.
var TransactionTableColumns = []TableColumn{
	{Key: "id", Label: "ID"},
	{Key: "date", Label: "Date"},
	{Key: "description", Label: "Description"},
	{Key: "amount", Label: "Amount"},
	{Key: "type", Label: "Type"},
	{Key: "category", Label: "Category"},
	{Key: "merchant", Label: "Merchant"},
}

// FormatTransactionTable renders transaction-level detail rows.
func FormatTransactionTable(transactions []models.Transaction) Payload {
	rows := make([]map[string]interface{}, 0, len(transactions))
	for i := range transactions {
		txn := &transactions[i]
		rows = append(rows, map[string]interface{}{
			"id":          txn.ID.String(),
			"date":        txn.TransactionDate.Format(DateKeyFormat),
			"description": txn.Description,
			"amount":      txn.Amount.Round(2).InexactFloat64(),
			"type":        txn.TransactionType,
			"category":    txn.CategoryLabel(),
			"merchant":    txn.MerchantName,
		})
	}
	return Payload{
		Type: VisualizationTable,
		Configuration: TableConfiguration{
			Columns: TransactionTableColumns,
			Rows:    rows,
		},
	}
}

func formatSeriesTable(series []Series, ctx FormatContext, categorical bool) Payload {
	columns := make([]TableColumn, 0, len(series)+1)
	columns = append(columns, TableColumn{Key: "period", Label: ctx.keyLabel()})
	for _, s := range series {
		columns = append(columns, TableColumn{Key: s.Name, Label: s.Name})
	}

	// One row per key that appears in any arm. Arms with no value for
	// a key report zero so every row is fully populated.
	keyOrder := make([]string, 0)
	seen := make(map[string]bool)
	for _, s := range series {
		for _, p := range s.Points {
			if !seen[p.Key] {
				seen[p.Key] = true
				keyOrder = append(keyOrder, p.Key)
			}
		}
	}
	if !categorical {
		sort.Strings(keyOrder)
	}

	rows := make([]map[string]interface{}, 0, len(keyOrder))
	for _, key := range keyOrder {
		row := map[string]interface{}{"period": key}
		for _, s := range series {
			value := 0.0
			for _, p := range s.Points {
				if p.Key == key {
					value = roundedFloat(p)
					break
				}
			}
			row[s.Name] = value
		}
		rows = append(rows, row)
	}

	return Payload{
		Type:          VisualizationTable,
		Configuration: TableConfiguration{Columns: columns, Rows: rows},
	}
}

func chartPoints(result Result) []ChartPoint {
	points := make([]ChartPoint, 0, len(result))
	for _, p := range result {
		points = append(points, ChartPoint{Label: p.Key, Value: roundedFloat(p)})
	}
	return points
}

func pieSlices(result Result) []PieSlice {
	slices := make([]PieSlice, 0, len(result))
	for _, p := range result {
		slices = append(slices, PieSlice{Name: p.Key, Value: roundedFloat(p)})
	}
	return slices
}

func roundedFloat(p Point) float64 {
	return p.Value.Round(2).InexactFloat64()
}

func roundedTotal(s Series) float64 {
	return s.Total().Round(2).InexactFloat64()
}
