package pos

import (
	"encoding/json"
	"html/template"

	"github.com/MarcGrol/salesbackend/services/sale"
)

type chartConfig struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label                string    `json:"label"`
	Data                 []float64 `json:"data"`
	BackgroundColor      string    `json:"backgroundColor"`
	BorderColor          string    `json:"borderColor"`
	BorderWidth          int       `json:"borderWidth"`
	BorderRadius         int       `json:"borderRadius"`
	HoverBackgroundColor string    `json:"hoverBackgroundColor"`
}

type chartOptions struct {
	Responsive bool                   `json:"responsive"`
	Scales     map[string]chartScale  `json:"scales"`
	Plugins    map[string]chartPlugin `json:"plugins"`
}

type chartScale struct {
	BeginAtZero bool        `json:"beginAtZero,omitempty"`
	Title       *chartTitle `json:"title,omitempty"`
	Grid        *chartGrid  `json:"grid,omitempty"`
}

type chartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type chartGrid struct {
	Display bool `json:"display"`
}

type chartPlugin struct {
	Display bool `json:"display"`
}

// weeklyRevenueChart returns the Chart.js bar chart configuration. Without data nothing is rendered.
func weeklyRevenueChart(revenue *sale.WeeklyRevenue) (template.JS, bool, error) {
	if revenue == nil || len(revenue.Labels) == 0 {
		return "", false, nil
	}

	config := chartConfig{
		Type: "bar",
		Data: chartData{
			Labels: revenue.Labels,
			Datasets: []chartDataset{
				{
					Label:                "Revenue per day ($)",
					Data:                 revenue.Datos,
					BackgroundColor:      "rgba(230, 0, 35, 0.7)",
					BorderColor:          "rgba(230, 0, 35, 1)",
					BorderWidth:          1,
					BorderRadius:         5,
					HoverBackgroundColor: "rgba(178, 0, 27, 1)",
				},
			},
		},
		Options: chartOptions{
			Responsive: true,
			Scales: map[string]chartScale{
				"y": {BeginAtZero: true, Title: &chartTitle{Display: true, Text: "Revenue ($)"}},
				"x": {Grid: &chartGrid{Display: false}},
			},
			Plugins: map[string]chartPlugin{
				"legend": {Display: false},
			},
		},
	}

	configBytes, err := json.Marshal(config)
	if err != nil {
		return "", false, err
	}

	// json.Marshal escapes <, > and &
	return template.JS(configBytes), true, nil
}
