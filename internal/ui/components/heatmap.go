package components

import (
	"fmt"
	"strings"
)

// Weekday labels (Monday first)
var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Heat intensity colors for tview
var heatColors = []string{"gray", "blue", "green", "yellow", "red"}

// RenderHeatmap creates a colored text heatmap of commits per weekday and hour
func RenderHeatmap(matrix [7][24]int, maxValue int) string {
	var sb strings.Builder

	// Header: hours
	sb.WriteString("      ")
	for h := 0; h < 24; h++ {
		if h%3 == 0 {
			fmt.Fprintf(&sb, "[white]%02d[-]", h)
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")

	for day := 0; day < 7; day++ {
		fmt.Fprintf(&sb, "[yellow]%-5s[-] ", weekdays[day])
		for hour := 0; hour < 24; hour++ {
			fmt.Fprintf(&sb, "[%s]██[-]", heatColors[heatLevel(matrix[day][hour], maxValue)])
		}
		sb.WriteString("\n")
	}

	// Legend
	sb.WriteString("\n      [gray]Low[-] ")
	for _, color := range heatColors {
		fmt.Fprintf(&sb, "[%s]██[-]", color)
	}
	sb.WriteString(" [red]High[-]")

	return sb.String()
}

// heatLevel maps a cell to an index into heatColors. Any non-zero cell is at
// least level 1 so single commits stay visible.
func heatLevel(val, maxValue int) int {
	if maxValue <= 0 || val <= 0 {
		return 0
	}
	level := (val * (len(heatColors) - 1)) / maxValue
	return max(1, min(level, len(heatColors)-1))
}

// GetHeatmapStats returns the busiest cell and the total count
func GetHeatmapStats(matrix [7][24]int) (peakDay int, peakHour int, totalCommits int) {
	maxVal := 0
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			totalCommits += matrix[day][hour]
			if matrix[day][hour] > maxVal {
				maxVal = matrix[day][hour]
				peakDay = day
				peakHour = hour
			}
		}
	}
	return
}
