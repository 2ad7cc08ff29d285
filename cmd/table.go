package main

import (
	"fmt"
	"path/filepath"

	"cscbatch/internal/batch"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderSummaryTable строит итоговую таблицу батча для вывода в консоль
func renderSummaryTable(summary *batch.BatchSummary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Батч %s", summary.ID)

	tw.AppendHeader(table.Row{"Файл", "Статус", "Фаза ошибки", "Открытие", "Распознавание", "Сохранение", "Всего"})

	for _, res := range summary.Results {
		failedPhase := ""
		if res.Status == batch.StatusFailed {
			failedPhase = string(res.FailedPhase)
		}
		tw.AppendRow(table.Row{
			filepath.Base(res.Item.Input),
			statusLabel(res.Status),
			failedPhase,
			durationCell(res.OpenTime.Seconds()),
			durationCell(res.RecognizeTime.Seconds()),
			durationCell(res.SaveTime.Seconds()),
			durationCell(res.TotalTime.Seconds()),
		})
	}

	tw.AppendFooter(table.Row{
		fmt.Sprintf("всего %d", len(summary.Results)),
		fmt.Sprintf("✅ %d / ❌ %d / ⏭ %d", summary.Succeeded, summary.Failed, summary.Skipped),
		"",
		"",
		"",
		fmt.Sprintf("%.2f файлов/мин", summary.Throughput()),
		durationCell(summary.TotalTime.Seconds()),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	return tw.Render()
}

func statusLabel(s batch.Status) string {
	switch s {
	case batch.StatusSuccess:
		return "✅ успех"
	case batch.StatusFailed:
		return "❌ ошибка"
	case batch.StatusSkipped:
		return "⏭ пропущен"
	}
	return string(s)
}

func durationCell(seconds float64) string {
	if seconds == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f c", seconds)
}
