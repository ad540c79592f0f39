package notifier

import (
	"fmt"
	"strings"
	"time"

	"AutoAngler/internal/model"
)

// FormatSessionReport formats a finished session into a Telegram message.
func FormatSessionReport(sum *model.SessionSummary, stats *model.SessionStats) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎣 <b>AutoAngler 钓鱼报告</b> | %s\n\n", sum.EndedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("本次会话: %d 轮, 钓到 %d 条\n", sum.RoundsPlayed, sum.FishCaught))
	if sum.RoundsPlayed > 0 {
		rate := float64(sum.FishCaught) / float64(sum.RoundsPlayed) * 100
		b.WriteString(fmt.Sprintf("成功率: %.0f%%\n", rate))
	}
	if sum.Sells > 0 {
		b.WriteString(fmt.Sprintf("💰 本次卖鱼: %d 次\n", sum.Sells))
	}
	b.WriteString(fmt.Sprintf("耗时: %.1f 分钟\n\n", sum.EndedAt.Sub(sum.StartedAt).Minutes()))
	b.WriteString(formatTotals(stats))

	return b.String()
}

// FormatStats formats the lifetime totals for display.
func FormatStats(stats *model.SessionStats) string {
	var b strings.Builder
	b.WriteString("📊 <b>累计统计</b>\n\n")
	b.WriteString(formatTotals(stats))
	if !stats.LastSessionAt.IsZero() {
		b.WriteString(fmt.Sprintf("上次会话: %s\n", stats.LastSessionAt.Format("2006-01-02 15:04")))
	}
	if !stats.UpdatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("更新时间: %s\n", stats.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

func formatTotals(stats *model.SessionStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("累计甩竿: %d 次\n", stats.FishAttempted))
	b.WriteString(fmt.Sprintf("累计钓到: %d 条\n", stats.FishCaught))
	b.WriteString(fmt.Sprintf("距下次卖鱼: %d 条\n", stats.FishSinceSell))
	b.WriteString(fmt.Sprintf("累计卖鱼: %d 次\n", stats.SellCount))
	b.WriteString(fmt.Sprintf("会话次数: %d\n", stats.SessionsRun))
	return b.String()
}

// FormatDailyDigest formats the scheduled daily stats report.
func FormatDailyDigest(stats *model.SessionStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>AutoAngler 日报</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(formatTotals(stats))
	return b.String()
}
