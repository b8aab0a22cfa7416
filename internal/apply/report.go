// BYZRA ⸻ internal/apply/report.go
// batch report rendering, styled and JSON

package apply

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mirage/internal/catalog"
	"mirage/internal/metadata"
	"mirage/internal/util"
)

type fieldGroup struct {
	en, zh string
	fields []metadata.Field
}

var reportGroups = []fieldGroup{
	{"Device", "设备信息", []metadata.Field{metadata.Make, metadata.Model, metadata.Software, metadata.LensModel}},
	{"Shooting", "拍摄参数", []metadata.Field{
		metadata.ExposureTime, metadata.FNumber, metadata.ISO, metadata.FocalLength,
		metadata.WhiteBalance, metadata.Flash, metadata.Orientation,
	}},
	{"Date", "日期信息", metadata.FieldsIn(metadata.CategoryDateTime)},
	{"GPS", "GPS信息", metadata.FieldsIn(metadata.CategoryGPS)},
	{"Other", "其他信息", metadata.FieldsIn(metadata.CategoryDescriptive)},
}

type reportText struct {
	title, applied, failed, cancelled, notAttempted string
	status                                          [2]string
	path, size, modified, reason, unverified        string
	backup, cleared                                 string
}

var reportTexts = map[catalog.Locale]reportText{
	catalog.LocaleEN: {
		title: "Batch complete", applied: "Applied", failed: "Failed",
		cancelled: "Cancelled", notAttempted: "Not attempted",
		status: [2]string{"applied", "failed"},
		path:   "Path", size: "Size", modified: "Modified", reason: "Reason",
		unverified: "Did not read back", backup: "Backup", cleared: "(cleared)",
	},
	catalog.LocaleZH: {
		title: "批量处理完成", applied: "成功", failed: "失败",
		cancelled: "已取消", notAttempted: "未处理",
		status: [2]string{"成功", "失败"},
		path:   "路径", size: "大小", modified: "修改时间", reason: "原因",
		unverified: "未能读回", backup: "备份", cleared: "(已清除)",
	},
}

// FormatReport renders counts followed by per-file details grouped like the
// fields of a camera info panel. Fixed-domain values use the locale's labels.
func FormatReport(r *Report, cat *catalog.Catalog, l catalog.Locale) string {
	txt, ok := reportTexts[l]
	if !ok {
		txt = reportTexts[catalog.LocaleEN]
	}

	var sb strings.Builder

	sb.WriteString(util.SHE.Render(txt.title))
	sb.WriteString("  ")
	sb.WriteString(util.SUB.Render(r.RunID))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%s %s\n", util.SuccessSymbol(), util.LBL.Render(fmt.Sprintf("%s: %d", txt.applied, r.Succeeded()))))
	if n := r.FailedCount(); n > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", util.ErrorSymbol(), util.BRH.Render(fmt.Sprintf("%s: %d", txt.failed, n))))
	}
	if r.Cancelled {
		sb.WriteString(fmt.Sprintf("%s %s\n", util.WarningSymbol(),
			util.SEC.Render(fmt.Sprintf("%s, %s: %d", txt.cancelled, txt.notAttempted, len(r.NotAttempted)))))
	}

	for _, o := range r.Outcomes {
		sb.WriteString("\n")
		sb.WriteString(util.Divider)
		sb.WriteString("\n")
		writeOutcome(&sb, o, cat, l, txt)
	}

	return sb.String()
}

func writeOutcome(sb *strings.Builder, o Outcome, cat *catalog.Catalog, l catalog.Locale, txt reportText) {
	status := util.LBL.Render(txt.status[o.Status])
	if o.Status == Failed {
		status = util.BRH.Render(txt.status[o.Status])
	}

	sb.WriteString(fmt.Sprintf("%s %s  %s\n", util.Ornament, util.NSH.Render(filepath.Base(o.File)), status))
	sb.WriteString(fmt.Sprintf("  %s %s\n", util.SUB.Render(txt.path+":"), o.File))

	if info, err := os.Stat(o.File); err == nil {
		sb.WriteString(fmt.Sprintf("  %s %s\n", util.SUB.Render(txt.size+":"), FormatFileSize(info.Size())))
		sb.WriteString(fmt.Sprintf("  %s %s\n", util.SUB.Render(txt.modified+":"), info.ModTime().Format("2006-01-02 15:04:05")))
	}

	if o.Status == Failed {
		sb.WriteString(fmt.Sprintf("  %s %s\n", util.SUB.Render(txt.reason+":"), util.BRH.Render(o.Reason)))
		return
	}

	if o.BackupPath != "" {
		sb.WriteString(fmt.Sprintf("  %s %s\n", util.SUB.Render(txt.backup+":"), o.BackupPath))
	}

	sb.WriteString(formatGroups(o.Record, cat, l, txt.cleared, "  "))

	if len(o.Unverified) > 0 {
		names := make([]string, 0, len(o.Unverified))
		for _, f := range o.Unverified {
			names = append(names, f.String())
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", util.WarningSymbol(), util.SEC.Render(txt.unverified+": "+strings.Join(names, ", "))))
	}
}

// FormatRecord renders the non-omitted fields of rec in report groups.
func FormatRecord(rec metadata.Record, cat *catalog.Catalog, l catalog.Locale) string {
	txt, ok := reportTexts[l]
	if !ok {
		txt = reportTexts[catalog.LocaleEN]
	}
	return formatGroups(rec, cat, l, txt.cleared, "")
}

func formatGroups(rec metadata.Record, cat *catalog.Catalog, l catalog.Locale, cleared, indent string) string {
	var sb strings.Builder
	for _, g := range reportGroups {
		var lines []string
		for _, f := range g.fields {
			v := rec.Get(f)
			switch {
			case v.IsSet():
				lines = append(lines, fmt.Sprintf("%s  %s %s", indent, util.LBL.Render(f.String()+":"), cat.Label(f, v.String(), l)))
			case v.IsEmpty():
				lines = append(lines, fmt.Sprintf("%s  %s %s", indent, util.LBL.Render(f.String()+":"), util.NLL.Render(cleared)))
			}
		}
		if len(lines) == 0 {
			continue
		}

		heading := g.en
		if l == catalog.LocaleZH {
			heading = g.zh
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", indent, util.SEC.Render("== "+heading+" ==")))
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func FormatFileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.2f TB", value)
}

// JSON form of a Report
type Summary struct {
	RunID        string        `json:"run_id"`
	Started      time.Time     `json:"started"`
	Finished     time.Time     `json:"finished"`
	Applied      int           `json:"applied"`
	Failed       int           `json:"failed"`
	Cancelled    bool          `json:"cancelled"`
	Files        []FileSummary `json:"files"`
	NotAttempted []string      `json:"not_attempted,omitempty"`
}

type FileSummary struct {
	File       string            `json:"file"`
	Status     Status            `json:"status"`
	Reason     string            `json:"reason,omitempty"`
	Fields     map[string]string `json:"fields"`
	Unverified []string          `json:"unverified,omitempty"`
	Backup     string            `json:"backup,omitempty"`
}

func NewSummary(r *Report) Summary {
	s := Summary{
		RunID:        r.RunID,
		Started:      r.Started,
		Finished:     r.Finished,
		Applied:      r.Succeeded(),
		Failed:       r.FailedCount(),
		Cancelled:    r.Cancelled,
		Files:        make([]FileSummary, 0, len(r.Outcomes)),
		NotAttempted: r.NotAttempted,
	}

	for _, o := range r.Outcomes {
		fs := FileSummary{
			File:   o.File,
			Status: o.Status,
			Reason: o.Reason,
			Fields: o.Record.Strings(),
			Backup: o.BackupPath,
		}
		for _, f := range o.Unverified {
			fs.Unverified = append(fs.Unverified, f.String())
		}
		s.Files = append(s.Files, fs)
	}

	return s
}
