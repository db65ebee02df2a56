package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/xuri/excelize/v2"
)

// ReportService renders aggregation results for downstream consumers:
// stable-field JSON for APIs, markdown for reports, XLSX for export.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// SnapshotJSON serializes a member snapshot. Field names are part of
// the presentation contract and must round-trip losslessly.
func (s *ReportService) SnapshotJSON(snapshot *models.MemberSnapshot) ([]byte, error) {
	return json.Marshal(snapshot)
}

// TeamSummaryJSON serializes a team summary
func (s *ReportService) TeamSummaryJSON(summary *models.TeamSummary) ([]byte, error) {
	return json.Marshal(summary)
}

// TeamSummaryMarkdown renders the ranked team summary as a markdown
// table, one row per member.
func (s *ReportService) TeamSummaryMarkdown(summary *models.TeamSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Team Activity %s to %s\n\n",
		summary.Start.Format("2006-01-02"), summary.End.Format("2006-01-02"))
	b.WriteString("| Member | Commits | +/- Lines | PRs (merged) | Issues | Messages | Score |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")

	for _, m := range summary.Members {
		if m.Error != "" {
			fmt.Fprintf(&b, "| %s | - | - | - | - | - | %s |\n", m.MemberName, m.Error)
			continue
		}
		st := m.Statistics
		fmt.Fprintf(&b, "| %s | %d | +%d/-%d | %d (%d) | %d | %d | %.2f |\n",
			m.MemberName,
			st.Commits.Total, st.Commits.Additions, st.Commits.Deletions,
			st.PullRequests.Total, st.PullRequests.Merged,
			st.Issues.Total, st.Messages.Total,
			m.ContributionScore,
		)
	}

	return b.String()
}

// TeamSummaryXLSX builds an Excel workbook with one row per member
func (s *ReportService) TeamSummaryXLSX(summary *models.TeamSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Team Summary"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{
		"Member", "Commits", "Additions", "Deletions", "Net Lines",
		"Pull Requests", "Merged", "Issues", "Messages", "Reactions", "Score",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, m := range summary.Members {
		st := m.Statistics
		values := []interface{}{
			m.MemberName,
			st.Commits.Total, st.Commits.Additions, st.Commits.Deletions, st.Commits.NetLines,
			st.PullRequests.Total, st.PullRequests.Merged,
			st.Issues.Total, st.Messages.Total, st.Messages.Reactions,
			m.ContributionScore,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
