package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/leaveform"
)

func statusIcon(status string) string {
	switch status {
	case leaveform.StatusApproved:
		return "✅"
	case leaveform.StatusRejected:
		return "❌"
	case leaveform.StatusPending:
		return "🟨"
	default:
		return ""
	}
}

func renderLeaves(w io.Writer, leaves []api.Leave) {
	if len(leaves) == 0 {
		fmt.Fprintln(w, "No leave requests found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE\tTYPE\tSTART\tEND\tSTATUS\tDOCS DUE")
	for _, l := range leaves {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s %s\t%s\n",
			l.ID, l.EmployeeName, l.LeaveType, l.StartDate, l.EndDate,
			statusIcon(l.Status), l.Status, l.DeadlineForDocs)
	}
	tw.Flush()
}
