// Package report renders statistic results and raw trip records to the console.
// Headings and labels are coloured with fatih/color; count breakdowns are
// drawn as tables with tablewriter.
package report
