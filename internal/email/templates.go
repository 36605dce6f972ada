package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// indiaTime renders timestamps for the admissions team.
var indiaTime = time.FixedZone("IST", 5*60*60+30*60)

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type newLeadEmailData struct {
	baseEmailData
	Lead         NewLead
	RegisteredAt string
}

type dedupeReportEmailData struct {
	baseEmailData
	Report   DedupeReport
	Duration string
	Failures int
}

func renderNewLead(lead NewLead) (string, string, error) {
	subject := fmt.Sprintf(subjectNewLeadFmt, lead.Name, lead.Phone)
	content, err := renderEmailTemplate("new_lead.html", newLeadEmailData{
		baseEmailData: baseEmailData{
			Title:      "New lead",
			Heading:    "A new visitor registered",
			Subheading: "CollegeSeraBot captured the following details.",
		},
		Lead:         lead,
		RegisteredAt: lead.RegisteredAt.In(indiaTime).Format("02 Jan 2006 15:04 MST"),
	})
	return subject, content, err
}

func renderDedupeReport(report DedupeReport) (string, string, error) {
	subject := fmt.Sprintf(subjectDedupeReportFmt, report.LeadsMerged)
	if report.DryRun {
		subject = fmt.Sprintf(subjectDedupeDryRunFmt, report.DuplicatesFound)
	}
	failures := report.MoveFailures + report.DeleteFailures
	if failures > 0 {
		subject += subjectDedupeFailuresNote
	}

	content, err := renderEmailTemplate("dedupe_report.html", dedupeReportEmailData{
		baseEmailData: baseEmailData{
			Title:   "Duplicate cleanup",
			Heading: "Duplicate lead cleanup finished",
		},
		Report:   report,
		Duration: report.Duration.Round(time.Millisecond).String(),
		Failures: failures,
	})
	return subject, content, err
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
