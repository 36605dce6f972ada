package email

const (
	subjectNewLeadFmt         = "New lead: %s (%s)"
	subjectDedupeReportFmt    = "Duplicate cleanup: %d leads merged"
	subjectDedupeDryRunFmt    = "Duplicate cleanup preview: %d duplicates found"
	subjectDedupeFailuresNote = " (with failures)"
)
