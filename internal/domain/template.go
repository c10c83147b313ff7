package domain

// FinalizeTaskID is the terminal template task. Completing it marks the
// whole renewal as finalized and triggers the external notification.
const FinalizeTaskID = 10

var templateTasks = Checklist{
	{ID: 1, Label: "Request Updates from Client",
		Notes: "Email client 60 days before expiration for updated payroll, vehicle and driver info"},
	{ID: 2, Label: "Review Current Coverage"},
	{ID: 3, Label: "Request Loss Runs",
		Notes: "Carriers require a signed LOA; allow 5-10 business days"},
	{ID: 4, Label: "Submit Applications to Carriers"},
	{ID: 5, Label: "Obtain and Compare Quotes"},
	{ID: 6, Label: "Prepare Renewal Proposal"},
	{ID: 7, Label: "Present Proposal to Client"},
	{ID: 8, Label: "Bind Coverage"},
	{ID: 9, Label: "Issue Certificates of Insurance"},
	{ID: FinalizeTaskID, Label: "Finalize Renewal"},
}

// DefaultTemplate returns a fresh copy of the 10-task renewal checklist
// every policy starts from. Always a deep copy, so mutations never leak
// back into the template.
func DefaultTemplate() Checklist {
	return templateTasks.Clone()
}
