package extraction

// Field identifies the part of the record an issue is about.
type Field string

const (
	FieldMerchant Field = "merchant"
	FieldDate     Field = "date"
	FieldTotal    Field = "total"
	FieldItems    Field = "items"
)

// Issue is an extraction-quality diagnostic. Issues never abort a parse.
type Issue struct {
	Field   Field  `json:"field"`
	Problem string `json:"problem"`
}

// Code is the dotted form, e.g. "total.missing_total".
func (i Issue) Code() string {
	return string(i.Field) + "." + i.Problem
}

var (
	IssueMissingMerchant = Issue{Field: FieldMerchant, Problem: "missing"}
	IssueMissingDate     = Issue{Field: FieldDate, Problem: "missing_or_unrecognized"}
	IssueMissingTotal    = Issue{Field: FieldTotal, Problem: "missing_total"}
	IssueNoItems         = Issue{Field: FieldItems, Problem: "no_items_detected"}
)

// issueReport collects the diagnostics of one pipeline run.
type issueReport struct {
	issues      []Issue
	corrections []Correction
}

func newIssueReport() *issueReport {
	return &issueReport{issues: []Issue{}, corrections: []Correction{}}
}

func (r *issueReport) add(issue Issue) {
	for _, existing := range r.issues {
		if existing == issue {
			return
		}
	}
	r.issues = append(r.issues, issue)
}

// resolve drops an issue that a later stage superseded.
func (r *issueReport) resolve(issue Issue) {
	kept := r.issues[:0]
	for _, existing := range r.issues {
		if existing != issue {
			kept = append(kept, existing)
		}
	}
	r.issues = kept
}

func (r *issueReport) correct(c Correction) {
	r.corrections = append(r.corrections, c)
}
