package models

type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

type CodingQuestion struct {
	Question  string `json:"question"`
	Submitted bool   `json:"submitted"`
}

// CaseResult is the outcome of one test case in a validation run.
type CaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Output   string `json:"output"`
	Passed   bool   `json:"passed"`
}

// ExecutionResult is the decoded output of a single judge run.
type ExecutionResult struct {
	Stdout   string `json:"output"`
	Stderr   string `json:"error"`
	StatusID int    `json:"statusId"`
	Status   string `json:"status,omitempty"`
}

// ValidationResult aggregates a run over all test cases.
type ValidationResult struct {
	Passed  int          `json:"passed"`
	Total   int          `json:"total"`
	Score   float64      `json:"score"`
	Results []CaseResult `json:"results"`
}
