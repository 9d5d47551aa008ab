package reconciliation

import (
	"github.com/fieldsquad/fieldops-backend-go/internal/pkg/validator"
)

type TriggerRunRequest struct {
	// CohortDate in "2006-01-02" format; defaults to today (UTC).
	CohortDate *string `json:"cohort_date,omitempty"`
}

func (r *TriggerRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CohortDate != nil {
		if _, ok := validator.IsValidDate(*r.CohortDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "cohort_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID            string  `json:"id"`
	CohortDate    string  `json:"cohort_date"`
	Status        string  `json:"status"`
	StartedAt     string  `json:"started_at"`
	FinishedAt    *string `json:"finished_at,omitempty"`
	Processed     int     `json:"processed"`
	Sold          int     `json:"sold"`
	PartiallySold int     `json:"partially_sold"`
	Expired       int     `json:"expired"`
	Failed        int     `json:"failed"`
	Oversold      int     `json:"oversold"`
}
