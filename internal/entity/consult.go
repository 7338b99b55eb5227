package entity

import "fmt"

// ConsultationSubject records who the questionnaire is about. It is set
// once, from the answer to the first branching question, and decides
// which local interception rules apply afterwards.
type ConsultationSubject string

const (
	SubjectUnset ConsultationSubject = ""
	SubjectSelf  ConsultationSubject = "SELF"
	SubjectOther ConsultationSubject = "OTHER"
)

// ConsultPhase is the turn controller state.
type ConsultPhase string

const (
	PhaseIdle               ConsultPhase = "IDLE"
	PhaseAwaitingModel      ConsultPhase = "AWAITING_MODEL"
	PhaseAwaitingLocalInput ConsultPhase = "AWAITING_LOCAL_INPUT"
	PhaseError              ConsultPhase = "ERROR"
	PhaseTerminal           ConsultPhase = "TERMINAL"
)

// SessionProfile gates access to the questionnaire. It is chosen once at
// first visit and persisted until the user explicitly changes it.
type SessionProfile string

const (
	ProfileUnset SessionProfile = ""
	ProfileAdult SessionProfile = "ADULT"
	ProfileMinor SessionProfile = "MINOR"
)

func (p SessionProfile) Validate() error {
	switch p {
	case ProfileAdult, ProfileMinor:
		return nil
	default:
		return fmt.Errorf("%w: unknown profile %q", ErrInvalidParameter, string(p))
	}
}

// ReportFormat selects the export encoding of a final report.
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatPDF      ReportFormat = "pdf"
	FormatDOCX     ReportFormat = "docx"
)

func (f ReportFormat) Validate() error {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: unknown report format %q", ErrInvalidParameter, string(f))
	}
}
