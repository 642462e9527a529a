package usecase

import "errors"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

var (
	ErrSessionNotFound  = &DomainError{Code: "SESSION_NOT_FOUND", Message: "widget session not found"}
	ErrVisitorRequired  = &DomainError{Code: "VISITOR_REQUIRED", Message: "visitor_id is required"}
	ErrModalNotOpen     = &DomainError{Code: "MODAL_NOT_OPEN", Message: "the lead magnet modal is not open"}
	ErrFormClosed       = &DomainError{Code: "FORM_CLOSED", Message: "the form is no longer active"}
	ErrFormCompleted    = &DomainError{Code: "FORM_COMPLETED", Message: "the guide was already sent from this form"}
	ErrSubmitInProgress = &DomainError{Code: "SUBMIT_IN_PROGRESS", Message: "a submission is already in progress"}
)
