package domain

import "errors"

var (
	ErrLLMNotConfigured = errors.New("plan generation is not configured")
	ErrModelFailure     = errors.New("language model request failed")
	ErrNarrativeParse   = errors.New("language model returned an unreadable plan")
	ErrPlanNotFound     = errors.New("plan not found")
)
