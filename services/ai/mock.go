package aisvc

import (
	"context"
	"fmt"
)

type serviceMock struct{}

// NewServiceMock returns a generator with canned feedback, for tests
// and local development without an API key.
func NewServiceMock() *serviceMock {
	return &serviceMock{}
}

func (svc *serviceMock) GenerateFeedback(ctx context.Context, reflection string) (string, error) {
	return fmt.Sprintf(
		"Thank you for sharing your reflection (%d characters of honest practice). "+
			"Your awareness of the practice is itself progress. "+
			"Next session, try returning to your breath whenever the mind wanders.",
		len(reflection),
	), nil
}
