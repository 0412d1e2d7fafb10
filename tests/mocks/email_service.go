package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendAdoptionApproved(ctx context.Context, toEmail, adopterName, animalName, shelterName string) error {
	args := m.Called(ctx, toEmail, adopterName, animalName, shelterName)
	return args.Error(0)
}

func (m *EmailService) SendAdoptionRejected(ctx context.Context, toEmail, adopterName, animalName, reason string) error {
	args := m.Called(ctx, toEmail, adopterName, animalName, reason)
	return args.Error(0)
}

func (m *EmailService) SendWelcome(ctx context.Context, toEmail, firstName string) error {
	args := m.Called(ctx, toEmail, firstName)
	return args.Error(0)
}
