package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rafabene/unusualpills/internal/domain/entities"
	domainerrors "github.com/rafabene/unusualpills/internal/domain/errors"
	"github.com/rafabene/unusualpills/internal/domain/ports"
	"github.com/rafabene/unusualpills/internal/domain/repositories"
	"github.com/rafabene/unusualpills/internal/domain/valueobjects"
)

// SignupOptions são as decisões de produto configuráveis do formulário
type SignupOptions struct {
	DefaultCountry string
	StrictEmail    bool
}

// SignupService contém a lógica de negócio do cadastro da camiseta grátis
type SignupService struct {
	signupRepo repositories.SignupRepository
	uow        ports.UnitOfWork
	metrics    ports.Metrics
	logger     ports.Logger
	validate   *validator.Validate
	options    SignupOptions
	now        func() time.Time
}

// NewSignupService cria um novo SignupService
func NewSignupService(
	signupRepo repositories.SignupRepository,
	uow ports.UnitOfWork,
	metrics ports.Metrics,
	logger ports.Logger,
	options SignupOptions,
) *SignupService {
	if options.DefaultCountry == "" {
		options.DefaultCountry = entities.DefaultCountry
	}

	return &SignupService{
		signupRepo: signupRepo,
		uow:        uow,
		metrics:    metrics,
		logger:     logger.With("component", "signup_service"),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		options:    options,
		now:        time.Now,
	}
}

// SubmitSignupInput representa os dados brutos do formulário
type SubmitSignupInput struct {
	MarketingConsent string
	Email            string `validate:"required"`
	FirstName        string `validate:"required"`
	LastName         string `validate:"required"`
	Address1         string `validate:"required"`
	Address2         string
	City             string `validate:"required"`
	State            string `validate:"required"`
	PostalCode       string `validate:"required"`
	Country          string
	Phone            string
	ClientIP         string
}

// SignupResult é o registro persistido e se ele foi criado nesta chamada
type SignupResult struct {
	Signup  *entities.Signup
	Created bool
}

// consentValues são os valores aceitos para o checkbox marcado
var consentValues = map[string]struct{}{
	"on":   {},
	"true": {},
	"1":    {},
	"yes":  {},
}

// IsConsentChecked indica se o valor enviado representa o checkbox marcado
func IsConsentChecked(value string) bool {
	_, ok := consentValues[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// Submit valida, normaliza e grava (ou atualiza) o cadastro
func (s *SignupService) Submit(ctx context.Context, input SubmitSignupInput) (*SignupResult, error) {
	if !IsConsentChecked(input.MarketingConsent) {
		return nil, s.reject(domainerrors.ErrConsentRequired)
	}

	input = trimInput(input)
	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			s.logger.Debug("signup missing fields", "fields", missingFields(fieldErrs))
			return nil, s.reject(domainerrors.ErrMissingFields)
		}
		return nil, fmt.Errorf("validate signup: %w", err)
	}

	email, err := s.parseEmail(input.Email)
	if err != nil {
		return nil, s.reject(domainerrors.ErrInvalidEmail)
	}

	signup := &entities.Signup{
		Email:      email,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Address1:   input.Address1,
		Address2:   input.Address2,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		Phone:      input.Phone,
	}
	if signup.Country == "" {
		signup.Country = s.options.DefaultCountry
	}
	signup.GrantConsent(s.now(), input.ClientIP)

	var created bool
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.signupRepo.Upsert(txCtx, signup)
		return err
	})
	if err != nil {
		s.logger.Error("failed to store signup", "email_hash", email.Fingerprint(), "error", err)
		return nil, fmt.Errorf("store signup: %w", err)
	}

	outcome := ports.SignupOutcomeUpdated
	if created {
		outcome = ports.SignupOutcomeCreated
	}
	s.metrics.SignupRecorded(outcome)
	s.logger.Info("signup stored",
		"outcome", outcome,
		"signup_id", signup.ID,
		"email_hash", email.Fingerprint(),
	)

	return &SignupResult{Signup: signup, Created: created}, nil
}

func (s *SignupService) parseEmail(raw string) (valueobjects.Email, error) {
	if s.options.StrictEmail {
		return valueobjects.NewStrictEmail(raw)
	}
	return valueobjects.NewEmail(raw)
}

func (s *SignupService) reject(err error) error {
	s.metrics.SignupRecorded(ports.SignupOutcomeRejected)
	s.logger.Info("signup rejected", "reason", err.Error())
	return err
}

func trimInput(in SubmitSignupInput) SubmitSignupInput {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Address1 = strings.TrimSpace(in.Address1)
	in.Address2 = strings.TrimSpace(in.Address2)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.Country = strings.TrimSpace(in.Country)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ClientIP = strings.TrimSpace(in.ClientIP)
	return in
}

func missingFields(errs validator.ValidationErrors) []string {
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field())
	}
	return fields
}
