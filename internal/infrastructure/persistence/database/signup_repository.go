package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/unusualpills/internal/domain/entities"
	"github.com/rafabene/unusualpills/internal/domain/repositories"
	"github.com/rafabene/unusualpills/internal/domain/valueobjects"
)

// SignupRepository implementa repositories.SignupRepository
type SignupRepository struct {
	db *gorm.DB
}

// NewSignupRepository cria um novo SignupRepository
func NewSignupRepository(db *gorm.DB) repositories.SignupRepository {
	return &SignupRepository{db: db}
}

// Upsert usa INSERT ... ON CONFLICT(email) DO UPDATE, atômico no banco.
// Requer o índice único em users.email criado por Migrate.
// created só é verdadeiro quando a linha não existia antes desta escrita
// e o created_at gravado é o desta escrita.
func (r *SignupRepository) Upsert(ctx context.Context, signup *entities.Signup) (bool, error) {
	model := r.toModel(signup)

	db := dbFromContext(ctx, r.db)

	var existing int64
	if err := db.Model(&SignupModel{}).Where("email = ?", model.Email).Count(&existing).Error; err != nil {
		return false, err
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(model).Error; err != nil {
		return false, err
	}

	// Alguns drivers não devolvem o ID no caminho de update; relemos a linha.
	var stored SignupModel
	if err := db.Where("email = ?", model.Email).First(&stored).Error; err != nil {
		return false, err
	}

	entity, err := r.toEntity(&stored)
	if err != nil {
		return false, err
	}
	*signup = *entity

	return existing == 0 && stored.CreatedAtUTC == model.CreatedAtUTC, nil
}

func (r *SignupRepository) FindByEmail(ctx context.Context, email string) (*entities.Signup, error) {
	var model SignupModel

	db := dbFromContext(ctx, r.db)
	if err := db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *SignupRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	db := dbFromContext(ctx, r.db)
	if err := db.Model(&SignupModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Conversores
func (r *SignupRepository) toModel(signup *entities.Signup) *SignupModel {
	return &SignupModel{
		ID:               signup.ID,
		Email:            signup.Email.String(),
		FirstName:        signup.FirstName,
		LastName:         signup.LastName,
		Address1:         signup.Address1,
		Address2:         signup.Address2,
		City:             signup.City,
		State:            signup.State,
		PostalCode:       signup.PostalCode,
		Country:          signup.Country,
		Phone:            signup.Phone,
		MarketingConsent: signup.MarketingConsent,
		ConsentTimestamp: signup.ConsentTimestamp,
		ConsentIP:        signup.ConsentIP,
		CreatedAtUTC:     signup.CreatedAt,
	}
}

func (r *SignupRepository) toEntity(model *SignupModel) (*entities.Signup, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.Signup{
		ID:               model.ID,
		Email:            email,
		FirstName:        model.FirstName,
		LastName:         model.LastName,
		Address1:         model.Address1,
		Address2:         model.Address2,
		City:             model.City,
		State:            model.State,
		PostalCode:       model.PostalCode,
		Country:          model.Country,
		Phone:            model.Phone,
		MarketingConsent: model.MarketingConsent,
		ConsentTimestamp: model.ConsentTimestamp,
		ConsentIP:        model.ConsentIP,
		CreatedAt:        model.CreatedAtUTC,
	}, nil
}
