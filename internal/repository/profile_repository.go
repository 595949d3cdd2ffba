package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatpump/internal/model"
)

type ProfileRepository struct {
	DB *pgxpool.Pool
}

// GetEntrepreneur devolve nil quando o usuário ainda não preencheu o perfil.
func (r *ProfileRepository) GetEntrepreneur(ctx context.Context, userEmail string) (*model.EntrepreneurProfile, error) {
	var p model.EntrepreneurProfile
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_email,
		       COALESCE(full_name, ''),
		       COALESCE(experience, ''),
		       COALESCE(education, ''),
		       COALESCE(motivation, '')
		FROM entrepreneur_profiles
		WHERE user_email = $1
		LIMIT 1
	`, userEmail).Scan(&p.ID, &p.UserEmail, &p.FullName, &p.Experience, &p.Education, &p.Motivation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetCompany(ctx context.Context, userEmail string) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_email,
		       COALESCE(company_name, ''),
		       COALESCE(sector, ''),
		       COALESCE(size, ''),
		       COALESCE(products_services, ''),
		       COALESCE(target_audience, ''),
		       COALESCE(main_challenges, '')
		FROM company_profiles
		WHERE user_email = $1
		LIMIT 1
	`, userEmail).Scan(&p.ID, &p.UserEmail, &p.CompanyName, &p.Sector, &p.Size, &p.ProductsServices, &p.TargetAudience, &p.MainChallenges)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
