package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sanjibtex/storefront/internal/core/domain"
	"github.com/sanjibtex/storefront/internal/core/port"
)

var _ port.SettingsStore = (*SettingsRepository)(nil)
var _ port.AboutStore = (*SettingsRepository)(nil)

// The storefront keeps exactly one settings row and one about row.
const singletonRowID = 1

// SettingsRepository stores the business settings and the about-page
// content, both singleton rows.
type SettingsRepository struct {
	sqldb sqldb
}

func NewSettingsRepository(sqldb sqldb) SettingsRepository {
	return SettingsRepository{sqldb}
}

const businessSettingsColumns = `
	id, business_name, tagline, description, phone, email, whatsapp,
	address, logo_url, hero_title, hero_subtitle, hero_image,
	facebook_url, instagram_url, twitter_url, linkedin_url,
	show_contact_bar, contact_bar_message, created_at, updated_at`

func (r SettingsRepository) GetBusinessSettings(
	ctx context.Context,
) (domain.BusinessSettings, error) {
	const op = "SettingsRepository.GetBusinessSettings"

	query := `
		SELECT` + businessSettingsColumns + `
		FROM business_settings WHERE id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, singletonRowID)
	bs, err := scanBusinessSettings(row.Scan)
	if err != nil {
		return domain.BusinessSettings{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return bs, nil
}

func (r SettingsRepository) UpdateBusinessSettings(
	ctx context.Context, bs domain.BusinessSettings,
) (domain.BusinessSettings, error) {
	const op = "SettingsRepository.UpdateBusinessSettings"

	query := `
		UPDATE business_settings SET
			business_name = $2, tagline = $3, description = $4,
			phone = $5, email = $6, whatsapp = $7, address = $8,
			logo_url = $9, hero_title = $10, hero_subtitle = $11,
			hero_image = $12, facebook_url = $13, instagram_url = $14,
			twitter_url = $15, linkedin_url = $16,
			show_contact_bar = $17, contact_bar_message = $18,
			updated_at = now()
		WHERE id = $1
		RETURNING` + businessSettingsColumns + `;`

	row := r.sqldb.QueryRowContext(ctx, query,
		singletonRowID, bs.BusinessName, bs.Tagline, bs.Description,
		bs.Phone, bs.Email, bs.Whatsapp, bs.Address,
		bs.LogoURL, bs.HeroTitle, bs.HeroSubtitle, bs.HeroImage,
		bs.FacebookURL, bs.InstagramURL, bs.TwitterURL, bs.LinkedinURL,
		bs.ShowContactBar, bs.ContactBarMessage,
	)
	updated, err := scanBusinessSettings(row.Scan)
	if err != nil {
		return domain.BusinessSettings{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return updated, nil
}

func scanBusinessSettings(
	scan func(dest ...any) error,
) (domain.BusinessSettings, error) {
	var bs domain.BusinessSettings
	err := scan(
		&bs.ID, &bs.BusinessName, &bs.Tagline, &bs.Description,
		&bs.Phone, &bs.Email, &bs.Whatsapp, &bs.Address,
		&bs.LogoURL, &bs.HeroTitle, &bs.HeroSubtitle, &bs.HeroImage,
		&bs.FacebookURL, &bs.InstagramURL, &bs.TwitterURL, &bs.LinkedinURL,
		&bs.ShowContactBar, &bs.ContactBarMessage,
		&bs.CreatedAt, &bs.UpdatedAt,
	)
	if err != nil {
		return domain.BusinessSettings{}, err
	}
	return bs, nil
}

const aboutColumns = `
	id, hero_title, hero_subtitle, story_title, story_content,
	story_image, values_title, values_subtitle, team_title,
	team_subtitle, contact_title, contact_subtitle, statistics,
	created_at, updated_at`

func (r SettingsRepository) GetAboutContent(
	ctx context.Context,
) (domain.AboutContent, error) {
	const op = "SettingsRepository.GetAboutContent"

	query := `SELECT` + aboutColumns + ` FROM about_content WHERE id = $1;`

	row := r.sqldb.QueryRowContext(ctx, query, singletonRowID)
	ac, err := scanAboutContent(row.Scan)
	if err != nil {
		return domain.AboutContent{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return ac, nil
}

func (r SettingsRepository) UpdateAboutContent(
	ctx context.Context, ac domain.AboutContent,
) (domain.AboutContent, error) {
	const op = "SettingsRepository.UpdateAboutContent"

	statsB, _ := json.Marshal(ac.Statistics)

	query := `
		UPDATE about_content SET
			hero_title = $2, hero_subtitle = $3, story_title = $4,
			story_content = $5, story_image = $6, values_title = $7,
			values_subtitle = $8, team_title = $9, team_subtitle = $10,
			contact_title = $11, contact_subtitle = $12,
			statistics = $13, updated_at = now()
		WHERE id = $1
		RETURNING` + aboutColumns + `;`

	row := r.sqldb.QueryRowContext(ctx, query,
		singletonRowID, ac.HeroTitle, ac.HeroSubtitle, ac.StoryTitle,
		ac.StoryContent, ac.StoryImage, ac.ValuesTitle, ac.ValuesSubtitle,
		ac.TeamTitle, ac.TeamSubtitle, ac.ContactTitle, ac.ContactSubtitle,
		string(statsB),
	)
	updated, err := scanAboutContent(row.Scan)
	if err != nil {
		return domain.AboutContent{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return updated, nil
}

func scanAboutContent(
	scan func(dest ...any) error,
) (domain.AboutContent, error) {
	var (
		ac     domain.AboutContent
		statsS string
	)
	err := scan(
		&ac.ID, &ac.HeroTitle, &ac.HeroSubtitle, &ac.StoryTitle,
		&ac.StoryContent, &ac.StoryImage, &ac.ValuesTitle,
		&ac.ValuesSubtitle, &ac.TeamTitle, &ac.TeamSubtitle,
		&ac.ContactTitle, &ac.ContactSubtitle, &statsS,
		&ac.CreatedAt, &ac.UpdatedAt,
	)
	if err != nil {
		return domain.AboutContent{}, err
	}

	if statsS != "" {
		if err := json.Unmarshal([]byte(statsS), &ac.Statistics); err != nil {
			return domain.AboutContent{}, err
		}
	}
	return ac, nil
}
