package model

import (
	"time"
)

const DefaultPortfolioTitle = "My Portfolio"

// Recognized socialLinks keys.
const (
	SocialGitHub    = "github"
	SocialLinkedIn  = "linkedin"
	SocialTwitter   = "twitter"
	SocialDribbble  = "dribbble"
	SocialBehance   = "behance"
	SocialInstagram = "instagram"
	SocialWebsite   = "website"
	SocialEmail     = "email"
)

// Recognized customConfig keys.
const (
	ConfigPrimaryColor    = "primaryColor"
	ConfigSecondaryColor  = "secondaryColor"
	ConfigBackgroundColor = "backgroundColor"
	ConfigFontFamily      = "fontFamily"
	ConfigLayout          = "layout"
	ConfigContainerClass  = "containerClass"
	ConfigHeaderClass     = "headerClass"
)

var SocialLinkKeys = []string{
	SocialGitHub, SocialLinkedIn, SocialTwitter, SocialDribbble,
	SocialBehance, SocialInstagram, SocialWebsite, SocialEmail,
}

var CustomConfigKeys = []string{
	ConfigPrimaryColor, ConfigSecondaryColor, ConfigBackgroundColor,
	ConfigFontFamily, ConfigLayout, ConfigContainerClass, ConfigHeaderClass,
}

type Portfolio struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"userId"`
	TemplateID   *int64    `db:"template_id" json:"templateId"`
	Title        string    `db:"title" json:"title"`
	Bio          *string   `db:"bio" json:"bio"`
	SocialLinks  StringMap `db:"social_links" json:"socialLinks"`
	CustomConfig StringMap `db:"custom_config" json:"customConfig"`
	GeneratedURL *string   `db:"generated_url" json:"generatedUrl"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	// Loaded separately (not a column)
	Template *Template `db:"-" json:"template"`
}

// DefaultPortfolioTitleFor is the title given to the portfolio created at registration.
func DefaultPortfolioTitleFor(username string) string {
	if username == "" {
		return DefaultPortfolioTitle
	}
	return username + "'s Portfolio"
}
