// internal/model/models.go
package model

import "time"

// Account is the public profile of a GitHub handle, fetched fresh per search.
type Account struct {
	Login       string  `json:"login"`
	Name        *string `json:"name,omitempty"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio,omitempty"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	HTMLURL     string  `json:"html_url"`
	Location    *string `json:"location,omitempty"`
}

// DisplayName returns the account's name, falling back to the login.
func (a *Account) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	return a.Login
}

// RepositorySummary is the condensed metadata of one repository owned by an account.
type RepositorySummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StarsCount  int       `json:"stargazers_count"`
	ForksCount  int       `json:"forks_count"`
	Language    *string   `json:"language,omitempty"`
	HTMLURL     string    `json:"html_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}
