// internal/insight/prompt.go
package insight

import (
	"fmt"
	"strings"

	"gitmind-explorer/internal/model"
)

const (
	noBio         = "No bio"
	listSeparator = ", "
)

// BuildPrompt renders the personality-profile request for an account and its recent repositories.
func BuildPrompt(account *model.Account, repos []model.RepositorySummary) string {
	bio := noBio
	if account.Bio != nil && *account.Bio != "" {
		bio = *account.Bio
	}

	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}

	var b strings.Builder
	b.WriteString("Based on this GitHub profile, create a professional and punchy summary (max 3 sentences) in Portuguese.\n")
	fmt.Fprintf(&b, "Name: %s\n", account.DisplayName())
	fmt.Fprintf(&b, "Bio: %s\n", bio)
	fmt.Fprintf(&b, "Tech Stack based on repos: %s\n", strings.Join(DistinctLanguages(repos), listSeparator))
	fmt.Fprintf(&b, "Recent projects: %s\n", strings.Join(names, listSeparator))
	b.WriteString("Format: A brief developer personality profile.")
	return b.String()
}

// DistinctLanguages returns the non-empty primary languages of repos in order of first appearance.
func DistinctLanguages(repos []model.RepositorySummary) []string {
	seen := make(map[string]struct{}, len(repos))
	languages := make([]string, 0, len(repos))
	for _, r := range repos {
		if r.Language == nil || *r.Language == "" {
			continue
		}
		if _, ok := seen[*r.Language]; ok {
			continue
		}
		seen[*r.Language] = struct{}{}
		languages = append(languages, *r.Language)
	}
	return languages
}
