// cmd/gitmind/render.go
package main

import (
	"fmt"
	"io"

	"gitmind-explorer/internal/search"
)

const (
	bioPlaceholder         = "This developer is a mystery (no bio)."
	descriptionPlaceholder = "No description."
	languagePlaceholder    = "Code"
)

func renderError(w io.Writer, s search.State) {
	fmt.Fprintf(w, "Oops! %s\n", s.Error)
}

func renderProfile(w io.Writer, s search.State) {
	a := s.Account
	if a == nil {
		return
	}
	fmt.Fprintf(w, "%s (@%s)\n", a.DisplayName(), a.Login)
	fmt.Fprintf(w, "%s\n", a.HTMLURL)
	bio := bioPlaceholder
	if a.Bio != nil {
		bio = *a.Bio
	}
	fmt.Fprintf(w, "%s\n", bio)
	if a.Location != nil {
		fmt.Fprintf(w, "Location: %s\n", *a.Location)
	}
	fmt.Fprintf(w, "Repos: %d  Followers: %d  Following: %d\n", a.PublicRepos, a.Followers, a.Following)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent projects:")
	if len(s.Repositories) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, r := range s.Repositories {
		desc := descriptionPlaceholder
		if r.Description != nil {
			desc = *r.Description
		}
		lang := languagePlaceholder
		if r.Language != nil {
			lang = *r.Language
		}
		fmt.Fprintf(w, "  %-30s %-12s ★ %-5d ⑂ %d\n", r.Name, lang, r.StarsCount, r.ForksCount)
		fmt.Fprintf(w, "    %s\n", desc)
		fmt.Fprintf(w, "    %s\n", r.HTMLURL)
	}
	for _, warning := range s.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	fmt.Fprintln(w)
}

func renderAnalyzing(w io.Writer) {
	fmt.Fprintln(w, "AI analysis: processing profile insights...")
}

func renderInsight(w io.Writer, s search.State) {
	fmt.Fprintf(w, "AI analysis: %q\n", s.InsightText())
}
