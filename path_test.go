package docgraph_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgraph/docgraph"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "absolute URL with locale prefix",
			in:   "https://support.example.com/ru/help/crm/create-lead.html",
			want: "crm/create-lead.html",
		},
		{
			name: "different locale collapses to same path",
			in:   "https://support.example.com/en/help/crm/create-lead.html",
			want: "crm/create-lead.html",
		},
		{
			name: "query and fragment are dropped",
			in:   "https://support.example.com/help/crm/create-lead.html?from=search#step-2",
			want: "crm/create-lead.html",
		},
		{
			name: "relative link",
			in:   "/help/billing/invoices.html",
			want: "billing/invoices.html",
		},
		{
			name: "uppercase is folded",
			in:   "/help/CRM/Create-Lead.html",
			want: "crm/create-lead.html",
		},
		{
			name: "case-varied help root is stripped",
			in:   "https://support.example.com/RU/Help/crm/create-lead.html",
			want: "crm/create-lead.html",
		},
		{
			name: "no help segment keeps trimmed path",
			in:   "/docs/Getting-Started/",
			want: "docs/getting-started",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "bare help root",
			in:   "https://support.example.com/help/",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docgraph.NormalizePath(tt.in))
		})
	}
}

func TestNormalizePath_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://support.example.com/ru/help/crm/create-lead.html",
		"https://support.example.com/RU/Help/crm/create-lead.html",
		"/help/crm/create-lead.html",
		"crm/create-lead.html",
		// The remainder itself contains "help/" once normalized.
		"https://support.example.com/help/widgets/help/setup.html",
		"/docs/no-help-segment",
		"",
	}

	for _, in := range inputs {
		once := docgraph.NormalizePath(in)
		twice := docgraph.NormalizePath(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestIsFetchable(t *testing.T) {
	t.Parallel()

	const base = "https://support.example.com/help/"

	tests := []struct {
		name string
		href string
		want bool
	}{
		{"relative page under help root", "/help/crm/create-lead.html", true},
		{"locale-prefixed page", "/ru/help/crm/create-lead.html", true},
		{"case-varied help root", "/RU/Help/crm/create-lead.html", true},
		{"absolute same-host page", "https://support.example.com/help/billing/invoices.html", true},
		{"directory-style page without slash", "/help/crm/leads", true},
		{"other host", "https://other.example.org/help/page.html", false},
		{"mailto scheme", "mailto:support@example.com", false},
		{"tel scheme", "tel:+1234567890", false},
		{"javascript scheme", "javascript:void(0)", false},
		{"bare fragment", "#installation", false},
		{"outside help root", "/about/team.html", false},
		{"help root itself", "/help/", false},
		{"trailing slash listing", "/help/crm/", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docgraph.IsFetchable(tt.href, base))
		})
	}
}

func TestDocID(t *testing.T) {
	t.Parallel()

	t.Run("last html segment", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "create-lead", docgraph.DocID("https://support.example.com/help/crm/create-lead.html"))
	})

	t.Run("numeric page id", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "360008121732", docgraph.DocID("https://support.example.com/help/articles/360008121732.html"))
	})

	t.Run("falls back to a valid earlier segment", func(t *testing.T) {
		t.Parallel()
		// The last segment carries non-identifier characters.
		assert.Equal(t, "crm", docgraph.DocID("https://support.example.com/help/crm/создание-лида.html"))
	})

	t.Run("generates uuid when nothing usable", func(t *testing.T) {
		t.Parallel()
		id := docgraph.DocID("https://support.example.com/приложение/настройки/")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("stable for the same URL", func(t *testing.T) {
		t.Parallel()
		url := "https://support.example.com/help/crm/create-lead.html"
		assert.Equal(t, docgraph.DocID(url), docgraph.DocID(url))
	})
}
