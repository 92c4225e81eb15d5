package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		keep    []string
		dropped []string
	}{
		{
			name:    "post body formatting",
			input:   `<h2>Backups</h2><p><strong>Daily</strong> and <em>offsite</em>.</p><ul><li>NAS</li></ul>`,
			keep:    []string{"<h2>", "<strong>", "<em>", "<ul>", "<li>"},
			dropped: nil,
		},
		{
			name:    "script stripped",
			input:   `<p>Patch now</p><script>steal()</script>`,
			keep:    []string{"<p>Patch now</p>"},
			dropped: []string{"<script", "steal()"},
		},
		{
			name:    "event handlers stripped",
			input:   `<img src="/uploads/rack.jpg" onerror="alert(1)" alt="Server rack">`,
			keep:    []string{`src="/uploads/rack.jpg"`, `alt="Server rack"`},
			dropped: []string{"onerror"},
		},
		{
			name:    "javascript links stripped",
			input:   `<a href="javascript:alert(1)">click</a>`,
			dropped: []string{"javascript:"},
		},
		{
			name:  "editor tables kept",
			input: `<table class="pricing" style="width:100%"><tr><th colspan="2">Plan</th></tr><tr><td>Basic</td><td>$99</td></tr></table>`,
			keep:  []string{"<table", `class="pricing"`, `colspan="2"`, "<td>Basic</td>"},
		},
		{
			name:  "figures and data attributes kept",
			input: `<figure data-align="center"><img src="/a.png" loading="lazy"><figcaption>Before repair</figcaption></figure>`,
			keep:  []string{"<figure", `data-align="center"`, `loading="lazy"`, "<figcaption>Before repair</figcaption>"},
		},
		{
			name:    "iframes stripped",
			input:   `<iframe src="https://evil.example"></iframe><p>ok</p>`,
			keep:    []string{"<p>ok</p>"},
			dropped: []string{"<iframe"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			for _, want := range tt.keep {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize() = %q, missing %q", got, want)
				}
			}
			for _, bad := range tt.dropped {
				if strings.Contains(got, bad) {
					t.Errorf("Sanitize() = %q, still contains %q", got, bad)
				}
			}
		})
	}
}

func TestSanitize_Empty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	input := `<p>Call <a href="tel:5551234567">us</a> today.</p><script>x()</script>`
	once := Sanitize(input)
	if twice := Sanitize(once); twice != once {
		t.Errorf("Sanitize is not idempotent: %q then %q", once, twice)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Printer repair in one day", true},
		{"5 < 6 but no tag", true},
		{"<p>Printer repair</p>", false},
	}
	for _, tt := range tests {
		if got := IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Line one\nLine two", "<p>Line one<br>Line two</p>"},
		{"Tom & Jerry's <shop>", "<p>Tom &amp; Jerry&#39;s &lt;shop&gt;</p>"},
	}
	for _, tt := range tests {
		if got := PlainTextToHTML(tt.in); got != tt.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrepareForDisplay(t *testing.T) {
	if got := PrepareForDisplay(""); got != "" {
		t.Errorf("PrepareForDisplay(\"\") = %q, want empty", got)
	}
	if got := string(PrepareForDisplay("Open Monday\nClosed Sunday")); got != "<p>Open Monday<br>Closed Sunday</p>" {
		t.Errorf("PrepareForDisplay(plain) = %q", got)
	}
	got := string(PrepareForDisplay(`<p>Hours</p><script>x()</script>`))
	if !strings.Contains(got, "<p>Hours</p>") || strings.Contains(got, "<script") {
		t.Errorf("PrepareForDisplay(html) = %q", got)
	}
	if got := SanitizeToHTML(`<b>bold</b>`); string(got) != "<b>bold</b>" {
		t.Errorf("SanitizeToHTML() = %q", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"<p>Hello</p><p>World</p>", "Hello World"},
		{"<h2>Fast&nbsp;&amp; secure</h2>", "Fast & secure"},
		{"<script>alert(1)</script>Safe", "Safe"},
		{"  plain\n\ntext  ", "plain text"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	content := "<p>Managed IT keeps your office running while you focus on customers.</p>"

	if got := Excerpt(content, 200); got != "Managed IT keeps your office running while you focus on customers." {
		t.Errorf("Excerpt(short) = %q", got)
	}
	got := Excerpt(content, 20)
	if got != "Managed IT keeps..." {
		t.Errorf("Excerpt(20) = %q, want %q", got, "Managed IT keeps...")
	}
	if got := Excerpt("<p>Überraschung</p>", 5); got != "Überr..." {
		t.Errorf("Excerpt(no space) = %q, want %q", got, "Überr...")
	}
}
