package email

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBodyFromHTML(t *testing.T) {
	fsys := fstest.MapFS{
		"code.html": {Data: []byte(`<p>Hello {{.UserName}}, your code is <b>{{.Code}}</b></p>`)},
	}

	input := SendEmailInput{To: "a@x.com", Subject: "Code"}
	err := input.GenerateBodyFromHTML(fsys, "code.html", struct {
		UserName string
		Code     string
	}{"<Ann>", "123456"})
	require.NoError(t, err)

	assert.Equal(t, `<p>Hello &lt;Ann&gt;, your code is <b>123456</b></p>`, input.Body)
	assert.NoError(t, input.Validate())
}

func TestRenderHTMLExecutionError(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.html": {Data: []byte(`{{.Missing.Field}}`)},
	}

	_, err := RenderHTML(fsys, "bad.html", struct{ Missing *struct{ Field string } }{})
	assert.Error(t, err)
}

func TestGenerateBodyFromHTMLMissingTemplate(t *testing.T) {
	input := SendEmailInput{}
	assert.Error(t, input.GenerateBodyFromHTML(fstest.MapFS{}, "missing.html", nil))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		input SendEmailInput
		want  error
	}{
		{"valid", SendEmailInput{To: "a@x.com", Subject: "s", Body: "b"}, nil},
		{"empty to", SendEmailInput{Subject: "s", Body: "b"}, ErrEmptyRecipient},
		{"empty body", SendEmailInput{To: "a@x.com", Subject: "s"}, ErrEmptyContent},
		{"bad address", SendEmailInput{To: "not-an-email", Subject: "s", Body: "b"}, ErrInvalidRecipient},
		{"display name", SendEmailInput{To: "Ann <a@x.com>", Subject: "s", Body: "b"}, ErrInvalidRecipient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
