package validate

import (
	"strings"
	"testing"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/stretchr/testify/require"
)

func TestMessageInput_MinimumLength(t *testing.T) {
	v := New("en")
	in := content.MessageInput{Name: "A", Email: "a@x.com", Phone: "1", Message: strings.Repeat("x", 9)}

	err := v.Struct(in)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Must be at least 10 characters", ve.Fields["message"])
	require.Len(t, ve.Fields, 1)

	in.Message = strings.Repeat("x", 10)
	require.NoError(t, v.Struct(in))
}

func TestMessageInput_CountsRunes(t *testing.T) {
	v := New("tr")
	in := content.MessageInput{Name: "A", Email: "a@x.com", Phone: "1", Message: "çğıöşüçğıö"}
	require.NoError(t, v.Struct(in))
}

func TestMessageInput_RequiredAndEmail(t *testing.T) {
	v := New("tr")
	err := v.Struct(content.MessageInput{Email: "not-an-email", Message: "1234567890"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Bu alan gereklidir", ve.Fields["name"])
	require.Equal(t, "Bu alan gereklidir", ve.Fields["phone"])
	require.Equal(t, "Geçerli bir email girin", ve.Fields["email"])
}

func TestTypedDocuments(t *testing.T) {
	v := New("en")

	var ve *ValidationError
	require.ErrorAs(t, v.Struct(content.HeroDocument{}), &ve)
	require.Contains(t, ve.Fields, "title")
	require.NoError(t, v.Struct(content.HeroDocument{Title: "Hukuk Bürosu"}))

	require.ErrorAs(t, v.Struct(content.AboutDocument{}), &ve)
	require.Contains(t, ve.Fields, "name")

	require.NoError(t, v.Struct(content.ContactDocument{}))
	err := v.Struct(content.ContactDocument{Email: "bad", LinkedIn: "not a url", Instagram: "https://instagram.com/x"})
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Enter a valid email", ve.Fields["email"])
	require.Equal(t, "Invalid URL", ve.Fields["linkedin"])
	require.NotContains(t, ve.Fields, "instagram")
}

func TestServiceInputAndPatch(t *testing.T) {
	v := New("en")
	require.NoError(t, v.Struct(content.ServiceInput{Title: "T", Description: "D", Icon: content.IconGavel, Order: 1}))

	var ve *ValidationError
	require.ErrorAs(t, v.Struct(content.ServiceInput{Title: "T", Description: "D", Icon: "rocket", Order: 0}), &ve)
	require.Equal(t, "Invalid icon", ve.Fields["icon"])
	require.Equal(t, "Must be at least 1", ve.Fields["order"])

	require.NoError(t, v.Struct(content.ServicePatch{}))
	empty := ""
	bad := content.Icon("rocket")
	require.ErrorAs(t, v.Struct(content.ServicePatch{Title: &empty, Icon: &bad}), &ve)
	require.Contains(t, ve.Fields, "title")
	require.Contains(t, ve.Fields, "icon")
}

func TestFieldNames(t *testing.T) {
	v := New("en")
	require.NoError(t, v.FieldNames(content.KeyHero, content.Fields{"title": "x", "photoUrl": ""}))

	err := v.FieldNames(content.KeyHero, content.Fields{"bio": "x", "a.b": "y", "$set": "z"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Unknown field", ve.Fields["bio"])
	require.Equal(t, "Invalid field name", ve.Fields["a.b"])
	require.Equal(t, "Invalid field name", ve.Fields["$set"])
}

func TestUnknownLocaleFallsBackToTurkish(t *testing.T) {
	v := New("de")
	require.Equal(t, catalogs["tr"].failure, v.Message())
}

func TestValidationErrorString(t *testing.T) {
	e := &ValidationError{Fields: map[string]string{"b": "y", "a": "x"}}
	require.Equal(t, "validation failed: a: x; b: y", e.Error())
}

func TestSafeNames(t *testing.T) {
	v := New("en")
	require.NoError(t, v.SafeNames(content.Fields{"a": "1", "anything": "2"}))

	var ve *ValidationError
	require.ErrorAs(t, v.SafeNames(content.Fields{"": "x", "x.y": "z"}), &ve)
	require.Len(t, ve.Fields, 2)
}
