package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/admins"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/service"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useMemoryStore points the commands at in-memory services for one test.
func useMemoryStore(t *testing.T) *store {
	t.Helper()
	v := validate.New("en")
	st := &store{
		site:   service.NewMemoryService(v, service.WithVCardPrefix("Av.")),
		admins: admins.NewService(admins.NewMemoryAdminRepository(), v),
		close:  func() {},
	}
	prev := openStore
	openStore = func(context.Context) (*store, error) { return st, nil }
	t.Cleanup(func() { openStore = prev })
	return st
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSeed_Idempotent(t *testing.T) {
	st := useMemoryStore(t)

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created content hero")
	assert.Contains(t, out, "created service Ceza Hukuku")

	list, err := st.site.ListServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, len(service.DefaultServices))

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "nothing to seed\n", out)
}

func TestAdminCreate(t *testing.T) {
	st := useMemoryStore(t)

	out, err := execute(t, "admin", "create", "--email", "Admin@Example.com", "--name", "Ayşe", "--password", "s3cret!")
	require.NoError(t, err)
	assert.Contains(t, out, "created admin admin@example.com")

	a, err := st.admins.Authenticate(context.Background(), "admin@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", a.Name)

	_, err = execute(t, "admin", "create", "--email", "admin@example.com", "--name", "Other", "--password", "another1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, admins.ErrEmailTaken))
}

func TestAdminCreate_ShortPassword(t *testing.T) {
	useMemoryStore(t)

	_, err := execute(t, "admin", "create", "--email", "x@example.com", "--name", "X", "--password", "123")
	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "password")
}

func TestVCard(t *testing.T) {
	st := useMemoryStore(t)
	ctx := context.Background()
	require.NoError(t, st.site.UpdateContent(ctx, content.KeyAbout, content.Fields{"name": "Ayşe Yılmaz"}))
	require.NoError(t, st.site.UpdateContent(ctx, content.KeyContact, content.Fields{"phone": "+90 555 000 00 00", "email": "info@example.com"}))

	out, err := execute(t, "vcard")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCARD\r\n"))
	assert.Contains(t, out, "FN:Av. Ayşe Yılmaz\r\n")
	assert.Contains(t, out, "EMAIL:info@example.com\r\n")
}

func TestOpenStoreError(t *testing.T) {
	prev := openStore
	openStore = func(context.Context) (*store, error) { return nil, errors.New("MONGODB_URI is required") }
	t.Cleanup(func() { openStore = prev })

	_, err := execute(t, "vcard")
	require.EqualError(t, err, "MONGODB_URI is required")
}
