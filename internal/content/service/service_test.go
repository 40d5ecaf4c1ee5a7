package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/repository"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewMemoryService(validate.New("en"), WithVCardPrefix("Av."))
}

// tick returns a clock that advances one second per call.
func tick(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func TestUpdateContent_Merges(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateContent(ctx, content.KeyHero, content.Fields{"a": "1"}))
	require.NoError(t, svc.UpdateContent(ctx, content.KeyHero, content.Fields{"b": "2"}))

	d, err := svc.GetContent(ctx, content.KeyHero)
	require.NoError(t, err)
	require.Equal(t, "1", d.Fields["a"])
	require.Equal(t, "2", d.Fields["b"])
	require.False(t, d.UpdatedAt.IsZero())
}

func TestUpdateContent_StampsUpdatedAt(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewMemoryService(validate.New("en"), WithClock(tick(start)))
	ctx := context.Background()

	require.NoError(t, svc.UpdateContent(ctx, content.KeyAbout, content.Fields{"name": "x"}))
	d1, _ := svc.GetContent(ctx, content.KeyAbout)
	require.NoError(t, svc.UpdateContent(ctx, content.KeyAbout, content.Fields{"bio": "y"}))
	d2, _ := svc.GetContent(ctx, content.KeyAbout)
	require.True(t, d2.UpdatedAt.After(d1.UpdatedAt))
}

func TestGetContent_AbsentIsNotAnError(t *testing.T) {
	svc := newTestService(t)
	d, err := svc.GetContent(context.Background(), content.KeyContact)
	require.NoError(t, err)
	require.Nil(t, d)
}

func TestGetContent_UnknownKey(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetContent(context.Background(), content.Key("footer"))
	require.ErrorIs(t, err, content.ErrNotFound)
}

func TestUpdateContent_RejectsUnsafeFieldNames(t *testing.T) {
	svc := newTestService(t)
	err := svc.UpdateContent(context.Background(), content.KeyHero, content.Fields{"a.b": "x"})
	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSaveTypedDocuments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// unknown stored fields survive a typed save
	require.NoError(t, svc.UpdateContent(ctx, content.KeyHero, content.Fields{"legacy": "keep"}))
	require.NoError(t, svc.Save(ctx, content.HeroDocument{Title: "Hukuk Bürosu", Tagline: "Adalet"}))

	d, err := svc.GetContent(ctx, content.KeyHero)
	require.NoError(t, err)
	require.Equal(t, "keep", d.Fields["legacy"])

	h, err := svc.GetHero(ctx)
	require.NoError(t, err)
	require.Equal(t, "Hukuk Bürosu", h.Title)
	require.Equal(t, "Adalet", h.Tagline)

	var ve *validate.ValidationError
	require.ErrorAs(t, svc.Save(ctx, content.AboutDocument{Bio: "no name"}), &ve)
	a, _ := svc.GetAbout(ctx)
	require.Equal(t, "", a.Bio, "rejected form must not reach the store")
}

func TestPatchContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// title is required on the merged result
	var ve *validate.ValidationError
	require.ErrorAs(t, svc.PatchContent(ctx, content.KeyHero, content.Fields{"subtitle": "s"}), &ve)

	require.NoError(t, svc.Save(ctx, content.HeroDocument{Title: "T"}))
	require.NoError(t, svc.PatchContent(ctx, content.KeyHero, content.Fields{"subtitle": "s"}))
	h, _ := svc.GetHero(ctx)
	require.Equal(t, "T", h.Title)
	require.Equal(t, "s", h.Subtitle)

	require.ErrorAs(t, svc.PatchContent(ctx, content.KeyHero, content.Fields{"title": ""}), &ve)
	require.ErrorAs(t, svc.PatchContent(ctx, content.KeyHero, content.Fields{"bio": "x"}), &ve)
	require.ErrorAs(t, svc.PatchContent(ctx, content.KeyContact, content.Fields{"email": "nope"}), &ve)
}

func TestListServices_SortedByOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, o := range []int{5, 1, 3, 2, 4} {
		_, err := svc.AddService(ctx, content.ServiceInput{Title: "s", Description: "d", Icon: content.IconWork, Order: o})
		require.NoError(t, err)
	}
	list, err := svc.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		require.LessOrEqual(t, list[i-1].Order, list[i].Order)
	}
}

func TestAddService_StampsAndValidates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddService(ctx, content.ServiceInput{Title: "Ceza", Description: "d", Icon: content.IconGavel, Order: 1})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, _ := svc.ListServices(ctx)
	require.Equal(t, id, list[0].ID)
	require.False(t, list[0].CreatedAt.IsZero())
	require.Equal(t, list[0].CreatedAt, list[0].UpdatedAt)

	_, err = svc.AddService(ctx, content.ServiceInput{Title: "x", Description: "d", Icon: "rocket", Order: 1})
	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	list, _ = svc.ListServices(ctx)
	require.Len(t, list, 1)
}

func TestUpdateService(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewMemoryService(validate.New("en"), WithClock(tick(start)))
	ctx := context.Background()

	id, err := svc.AddService(ctx, content.ServiceInput{Title: "Old", Description: "d", Icon: content.IconGavel, Order: 1})
	require.NoError(t, err)

	title := "New"
	require.NoError(t, svc.UpdateService(ctx, id, content.ServicePatch{Title: &title}))
	list, _ := svc.ListServices(ctx)
	require.Equal(t, "New", list[0].Title)
	require.Equal(t, "d", list[0].Description)
	require.True(t, list[0].UpdatedAt.After(list[0].CreatedAt))

	require.ErrorIs(t, svc.UpdateService(ctx, "missing", content.ServicePatch{Title: &title}), content.ErrNotFound)

	zero := 0
	var ve *validate.ValidationError
	require.ErrorAs(t, svc.UpdateService(ctx, id, content.ServicePatch{Order: &zero}), &ve)
}

func TestDeleteService_MissingIsNoop(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id, _ := svc.AddService(ctx, content.ServiceInput{Title: "x", Description: "d", Icon: content.IconBank, Order: 1})

	require.NoError(t, svc.DeleteService(ctx, id))
	require.NoError(t, svc.DeleteService(ctx, id))
	list, _ := svc.ListServices(ctx)
	require.Empty(t, list)
}

func TestAddMessage_LengthBoundary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	in := content.MessageInput{Name: "A", Email: "a@x.com", Phone: "1", Message: "123456789"}

	_, err := svc.AddMessage(ctx, in)
	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	msgs, _ := svc.ListMessages(ctx)
	require.Empty(t, msgs)

	in.Message = "1234567890"
	id, err := svc.AddMessage(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	msgs, _ = svc.ListMessages(ctx)
	require.Len(t, msgs, 1)
	require.False(t, msgs[0].CreatedAt.IsZero())
}

func TestMessages_NewestFirstAndDelete(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewMemoryService(validate.New("en"), WithClock(tick(start)))
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		id, err := svc.AddMessage(ctx, content.MessageInput{Name: name, Email: "a@x.com", Phone: "1", Message: strings.Repeat("m", 12)})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	msgs, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Equal(t, "third", msgs[0].Name)
	require.Equal(t, "first", msgs[2].Name)

	require.NoError(t, svc.DeleteMessage(ctx, ids[1]))
	require.NoError(t, svc.DeleteMessage(ctx, "never-existed"))
	msgs, _ = svc.ListMessages(ctx)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		require.NotEqual(t, ids[1], m.ID)
	}
}

func TestSeedDefaultsIfAbsent_Idempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rep, err := svc.SeedDefaultsIfAbsent(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, content.Keys, rep.Content)
	require.Len(t, rep.Services, len(DefaultServices))

	rep2, err := svc.SeedDefaultsIfAbsent(ctx)
	require.NoError(t, err)
	require.Empty(t, rep2.Content)
	require.Empty(t, rep2.Services)

	list, _ := svc.ListServices(ctx)
	require.Len(t, list, len(DefaultServices))
	seen := map[string]bool{}
	for _, s := range list {
		require.False(t, seen[s.Title], "duplicate %q", s.Title)
		seen[s.Title] = true
	}

	d, err := svc.GetContent(ctx, content.KeyAbout)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, "", d.Fields["name"])
}

func TestSeedDefaultsIfAbsent_KeepsExisting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveHero(ctx, content.HeroDocument{Title: "Mevcut"}))
	_, err := svc.AddService(ctx, content.ServiceInput{Title: "Aile Hukuku", Description: "custom", Icon: content.IconFamily, Order: 9})
	require.NoError(t, err)

	rep, err := svc.SeedDefaultsIfAbsent(ctx)
	require.NoError(t, err)
	require.NotContains(t, rep.Content, content.KeyHero)
	require.NotContains(t, rep.Services, "Aile Hukuku")
	require.Len(t, rep.Services, len(DefaultServices)-1)

	h, _ := svc.GetHero(ctx)
	require.Equal(t, "Mevcut", h.Title)
}

func TestDashboardAndSite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{}, *stats)

	_, err = svc.SeedDefaultsIfAbsent(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.SaveContact(ctx, content.ContactDocument{Email: "ofis@example.com"}))
	_, err = svc.AddMessage(ctx, content.MessageInput{Name: "A", Email: "a@x.com", Phone: "1", Message: "1234567890"})
	require.NoError(t, err)

	stats, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 6, stats.ServicesCount)
	require.Equal(t, 1, stats.MessagesCount)
	require.False(t, stats.HasHero)
	require.False(t, stats.HasAbout)
	require.True(t, stats.HasContact)

	site, err := svc.Site(ctx)
	require.NoError(t, err)
	require.Equal(t, "ofis@example.com", site.Contact.Email)
	require.Len(t, site.Services, 6)
	require.Equal(t, "Ceza Hukuku", site.Services[0].Title)
}

func TestContactVCard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Save(ctx, content.ContactDocument{Phone: "555", Email: "e@x.com", Address: "X"}))
	require.NoError(t, svc.SaveAbout(ctx, content.AboutDocument{Name: "Ayşe Yılmaz"}))

	card, err := svc.ContactVCard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(card, "TEL;TYPE=CELL:555\r\n"))
	require.Equal(t, 1, strings.Count(card, "EMAIL:e@x.com\r\n"))
	require.Contains(t, card, "FN:Av. Ayşe Yılmaz\r\n")
	require.Contains(t, card, "N:Yılmaz;Ayşe;;;\r\n")
}

// failing repositories simulate a transport failure
type brokenContent struct{}

func (brokenContent) Get(context.Context, content.Key) (*content.Document, error) {
	return nil, errors.New("connection refused")
}
func (brokenContent) Merge(context.Context, content.Key, content.Fields, time.Time) error {
	return errors.New("connection refused")
}

type brokenServices struct{ repository.MemoryServiceRepo }

func (*brokenServices) List(context.Context) ([]content.ServiceEntry, error) {
	return nil, errors.New("auth failed")
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	svc := New(brokenContent{}, &brokenServices{}, repository.NewMemoryMessageRepo(), validate.New("en"))
	ctx := context.Background()

	_, err := svc.GetContent(ctx, content.KeyHero)
	var se *content.StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "get content", se.Op)

	require.ErrorAs(t, svc.UpdateContent(ctx, content.KeyHero, content.Fields{"a": "1"}), &se)

	_, err = svc.ListServices(ctx)
	require.ErrorAs(t, err, &se)

	_, err = svc.Site(ctx)
	require.ErrorAs(t, err, &se)

	_, err = svc.SeedDefaultsIfAbsent(ctx)
	require.ErrorAs(t, err, &se)
}
