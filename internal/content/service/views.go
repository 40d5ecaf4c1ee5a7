package service

import (
	"context"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/vcard"
)

// Site is everything the public page renders.
type Site struct {
	Hero     content.HeroDocument    `json:"hero"`
	About    content.AboutDocument   `json:"about"`
	Contact  content.ContactDocument `json:"contact"`
	Services []content.ServiceEntry  `json:"services"`
}

// Site loads the public page content.
func (s *Service) Site(ctx context.Context) (*Site, error) {
	var out Site
	var err error
	if out.Hero, err = s.GetHero(ctx); err != nil {
		return nil, err
	}
	if out.About, err = s.GetAbout(ctx); err != nil {
		return nil, err
	}
	if out.Contact, err = s.GetContact(ctx); err != nil {
		return nil, err
	}
	if out.Services, err = s.ListServices(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats summarizes the admin dashboard.
type Stats struct {
	ServicesCount int  `json:"servicesCount"`
	MessagesCount int  `json:"messagesCount"`
	HasHero       bool `json:"hasHero"`
	HasAbout      bool `json:"hasAbout"`
	HasContact    bool `json:"hasContact"`
}

// Dashboard counts services and messages and reports which sections have
// their primary field filled in.
func (s *Service) Dashboard(ctx context.Context) (*Stats, error) {
	site, err := s.Site(ctx)
	if err != nil {
		return nil, err
	}
	msgs, err := s.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		ServicesCount: len(site.Services),
		MessagesCount: len(msgs),
		HasHero:       site.Hero.Title != "",
		HasAbout:      site.About.Name != "",
		HasContact:    site.Contact.Email != "",
	}, nil
}

// ContactVCard renders the contact card from the contact and about documents.
func (s *Service) ContactVCard(ctx context.Context) (string, error) {
	c, err := s.GetContact(ctx)
	if err != nil {
		return "", err
	}
	a, err := s.GetAbout(ctx)
	if err != nil {
		return "", err
	}
	return vcard.Generate(vcard.Card{
		FullName: a.Name,
		Prefix:   s.vcardPrefix,
		Phone:    c.Phone,
		Email:    c.Email,
		Address:  c.Address,
	}), nil
}
