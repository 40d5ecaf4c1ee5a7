package service

import (
	"context"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
)

// DefaultServices are the practice areas created on a fresh deployment.
var DefaultServices = []content.ServiceInput{
	{Icon: content.IconGavel, Title: "Ceza Hukuku", Description: "Ceza davalarında uzman savunma ve danışmanlık.", Order: 1},
	{Icon: content.IconFamily, Title: "Aile Hukuku", Description: "Boşanma, velayet ve nafaka davalarında destek.", Order: 2},
	{Icon: content.IconBusiness, Title: "Ticaret Hukuku", Description: "Şirketler için hukuki danışmanlık ve dava takibi.", Order: 3},
	{Icon: content.IconWork, Title: "İş Hukuku", Description: "İşçi ve işveren hakları konusunda danışmanlık.", Order: 4},
	{Icon: content.IconBank, Title: "İcra & İflas", Description: "Alacak takibi ve borç yapılandırma hizmetleri.", Order: 5},
	{Icon: content.IconDocument, Title: "Sözleşme Hukuku", Description: "Sözleşme hazırlama ve inceleme hizmeti.", Order: 6},
}

// SeedReport lists what a seed run created.
type SeedReport struct {
	Content  []content.Key `json:"content"`
	Services []string      `json:"services"`
}

// SeedDefaultsIfAbsent writes empty singleton documents that do not exist yet
// and inserts every default service whose title is not already present.
// Running it again creates nothing.
func (s *Service) SeedDefaultsIfAbsent(ctx context.Context) (SeedReport, error) {
	var rep SeedReport
	for _, key := range content.Keys {
		d, err := s.GetContent(ctx, key)
		if err != nil {
			return rep, err
		}
		if d != nil {
			continue
		}
		if err := s.UpdateContent(ctx, key, content.Defaults(key)); err != nil {
			return rep, err
		}
		rep.Content = append(rep.Content, key)
	}

	existing, err := s.ListServices(ctx)
	if err != nil {
		return rep, err
	}
	titles := make(map[string]bool, len(existing))
	for _, e := range existing {
		titles[e.Title] = true
	}
	for _, def := range DefaultServices {
		if titles[def.Title] {
			continue
		}
		if _, err := s.addService(ctx, def); err != nil {
			return rep, err
		}
		titles[def.Title] = true
		rep.Services = append(rep.Services, def.Title)
	}
	logger.Infof("seed: created %d content documents and %d services", len(rep.Content), len(rep.Services))
	return rep, nil
}
