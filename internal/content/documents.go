package content

import "time"

// Typed views over the singleton documents. Each view lists exactly the
// fields its editor owns; unknown stored fields survive a save because
// writes merge.

type HeroDocument struct {
	Title     string    `json:"title" validate:"required"`
	Subtitle  string    `json:"subtitle"`
	Tagline   string    `json:"tagline"`
	PhotoURL  string    `json:"photoUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h HeroDocument) Key() Key { return KeyHero }

func (h HeroDocument) Fields() Fields {
	return Fields{
		"title":    h.Title,
		"subtitle": h.Subtitle,
		"tagline":  h.Tagline,
		"photoUrl": h.PhotoURL,
	}
}

func HeroFrom(d *Document) HeroDocument {
	f, at := fieldsOf(d)
	return HeroDocument{
		Title:     f["title"],
		Subtitle:  f["subtitle"],
		Tagline:   f["tagline"],
		PhotoURL:  f["photoUrl"],
		UpdatedAt: at,
	}
}

type AboutDocument struct {
	Name       string    `json:"name" validate:"required"`
	Title      string    `json:"title"`
	Bio        string    `json:"bio"`
	Education  string    `json:"education"`
	Experience string    `json:"experience"`
	Expertise  string    `json:"expertise"`
	PhotoURL   string    `json:"photoUrl"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a AboutDocument) Key() Key { return KeyAbout }

func (a AboutDocument) Fields() Fields {
	return Fields{
		"name":       a.Name,
		"title":      a.Title,
		"bio":        a.Bio,
		"education":  a.Education,
		"experience": a.Experience,
		"expertise":  a.Expertise,
		"photoUrl":   a.PhotoURL,
	}
}

func AboutFrom(d *Document) AboutDocument {
	f, at := fieldsOf(d)
	return AboutDocument{
		Name:       f["name"],
		Title:      f["title"],
		Bio:        f["bio"],
		Education:  f["education"],
		Experience: f["experience"],
		Expertise:  f["expertise"],
		PhotoURL:   f["photoUrl"],
		UpdatedAt:  at,
	}
}

type ContactDocument struct {
	Phone     string    `json:"phone"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Address   string    `json:"address"`
	WhatsApp  string    `json:"whatsapp"`
	LinkedIn  string    `json:"linkedin" validate:"omitempty,url"`
	Instagram string    `json:"instagram" validate:"omitempty,url"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c ContactDocument) Key() Key { return KeyContact }

func (c ContactDocument) Fields() Fields {
	return Fields{
		"phone":     c.Phone,
		"email":     c.Email,
		"address":   c.Address,
		"whatsapp":  c.WhatsApp,
		"linkedin":  c.LinkedIn,
		"instagram": c.Instagram,
	}
}

func ContactFrom(d *Document) ContactDocument {
	f, at := fieldsOf(d)
	return ContactDocument{
		Phone:     f["phone"],
		Email:     f["email"],
		Address:   f["address"],
		WhatsApp:  f["whatsapp"],
		LinkedIn:  f["linkedin"],
		Instagram: f["instagram"],
		UpdatedAt: at,
	}
}

// Typed is implemented by the three singleton views.
type Typed interface {
	Key() Key
	Fields() Fields
}

// Decode builds the typed view for key from a stored (possibly nil) document.
func Decode(key Key, d *Document) Typed {
	switch key {
	case KeyHero:
		return HeroFrom(d)
	case KeyAbout:
		return AboutFrom(d)
	default:
		return ContactFrom(d)
	}
}

// Defaults returns the empty-field document written by the seed step.
func Defaults(key Key) Fields {
	switch key {
	case KeyHero:
		return HeroDocument{}.Fields()
	case KeyAbout:
		return AboutDocument{}.Fields()
	default:
		return ContactDocument{}.Fields()
	}
}

// KnownField reports whether name is owned by the typed view of key.
func KnownField(key Key, name string) bool {
	_, ok := Defaults(key)[name]
	return ok
}

func fieldsOf(d *Document) (Fields, time.Time) {
	if d == nil {
		return Fields{}, time.Time{}
	}
	if d.Fields == nil {
		return Fields{}, d.UpdatedAt
	}
	return d.Fields, d.UpdatedAt
}
