package content

import (
	"fmt"
	"time"
)

// Key identifies one of the singleton site content documents.
type Key string

const (
	KeyHero    Key = "hero"
	KeyAbout   Key = "about"
	KeyContact Key = "contact"
)

// Keys lists every singleton document in display order.
var Keys = []Key{KeyHero, KeyAbout, KeyContact}

// ParseKey validates a raw key taken from a URL or CLI argument.
func ParseKey(s string) (Key, error) {
	switch k := Key(s); k {
	case KeyHero, KeyAbout, KeyContact:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown content key %q", ErrNotFound, s)
}

// Fields are the free-form string attributes of a content document.
type Fields map[string]string

// Clone returns a shallow copy that is safe to mutate.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge overlays patch onto a copy of f.
func (f Fields) Merge(patch Fields) Fields {
	out := f.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Document is a singleton keyed content document as stored.
type Document struct {
	Key       Key       `json:"id" bson:"_id"`
	Fields    Fields    `json:"fields" bson:"fields"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Icon tags a service entry with one of a fixed set of pictograms.
type Icon string

const (
	IconGavel    Icon = "gavel"
	IconFamily   Icon = "family"
	IconBusiness Icon = "business"
	IconWork     Icon = "work"
	IconBank     Icon = "bank"
	IconDocument Icon = "document"
	IconSecurity Icon = "security"
	IconMoney    Icon = "money"
)

// Icons is the allowed icon set.
var Icons = []Icon{IconGavel, IconFamily, IconBusiness, IconWork, IconBank, IconDocument, IconSecurity, IconMoney}

// ServiceEntry is one practice area shown on the services section.
type ServiceEntry struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Icon        Icon      `json:"icon" bson:"icon"`
	Order       int       `json:"order" bson:"order"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ServiceInput is the admin form for a new service entry.
type ServiceInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        Icon   `json:"icon" validate:"required,icon"`
	Order       int    `json:"order" validate:"min=1"`
}

// ServicePatch is a partial update; nil fields are left untouched.
type ServicePatch struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,min=1"`
	Description *string `json:"description,omitempty" validate:"omitnil,min=1"`
	Icon        *Icon   `json:"icon,omitempty" validate:"omitnil,icon"`
	Order       *int    `json:"order,omitempty" validate:"omitnil,min=1"`
}

// Empty reports whether the patch changes nothing.
func (p ServicePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Icon == nil && p.Order == nil
}

// MessageEntry is a contact form submission.
type MessageEntry struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// MessageInput is the public contact form.
type MessageInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}
