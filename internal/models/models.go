package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a server-owned catalog entry whose editable fields can be copied
// into a form draft of type F.
type Record[F any] interface {
	Key() string
	Fields() F
}

// Book represents a book in the catalog
type Book struct {
	ID     string `json:"_id" yaml:"id" parquet:"id"`
	Name   string `json:"name" yaml:"name" parquet:"name"`
	ImgURL string `json:"imgUrl" yaml:"imgUrl" parquet:"img_url"`
	PDFURL string `json:"pdfUrl" yaml:"pdfUrl" parquet:"pdf_url"`
}

// BookFields are the editable fields of a book
type BookFields struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	ImgURL string `json:"imgUrl" yaml:"imgUrl"`
	PDFURL string `json:"pdfUrl" yaml:"pdfUrl"`
}

func (b Book) Key() string { return b.ID }

func (b Book) Fields() BookFields {
	return BookFields{Name: b.Name, ImgURL: b.ImgURL, PDFURL: b.PDFURL}
}

// BookRef is a category's reference to a book. The API sends either the bare
// identity or the populated book object, so both decode into a BookRef.
type BookRef struct {
	ID   string `json:"_id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

func (r *BookRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid book reference: %w", err)
	}
	r.ID = obj.ID
	r.Name = obj.Name
	return nil
}

// Category groups books
type Category struct {
	ID     string    `json:"_id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	ImgURL string    `json:"imgUrl" yaml:"imgUrl"`
	Books  []BookRef `json:"books" yaml:"books"`
}

// CategoryFields are the editable fields of a category. Books holds the
// membership as plain book identities.
type CategoryFields struct {
	Name   string   `json:"name" yaml:"name" validate:"required"`
	ImgURL string   `json:"imgUrl" yaml:"imgUrl"`
	Books  []string `json:"books" yaml:"books"`
}

func (c Category) Key() string { return c.ID }

func (c Category) Fields() CategoryFields {
	ids := make([]string, 0, len(c.Books))
	for _, b := range c.Books {
		ids = append(ids, b.ID)
	}
	return CategoryFields{Name: c.Name, ImgURL: c.ImgURL, Books: ids}
}

// BookIDs returns the membership identities in server order.
func (c Category) BookIDs() []string {
	return c.Fields().Books
}

// BookNames lists the members by name, falling back to the id for references
// the server did not populate.
func (c Category) BookNames() []string {
	names := make([]string, 0, len(c.Books))
	for _, b := range c.Books {
		if b.Name != "" {
			names = append(names, b.Name)
		} else {
			names = append(names, b.ID)
		}
	}
	return names
}

// Banner is a promotional image shown by the storefront
type Banner struct {
	ID     string `json:"_id" yaml:"id" parquet:"id"`
	ImgURL string `json:"imgUrl" yaml:"imgUrl" parquet:"img_url"`
}

// BannerFields are the editable fields of a banner
type BannerFields struct {
	ImgURL string `json:"imgUrl" yaml:"imgUrl" validate:"required"`
}

func (b Banner) Key() string { return b.ID }

func (b Banner) Fields() BannerFields {
	return BannerFields{ImgURL: b.ImgURL}
}
