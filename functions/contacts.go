package functions

import (
	"context"

	"github.com/kasuganosora/datapad/model"
)

var contacts = collection{Kind: "contact"}

func (s *Service) getAllContacts(ctx context.Context, _ Event) (any, error) {
	return listRecords[model.Contact](ctx, s.db, contacts)
}

func (s *Service) insertContact(ctx context.Context, ev Event) (any, error) {
	var c model.Contact
	if err := decodeRecord(ev, "contact", &c); err != nil {
		return nil, err
	}
	if err := insertRecord(ctx, s.db, contacts, c.Name, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) editContact(ctx context.Context, ev Event) (any, error) {
	var c model.Contact
	if err := decodeRecord(ev, "contact", &c); err != nil {
		return nil, err
	}
	if err := editRecord(ctx, s.db, contacts, c.Name, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) deleteContact(ctx context.Context, ev Event) (any, error) {
	name, err := param(ev, "contactName")
	if err != nil {
		return nil, err
	}
	if err := deleteRecord[model.Contact](ctx, s.db, contacts, name); err != nil {
		return nil, err
	}
	return deleted{Name: name}, nil
}

// deleted is the payload of every delete function.
type deleted struct {
	Name string `json:"name"`
}
