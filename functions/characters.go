package functions

import (
	"context"
	"fmt"

	dbadapter "github.com/kasuganosora/datapad/db"
	"github.com/kasuganosora/datapad/model"
	"gorm.io/gorm"
)

var characters = collection{Kind: "character"}

func (s *Service) getAllCharacters(ctx context.Context, _ Event) (any, error) {
	return listRecords[model.Character](ctx, s.db, characters)
}

func (s *Service) getAllPlayerCharacters(ctx context.Context, _ Event) (any, error) {
	return listRecords[model.Character](ctx, s.db, characters, func(q *gorm.DB) *gorm.DB {
		return q.Where("player_character = ?", true)
	})
}

// getKnownCharacters filters in Go: JSON array length has no portable SQL
// spelling across SQLite and MySQL.
func (s *Service) getKnownCharacters(ctx context.Context, _ Event) (any, error) {
	all, err := listRecords[model.Character](ctx, s.db, characters)
	if err != nil {
		return nil, err
	}
	known := make([]model.Character, 0, len(all))
	for _, c := range all {
		if c.Known() {
			known = append(known, c)
		}
	}
	return known, nil
}

// getPlayerCharacters resolves the player's character names to records, in
// the order the player lists them. Names without a record are skipped.
func (s *Service) getPlayerCharacters(ctx context.Context, ev Event) (any, error) {
	userName, err := param(ev, "userName")
	if err != nil {
		return nil, err
	}
	var owned []model.Character
	err = dbadapter.Scoped(ctx, s.db, func(conn *gorm.DB) error {
		p, err := findPlayer(conn, userName)
		if err != nil {
			return err
		}
		if len(p.Characters) == 0 {
			return nil
		}
		if err := conn.Where("name IN ?", []string(p.Characters)).Find(&owned).Error; err != nil {
			return fmt.Errorf("list characters of %q: %w", userName, err)
		}
		byName := make(map[string]model.Character, len(owned))
		for _, c := range owned {
			byName[c.Name] = c
		}
		owned = owned[:0]
		for _, name := range p.Characters {
			if c, ok := byName[name]; ok {
				owned = append(owned, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if owned == nil {
		owned = []model.Character{}
	}
	return owned, nil
}

func (s *Service) insertCharacter(ctx context.Context, ev Event) (any, error) {
	var c model.Character
	if err := decodeRecord(ev, "character", &c); err != nil {
		return nil, err
	}
	if err := insertRecord(ctx, s.db, characters, c.Name, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) editCharacter(ctx context.Context, ev Event) (any, error) {
	var c model.Character
	if err := decodeRecord(ev, "character", &c); err != nil {
		return nil, err
	}
	if err := editRecord(ctx, s.db, characters, c.Name, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) deleteCharacter(ctx context.Context, ev Event) (any, error) {
	name, err := param(ev, "characterName")
	if err != nil {
		return nil, err
	}
	if err := deleteRecord[model.Character](ctx, s.db, characters, name); err != nil {
		return nil, err
	}
	return deleted{Name: name}, nil
}
