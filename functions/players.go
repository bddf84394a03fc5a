package functions

import (
	"context"
	"fmt"

	dbadapter "github.com/kasuganosora/datapad/db"
	"github.com/kasuganosora/datapad/model"
	"gorm.io/gorm"
)

func (s *Service) getPlayer(ctx context.Context, ev Event) (any, error) {
	userName, err := param(ev, "userName")
	if err != nil {
		return nil, err
	}
	var p *model.Player
	err = dbadapter.Scoped(ctx, s.db, func(conn *gorm.DB) error {
		var ferr error
		p, ferr = findPlayer(conn, userName)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// findPlayer loads the single player with userName. Two or more matches
// mean the user table is corrupt and are reported, never resolved.
func findPlayer(conn *gorm.DB, userName string) (*model.Player, error) {
	var players []model.Player
	if err := conn.Where("user_name = ?", userName).Limit(2).Find(&players).Error; err != nil {
		return nil, fmt.Errorf("find player %q: %w", userName, err)
	}
	switch len(players) {
	case 0:
		return nil, fmt.Errorf("player %q %w", userName, ErrNotFound)
	case 1:
		return &players[0], nil
	}
	return nil, fmt.Errorf("multiple players found for %q: %w", userName, ErrMultipleFound)
}
