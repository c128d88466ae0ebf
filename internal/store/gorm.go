// Package store is the persistence gateway: it maps core snapshots onto
// database rows. The core never sees the database; it only exchanges
// snapshots at process boundaries.
package store

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/jackut-dev/jackut/internal/core"
	"github.com/jackut-dev/jackut/internal/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load reads the persisted snapshot. Users are ordered by row ID, which
// preserves account creation order across restarts.
func (s *GormStore) Load(ctx context.Context) (*core.Snapshot, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	var communities []models.Community
	if err := s.db.WithContext(ctx).Order("id").Find(&communities).Error; err != nil {
		return nil, err
	}

	snap := &core.Snapshot{}
	for _, u := range users {
		attrs := make(map[string]string)
		if len(u.Attributes) > 0 {
			if err := json.Unmarshal(u.Attributes, &attrs); err != nil {
				return nil, err
			}
		}
		snap.Users = append(snap.Users, core.UserSnapshot{
			Login:       u.Login,
			Password:    u.Password,
			Name:        u.Name,
			Attributes:  attrs,
			Friends:     u.Friends,
			Invites:     u.Invites,
			Idols:       u.Idols,
			Crushes:     u.Crushes,
			Enemies:     u.Enemies,
			Notices:     u.Notices,
			Messages:    u.Messages,
			Communities: u.Communities,
		})
	}
	for _, c := range communities {
		snap.Communities = append(snap.Communities, core.CommunitySnapshot{
			Name:        c.Name,
			Description: c.Description,
			Owner:       c.Owner,
			Members:     c.Members,
		})
	}
	return snap, nil
}

// Save replaces the persisted snapshot wholesale inside one transaction.
func (s *GormStore) Save(ctx context.Context, snap *core.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.User{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Community{}).Error; err != nil {
			return err
		}

		for _, u := range snap.Users {
			attrs, err := json.Marshal(u.Attributes)
			if err != nil {
				return err
			}
			row := models.User{
				Login:       u.Login,
				Password:    u.Password,
				Name:        u.Name,
				Attributes:  attrs,
				Friends:     u.Friends,
				Invites:     u.Invites,
				Idols:       u.Idols,
				Crushes:     u.Crushes,
				Enemies:     u.Enemies,
				Notices:     u.Notices,
				Messages:    u.Messages,
				Communities: u.Communities,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, c := range snap.Communities {
			row := models.Community{
				Name:        c.Name,
				Description: c.Description,
				Owner:       c.Owner,
				Members:     c.Members,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
