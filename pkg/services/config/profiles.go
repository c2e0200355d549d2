package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile identifies the operator a CLI session acts as. The console's
// authentication layer is a collaborator, not part of the engine; the
// profile file stands in for it on the terminal surface.
type Profile struct {
	Name   string
	UserID string
	Email  string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type profileRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (pr *profileRegistry) GetProfiles(_ context.Context) ([]Profile, error) {
	var profiles []Profile
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profiles = append(profiles, Profile{
			Name:   section.Name(),
			UserID: section.Key("user_id").String(),
			Email:  section.Key("email").String(),
		})
	}
	return profiles, nil
}

func (pr *profileRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section := pr.cfg.Section(name)
	if section == nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	userID := section.Key("user_id").String()
	if userID == "" {
		return nil, fmt.Errorf("profile %s has no user_id", name)
	}

	return &Profile{
		Name:   name,
		UserID: userID,
		Email:  section.Key("email").String(),
	}, nil
}
