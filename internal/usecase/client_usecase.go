package usecase

import (
	"context"
	"errors"
	"strings"

	"talent-match/internal/domain/project"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type ClientUsecase interface {
	ListClients(ctx context.Context, search string) ([]project.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (project.Client, error)
	CreateClient(ctx context.Context, name string) (project.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, name string) (project.Client, error)
}

// Client names are unique ignoring case.
type Client struct {
	repo repository.ClientRepository
}

func NewClientUsecase(repo repository.ClientRepository) *Client {
	return &Client{repo: repo}
}

func (u *Client) ListClients(ctx context.Context, search string) ([]project.Client, error) {
	items, err := u.repo.ListClients(ctx, search)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Client) GetClient(ctx context.Context, id uuid.UUID) (project.Client, error) {
	c, err := u.repo.GetClient(ctx, id)
	if err != nil {
		return project.Client{}, mapClientErr(err)
	}
	return c, nil
}

func (u *Client) CreateClient(ctx context.Context, name string) (project.Client, error) {
	name = strings.TrimSpace(name)
	if err := u.checkName(ctx, name, uuid.Nil); err != nil {
		return project.Client{}, err
	}

	c, err := u.repo.CreateClient(ctx, project.Client{ID: uuid.New(), Name: name})
	if err != nil {
		return project.Client{}, mapClientErr(err)
	}
	return c, nil
}

func (u *Client) UpdateClient(ctx context.Context, id uuid.UUID, name string) (project.Client, error) {
	name = strings.TrimSpace(name)
	if err := u.checkName(ctx, name, id); err != nil {
		return project.Client{}, err
	}

	c, err := u.repo.UpdateClient(ctx, project.Client{ID: id, Name: name})
	if err != nil {
		return project.Client{}, mapClientErr(err)
	}
	return c, nil
}

func (u *Client) checkName(ctx context.Context, name string, exclude uuid.UUID) error {
	if name == "" {
		return ErrInvalidInput
	}
	taken, err := u.repo.ClientNameExists(ctx, name, exclude)
	if err != nil {
		return ErrInternal
	}
	if taken {
		return ErrClientNameTaken
	}
	return nil
}

func mapClientErr(err error) error {
	if errors.Is(err, repository.ErrClientNotFound) {
		return ErrClientNotFound
	}
	return ErrInternal
}
