package usecase

import (
	"context"
	"time"

	"github.com/iho/gobank/internal/domain"
)

// ClientUseCase handles client registration and lookup.
type ClientUseCase struct {
	clientRepo ClientRepository
	idGen      IDGenerator
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository, idGen IDGenerator) *ClientUseCase {
	return &ClientUseCase{
		clientRepo: clientRepo,
		idGen:      idGen,
	}
}

// CreateClient registers a new client.
func (uc *ClientUseCase) CreateClient(ctx context.Context, name string) (*domain.Client, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	client := &domain.Client{
		ID:        uc.idGen.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// RenameClient updates a client's display name.
func (uc *ClientUseCase) RenameClient(ctx context.Context, id, name string) (*domain.Client, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.clientRepo.UpdateName(ctx, id, name, now); err != nil {
		return nil, err
	}

	client.Name = name
	client.UpdatedAt = now

	return client, nil
}
