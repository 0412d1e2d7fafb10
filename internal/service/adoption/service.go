package adoption

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tailpair/internal/domain"
	"tailpair/internal/metrics"
	"tailpair/internal/repository"
	"tailpair/internal/service/email"
	"tailpair/internal/service/notification"
)

var (
	ErrAnimalNotAvailable = errors.New("animal is not available for adoption")
	ErrDuplicateRequest   = errors.New("adoption request already exists for this animal")
	ErrWrongShelter       = errors.New("adoption does not belong to this shelter")
	ErrNotAdopter         = errors.New("adoption does not belong to this user")
	ErrInvalidState       = errors.New("adoption is not in a valid state for this operation")
)

type Service interface {
	Create(ctx context.Context, adopterID uuid.UUID, input domain.CreateAdoptionInput) (*domain.Adoption, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Adoption, error)
	Approve(ctx context.Context, id, shelterID uuid.UUID) (*domain.Adoption, error)
	Reject(ctx context.Context, id, shelterID uuid.UUID, reason string) (*domain.Adoption, error)
	Complete(ctx context.Context, id, shelterID uuid.UUID) (*domain.Adoption, error)
	Cancel(ctx context.Context, id, adopterID uuid.UUID) (*domain.Adoption, error)
	ListByAdopter(ctx context.Context, adopterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Adoption], error)
	ListByShelter(ctx context.Context, shelterID uuid.UUID, status *domain.AdoptionStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Adoption], error)
	ListByStatus(ctx context.Context, status domain.AdoptionStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Adoption], error)
	CountPendingByShelter(ctx context.Context, shelterID uuid.UUID) (int64, error)
}

type service struct {
	txer         repository.Transactor
	adoptionRepo repository.AdoptionRepository
	animalRepo   repository.AnimalRepository
	userRepo     repository.UserRepository
	shelterRepo  repository.ShelterRepository
	favoriteRepo repository.FavoriteRepository
	notifRepo    repository.NotificationRepository
	notifService notification.Service
	emailService email.Service
	metrics      *metrics.Metrics
}

func NewService(
	txer repository.Transactor,
	adoptionRepo repository.AdoptionRepository,
	animalRepo repository.AnimalRepository,
	userRepo repository.UserRepository,
	shelterRepo repository.ShelterRepository,
	favoriteRepo repository.FavoriteRepository,
	notifRepo repository.NotificationRepository,
	notifService notification.Service,
	emailService email.Service,
	m *metrics.Metrics,
) Service {
	return &service{
		txer:         txer,
		adoptionRepo: adoptionRepo,
		animalRepo:   animalRepo,
		userRepo:     userRepo,
		shelterRepo:  shelterRepo,
		favoriteRepo: favoriteRepo,
		notifRepo:    notifRepo,
		notifService: notifService,
		emailService: emailService,
		metrics:      m,
	}
}

// Create opens a PENDING adoption for the adopter. The availability check, the
// duplicate check, the insert, the animal status flip and the shelter-admin
// notification all happen inside one transaction with the animal row locked,
// so two concurrent requests for the same animal cannot both succeed.
func (s *service) Create(ctx context.Context, adopterID uuid.UUID, input domain.CreateAdoptionInput) (*domain.Adoption, error) {
	start := time.Now()

	adopter, err := s.userRepo.GetByID(ctx, adopterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get adopter: %w", err)
	}
	if adopter == nil {
		return nil, domain.ErrUserNotFound
	}

	adoption := &domain.Adoption{
		ID:        uuid.New(),
		Status:    domain.AdoptionPending,
		Notes:     input.Notes,
		AdopterID: adopterID,
		AnimalID:  input.AnimalID,
	}

	var shelterAdminID uuid.UUID
	err = s.txer.Transact(ctx, func(tx *sqlx.Tx) error {
		animal, err := s.animalRepo.GetByIDForUpdate(ctx, tx, input.AnimalID)
		if err != nil {
			return fmt.Errorf("failed to lock animal: %w", err)
		}
		if animal == nil {
			return domain.ErrAnimalNotFound
		}
		if animal.Status != domain.AnimalAvailable {
			return ErrAnimalNotAvailable
		}

		exists, err := s.adoptionRepo.ExistsByAdopterAndAnimal(ctx, tx, adopterID, input.AnimalID)
		if err != nil {
			return fmt.Errorf("failed to check existing adoption: %w", err)
		}
		if exists {
			return ErrDuplicateRequest
		}

		shelter, err := s.shelterRepo.GetByID(ctx, animal.ShelterID)
		if err != nil {
			return fmt.Errorf("failed to get shelter: %w", err)
		}
		if shelter == nil {
			return domain.ErrShelterNotFound
		}
		shelterAdminID = shelter.AdminID

		if err := s.adoptionRepo.Create(ctx, tx, adoption); err != nil {
			return fmt.Errorf("failed to create adoption: %w", err)
		}
		if err := s.animalRepo.UpdateStatus(ctx, tx, animal.ID, domain.AnimalPending); err != nil {
			return fmt.Errorf("failed to update animal status: %w", err)
		}

		notif := notification.AdoptionRequested(shelterAdminID, adopter, animal)
		if err := s.notifRepo.CreateInTx(ctx, tx, notif); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifService.InvalidateUnreadCount(ctx, shelterAdminID)
	s.metrics.IncTransition("create")
	s.metrics.ObserveTransition(start)

	return s.adoptionRepo.GetByID(ctx, adoption.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Adoption, error) {
	adoption, err := s.adoptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get adoption: %w", err)
	}
	if adoption == nil {
		return nil, domain.ErrAdoptionNotFound
	}
	return adoption, nil
}

// Approve moves a PENDING adoption to APPROVED. The animal stays PENDING until
// the shelter completes the handover.
func (s *service) Approve(ctx context.Context, id, shelterID uuid.UUID) (*domain.Adoption, error) {
	start := time.Now()

	var adoption *domain.Adoption
	err := s.txer.Transact(ctx, func(tx *sqlx.Tx) error {
		var err error
		adoption, err = s.lockOwnedAdoption(ctx, tx, id, shelterID)
		if err != nil {
			return err
		}
		if adoption.Status != domain.AdoptionPending {
			return ErrInvalidState
		}

		now := time.Now()
		adoption.Status = domain.AdoptionApproved
		adoption.ApprovedAt = &now
		if err := s.adoptionRepo.UpdateStatus(ctx, tx, adoption); err != nil {
			return fmt.Errorf("failed to update adoption status: %w", err)
		}

		notif := notification.AdoptionApproved(adoption.AdopterID, adoption.AnimalID, adoption.AnimalName)
		if err := s.notifRepo.CreateInTx(ctx, tx, notif); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifService.InvalidateUnreadCount(ctx, adoption.AdopterID)
	s.metrics.IncTransition("approve")
	s.metrics.ObserveTransition(start)

	go func() {
		if err := s.emailService.SendAdoptionApproved(context.Background(), adoption.AdopterEmail, adoption.AdopterName, adoption.AnimalName, adoption.ShelterName); err != nil {
			log.Printf("Warning: failed to send approval email: %v", err)
		}
	}()

	return adoption, nil
}

// Reject moves a PENDING adoption to REJECTED and puts the animal back on the
// market.
func (s *service) Reject(ctx context.Context, id, shelterID uuid.UUID, reason string) (*domain.Adoption, error) {
	start := time.Now()

	var adoption *domain.Adoption
	err := s.txer.Transact(ctx, func(tx *sqlx.Tx) error {
		var err error
		adoption, err = s.lockOwnedAdoption(ctx, tx, id, shelterID)
		if err != nil {
			return err
		}
		if adoption.Status != domain.AdoptionPending {
			return ErrInvalidState
		}

		adoption.Status = domain.AdoptionRejected
		adoption.RejectionReason = &reason
		if err := s.adoptionRepo.UpdateStatus(ctx, tx, adoption); err != nil {
			return fmt.Errorf("failed to update adoption status: %w", err)
		}
		if err := s.animalRepo.UpdateStatus(ctx, tx, adoption.AnimalID, domain.AnimalAvailable); err != nil {
			return fmt.Errorf("failed to update animal status: %w", err)
		}

		notif := notification.AdoptionRejected(adoption.AdopterID, adoption.AnimalID, adoption.AnimalName, reason)
		if err := s.notifRepo.CreateInTx(ctx, tx, notif); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifService.InvalidateUnreadCount(ctx, adoption.AdopterID)
	s.metrics.IncTransition("reject")
	s.metrics.ObserveTransition(start)

	go func() {
		if err := s.emailService.SendAdoptionRejected(context.Background(), adoption.AdopterEmail, adoption.AdopterName, adoption.AnimalName, reason); err != nil {
			log.Printf("Warning: failed to send rejection email: %v", err)
		}
	}()

	return adoption, nil
}

// Complete finalizes an APPROVED adoption: the adoption becomes COMPLETED and
// the animal ADOPTED. Users who favorited the animal are told afterwards, best
// effort.
func (s *service) Complete(ctx context.Context, id, shelterID uuid.UUID) (*domain.Adoption, error) {
	start := time.Now()

	var adoption *domain.Adoption
	err := s.txer.Transact(ctx, func(tx *sqlx.Tx) error {
		var err error
		adoption, err = s.lockOwnedAdoption(ctx, tx, id, shelterID)
		if err != nil {
			return err
		}
		if adoption.Status != domain.AdoptionApproved {
			return ErrInvalidState
		}

		now := time.Now()
		adoption.Status = domain.AdoptionCompleted
		adoption.CompletedAt = &now
		if err := s.adoptionRepo.UpdateStatus(ctx, tx, adoption); err != nil {
			return fmt.Errorf("failed to update adoption status: %w", err)
		}
		if err := s.animalRepo.UpdateStatus(ctx, tx, adoption.AnimalID, domain.AnimalAdopted); err != nil {
			return fmt.Errorf("failed to update animal status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition("complete")
	s.metrics.ObserveTransition(start)
	s.notifyFavoriters(ctx, adoption)

	return adoption, nil
}

// Cancel lets the adopter withdraw any of their adoptions that has not been
// completed. If the animal was held PENDING for this request it goes back to
// AVAILABLE.
func (s *service) Cancel(ctx context.Context, id, adopterID uuid.UUID) (*domain.Adoption, error) {
	start := time.Now()

	var adoption *domain.Adoption
	err := s.txer.Transact(ctx, func(tx *sqlx.Tx) error {
		var err error
		adoption, err = s.adoptionRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to lock adoption: %w", err)
		}
		if adoption == nil {
			return domain.ErrAdoptionNotFound
		}
		if adoption.AdopterID != adopterID {
			return ErrNotAdopter
		}
		if adoption.Status == domain.AdoptionCompleted {
			return ErrInvalidState
		}

		adoption.Status = domain.AdoptionCancelled
		if err := s.adoptionRepo.UpdateStatus(ctx, tx, adoption); err != nil {
			return fmt.Errorf("failed to update adoption status: %w", err)
		}

		animal, err := s.animalRepo.GetByIDForUpdate(ctx, tx, adoption.AnimalID)
		if err != nil {
			return fmt.Errorf("failed to lock animal: %w", err)
		}
		if animal != nil && animal.Status == domain.AnimalPending {
			if err := s.animalRepo.UpdateStatus(ctx, tx, animal.ID, domain.AnimalAvailable); err != nil {
				return fmt.Errorf("failed to update animal status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition("cancel")
	s.metrics.ObserveTransition(start)

	return s.adoptionRepo.GetByID(ctx, adoption.ID)
}

func (s *service) ListByAdopter(ctx context.Context, adopterID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Adoption], error) {
	params.Validate()

	adoptions, total, err := s.adoptionRepo.ListByAdopter(ctx, adopterID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Adoption]{}, fmt.Errorf("failed to list adoptions: %w", err)
	}
	return domain.NewPaginatedResponse(adoptions, params.Page, params.PageSize, total), nil
}

func (s *service) ListByShelter(ctx context.Context, shelterID uuid.UUID, status *domain.AdoptionStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Adoption], error) {
	params.Validate()

	if status != nil && !status.IsValid() {
		return domain.PaginatedResponse[domain.Adoption]{}, ErrInvalidState
	}

	adoptions, total, err := s.adoptionRepo.ListByShelter(ctx, shelterID, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Adoption]{}, fmt.Errorf("failed to list adoptions: %w", err)
	}
	return domain.NewPaginatedResponse(adoptions, params.Page, params.PageSize, total), nil
}

func (s *service) ListByStatus(ctx context.Context, status domain.AdoptionStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Adoption], error) {
	params.Validate()

	if !status.IsValid() {
		return domain.PaginatedResponse[domain.Adoption]{}, ErrInvalidState
	}

	adoptions, total, err := s.adoptionRepo.ListByStatus(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Adoption]{}, fmt.Errorf("failed to list adoptions: %w", err)
	}
	return domain.NewPaginatedResponse(adoptions, params.Page, params.PageSize, total), nil
}

func (s *service) CountPendingByShelter(ctx context.Context, shelterID uuid.UUID) (int64, error) {
	count, err := s.adoptionRepo.CountPendingByShelter(ctx, shelterID)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending adoptions: %w", err)
	}
	return count, nil
}

// lockOwnedAdoption locks the adoption row and verifies the shelter acting on
// it owns the animal.
func (s *service) lockOwnedAdoption(ctx context.Context, tx *sqlx.Tx, id, shelterID uuid.UUID) (*domain.Adoption, error) {
	adoption, err := s.adoptionRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock adoption: %w", err)
	}
	if adoption == nil {
		return nil, domain.ErrAdoptionNotFound
	}
	if adoption.ShelterID != shelterID {
		return nil, ErrWrongShelter
	}
	return adoption, nil
}

// notifyFavoriters tells everyone who favorited the animal that it is gone.
// Failures are logged, not surfaced: the adoption itself already committed.
func (s *service) notifyFavoriters(ctx context.Context, adoption *domain.Adoption) {
	userIDs, err := s.favoriteRepo.ListUserIDsByAnimal(ctx, adoption.AnimalID)
	if err != nil {
		log.Printf("Warning: failed to list favoriters for animal %s: %v", adoption.AnimalID, err)
		return
	}

	for _, userID := range userIDs {
		if userID == adoption.AdopterID {
			continue
		}
		notif := notification.FavoriteAdopted(userID, adoption.AnimalID, adoption.AnimalName)
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			log.Printf("Warning: failed to notify favoriter %s: %v", userID, err)
			continue
		}
		s.notifService.InvalidateUnreadCount(ctx, userID)
	}
}
