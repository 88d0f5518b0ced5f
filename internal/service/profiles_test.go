package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/errs"
	"github.com/akarneev/shelfmark/internal/model"
	"github.com/akarneev/shelfmark/internal/repository"
)

type fakeProfileRepo struct {
	listOut []model.Profile
	listErr error

	getOut *model.Profile
	getErr error

	getDefaultOut *model.Profile
	getDefaultErr error

	ensureInCandidate *model.Profile
	ensureOut         uuid.UUID
	ensureErr         error

	createIn  *model.Profile
	createErr error

	updateIn  model.UpdateProfile
	updateErr error

	setDefaultInID uuid.UUID
	setDefaultErr  error

	deleteInID uuid.UUID
	deleteErr  error
}

var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)

func (f *fakeProfileRepo) ListByOwner(_ context.Context, _ uuid.UUID) ([]model.Profile, error) {
	return append([]model.Profile(nil), f.listOut...), f.listErr
}
func (f *fakeProfileRepo) Get(_ context.Context, _, _ uuid.UUID) (*model.Profile, error) {
	return f.getOut, f.getErr
}
func (f *fakeProfileRepo) GetDefault(_ context.Context, _ uuid.UUID) (*model.Profile, error) {
	return f.getDefaultOut, f.getDefaultErr
}
func (f *fakeProfileRepo) EnsureDefault(_ context.Context, _ uuid.UUID, candidate *model.Profile) (uuid.UUID, error) {
	f.ensureInCandidate = candidate
	return f.ensureOut, f.ensureErr
}
func (f *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	f.createIn = p
	return f.createErr
}
func (f *fakeProfileRepo) Update(_ context.Context, _, _ uuid.UUID, upd model.UpdateProfile) error {
	f.updateIn = upd
	return f.updateErr
}
func (f *fakeProfileRepo) SetDefault(_ context.Context, _, profileID uuid.UUID) error {
	f.setDefaultInID = profileID
	return f.setDefaultErr
}
func (f *fakeProfileRepo) Delete(_ context.Context, _, profileID uuid.UUID) error {
	f.deleteInID = profileID
	return f.deleteErr
}

func TestProfileService_List_RequiresIdentity(t *testing.T) {
	s := NewProfileService(&fakeProfileRepo{})
	if _, err := s.List(context.Background(), uuid.Nil); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
}

func TestProfileService_GetDefault_NoProfilesIsNil(t *testing.T) {
	repo := &fakeProfileRepo{getDefaultErr: errs.ErrNotFound}
	s := NewProfileService(repo)

	p, err := s.GetDefault(context.Background(), uuid.Must(uuid.NewV4()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("want nil profile, got %+v", p)
	}
}

func TestProfileService_EnsureDefault_BuildsCandidate(t *testing.T) {
	repo := &fakeProfileRepo{}
	s := NewProfileService(repo)
	owner := uuid.Must(uuid.NewV4())

	repo.ensureOut = uuid.Must(uuid.NewV4())
	id, err := s.EnsureDefault(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != repo.ensureOut {
		t.Fatalf("want repo result passed through, got %s", id)
	}

	c := repo.ensureInCandidate
	if c == nil {
		t.Fatal("candidate not passed to repo")
	}
	if c.Name != model.DefaultProfileName || c.Color != model.DefaultProfileColor {
		t.Fatalf("candidate fields: %q %q", c.Name, c.Color)
	}
	if !c.IsDefault || c.OwnerID != owner || c.ID == uuid.Nil {
		t.Fatalf("candidate flags: %+v", c)
	}
}

func TestProfileService_Create_Validation(t *testing.T) {
	repo := &fakeProfileRepo{}
	s := NewProfileService(repo)
	owner := uuid.Must(uuid.NewV4())

	if _, err := s.Create(context.Background(), owner, model.NewProfile{Color: "#111111"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on empty name, got %v", err)
	}
	if _, err := s.Create(context.Background(), owner, model.NewProfile{Name: "Work"}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on empty color, got %v", err)
	}
	if repo.createIn != nil {
		t.Fatal("repo should not be called on validation failure")
	}
}

func TestProfileService_Create_OK(t *testing.T) {
	repo := &fakeProfileRepo{}
	s := NewProfileService(repo)
	owner := uuid.Must(uuid.NewV4())

	id, err := s.Create(context.Background(), owner, model.NewProfile{Name: "Work", Color: "#111111", IsDefault: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("want generated id")
	}
	if repo.createIn == nil || !repo.createIn.IsDefault || repo.createIn.OwnerID != owner {
		t.Fatalf("stored profile: %+v", repo.createIn)
	}
}

func TestProfileService_Update_NoopWithoutFields(t *testing.T) {
	repo := &fakeProfileRepo{updateErr: errors.New("should not be called")}
	s := NewProfileService(repo)

	err := s.Update(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), model.UpdateProfile{})
	if err != nil {
		t.Fatalf("empty update should be a no-op, got %v", err)
	}
}

func TestProfileService_Update_RejectsClearedFields(t *testing.T) {
	repo := &fakeProfileRepo{}
	s := NewProfileService(repo)
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	empty := ""

	if err := s.Update(context.Background(), owner, id, model.UpdateProfile{Name: &empty}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on empty name, got %v", err)
	}
	if err := s.Update(context.Background(), owner, id, model.UpdateProfile{Color: &empty}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on empty color, got %v", err)
	}
	if repo.updateIn.Name != nil || repo.updateIn.Color != nil {
		t.Fatal("repo should not be called on validation failure")
	}
}

func TestProfileService_SetDefault_NilProfileIsNotFound(t *testing.T) {
	s := NewProfileService(&fakeProfileRepo{})
	err := s.SetDefault(context.Background(), uuid.Must(uuid.NewV4()), uuid.Nil)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestProfileService_Remove_Propagates(t *testing.T) {
	repo := &fakeProfileRepo{deleteErr: errs.ErrNotFound}
	s := NewProfileService(repo)

	err := s.Remove(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
