package notes

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/google/uuid"
)

type Service struct {
	db              database.PGX
	notesRepository notesRepository
	now             func() time.Time
}

type notesRepository interface {
	CreateNote(ctx context.Context, q database.Queryable, note *model.Note) error
	GetNote(ctx context.Context, q database.Queryable, id string) (*model.Note, error)
	GetNotes(ctx context.Context, q database.Queryable) ([]*model.Note, error)
	UpdateNote(ctx context.Context, q database.Queryable, note *model.Note) error
	DeleteNote(ctx context.Context, q database.Queryable, id string) error
}

func NewService(db database.PGX, repo notesRepository) *Service {
	return &Service{
		db:              db,
		notesRepository: repo,
		now:             time.Now,
	}
}

func (s *Service) CreateNote(ctx context.Context, info *model.NoteCreate) (*model.Note, error) {
	now := s.now()
	note := &model.Note{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		UpdatedAt:  now,
		NoteCreate: *info,
	}

	if err := s.notesRepository.CreateNote(ctx, s.db, note); err != nil {
		return nil, fmt.Errorf("notesRepository.CreateNote: %w", err)
	}

	return note, nil
}

func (s *Service) GetNote(ctx context.Context, id string) (*model.Note, error) {
	return s.notesRepository.GetNote(ctx, s.db, id)
}

func (s *Service) GetNotes(ctx context.Context) ([]*model.Note, error) {
	return s.notesRepository.GetNotes(ctx, s.db)
}

func (s *Service) UpdateNote(ctx context.Context, note *model.Note) error {
	if _, err := s.notesRepository.GetNote(ctx, s.db, note.ID); err != nil {
		return fmt.Errorf("get note: %w", err)
	}

	if err := s.notesRepository.UpdateNote(ctx, s.db, note); err != nil {
		return fmt.Errorf("notesRepository.UpdateNote: %w", err)
	}

	return nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if err := s.notesRepository.DeleteNote(ctx, s.db, id); err != nil {
		return fmt.Errorf("notesRepository.DeleteNote: %w", err)
	}
	return nil
}

// ExportZip writes every note as a markdown file into a zip archive.
func (s *Service) ExportZip(ctx context.Context, w io.Writer) error {
	notes, err := s.notesRepository.GetNotes(ctx, s.db)
	if err != nil {
		return fmt.Errorf("notesRepository.GetNotes: %w", err)
	}

	zw := zip.NewWriter(w)
	for _, note := range notes {
		f, err := zw.Create(noteFileName(note))
		if err != nil {
			return fmt.Errorf("create zip entry: %w", err)
		}
		if _, err := f.Write([]byte(note.Body)); err != nil {
			return fmt.Errorf("write zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}

	return nil
}

// noteFileName derives a safe markdown file name, falling back to the note
// id when the title has no usable characters.
func noteFileName(note *model.Note) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, note.Title)

	name = strings.Trim(name, "-")
	if name == "" {
		name = note.ID
	}

	return name + ".md"
}
