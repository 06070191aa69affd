package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/jackc/pgx/v4"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id", "title", "body", "tags", "pinned", "created_at", "updated_at").
	From(database.NotesTable)

type noteDTO struct {
	ID        string
	Title     string
	Body      string
	Tags      []string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func mapToNote(dto *noteDTO) *model.Note {
	return &model.Note{
		ID:        dto.ID,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		NoteCreate: model.NoteCreate{
			Title:  dto.Title,
			Body:   dto.Body,
			Tags:   dto.Tags,
			Pinned: dto.Pinned,
		},
	}
}

func (*Repository) CreateNote(ctx context.Context, q database.Queryable, note *model.Note) error {
	qb := database.PSQL.
		Insert(database.NotesTable).
		Columns("id", "title", "body", "tags", "pinned", "created_at", "updated_at").
		Values(note.ID, note.Title, note.Body, note.Tags, note.Pinned, note.CreatedAt, note.UpdatedAt)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetNote(ctx context.Context, q database.Queryable, id string) (*model.Note, error) {
	qb := baseQuery.Where(sq.Eq{"id": id})

	var dto noteDTO
	if err := q.Get(ctx, &dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToNote(&dto), nil
}

func (*Repository) GetNotes(ctx context.Context, q database.Queryable) ([]*model.Note, error) {
	qb := baseQuery.OrderBy("pinned desc", "updated_at desc")

	var dtos []*noteDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Note, len(dtos))
	for i, d := range dtos {
		res[i] = mapToNote(d)
	}

	return res, nil
}

func (*Repository) UpdateNote(ctx context.Context, q database.Queryable, note *model.Note) error {
	qb := database.PSQL.
		Update(database.NotesTable).
		SetMap(map[string]interface{}{
			"title":      note.Title,
			"body":       note.Body,
			"tags":       note.Tags,
			"pinned":     note.Pinned,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": note.ID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteNote(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Delete(database.NotesTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
