package model

import "time"

type NoteCreate struct {
	Title  string
	Body   string
	Tags   []string
	Pinned bool
}

type Note struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	NoteCreate
}
