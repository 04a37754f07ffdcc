package codec

import (
	"errors"
	"fmt"
)

var (
	ErrWrite = errors.New("ошибка записи контейнера")
	ErrRead  = errors.New("ошибка чтения контейнера")
)

type Stage string

const (
	StageOpen     Stage = "open"
	StageHeader   Stage = "header"
	StageData     Stage = "data"
	StageFinalize Stage = "finalize"
	StageRead     Stage = "read"
)

// StageError указывает, на каком шаге кодека произошла ошибка.
type StageError struct {
	Stage  Stage
	Member string
	Err    error

	kind error
}

func (e *StageError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("%s (%s %q): %v", e.kind, e.Stage, e.Member, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.kind, e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{e.kind, e.Err}
}

func writeErr(stage Stage, member string, err error) error {
	return &StageError{Stage: stage, Member: member, Err: err, kind: ErrWrite}
}

func readErr(stage Stage, member string, err error) error {
	return &StageError{Stage: stage, Member: member, Err: err, kind: ErrRead}
}
