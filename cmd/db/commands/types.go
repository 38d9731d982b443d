package commands

import (
	"errors"
	"io"

	"github.com/pracor/pracor/internal/database"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

var (
	ErrNameRequired    = errors.New("NAME argument required")
	ErrInvalidID       = errors.New("ID must be a positive integer")
	ErrTooManyArguments = errors.New("too many arguments")
)

// CLIDependencies holds the common dependencies needed by CLI commands.
type CLIDependencies struct {
	DB       database.Client
	Migrator *migrate.Migrator
	Logger   *zap.Logger
	// Out receives command listings meant for the operator.
	Out io.Writer
}
