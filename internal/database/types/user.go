package types

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the local record of an account managed by the identity provider.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          int64     `bun:",pk"      json:"id"`
	Email       string    `bun:",notnull" json:"email"`
	Staff       bool      `bun:",notnull" json:"staff"`
	Contributed bool      `bun:",notnull" json:"contributed"`
	CreatedAt   time.Time `bun:",notnull" json:"createdAt"`
}
