package model

import "github.com/google/uuid"

// Principal is the authenticated operator attached to a request.
type Principal struct {
	AdminID  uuid.UUID
	Username string
}
