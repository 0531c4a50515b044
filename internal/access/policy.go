package access

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the caller's platform-wide role, established once at the
// authenticated edge and forwarded unchanged between services.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}

// CanAccess reports whether a user may read a project: admins, the owner,
// and members. Membership is resolved by the caller; the owner is never a
// member row, so the two conditions are checked separately.
func CanAccess(ownerID, userID uuid.UUID, role Role, isMember bool) bool {
	if role == RoleAdmin {
		return true
	}
	if ownerID == userID {
		return true
	}
	return isMember
}

// CanManage reports whether a user may mutate a project (columns, members,
// the project itself). Members without ownership cannot manage.
func CanManage(ownerID, userID uuid.UUID, role Role) bool {
	return role == RoleAdmin || ownerID == userID
}
