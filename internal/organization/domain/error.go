package domain

import "errors"

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidTier     = errors.New("invalid_tier")
	ErrOrgNotFound     = errors.New("organization_not_found")
	ErrOrgExists       = errors.New("organization_exists")
	ErrMemberNotFound  = errors.New("member_not_found")
	ErrMemberExists    = errors.New("member_exists")
	ErrOrgNotApproved  = errors.New("organization_not_approved")
	ErrNotOrganizer    = errors.New("not_an_organizer")
	ErrForbiddenMember = errors.New("forbidden_member")
	ErrSelfRemoveOwner = errors.New("owner_cannot_leave")
)
