package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrBetNotFound          = errors.New("bet not found")
	ErrBetResolved          = errors.New("bet already resolved")
	ErrVerificationPending  = errors.New("all accountability partners must verify before the bet can be won")
	ErrRoomNotFound         = errors.New("room not found")
	ErrAlreadyMember        = errors.New("already a member of this room")
	ErrNotRoomMember        = errors.New("not a member of this room")
	ErrSelfFriend           = errors.New("you cannot add yourself")
	ErrFriendRequestExists  = errors.New("friend request already exists")
	ErrRequestHandled       = errors.New("friend request already handled")
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
	ErrNotAccountable       = errors.New("you are not an accountability partner on this bet")
	ErrMailNotConfigured    = errors.New("email service not configured")
	ErrInvalidDateRange     = errors.New("start date must not be after target date")
	ErrMalformedDate        = errors.New("dates must be in YYYY-MM-DD format")
)
