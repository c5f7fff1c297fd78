package model

import "errors"

var (
	ErrCommitteeNotFound  = errors.New("committee does not exist")
	ErrMeetingNotFound    = errors.New("meeting does not exist")
	ErrMemberNotFound     = errors.New("member does not exist")
	ErrRegistrantNotFound = errors.New("registrant does not exist")
)
