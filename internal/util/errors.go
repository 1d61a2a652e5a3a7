package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseNotPublished  = errors.New("course not published")
	ErrAlreadyEnrolled     = errors.New("already enrolled in course")
	ErrNotEnrolled         = errors.New("not enrolled in course")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptFinished     = errors.New("attempt already submitted")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrAccessTargetMissing = errors.New("access grant needs a user or a group target")
	ErrAccessTargetBoth    = errors.New("access grant cannot target both a user and a group")
	ErrParentCommentGone   = errors.New("parent comment does not exist")
	ErrCertificateNotFound = errors.New("certificate not found")

	ErrUnsupportedVideoFormat = errors.New("unsupported video format")
)
