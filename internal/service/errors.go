package service

import "errors"

var (
	ErrEmailAlreadyUsed      = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrNotAuthenticated      = errors.New("login required")
	ErrForbidden             = errors.New("forbidden")
	ErrAccountValidation     = errors.New("account validation failed")
	ErrWishlistValidation    = errors.New("wishlist validation failed")
	ErrReviewValidation      = errors.New("review validation failed")
	ErrDestinationValidation = errors.New("destination validation failed")
	ErrDestinationNotFound   = errors.New("destination not found")
	ErrImageValidation       = errors.New("image validation failed")
	ErrPreferenceValidation  = errors.New("preference validation failed")
	ErrUploadsDisabled       = errors.New("image uploads are not configured")
	ErrInvalidClientToken    = errors.New("invalid client token")
)
