package model

import "errors"

// Common errors used across the application
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Skin / shop errors
	ErrSkinNotFound       = errors.New("skin not found")
	ErrSkinNotPurchasable = errors.New("skin is not purchasable")
	ErrSkinAlreadyOwned   = errors.New("skin is already owned")
	ErrInsufficientBeans  = errors.New("not enough beans")
	ErrSkinNotOwned       = errors.New("skin is not owned")
)
