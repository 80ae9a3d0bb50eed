package domain

import "errors"

var (
	// ErrNotRegistered is returned when a submission arrives without a known team identity.
	ErrNotRegistered = errors.New("team not registered")
	// ErrUnknownItem indicates a submitted item ID does not resolve to a catalog item.
	ErrUnknownItem = errors.New("unknown catalog item")
	// ErrUnknownRound indicates a round number outside the catalog.
	ErrUnknownRound = errors.New("unknown round")
	// ErrCatalogNotFound indicates the catalog content could not be loaded.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrPollNotActive is returned for votes cast while no poll is running.
	ErrPollNotActive = errors.New("poll not active")
	// ErrGenerationFailed wraps failures of the external code-generation service.
	ErrGenerationFailed = errors.New("code generation failed")
	// ErrEmptyTeamName is returned when registration is attempted without a name.
	ErrEmptyTeamName = errors.New("team name required")
)
