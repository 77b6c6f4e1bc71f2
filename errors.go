package main

import "errors"

var (
	errInsufficientData              = errors.New("Insufficient data for calculation")
	errDegenerateInput               = errors.New("Degenerate input for calculation")
	errProviderFetch                 = errors.New("Failed to fetch from upstream provider")
	errUnknownMetric                 = errors.New("Unknown fiscal metric")
	errFailedLoadSession             = errors.New("Failed to load session from DDB")
	errFailedSaveSession             = errors.New("Failed to save session to DDB")
	errFailedToGetSessionFromContext = errors.New("Failed to get session from Context")
)
