package domain

import "errors"

// ErrOracleExhausted is returned when the oracle keeps failing after all retries.
var ErrOracleExhausted = errors.New("oracle retries exhausted")

// ErrEmptyQuestion is returned when a task has no question to answer.
var ErrEmptyQuestion = errors.New("empty question")

// ErrUnknownMode is returned for a mode name outside hitom, fantom and generic.
var ErrUnknownMode = errors.New("unknown mode")

// ErrCacheMiss is returned by disambiguation caches for unknown stories.
var ErrCacheMiss = errors.New("cache miss")

// ErrUnknownMethod is returned for an unsupported answering method.
var ErrUnknownMethod = errors.New("unknown method")

// ErrUnknownDataset is returned for an unsupported benchmark name.
var ErrUnknownDataset = errors.New("unknown dataset")
